package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
)

func TestSearch(t *testing.T) {
	builder := newTestBuilder(t)
	analyzer := newTestAnalyzer(t)

	t.Run("query matching a stemmed title token returns the document", func(t *testing.T) {
		idx := builder.Build([]docs.Document{{
			ID:      "issue-42",
			Title:   "Cannot export PDF",
			Labels:  []string{"bug", "pdf"},
			Excerpt: "export fails silently",
		}})

		results := Search(idx, analyzer, "export", 0)

		require.Len(t, results, 1)
		assert.Equal(t, "issue-42", results[0].Ref)
	})

	t.Run("unknown term returns no results", func(t *testing.T) {
		idx := builder.Build(sampleDocuments())

		assert.Empty(t, Search(idx, analyzer, "nonexistentword", 0))
	})

	t.Run("query is stemmed like indexed text", func(t *testing.T) {
		idx := builder.Build(sampleDocuments())

		// "exporting" stems to "export", which the title posted under.
		results := Search(idx, analyzer, "exporting", 0)

		require.NotEmpty(t, results)
		assert.Equal(t, "I42", results[0].Ref)
	})

	t.Run("label terms are searchable", func(t *testing.T) {
		idx := builder.Build(sampleDocuments())

		results := Search(idx, analyzer, "bug", 0)

		require.Len(t, results, 1)
		assert.Equal(t, "I42", results[0].Ref)
	})

	t.Run("empty query returns no results", func(t *testing.T) {
		idx := builder.Build(sampleDocuments())

		assert.Empty(t, Search(idx, analyzer, "", 0))
		assert.Empty(t, Search(idx, analyzer, "the and of", 0))
	})

	t.Run("limit caps the result count", func(t *testing.T) {
		documents := []docs.Document{
			{ID: "I1", Title: "export one"},
			{ID: "I2", Title: "export two"},
			{ID: "I3", Title: "export three"},
		}
		idx := builder.Build(documents)

		results := Search(idx, analyzer, "export", 2)

		assert.Len(t, results, 2)
	})

	t.Run("ties break by ref ascending", func(t *testing.T) {
		documents := []docs.Document{
			{ID: "I2", Title: "export"},
			{ID: "I1", Title: "export"},
		}
		idx := builder.Build(documents)

		results := Search(idx, analyzer, "export", 0)

		require.Len(t, results, 2)
		assert.Equal(t, "I1", results[0].Ref)
		assert.Equal(t, "I2", results[1].Ref)
	})

	t.Run("title boost raises title matches above excerpt matches", func(t *testing.T) {
		boosted, err := NewBuilder(Boosts{Title: 10, Excerpt: 1, Labels: 1})
		require.NoError(t, err)
		documents := []docs.Document{
			{ID: "title-hit", Title: "export"},
			{ID: "excerpt-hit", Excerpt: "export"},
		}
		idx := boosted.Build(documents)

		results := Search(idx, analyzer, "export", 0)

		require.Len(t, results, 2)
		assert.Equal(t, "title-hit", results[0].Ref)
		assert.Greater(t, results[0].Score, results[1].Score)
	})

	t.Run("multi-term query accumulates scores", func(t *testing.T) {
		documents := []docs.Document{
			{ID: "both", Title: "export pdf"},
			{ID: "one", Title: "export image"},
		}
		idx := builder.Build(documents)

		results := Search(idx, analyzer, "export pdf", 0)

		require.Len(t, results, 2)
		assert.Equal(t, "both", results[0].Ref)
	})

	t.Run("repeated runs rank identically", func(t *testing.T) {
		idx := builder.Build(sampleDocuments())

		first := Search(idx, analyzer, "printing export", 0)
		second := Search(idx, analyzer, "printing export", 0)

		assert.Equal(t, first, second)
	})
}
