package index

import (
	"strings"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
)

// Builder turns an ordered document list into an Index. The build is a
// full rebuild every time; nothing is merged from a previous index.
type Builder struct {
	analyzer *Analyzer
	boosts   Boosts
}

// NewBuilder creates a builder with the given per-field boosts.
func NewBuilder(boosts Boosts) (*Builder, error) {
	analyzer, err := NewAnalyzer()
	if err != nil {
		return nil, err
	}
	return &Builder{analyzer: analyzer, boosts: boosts}, nil
}

// Build registers every document under its ID and returns the completed
// index. Documents with empty title, excerpt, and labels still get a ref
// entry; they just contribute no postings. Input order is preserved in
// the ref list, and duplicate IDs are registered as-is (the fetcher owns
// uniqueness).
func (b *Builder) Build(documents []docs.Document) *Index {
	idx := &Index{
		Version:  Version,
		Fields:   Fields,
		Boosts:   b.boosts,
		Refs:     make([]string, 0, len(documents)),
		Lengths:  make(map[string]map[string]int, len(Fields)),
		Postings: make(map[string]map[string]map[string]int),
	}
	for _, field := range Fields {
		idx.Lengths[field] = make(map[string]int)
	}

	for _, doc := range documents {
		idx.Refs = append(idx.Refs, doc.ID)
		b.addField(idx, doc.ID, FieldTitle, doc.Title)
		b.addField(idx, doc.ID, FieldExcerpt, doc.Excerpt)
		b.addField(idx, doc.ID, FieldLabels, strings.Join(doc.Labels, " "))
	}
	return idx
}

// addField analyzes one field of one document and records its postings.
func (b *Builder) addField(idx *Index, ref, field, text string) {
	terms := b.analyzer.Terms(text)
	if len(terms) == 0 {
		return
	}

	idx.Lengths[field][ref] = len(terms)

	for _, term := range terms {
		byField := idx.Postings[term]
		if byField == nil {
			byField = make(map[string]map[string]int)
			idx.Postings[term] = byField
		}
		byRef := byField[field]
		if byRef == nil {
			byRef = make(map[string]int)
			byField[field] = byRef
		}
		byRef[ref]++
	}
}
