package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
)

// newTestClient points a client at an httptest server for both REST and
// GraphQL endpoints.
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClientWithHTTPClient(server.Client(), server.URL, server.URL+"/graphql")
	require.NoError(t, err)
	return client
}

func TestIssueDocument(t *testing.T) {
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issue := &gh.Issue{
		ID:        gh.Ptr(int64(9001)),
		Number:    gh.Ptr(42),
		Title:     gh.Ptr("Cannot export PDF"),
		HTMLURL:   gh.Ptr("https://github.com/acme/widgets/issues/42"),
		Body:      gh.Ptr("export   fails\nsilently"),
		UpdatedAt: &gh.Timestamp{Time: updated},
		Labels: []*gh.Label{
			{Name: gh.Ptr("bug")},
			{Name: gh.Ptr("pdf")},
		},
	}

	t.Run("maps issue fields to a document", func(t *testing.T) {
		doc := issueDocument(issue)

		assert.Equal(t, "I9001", doc.ID)
		assert.Equal(t, docs.TypeIssue, doc.Type)
		assert.Equal(t, 42, doc.Number)
		assert.Equal(t, "Cannot export PDF", doc.Title)
		assert.Equal(t, "https://github.com/acme/widgets/issues/42", doc.URL)
		assert.Equal(t, []string{"bug", "pdf"}, doc.Labels)
		assert.Equal(t, updated, doc.UpdatedAt)
	})

	t.Run("normalizes the body into the excerpt", func(t *testing.T) {
		doc := issueDocument(issue)

		assert.Equal(t, "export fails silently", doc.Excerpt)
	})

	t.Run("missing optional fields default to empty", func(t *testing.T) {
		doc := issueDocument(&gh.Issue{ID: gh.Ptr(int64(1))})

		assert.Equal(t, "I1", doc.ID)
		assert.Empty(t, doc.Title)
		assert.Empty(t, doc.Excerpt)
		assert.Empty(t, doc.Labels)
	})
}

func TestFetchIssues(t *testing.T) {
	t.Run("fetches and normalizes issues, skipping pull requests", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widgets/issues", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "all", r.URL.Query().Get("state"))
			assert.Equal(t, "updated", r.URL.Query().Get("sort"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[
				{"id": 1, "number": 10, "title": "Cannot export PDF", "html_url": "https://example.com/10",
				 "body": "export fails", "labels": [{"name": "bug"}], "updated_at": "2025-06-01T12:00:00Z"},
				{"id": 2, "number": 11, "title": "Some PR", "pull_request": {"url": "https://example.com/pr"}},
				{"id": 3, "number": 12, "title": "Print broken", "labels": []}
			]`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		client := newTestClient(t, server)

		documents, err := FetchIssues(context.Background(), client, "acme", "widgets", time.Time{}, 0)

		require.NoError(t, err)
		require.Len(t, documents, 2)
		assert.Equal(t, "I1", documents[0].ID)
		assert.Equal(t, "I3", documents[1].ID)
	})

	t.Run("passes the since watermark", func(t *testing.T) {
		since := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widgets/issues", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2025-05-01T00:00:00Z", r.URL.Query().Get("since"))
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[]`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		client := newTestClient(t, server)

		documents, err := FetchIssues(context.Background(), client, "acme", "widgets", since, 0)

		require.NoError(t, err)
		assert.Empty(t, documents)
	})

	t.Run("caps results at maxItems", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widgets/issues", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[
				{"id": 1, "number": 1, "title": "one"},
				{"id": 2, "number": 2, "title": "two"},
				{"id": 3, "number": 3, "title": "three"}
			]`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		client := newTestClient(t, server)

		documents, err := FetchIssues(context.Background(), client, "acme", "widgets", time.Time{}, 2)

		require.NoError(t, err)
		assert.Len(t, documents, 2)
	})

	t.Run("API errors are typed", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v3/repos/acme/widgets/issues", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message": "Not Found"}`)
		})
		server := httptest.NewServer(mux)
		defer server.Close()
		client := newTestClient(t, server)

		_, err := FetchIssues(context.Background(), client, "acme", "widgets", time.Time{}, 0)

		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})
}
