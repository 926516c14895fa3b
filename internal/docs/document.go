// Package docs defines the normalized document records exchanged between
// the fetch and index stages, and the flat JSON files they are stored in.
package docs

import (
	"regexp"
	"strings"
	"time"
)

// Type identifies the kind of GitHub item a document was built from.
type Type string

const (
	// TypeIssue marks a document built from a GitHub issue.
	TypeIssue Type = "issue"

	// TypeDiscussion marks a document built from a GitHub discussion.
	TypeDiscussion Type = "discussion"
)

// ExcerptLength is the maximum excerpt length in runes.
const ExcerptLength = 400

// Document is one normalized issue or discussion record.
// Immutable once written; ID is unique per run and serves as the
// index reference key.
type Document struct {
	ID        string    `json:"id"`
	Type      Type      `json:"type"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Labels    []string  `json:"labels"`
	UpdatedAt time.Time `json:"updated_at"`
	Excerpt   string    `json:"excerpt"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Excerpt collapses all whitespace runs in text to single spaces, trims it,
// and truncates the result to n runes.
func Excerpt(text string, n int) string {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n])
	}
	return text
}
