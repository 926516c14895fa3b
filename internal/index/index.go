package index

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
)

// Version tags the serialization format so the consuming site can reject
// an index built by an incompatible tool version.
const Version = "1"

// Searchable field names. Labels are indexed as a single space-joined
// string so multi-word labels tokenize like ordinary text.
const (
	FieldTitle   = "title"
	FieldExcerpt = "excerpt"
	FieldLabels  = "labels"
)

// Fields lists the searchable fields in serialization order.
var Fields = []string{FieldTitle, FieldExcerpt, FieldLabels}

// Boosts holds the per-field relevance multipliers applied at query time.
type Boosts struct {
	Title   float64 `json:"title" toml:"title"`
	Excerpt float64 `json:"excerpt" toml:"excerpt"`
	Labels  float64 `json:"labels" toml:"labels"`
}

// DefaultBoosts returns equal weighting for all fields, matching the
// indexing pipeline's defaults.
func DefaultBoosts() Boosts {
	return Boosts{Title: 1, Excerpt: 1, Labels: 1}
}

// forField returns the boost for a field name, defaulting to 1.
func (b Boosts) forField(field string) float64 {
	switch field {
	case FieldTitle:
		return b.Title
	case FieldExcerpt:
		return b.Excerpt
	case FieldLabels:
		return b.Labels
	default:
		return 1
	}
}

// Index is the serialized inverted-index artifact.
//
// Refs preserves input document order, so the artifact is a pure function
// of the document list. Postings map term -> field -> ref -> term
// frequency; Lengths map field -> ref -> token count for length
// normalization at query time. encoding/json emits map keys sorted, so
// marshaling the same index always yields identical bytes.
type Index struct {
	Version  string                               `json:"version"`
	Fields   []string                             `json:"fields"`
	Boosts   Boosts                               `json:"boosts"`
	Refs     []string                             `json:"refs"`
	Lengths  map[string]map[string]int            `json:"lengths"`
	Postings map[string]map[string]map[string]int `json:"postings"`
}

// HasRef reports whether ref is registered in the index.
func (idx *Index) HasRef(ref string) bool {
	for _, r := range idx.Refs {
		if r == ref {
			return true
		}
	}
	return false
}

// DocCount returns the number of registered documents.
func (idx *Index) DocCount() int {
	return len(idx.Refs)
}

// Marshal serializes the index to its canonical JSON form.
func (idx *Index) Marshal() ([]byte, error) {
	data, err := json.Marshal(idx)
	if err != nil {
		return nil, fmt.Errorf("index: marshal: %w", err)
	}
	return data, nil
}

// Write serializes the index and writes it in full to path.
// Failures are reported as a docs.OutputError.
func (idx *Index) Write(path string) error {
	data, err := idx.Marshal()
	if err != nil {
		return &docs.OutputError{Path: path, Err: err}
	}
	return docs.WriteAtomic(path, data)
}

// Read loads a serialized index from path. A missing file or malformed
// JSON is reported as a docs.InputError.
func Read(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &docs.InputError{Path: path, Err: err}
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &docs.InputError{Path: path, Err: fmt.Errorf("parse JSON: %w", err)}
	}
	if idx.Version != Version {
		return nil, &docs.InputError{
			Path: path,
			Err:  fmt.Errorf("unsupported index version %q", idx.Version),
		}
	}
	return &idx, nil
}
