// Package state persists the since watermark and document snapshot
// between nightly runs, enabling incremental fetches.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/gh-docs-index/internal/docs"
)

// File names inside the cache directory.
const (
	StateFile    = "state.json"
	SnapshotFile = "docs.json"
)

// State is the persisted run state.
type State struct {
	// Since is the updated_at watermark passed to the next fetch.
	Since time.Time `json:"since"`

	// LastRun is when the last successful run finished.
	LastRun time.Time `json:"last_run"`

	// RunID identifies the run that wrote this state, for correlating
	// automation logs.
	RunID string `json:"run_id"`
}

// Store reads and writes run state in a cache directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("state: create cache dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the persisted state. A missing or unreadable state file
// yields a zero state: the next run simply fetches everything.
func (s *Store) Load() State {
	data, err := os.ReadFile(filepath.Join(s.dir, StateFile))
	if err != nil {
		return State{}
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// Save persists the state with a fresh run id and LastRun of now.
func (s *Store) Save(st State) error {
	st.RunID = uuid.NewString()
	st.LastRun = time.Now().UTC()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("state: marshal: %w", err)
	}
	return docs.WriteAtomic(filepath.Join(s.dir, StateFile), data)
}

// LoadSnapshot reads the cached document set from the previous run.
// A missing snapshot yields an empty set; a corrupt one is discarded.
func (s *Store) LoadSnapshot() []docs.Document {
	documents, err := docs.Load(filepath.Join(s.dir, SnapshotFile))
	if err != nil {
		return nil
	}
	return documents
}

// SaveSnapshot persists the merged document set for the next run.
func (s *Store) SaveSnapshot(documents []docs.Document) error {
	return docs.Save(filepath.Join(s.dir, SnapshotFile), documents)
}

// Merge overlays fetched documents onto the prior snapshot by ID.
// Prior documents keep their position, updated ones are replaced in
// place, and unseen ones are appended in fetch order, so merge output
// is deterministic for a given snapshot and fetch result.
func Merge(prior, fetched []docs.Document) []docs.Document {
	updated := make(map[string]docs.Document, len(fetched))
	for _, d := range fetched {
		updated[d.ID] = d
	}

	merged := make([]docs.Document, 0, len(prior)+len(fetched))
	seen := make(map[string]struct{}, len(prior))
	for _, d := range prior {
		if repl, ok := updated[d.ID]; ok {
			merged = append(merged, repl)
		} else {
			merged = append(merged, d)
		}
		seen[d.ID] = struct{}{}
	}
	for _, d := range fetched {
		if _, ok := seen[d.ID]; !ok {
			merged = append(merged, d)
			seen[d.ID] = struct{}{}
		}
	}
	return merged
}

// Watermark returns the maximum updated_at across documents, or fallback
// when the set is empty.
func Watermark(documents []docs.Document, fallback time.Time) time.Time {
	latest := fallback
	for _, d := range documents {
		if d.UpdatedAt.After(latest) {
			latest = d.UpdatedAt
		}
	}
	return latest
}
