package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads a JSON array of documents from path.
// A missing file or malformed JSON is reported as an InputError.
func Load(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}

	var documents []Document
	if err := json.Unmarshal(data, &documents); err != nil {
		return nil, &InputError{Path: path, Err: fmt.Errorf("parse JSON: %w", err)}
	}
	return documents, nil
}

// Save writes documents as a JSON array to path, atomically.
func Save(path string, documents []Document) error {
	data, err := json.Marshal(documents)
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	return WriteAtomic(path, data)
}

// WriteAtomic writes data to path via a temp file and rename, so the
// destination either holds the complete new content or is untouched.
// Write failures are reported as an OutputError.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &OutputError{Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &OutputError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &OutputError{Path: path, Err: err}
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
