package compiler

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteDocument serialises doc compactly (no extraneous whitespace) to
// path, creating parent directories as needed, and returns the number of
// bytes written.
//
// Postcondition: on success the file at path holds the complete document;
// serialisation of unchanged input is byte-stable across runs.
func WriteDocument(fsys afero.Fs, path string, doc *Document) (int64, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("serialising map document: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return 0, fmt.Errorf("writing map document to %s: %w", path, err)
	}
	return int64(len(data)), nil
}
