package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"organizer/internal/model"
)

// FileStore keeps the full organizer state in one YAML document on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given path. The file is only
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and rebuilds the collections. A missing, empty or undecodable
// file yields empty collections.
func (s *FileStore) Load(ctx context.Context) (*model.AddressBook, *model.NoteBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			book, notes := emptyCollections()
			return book, notes, nil
		}
		return nil, nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		book, notes := emptyCollections()
		return book, notes, nil
	}

	var snap snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		slog.Warn("data file is not valid YAML, starting empty", "path", s.path, "error", err)
		book, notes := emptyCollections()
		return book, notes, nil
	}

	book, notes, err := snap.restore()
	if err != nil {
		slog.Warn("data file failed validation, starting empty", "path", s.path, "error", err)
		book, notes := emptyCollections()
		return book, notes, nil
	}
	return book, notes, nil
}

// Save writes the collections as one YAML document, creating the parent
// directory if needed.
func (s *FileStore) Save(ctx context.Context, book *model.AddressBook, notes *model.NoteBook) error {
	data, err := yaml.Marshal(takeSnapshot(book, notes))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
