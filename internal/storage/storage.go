// Package storage persists the address book and notebook.
//
// Two backends implement the same Store contract: a single-file YAML snapshot
// and a SQLite database. Load never fails on missing or unreadable state; it
// returns two fresh, empty collections so the caller always starts from a
// usable pair.
package storage

import (
	"context"
	"fmt"

	"organizer/internal/config"
	"organizer/internal/model"
)

// Store loads and saves the two collections as one unit.
type Store interface {
	// Load returns the persisted collections, or empty ones when no prior
	// state exists or the stored state cannot be read back.
	Load(ctx context.Context) (*model.AddressBook, *model.NoteBook, error)

	// Save replaces the persisted state with the given collections.
	Save(ctx context.Context, book *model.AddressBook, notes *model.NoteBook) error

	// Close releases backend resources.
	Close() error
}

// Open constructs the backend selected by the storage configuration.
func Open(cfg config.Storage) (Store, error) {
	switch cfg.Driver {
	case "", "file":
		return NewFileStore(cfg.Path), nil
	case "sqlite":
		return OpenSqliteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
