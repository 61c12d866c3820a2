package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"organizer/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// SqliteStore keeps the organizer state in a SQLite database.
type SqliteStore struct {
	db *sql.DB
}

// OpenSqliteStore creates or opens a SQLite database at the given path and
// applies pragmas and the schema. Safe to call repeatedly on the same file.
func OpenSqliteStore(path string) (*SqliteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// SQLite supports one writer at a time; keep a single connection to
	// avoid SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// Load reads every row and rebuilds the collections. Rows that no longer
// pass model validation count as unreadable state and yield empty
// collections.
func (s *SqliteStore) Load(ctx context.Context) (*model.AddressBook, *model.NoteBook, error) {
	snap, err := s.readSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	book, notes, err := snap.restore()
	if err != nil {
		slog.Warn("stored rows failed validation, starting empty", "error", err)
		book, notes := emptyCollections()
		return book, notes, nil
	}
	return book, notes, nil
}

func (s *SqliteStore) readSnapshot(ctx context.Context) (snapshot, error) {
	var snap snapshot

	rows, err := s.db.QueryContext(ctx, `SELECT name, email, address, birthday FROM contacts ORDER BY name`)
	if err != nil {
		return snap, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row contactRow
		if err := rows.Scan(&row.Name, &row.Email, &row.Address, &row.Birthday); err != nil {
			return snap, fmt.Errorf("scan contact: %w", err)
		}
		snap.Contacts = append(snap.Contacts, row)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate contacts: %w", err)
	}

	for i := range snap.Contacts {
		phones, err := s.readPhones(ctx, snap.Contacts[i].Name)
		if err != nil {
			return snap, err
		}
		snap.Contacts[i].Phones = phones
	}

	noteRows, err := s.db.QueryContext(ctx, `SELECT title, content FROM notes ORDER BY title`)
	if err != nil {
		return snap, fmt.Errorf("query notes: %w", err)
	}
	defer noteRows.Close()

	for noteRows.Next() {
		var row noteRow
		if err := noteRows.Scan(&row.Title, &row.Content); err != nil {
			return snap, fmt.Errorf("scan note: %w", err)
		}
		snap.Notes = append(snap.Notes, row)
	}
	if err := noteRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate notes: %w", err)
	}

	for i := range snap.Notes {
		tags, err := s.readTags(ctx, snap.Notes[i].Title)
		if err != nil {
			return snap, err
		}
		snap.Notes[i].Tags = tags
	}

	return snap, nil
}

func (s *SqliteStore) readPhones(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT number FROM contact_phones WHERE contact_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("query phones for %q: %w", name, err)
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones = append(phones, number)
	}
	return phones, rows.Err()
}

func (s *SqliteStore) readTags(ctx context.Context, title string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag FROM note_tags WHERE note_title = ? ORDER BY tag`, title)
	if err != nil {
		return nil, fmt.Errorf("query tags for %q: %w", title, err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// Save replaces the stored state with the given collections in a single
// transaction.
func (s *SqliteStore) Save(ctx context.Context, book *model.AddressBook, notes *model.NoteBook) error {
	snap := takeSnapshot(book, notes)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM contact_phones`,
		`DELETE FROM note_tags`,
		`DELETE FROM contacts`,
		`DELETE FROM notes`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear previous state: %w", err)
		}
	}

	for _, c := range snap.Contacts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (name, email, address, birthday) VALUES (?, ?, ?, ?)`,
			c.Name, c.Email, c.Address, c.Birthday); err != nil {
			return fmt.Errorf("insert contact %q: %w", c.Name, err)
		}
		for i, number := range c.Phones {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO contact_phones (contact_name, position, number) VALUES (?, ?, ?)`,
				c.Name, i, number); err != nil {
				return fmt.Errorf("insert phone for %q: %w", c.Name, err)
			}
		}
	}

	for _, n := range snap.Notes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO notes (title, content) VALUES (?, ?)`, n.Title, n.Content); err != nil {
			return fmt.Errorf("insert note %q: %w", n.Title, err)
		}
		for _, tag := range n.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO note_tags (note_title, tag) VALUES (?, ?)`, n.Title, tag); err != nil {
				return fmt.Errorf("insert tag for %q: %w", n.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
