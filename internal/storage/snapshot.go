package storage

import (
	"fmt"

	"organizer/internal/model"
)

// snapshot is the serializable shape of the full organizer state. Both
// backends speak this type; only the encoding differs.
type snapshot struct {
	Contacts []contactRow `yaml:"contacts"`
	Notes    []noteRow    `yaml:"notes"`
}

type contactRow struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Email    string   `yaml:"email,omitempty"`
	Address  string   `yaml:"address,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

type noteRow struct {
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	Tags    []string `yaml:"tags,omitempty"`
}

func takeSnapshot(book *model.AddressBook, notes *model.NoteBook) snapshot {
	var snap snapshot
	for _, rec := range book.Records() {
		snap.Contacts = append(snap.Contacts, contactRow{
			Name:     rec.Name().String(),
			Phones:   rec.Phones(),
			Email:    rec.Email(),
			Address:  rec.Address(),
			Birthday: rec.Birthday().String(),
		})
	}
	for _, note := range notes.SortedByTitle() {
		snap.Notes = append(snap.Notes, noteRow{
			Title:   note.Title(),
			Content: note.Content(),
			Tags:    note.Tags(),
		})
	}
	return snap
}

// restore rebuilds the collections through the model constructors, so every
// stored value passes the same validation as live input. Any row that no
// longer validates makes the whole snapshot unusable.
func (s snapshot) restore() (*model.AddressBook, *model.NoteBook, error) {
	book := model.NewAddressBook()
	for _, row := range s.Contacts {
		rec, err := model.NewRecord(row.Name)
		if err != nil {
			return nil, nil, fmt.Errorf("contact %q: %w", row.Name, err)
		}
		for _, number := range row.Phones {
			if err := rec.AddPhone(number); err != nil {
				return nil, nil, fmt.Errorf("contact %q: %w", row.Name, err)
			}
		}
		if row.Email != "" {
			if err := rec.SetEmail(row.Email); err != nil {
				return nil, nil, fmt.Errorf("contact %q: %w", row.Name, err)
			}
		}
		if row.Address != "" {
			rec.SetAddress(row.Address)
		}
		if row.Birthday != "" {
			if err := rec.SetBirthday(row.Birthday); err != nil {
				return nil, nil, fmt.Errorf("contact %q: %w", row.Name, err)
			}
		}
		book.Add(rec)
	}

	notes := model.NewNoteBook()
	for _, row := range s.Notes {
		note, err := model.NewNote(row.Title, row.Content, row.Tags)
		if err != nil {
			return nil, nil, fmt.Errorf("note %q: %w", row.Title, err)
		}
		notes.Add(note)
	}

	return book, notes, nil
}

func emptyCollections() (*model.AddressBook, *model.NoteBook) {
	return model.NewAddressBook(), model.NewNoteBook()
}
