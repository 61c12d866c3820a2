package model

import (
	"fmt"
	"sort"
	"strings"
)

// NoteBook is the keyed collection of notes, indexed by normalized title.
//
// Unlike AddressBook, Add is an upsert: re-adding a note under an existing
// title replaces that entry. The command layer builds its "add = update"
// convention on this, so the asymmetry is deliberate.
type NoteBook struct {
	notes map[string]*Note
}

// NewNoteBook creates an empty notebook.
func NewNoteBook() *NoteBook {
	return &NoteBook{notes: make(map[string]*Note)}
}

// Len returns the number of notes.
func (nb *NoteBook) Len() int { return len(nb.notes) }

// Add upserts a note under its normalized title.
func (nb *NoteBook) Add(note *Note) {
	nb.notes[normalizeKey(note.Title())] = note
}

// Find looks a note up by title, ignoring case and surrounding whitespace.
func (nb *NoteBook) Find(title string) (*Note, bool) {
	note, ok := nb.notes[normalizeKey(title)]
	return note, ok
}

// EditText replaces the content of the note with the given title. Returns
// ErrNoteNotFound if absent.
func (nb *NoteBook) EditText(title, content string) error {
	note, ok := nb.Find(title)
	if !ok {
		return fmt.Errorf("note %q: %w", title, ErrNoteNotFound)
	}
	note.SetContent(content)
	return nil
}

// Delete removes a note by title. Returns ErrNoteNotFound if absent.
func (nb *NoteBook) Delete(title string) error {
	key := normalizeKey(title)
	if _, ok := nb.notes[key]; !ok {
		return fmt.Errorf("note %q: %w", title, ErrNoteNotFound)
	}
	delete(nb.notes, key)
	return nil
}

// AddTags applies the tags to the note with the given title, in order.
//
// The batch is not atomic: if a tag in the middle is malformed, the earlier
// tags have already been applied when the error is returned. This mirrors
// the behavior the front ends were written against.
func (nb *NoteBook) AddTags(title string, tags []string) error {
	note, ok := nb.Find(title)
	if !ok {
		return fmt.Errorf("note %q: %w", title, ErrNoteNotFound)
	}
	for _, tag := range tags {
		if err := note.AddTag(tag); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTag removes a single tag from the note with the given title. Returns
// ErrNoteNotFound if the note is absent; removing an absent tag is a no-op.
func (nb *NoteBook) RemoveTag(title, tag string) error {
	note, ok := nb.Find(title)
	if !ok {
		return fmt.Errorf("note %q: %w", title, ErrNoteNotFound)
	}
	note.RemoveTag(tag)
	return nil
}

// FindByTag returns all notes whose tag set contains the query tag exactly.
// The query is normalized the same way as Note.AddTag and must itself be a
// well-formed tag.
func (nb *NoteBook) FindByTag(tag string) ([]*Note, error) {
	cleaned, err := normalizeTag(tag)
	if err != nil {
		return nil, err
	}
	var out []*Note
	for _, note := range nb.SortedByTitle() {
		if note.HasTag(cleaned) {
			out = append(out, note)
		}
	}
	return out, nil
}

// SearchByTags finds notes matching a comma-separated list of partial tags.
// A note matches when, for every query term, at least one of its tags starts
// with that term. An empty query matches nothing.
func (nb *NoteBook) SearchByTags(query string) []*Note {
	var terms []string
	for _, part := range strings.Split(query, ",") {
		term := strings.ToLower(strings.TrimLeft(strings.TrimSpace(part), "#"))
		if term != "" {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return nil
	}

	var out []*Note
	for _, note := range nb.SortedByTitle() {
		if noteMatchesTerms(note, terms) {
			out = append(out, note)
		}
	}
	return out
}

func noteMatchesTerms(note *Note, terms []string) bool {
	for _, term := range terms {
		matched := false
		for _, tag := range note.Tags() {
			if strings.HasPrefix(tag, term) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// SortedByTitle returns all notes ascending by case-insensitive title.
func (nb *NoteBook) SortedByTitle() []*Note {
	out := make([]*Note, 0, len(nb.notes))
	for _, note := range nb.notes {
		out = append(out, note)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Title()) < strings.ToLower(out[j].Title())
	})
	return out
}

// SortedByTagCount returns all notes descending by tag count, ties broken
// ascending by case-insensitive title.
func (nb *NoteBook) SortedByTagCount() []*Note {
	out := nb.SortedByTitle()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TagCount() > out[j].TagCount()
	})
	return out
}
