package model

import (
	"fmt"
	"sort"
	"strings"
)

// notePreviewLimit caps the content preview length in the note rendering.
const notePreviewLimit = 50

// Note is a titled free-text entry with a set of tags. The title is the
// note's identity and never changes; content and tags are mutable in place.
type Note struct {
	title   string
	content string
	tags    map[string]struct{}
}

// NewNote creates a note with the given title, content and optional tags.
// Tags are validated and normalized one by one, so an invalid tag aborts
// construction.
func NewNote(title, content string, tags []string) (*Note, error) {
	if title == "" {
		return nil, ErrEmptyNoteTitle
	}
	n := &Note{title: title, content: content, tags: make(map[string]struct{})}
	for _, tag := range tags {
		if err := n.AddTag(tag); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Title returns the note's identity.
func (n *Note) Title() string { return n.title }

// Content returns the note's free-text body.
func (n *Note) Content() string { return n.content }

// SetContent replaces the note's body.
func (n *Note) SetContent(content string) { n.content = content }

// AddTag normalizes and inserts a tag. Adding a tag the note already carries
// is a no-op.
func (n *Note) AddTag(tag string) error {
	cleaned, err := normalizeTag(tag)
	if err != nil {
		return err
	}
	n.tags[cleaned] = struct{}{}
	return nil
}

// RemoveTag normalizes and removes a tag. Removing an absent tag is a silent
// no-op; a malformed tag cannot be present, so it is ignored too.
func (n *Note) RemoveTag(tag string) {
	cleaned, err := normalizeTag(tag)
	if err != nil {
		return
	}
	delete(n.tags, cleaned)
}

// ClearTags removes every tag. Used by the edit flows that replace the whole
// tag set.
func (n *Note) ClearTags() {
	n.tags = make(map[string]struct{})
}

// HasTag reports whether the note carries the already-normalized tag.
func (n *Note) HasTag(normalized string) bool {
	_, ok := n.tags[normalized]
	return ok
}

// Tags returns the tag set in sorted order.
func (n *Note) Tags() []string {
	out := make([]string, 0, len(n.tags))
	for tag := range n.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// TagCount returns the size of the tag set.
func (n *Note) TagCount() int { return len(n.tags) }

// String renders the note as three lines: title, a content preview truncated
// to the first 50 characters, and the sorted #-prefixed tag list (or a "No
// tags" placeholder).
func (n *Note) String() string {
	preview := n.content
	if runes := []rune(preview); len(runes) > notePreviewLimit {
		preview = string(runes[:notePreviewLimit]) + "..."
	}

	tagsLine := "No tags"
	if len(n.tags) > 0 {
		tags := n.Tags()
		for i, tag := range tags {
			tags[i] = "#" + tag
		}
		tagsLine = strings.Join(tags, ", ")
	}

	return fmt.Sprintf("Note: '%s'\nContent: %s\nTags: %s", n.title, preview, tagsLine)
}

// normalizeTag strips the leading '#' marker and surrounding whitespace and
// lower-cases the result. Tags must be non-empty and contain no whitespace.
func normalizeTag(tag string) (string, error) {
	cleaned := strings.TrimLeft(strings.TrimSpace(tag), "#")
	cleaned = strings.ToLower(cleaned)
	if cleaned == "" || strings.ContainsAny(cleaned, " \t") {
		return "", fmt.Errorf("%w: tag %q must be non-empty and contain no spaces", ErrInvalidTagFormat, tag)
	}
	return cleaned, nil
}
