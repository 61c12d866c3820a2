package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"organizer/internal/model"
)

// NewNoteCommand creates the `note` command group.
func NewNoteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes and tags",
	}

	cmd.AddCommand(newNoteAddCommand(rootOpts))
	cmd.AddCommand(newNoteEditCommand(rootOpts))
	cmd.AddCommand(newNoteDeleteCommand(rootOpts))
	cmd.AddCommand(newNoteListCommand(rootOpts))
	cmd.AddCommand(newNoteTagCommand(rootOpts))
	cmd.AddCommand(newNoteFindByTagCommand(rootOpts))

	return cmd
}

func newNoteAddCommand(rootOpts *RootOptions) *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "add <title> <content>...",
		Short: "Add a note, or overwrite the note with the same title",
		Long: `Add a note with the given title and content.

Adding a note whose title already exists replaces that note. Tags can be
given via --tag (repeatable) or inline at the end of the content as #words,
which are split off the content.

Example:
  organizer note add Meeting "Discuss Q4 roadmap" --tag work --tag urgent`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				title := args[0]
				content, inline := splitInlineTags(strings.Join(args[1:], " "))

				_, exists := s.notes.Find(title)

				note, err := model.NewNote(title, content, append(inline, tags...))
				if err != nil {
					return "", false, err
				}
				s.notes.Add(note)

				if exists {
					return fmt.Sprintf("Note '%s' updated successfully.", title), true, nil
				}
				return fmt.Sprintf("Note '%s' added successfully.", title), true, nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "tag to attach (repeatable)")

	return cmd
}

// splitInlineTags splits "#tag" words off the end of the content, so that
// `note add Meeting agenda #work #urgent` tags the note instead of storing
// the markers as text.
func splitInlineTags(rest string) (content string, tags []string) {
	hashIndex := strings.Index(rest, "#")
	if hashIndex < 0 {
		return strings.TrimSpace(rest), nil
	}

	for _, word := range strings.Fields(rest[hashIndex:]) {
		if strings.HasPrefix(word, "#") {
			tags = append(tags, word)
		}
	}
	return strings.TrimSpace(rest[:hashIndex]), tags
}

func newNoteEditCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <title> <content>...",
		Short: "Replace a note's content",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				title := args[0]
				if err := s.notes.EditText(title, strings.Join(args[1:], " ")); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Note '%s' updated successfully.", title), true, nil
			})
		},
	}
}

func newNoteDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <title>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if err := s.notes.Delete(args[0]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Note '%s' deleted successfully.", args[0]), true, nil
			})
		},
	}
}

func newNoteListCommand(rootOpts *RootOptions) *cobra.Command {
	var byTagCount bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if s.notes.Len() == 0 {
					return "No notes found.", false, nil
				}

				notes := s.notes.SortedByTitle()
				if byTagCount {
					notes = s.notes.SortedByTagCount()
				}

				lines := []string{"All notes:"}
				for _, note := range notes {
					lines = append(lines, note.String())
				}
				return strings.Join(lines, "\n"), false, nil
			})
		},
	}

	cmd.Flags().BoolVar(&byTagCount, "by-tag-count", false, "sort by tag count instead of title")

	return cmd
}

func newNoteTagCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage a note's tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title> <tag>...",
		Short: "Add tags to a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if err := s.notes.AddTags(args[0], args[1:]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Note '%s' updated successfully.", args[0]), true, nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <title> <tag>",
		Short: "Remove a tag from a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if err := s.notes.RemoveTag(args[0], args[1]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Note '%s' updated successfully.", args[0]), true, nil
			})
		},
	})

	return cmd
}

func newNoteFindByTagCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "find-by-tag <tag>",
		Short: "List notes carrying a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				notes, err := s.notes.FindByTag(args[0])
				if err != nil {
					return "", false, err
				}
				if len(notes) == 0 {
					return fmt.Sprintf("No notes found with tag '%s'.", args[0]), false, nil
				}
				lines := make([]string, len(notes))
				for i, note := range notes {
					lines[i] = note.String()
				}
				return strings.Join(lines, "\n"), false, nil
			})
		},
	}
}
