package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"organizer/internal/model"
)

// ContactAddOptions holds flags for `contact add`.
type ContactAddOptions struct {
	Email    string
	Address  string
	Birthday string
}

// NewContactCommand creates the `contact` command group.
func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contact records",
	}

	cmd.AddCommand(newContactAddCommand(rootOpts))
	cmd.AddCommand(newContactChangeCommand(rootOpts))
	cmd.AddCommand(newContactShowCommand(rootOpts))
	cmd.AddCommand(newContactListCommand(rootOpts))
	cmd.AddCommand(newContactDeleteCommand(rootOpts))
	cmd.AddCommand(newContactRemovePhoneCommand(rootOpts))
	cmd.AddCommand(newContactSearchCommand(rootOpts))

	return cmd
}

func newContactAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactAddOptions{}

	cmd := &cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Add a contact, or a phone to an existing contact",
		Long: `Add a new contact with the given phone number.

If a contact with that name already exists, the phone number is added to it
instead. Optional fields are set via flags.

Example:
  organizer contact add "John Smith" 1234567890 --email john@example.com`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				return addContact(s, args[0], args[1], opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.Email, "email", "", "email address")
	cmd.Flags().StringVar(&opts.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&opts.Birthday, "birthday", "", "birthday as DD.MM.YYYY")

	return cmd
}

func addContact(s *session, name, phone string, opts *ContactAddOptions) (string, bool, error) {
	rec, exists := s.book.Find(name)
	if !exists {
		var err error
		rec, err = model.NewRecord(name)
		if err != nil {
			return "", false, err
		}
	}

	if err := rec.AddPhone(phone); err != nil {
		return "", false, err
	}

	message := fmt.Sprintf("Phone %s added to existing contact '%s'.", phone, name)
	if !exists {
		s.book.Add(rec)
		message = fmt.Sprintf("Contact '%s' added.", name)
	}

	if opts.Email != "" {
		if err := rec.SetEmail(opts.Email); err != nil {
			return "", false, err
		}
		message += fmt.Sprintf(" Email: %s added.", opts.Email)
	}
	if opts.Address != "" {
		rec.SetAddress(opts.Address)
		message += fmt.Sprintf(" Address: %s added.", opts.Address)
	}
	if opts.Birthday != "" {
		if err := rec.SetBirthday(opts.Birthday); err != nil {
			return "", false, err
		}
		message += fmt.Sprintf(" Birthday: %s added.", opts.Birthday)
	}

	return message, true, nil
}

func newContactChangeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "change <name> <old-phone> <new-phone>",
		Short: "Replace one of a contact's phone numbers",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				rec, err := findContact(s, args[0])
				if err != nil {
					return "", false, err
				}
				if err := rec.EditPhone(args[1], args[2]); err != nil {
					return "", false, err
				}
				msg := fmt.Sprintf("Phone number for '%s' successfully changed from %s to %s.", args[0], args[1], args[2])
				return msg, true, nil
			})
		},
	}
}

func newContactShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a contact's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				rec, err := findContact(s, args[0])
				if err != nil {
					return "", false, err
				}
				return rec.String(), false, nil
			})
		},
	}
}

func newContactListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if s.book.Len() == 0 {
					return "The address book is empty.", false, nil
				}
				lines := []string{"All contacts:"}
				for _, rec := range s.book.Records() {
					lines = append(lines, rec.String())
				}
				return strings.Join(lines, "\n"), false, nil
			})
		},
	}
}

func newContactDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				if err := s.book.Delete(args[0]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Contact '%s' deleted successfully.", args[0]), true, nil
			})
		},
	}
}

func newContactRemovePhoneCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-phone <name> <phone>",
		Short: "Remove a phone number from a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				rec, err := findContact(s, args[0])
				if err != nil {
					return "", false, err
				}
				if err := rec.DeletePhone(args[1]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Phone %s removed from '%s'.", args[1], args[0]), true, nil
			})
		},
	}
}

func newContactSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Search contacts by name, phone, email or address",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				results := s.book.Search(strings.Join(args, " "))
				if len(results) == 0 {
					return "No contacts found.", false, nil
				}
				lines := make([]string, len(results))
				for i, rec := range results {
					lines[i] = rec.String()
				}
				return strings.Join(lines, "\n"), false, nil
			})
		},
	}
}

func findContact(s *session, name string) (*model.Record, error) {
	rec, ok := s.book.Find(name)
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", name, model.ErrContactNotFound)
	}
	return rec, nil
}
