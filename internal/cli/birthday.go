package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewBirthdayCommand creates the `birthday` command group.
func NewBirthdayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "birthday",
		Short: "Manage birthdays and reminders",
	}

	cmd.AddCommand(newBirthdaySetCommand(rootOpts))
	cmd.AddCommand(newBirthdayShowCommand(rootOpts))
	cmd.AddCommand(newBirthdayUpcomingCommand(rootOpts))

	return cmd
}

func newBirthdaySetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <DD.MM.YYYY>",
		Short: "Set or update a contact's birthday",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				rec, err := findContact(s, args[0])
				if err != nil {
					return "", false, err
				}
				if err := rec.SetBirthday(args[1]); err != nil {
					return "", false, err
				}
				return fmt.Sprintf("Birthday for %s set to %s.", args[0], args[1]), true, nil
			})
		},
	}
}

func newBirthdayShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a contact's birthday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				rec, err := findContact(s, args[0])
				if err != nil {
					return "", false, err
				}
				name := rec.Name().String()
				if !rec.Birthday().IsSet() {
					return fmt.Sprintf("No birthday set for %s.", name), false, nil
				}
				return fmt.Sprintf("%s's birthday: %s", name, rec.Birthday()), false, nil
			})
		},
	}
}

func newBirthdayUpcomingCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List birthdays within the lookahead window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rootOpts.run(cmd.Context(), rootOpts.formatter(cmd), func(s *session) (string, bool, error) {
				window := days
				if window < 0 {
					return "", false, WrapExitError(ExitCommandError, "days must not be negative", nil)
				}
				if !cmd.Flags().Changed("days") {
					window = s.cfg.Birthdays.DefaultDays
				}
				return s.book.UpcomingBirthdays(time.Now(), window), false, nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "lookahead window in days (default from config)")

	return cmd
}
