package model

import (
	"fmt"
	"strings"
	"time"
)

// birthdayLayout is the wire and display format for birthdays.
const birthdayLayout = "02.01.2006"

// Birthday is a contact's date of birth. The zero Birthday means "not set",
// which is a valid state, not an error.
type Birthday struct {
	date time.Time
}

// ParseBirthday parses a DD.MM.YYYY date. An empty or blank input yields the
// unset Birthday. A date strictly after today is rejected.
func ParseBirthday(raw string) (Birthday, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Birthday{}, nil
	}

	parsed, err := time.Parse(birthdayLayout, trimmed)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: use DD.MM.YYYY, got %q", ErrInvalidBirthdayFormat, raw)
	}

	if parsed.After(todayDate(time.Now())) {
		return Birthday{}, fmt.Errorf("%w: birthday cannot be in the future", ErrInvalidBirthdayFormat)
	}

	return Birthday{date: parsed}, nil
}

// IsSet reports whether a birthday has been recorded.
func (b Birthday) IsSet() bool { return !b.date.IsZero() }

// Date returns the birthday as a calendar date. Zero when unset.
func (b Birthday) Date() time.Time { return b.date }

// String renders the birthday as DD.MM.YYYY, or "" when unset.
func (b Birthday) String() string {
	if !b.IsSet() {
		return ""
	}
	return b.date.Format(birthdayLayout)
}

// todayDate truncates a wall-clock instant to a UTC calendar date, so that
// date comparisons ignore the time of day.
func todayDate(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
