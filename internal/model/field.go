package model

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// Name is a contact's display name and its identity within an address book.
// A Name is always valid in memory: construct via NewName.
type Name struct {
	value string
}

// NewName validates and constructs a Name. The raw value is trimmed; the
// trimmed value must be longer than 2 characters.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if utf8.RuneCountInString(trimmed) <= 2 {
		return Name{}, fmt.Errorf("%w: name must contain more than 2 characters", ErrInvalidNameFormat)
	}
	return Name{value: trimmed}, nil
}

func (n Name) String() string { return n.value }

// Phone is a 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone validates and constructs a Phone. The value must be exactly 10
// ASCII digits.
func NewPhone(raw string) (Phone, error) {
	if !phonePattern.MatchString(raw) {
		return Phone{}, fmt.Errorf("%w: phone must be a 10-digit number, got %q", ErrInvalidPhoneFormat, raw)
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string { return p.value }

// Email is a validated email address.
type Email struct {
	value string
}

// NewEmail validates and constructs an Email against the local@domain.tld
// pattern.
func NewEmail(raw string) (Email, error) {
	if !emailPattern.MatchString(raw) {
		return Email{}, fmt.Errorf("%w: %q does not match local@domain.tld", ErrInvalidEmailFormat, raw)
	}
	return Email{value: raw}, nil
}

func (e Email) String() string { return e.value }

// IsZero reports whether the email is unset.
func (e Email) IsZero() bool { return e.value == "" }

// Address is a free-text postal address. It carries no format constraint.
type Address struct {
	value string
}

// NewAddress constructs an Address. Any text is accepted.
func NewAddress(raw string) Address {
	return Address{value: raw}
}

func (a Address) String() string { return a.value }

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool { return a.value == "" }
