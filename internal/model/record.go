package model

import (
	"fmt"
	"strings"
)

// Record is a single contact: a name plus an ordered list of phones and
// optional email, address and birthday fields. The name is the record's
// identity and never changes after construction.
//
// All mutators validate their input first, so a Record is never observably
// invalid: a failed mutation leaves the record exactly as it was.
type Record struct {
	name     Name
	phones   []Phone
	email    Email
	address  Address
	birthday Birthday
}

// NewRecord creates a contact with the given name and no other fields.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the record's identity.
func (r *Record) Name() Name { return r.name }

// Phones returns the phone numbers in insertion order.
func (r *Record) Phones() []string {
	out := make([]string, len(r.phones))
	for i, p := range r.phones {
		out[i] = p.String()
	}
	return out
}

// Email returns the email address, or "" when unset.
func (r *Record) Email() string { return r.email.String() }

// Address returns the postal address, or "" when unset.
func (r *Record) Address() string { return r.address.String() }

// Birthday returns the birthday field (possibly unset).
func (r *Record) Birthday() Birthday { return r.birthday }

// AddPhone appends a validated phone number. Adding a number that is already
// present (exact string match) is a no-op, not an error.
func (r *Record) AddPhone(number string) error {
	phone, err := NewPhone(number)
	if err != nil {
		return err
	}
	if r.findPhone(number) >= 0 {
		return nil
	}
	r.phones = append(r.phones, phone)
	return nil
}

// EditPhone replaces oldNumber with newNumber in place, keeping its position
// in the list. Returns ErrPhoneNotFound if oldNumber is not present.
func (r *Record) EditPhone(oldNumber, newNumber string) error {
	i := r.findPhone(oldNumber)
	if i < 0 {
		return fmt.Errorf("phone %s: %w", oldNumber, ErrPhoneNotFound)
	}
	phone, err := NewPhone(newNumber)
	if err != nil {
		return err
	}
	r.phones[i] = phone
	return nil
}

// DeletePhone removes a phone number. Returns ErrPhoneNotFound if absent.
func (r *Record) DeletePhone(number string) error {
	i := r.findPhone(number)
	if i < 0 {
		return fmt.Errorf("phone %s: %w", number, ErrPhoneNotFound)
	}
	r.phones = append(r.phones[:i], r.phones[i+1:]...)
	return nil
}

// ClearPhones removes all phone numbers. Used by the edit flows that replace
// the whole phone list.
func (r *Record) ClearPhones() {
	r.phones = nil
}

func (r *Record) findPhone(number string) int {
	for i, p := range r.phones {
		if p.String() == number {
			return i
		}
	}
	return -1
}

// SetEmail replaces the email field wholesale.
func (r *Record) SetEmail(raw string) error {
	email, err := NewEmail(raw)
	if err != nil {
		return err
	}
	r.email = email
	return nil
}

// SetAddress replaces the address field wholesale.
func (r *Record) SetAddress(raw string) {
	r.address = NewAddress(raw)
}

// SetBirthday replaces the birthday field. An empty input clears it.
func (r *Record) SetBirthday(raw string) error {
	birthday, err := ParseBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = birthday
	return nil
}

// String renders the one-line contact summary. Unset optional fields are
// omitted entirely.
func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(r.name.String())
	sb.WriteString(", phones: ")
	sb.WriteString(strings.Join(r.Phones(), "; "))
	if r.birthday.IsSet() {
		sb.WriteString(", birthday: ")
		sb.WriteString(r.birthday.String())
	}
	if !r.email.IsZero() {
		sb.WriteString(", email: ")
		sb.WriteString(r.email.String())
	}
	if !r.address.IsZero() {
		sb.WriteString(", address: ")
		sb.WriteString(r.address.String())
	}
	return sb.String()
}

// matches reports whether the query occurs, case-insensitively, in any of the
// record's text fields.
func (r *Record) matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.name.String()), q) {
		return true
	}
	for _, p := range r.phones {
		if strings.Contains(p.String(), q) {
			return true
		}
	}
	if !r.email.IsZero() && strings.Contains(strings.ToLower(r.email.String()), q) {
		return true
	}
	if !r.address.IsZero() && strings.Contains(strings.ToLower(r.address.String()), q) {
		return true
	}
	return false
}
