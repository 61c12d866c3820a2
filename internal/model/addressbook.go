package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// AddressBook is the keyed collection of contact records. Records are indexed
// by their normalized name, so lookups ignore case and surrounding
// whitespace.
//
// Add overwrites silently on a colliding key: uniqueness for the "add
// contact" flow is enforced by the front ends (which check Find first), while
// their edit flows rely on the overwrite-permissive collection.
//
// The book owns its records exclusively and performs no locking; callers
// needing concurrent access must synchronize around it.
type AddressBook struct {
	records map[string]*Record
}

// NewAddressBook creates an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// Len returns the number of records.
func (b *AddressBook) Len() int { return len(b.records) }

// Add inserts a record under its normalized name, replacing any existing
// record under the same key.
func (b *AddressBook) Add(rec *Record) {
	b.records[normalizeKey(rec.Name().String())] = rec
}

// Find looks a record up by name, ignoring case and surrounding whitespace.
func (b *AddressBook) Find(name string) (*Record, bool) {
	rec, ok := b.records[normalizeKey(name)]
	return rec, ok
}

// Delete removes a record by name. Returns ErrContactNotFound if absent.
func (b *AddressBook) Delete(name string) error {
	key := normalizeKey(name)
	if _, ok := b.records[key]; !ok {
		return fmt.Errorf("contact %q: %w", name, ErrContactNotFound)
	}
	delete(b.records, key)
	return nil
}

// Records returns all records ordered by normalized name.
func (b *AddressBook) Records() []*Record {
	keys := make([]string, 0, len(b.records))
	for k := range b.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]*Record, len(keys))
	for i, k := range keys {
		out[i] = b.records[k]
	}
	return out
}

// Search returns every record where the query occurs case-insensitively in
// the name, any phone, the email or the address. Results are ordered by
// normalized name.
func (b *AddressBook) Search(query string) []*Record {
	var out []*Record
	for _, rec := range b.Records() {
		if rec.matches(query) {
			out = append(out, rec)
		}
	}
	return out
}

// noUpcomingBirthdays is returned when no birthday falls inside the window.
const noUpcomingBirthdays = "No upcoming birthdays."

type birthdayReminder struct {
	name    string
	display time.Time
}

// UpcomingBirthdays lists contacts whose birthday falls within the next days
// days, counted from today.
//
// Each set birthday is projected onto the current year, or onto next year if
// the current-year date has already passed. Inclusion in the window is
// decided on that projected date; only afterwards is a Saturday projection
// shifted to Monday (+2 days) and a Sunday projection to Monday (+1 day) for
// display. The listing is sorted by the shifted display date.
func (b *AddressBook) UpcomingBirthdays(today time.Time, days int) string {
	today = todayDate(today)

	var upcoming []birthdayReminder
	for _, rec := range b.Records() {
		bday := rec.Birthday()
		if !bday.IsSet() {
			continue
		}

		date := bday.Date()
		next := time.Date(today.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		if next.Before(today) {
			next = time.Date(today.Year()+1, date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		}

		delta := int(next.Sub(today).Hours() / 24)
		if delta < 0 || delta > days {
			continue
		}

		// Weekend rollover affects only the displayed date, never the
		// window check above.
		switch next.Weekday() {
		case time.Saturday:
			next = next.AddDate(0, 0, 2)
		case time.Sunday:
			next = next.AddDate(0, 0, 1)
		}

		upcoming = append(upcoming, birthdayReminder{name: rec.Name().String(), display: next})
	}

	if len(upcoming) == 0 {
		return noUpcomingBirthdays
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].display.Before(upcoming[j].display)
	})

	var sb strings.Builder
	sb.WriteString("Upcoming birthdays:")
	for _, r := range upcoming {
		sb.WriteString("\n")
		sb.WriteString(r.name)
		sb.WriteString(": ")
		sb.WriteString(r.display.Format(birthdayLayout))
	}
	return sb.String()
}
