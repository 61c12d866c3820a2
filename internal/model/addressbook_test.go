package model

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tuesday is a fixed reference date for birthday-window tests:
// 25.08.2026 falls on a Tuesday.
var tuesday = time.Date(2026, time.August, 25, 14, 30, 0, 0, time.UTC)

func addContact(t *testing.T, book *AddressBook, name, phone, birthday string) *Record {
	t.Helper()
	rec, err := NewRecord(name)
	require.NoError(t, err)
	if phone != "" {
		require.NoError(t, rec.AddPhone(phone))
	}
	if birthday != "" {
		require.NoError(t, rec.SetBirthday(birthday))
	}
	book.Add(rec)
	return rec
}

func TestAddressBook_Find_IsCaseAndWhitespaceInsensitive(t *testing.T) {
	book := NewAddressBook()
	rec := addContact(t, book, " Alice ", "", "")

	for _, query := range []string{"alice", "ALICE", "  Alice", "aLiCe  "} {
		found, ok := book.Find(query)
		require.True(t, ok, "query %q should find the record", query)
		assert.Same(t, rec, found)
	}

	_, ok := book.Find("bob")
	assert.False(t, ok)
}

func TestAddressBook_Add_OverwritesCollidingKey(t *testing.T) {
	book := NewAddressBook()
	addContact(t, book, "Alice", "1111111111", "")
	replacement := addContact(t, book, "alice", "2222222222", "")

	assert.Equal(t, 1, book.Len())
	found, ok := book.Find("Alice")
	require.True(t, ok)
	assert.Same(t, replacement, found)
}

func TestAddressBook_Delete(t *testing.T) {
	book := NewAddressBook()
	addContact(t, book, "JohnDoe", "", "")

	require.NoError(t, book.Delete("johndoe"))
	assert.Equal(t, 0, book.Len())

	err := book.Delete("johndoe")
	assert.ErrorIs(t, err, ErrContactNotFound)
}

func TestAddressBook_Search_MatchesAllTextFields(t *testing.T) {
	book := NewAddressBook()

	alice := addContact(t, book, "Alice", "1234567890", "")
	require.NoError(t, alice.SetEmail("alice@wonder.land"))
	alice.SetAddress("7 Rabbit Hole")

	bob := addContact(t, book, "Bob", "9998887777", "")

	tests := []struct {
		name  string
		query string
		want  []*Record
	}{
		{"by name fragment", "lic", []*Record{alice}},
		{"case-insensitive name", "ALICE", []*Record{alice}},
		{"by phone fragment", "888", []*Record{bob}},
		{"by email", "wonder", []*Record{alice}},
		{"by address", "rabbit", []*Record{alice}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, book.Search(tt.query))
		})
	}
}

func TestAddressBook_EndToEnd(t *testing.T) {
	book := NewAddressBook()
	assert.Equal(t, 0, book.Len())

	rec, err := NewRecord("JohnDoe")
	require.NoError(t, err)
	require.NoError(t, rec.AddPhone("1112223333"))
	book.Add(rec)
	require.NoError(t, rec.AddPhone("7778889999"))

	results := book.Search("888")
	require.Len(t, results, 1)
	assert.Same(t, rec, results[0])

	require.NoError(t, book.Delete("johndoe"))
	_, ok := book.Find("JohnDoe")
	assert.False(t, ok)
}

func TestAddressBook_UpcomingBirthdays_Empty(t *testing.T) {
	book := NewAddressBook()
	addContact(t, book, "NoBirthday", "", "")

	assert.Equal(t, "No upcoming birthdays.", book.UpcomingBirthdays(tuesday, 7))
}

func TestAddressBook_UpcomingBirthdays_WindowBounds(t *testing.T) {
	book := NewAddressBook()
	// Birthday projects onto 25.08.2026, the reference Tuesday itself.
	addContact(t, book, "Today Person", "", "25.08.1990")
	// Projects onto 01.09.2026, exactly 7 days out.
	addContact(t, book, "Edge Person", "", "01.09.1990")
	// Projects onto 02.09.2026, one day past the window.
	addContact(t, book, "Outside Person", "", "02.09.1990")
	// Already passed this year: projects onto 24.08.2027, far outside.
	addContact(t, book, "Past Person", "", "24.08.1990")

	got := book.UpcomingBirthdays(tuesday, 7)
	assert.Contains(t, got, "Today Person: 25.08.2026")
	assert.Contains(t, got, "Edge Person: 01.09.2026")
	assert.NotContains(t, got, "Outside Person")
	assert.NotContains(t, got, "Past Person")
}

func TestAddressBook_UpcomingBirthdays_WeekendRollover(t *testing.T) {
	book := NewAddressBook()
	// 29.08.2026 is a Saturday, four days from the reference Tuesday.
	addContact(t, book, "Saturday Person", "", "29.08.1985")
	// 30.08.2026 is a Sunday.
	addContact(t, book, "Sunday Person", "", "30.08.1979")

	got := book.UpcomingBirthdays(tuesday, 7)

	// Both are inside the window by their pre-rollover dates, but the
	// displayed reminder date moves to Monday 31.08.2026.
	assert.Contains(t, got, "Saturday Person: 31.08.2026")
	assert.Contains(t, got, "Sunday Person: 31.08.2026")
}

func TestAddressBook_UpcomingBirthdays_RolloverDoesNotAffectInclusion(t *testing.T) {
	book := NewAddressBook()
	// Saturday 29.08.2026: delta from Tuesday is 4, inside a 4-day window
	// even though the displayed Monday date is 6 days out.
	addContact(t, book, "Saturday Person", "", "29.08.1985")

	got := book.UpcomingBirthdays(tuesday, 4)
	assert.Contains(t, got, "Saturday Person: 31.08.2026")
}

func TestAddressBook_UpcomingBirthdays_Listing(t *testing.T) {
	book := NewAddressBook()
	addContact(t, book, "Alice Johnson", "", "27.08.1990")
	addContact(t, book, "Bob Stone", "", "29.08.1985")
	addContact(t, book, "Carol Birch", "", "30.08.1979")
	addContact(t, book, "Dave Moss", "", "10.09.1990")

	g := goldie.New(t)
	g.Assert(t, "upcoming_birthdays", []byte(book.UpcomingBirthdays(tuesday, 7)))
}
