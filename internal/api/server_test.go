package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizer/internal/model"
	"organizer/internal/storage"
)

// newTestServer wires a server over fresh collections and a throwaway file
// store, returning the server alongside the store path so tests can check
// persistence.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "organizer.yaml")
	store := storage.NewFileStore(path)
	t.Cleanup(func() { _ = store.Close() })

	return NewServer(model.NewAddressBook(), model.NewNoteBook(), store, 7), path
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func TestCreateAndGetContact(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name":   "John Smith",
		"phones": []string{"1234567890"},
		"email":  "john@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	created := decodeBody[contactResponse](t, rec)
	assert.Equal(t, "John Smith", created.Name)
	assert.Equal(t, []string{"1234567890"}, created.Phones)
	assert.Equal(t, "john@example.com", created.Email)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contacts/John%20Smith", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[contactResponse](t, rec)
	assert.Equal(t, created, got)
}

func TestCreateContact_DuplicateConflicts(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	body := map[string]any{"name": "John Smith", "phones": []string{"1234567890"}}
	rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/contacts", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateContact_ValidationFailures(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing phones", map[string]any{"name": "John Smith"}},
		{"short name", map[string]any{"name": "Jo", "phones": []string{"1234567890"}}},
		{"bad phone", map[string]any{"name": "John Smith", "phones": []string{"123"}}},
		{"bad email", map[string]any{"name": "John Smith", "phones": []string{"1234567890"}, "email": "not-an-email"}},
		{"bad birthday", map[string]any{"name": "John Smith", "phones": []string{"1234567890"}, "birthday": "1990-03-15"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestUpdateContact_ReplacesFields(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name":     "John Smith",
		"phones":   []string{"1234567890"},
		"birthday": "15.03.1990",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// New phone list, birthday cleared by omission.
	rec = doJSON(t, router, http.MethodPut, "/api/v1/contacts/john%20smith", map[string]any{
		"phones": []string{"9999999999", "8888888888"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[contactResponse](t, rec)
	assert.Equal(t, []string{"9999999999", "8888888888"}, got.Phones)
	assert.Empty(t, got.Birthday)
}

func TestDeleteContact(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/contacts/Nobody", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name": "John Smith", "phones": []string{"1234567890"},
	})

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/contacts/John%20Smith", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contacts/John%20Smith", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchContacts(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name": "John Smith", "phones": []string{"1234567890"}, "address": "Baker Street 221b",
	})
	doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name": "Jane Doe", "phones": []string{"5556667777"},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/contacts/search?q=baker", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeBody[[]contactResponse](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "John Smith", results[0].Name)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/contacts/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpcomingBirthdays(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/birthdays", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[birthdaysResponse](t, rec)
	assert.Equal(t, 7, got.Days)
	assert.Equal(t, "No upcoming birthdays.", got.Message)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/birthdays?days=30", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, decodeBody[birthdaysResponse](t, rec).Days)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/birthdays?days=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNoteLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title":   "Meeting",
		"content": "Discuss Q4 roadmap",
		"tags":    []string{"work", "#urgent"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody[noteResponse](t, rec)
	assert.Equal(t, []string{"urgent", "work"}, created.Tags)

	// Same title conflicts on create, even with a different case.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{"title": "meeting"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/api/v1/notes/Meeting", map[string]any{
		"content": "rescheduled",
		"tags":    []string{"work"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[noteResponse](t, rec)
	assert.Equal(t, "rescheduled", updated.Content)
	assert.Equal(t, []string{"work"}, updated.Tags)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/notes/Meeting", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notes/Meeting", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNoteTags(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{"title": "Plan"})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/notes/Plan/tags", map[string]any{
		"tags": []string{"alpha", "beta"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"alpha", "beta"}, decodeBody[noteResponse](t, rec).Tags)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/notes/Plan/tags/alpha", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"beta"}, decodeBody[noteResponse](t, rec).Tags)

	// Removing an absent tag is a silent no-op.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/notes/Plan/tags/alpha", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"beta"}, decodeBody[noteResponse](t, rec).Tags)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/notes/Ghost/tags/alpha", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListNotes_SortModes(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title": "Zebra", "tags": []string{"one", "two"},
	})
	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title": "Apple", "tags": []string{"one"},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byTitle := decodeBody[[]noteResponse](t, rec)
	require.Len(t, byTitle, 2)
	assert.Equal(t, "Apple", byTitle[0].Title)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notes?sort=tag-count", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	byCount := decodeBody[[]noteResponse](t, rec)
	assert.Equal(t, "Zebra", byCount[0].Title)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notes?sort=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchNotesByTags(t *testing.T) {
	server, _ := newTestServer(t)
	router := server.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title": "Meeting", "tags": []string{"work", "urgent"},
	})
	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title": "Shopping", "tags": []string{"errands"},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/notes/search?tags=wor,urg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	results := decodeBody[[]noteResponse](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "Meeting", results[0].Title)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/notes/search", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutationsPersist(t *testing.T) {
	server, path := newTestServer(t)
	router := server.Router()

	doJSON(t, router, http.MethodPost, "/api/v1/contacts", map[string]any{
		"name": "John Smith", "phones": []string{"1234567890"},
	})
	doJSON(t, router, http.MethodPost, "/api/v1/notes", map[string]any{
		"title": "Meeting", "tags": []string{"work"},
	})

	book, notes, err := storage.NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	_, ok := book.Find("John Smith")
	assert.True(t, ok)
	_, ok = notes.Find("Meeting")
	assert.True(t, ok)
}
