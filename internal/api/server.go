// Package api exposes the organizer's operations as a JSON HTTP API.
//
// This is the second front end next to the CLI, driving the same collections
// through HTTP handlers. The core collections carry no locking of their own,
// so the server serializes access with one mutex.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"organizer/internal/model"
	"organizer/internal/storage"
)

// Server holds the shared collections and the store they persist to.
type Server struct {
	mu          sync.Mutex
	book        *model.AddressBook
	notes       *model.NoteBook
	store       storage.Store
	validate    *validator.Validate
	defaultDays int
}

// NewServer creates an API server over already-loaded collections.
func NewServer(book *model.AddressBook, notes *model.NoteBook, store storage.Store, defaultDays int) *Server {
	return &Server{
		book:        book,
		notes:       notes,
		store:       store,
		validate:    validator.New(),
		defaultDays: defaultDays,
	}
}

// Router assembles the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.listContacts)
			r.Post("/", s.createContact)
			r.Get("/search", s.searchContacts)
			r.Get("/{name}", s.getContact)
			r.Put("/{name}", s.updateContact)
			r.Delete("/{name}", s.deleteContact)
		})
		r.Get("/birthdays", s.upcomingBirthdays)
		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.listNotes)
			r.Post("/", s.createNote)
			r.Get("/search", s.searchNotesByTags)
			r.Get("/{title}", s.getNote)
			r.Put("/{title}", s.updateNote)
			r.Delete("/{title}", s.deleteNote)
			r.Post("/{title}/tags", s.addNoteTags)
			r.Delete("/{title}/tags/{tag}", s.removeNoteTag)
		})
	})

	return r
}

// persist saves the collections after a successful mutation. Saving is
// best-effort: a failure is logged and reported to nobody else, the mutation
// itself already happened.
func (s *Server) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.book, s.notes); err != nil {
		slog.Error("failed to persist data", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain errors onto HTTP statuses: validation failures are
// the client's fault, unknown keys are 404, anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrContactNotFound),
		errors.Is(err, model.ErrPhoneNotFound),
		errors.Is(err, model.ErrNoteNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeAndValidate parses the request body and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return s.validate.Struct(dst)
}
