package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"organizer/internal/model"
)

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, toContactResponses(s.book.Records()))
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.book.Find(req.Name); exists {
		writeJSON(w, http.StatusConflict,
			errorResponse{Error: fmt.Sprintf("contact %q already exists, use edit instead", req.Name)})
		return
	}

	rec, err := buildRecord(req)
	if err != nil {
		writeError(w, err)
		return
	}

	s.book.Add(rec)
	s.persist(r.Context())
	writeJSON(w, http.StatusCreated, toContactResponse(rec))
}

func buildRecord(req createContactRequest) (*model.Record, error) {
	rec, err := model.NewRecord(req.Name)
	if err != nil {
		return nil, err
	}
	for _, number := range req.Phones {
		if err := rec.AddPhone(number); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := rec.SetEmail(req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != "" {
		rec.SetAddress(req.Address)
	}
	if req.Birthday != "" {
		if err := rec.SetBirthday(req.Birthday); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "name")
	rec, ok := s.book.Find(name)
	if !ok {
		writeError(w, fmt.Errorf("contact %q: %w", name, model.ErrContactNotFound))
		return
	}
	writeJSON(w, http.StatusOK, toContactResponse(rec))
}

// updateContact replaces the contact's phone list and optional fields in
// place. The phone replacement is applied number by number, so a bad number
// mid-list leaves the earlier ones applied.
func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	var req updateContactRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := chi.URLParam(r, "name")
	rec, ok := s.book.Find(name)
	if !ok {
		writeError(w, fmt.Errorf("contact %q: %w", name, model.ErrContactNotFound))
		return
	}

	rec.ClearPhones()
	for _, number := range req.Phones {
		if err := rec.AddPhone(number); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Email != "" {
		if err := rec.SetEmail(req.Email); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.Address != "" {
		rec.SetAddress(req.Address)
	}
	if err := rec.SetBirthday(req.Birthday); err != nil {
		writeError(w, err)
		return
	}

	s.persist(r.Context())
	writeJSON(w, http.StatusOK, toContactResponse(rec))
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.book.Delete(chi.URLParam(r, "name")); err != nil {
		writeError(w, err)
		return
	}

	s.persist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) searchContacts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter 'q' is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, toContactResponses(s.book.Search(query)))
}

func (s *Server) upcomingBirthdays(w http.ResponseWriter, r *http.Request) {
	days := s.defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, birthdaysResponse{
		Days:    days,
		Message: s.book.UpcomingBirthdays(time.Now(), days),
	})
}
