package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"organizer/internal/model"
)

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var notes []*model.Note
	switch sortBy := r.URL.Query().Get("sort"); sortBy {
	case "", "title":
		notes = s.notes.SortedByTitle()
	case "tag-count":
		notes = s.notes.SortedByTagCount()
	default:
		writeJSON(w, http.StatusBadRequest,
			errorResponse{Error: fmt.Sprintf("unknown sort %q: use title or tag-count", sortBy)})
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponses(notes))
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The collection itself upserts; the create endpoint enforces unique
	// titles so that accidental overwrites surface as conflicts.
	if _, exists := s.notes.Find(req.Title); exists {
		writeJSON(w, http.StatusConflict,
			errorResponse{Error: fmt.Sprintf("note %q already exists, use edit instead", req.Title)})
		return
	}

	note, err := model.NewNote(req.Title, req.Content, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	s.notes.Add(note)
	s.persist(r.Context())
	writeJSON(w, http.StatusCreated, toNoteResponse(note))
}

func (s *Server) getNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := chi.URLParam(r, "title")
	note, ok := s.notes.Find(title)
	if !ok {
		writeError(w, fmt.Errorf("note %q: %w", title, model.ErrNoteNotFound))
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// updateNote replaces a note's content and tag set wholesale.
func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	title := chi.URLParam(r, "title")
	note, ok := s.notes.Find(title)
	if !ok {
		writeError(w, fmt.Errorf("note %q: %w", title, model.ErrNoteNotFound))
		return
	}

	note.SetContent(req.Content)
	note.ClearTags()
	for _, tag := range req.Tags {
		if err := note.AddTag(tag); err != nil {
			writeError(w, err)
			return
		}
	}

	s.persist(r.Context())
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.notes.Delete(chi.URLParam(r, "title")); err != nil {
		writeError(w, err)
		return
	}

	s.persist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addNoteTags(w http.ResponseWriter, r *http.Request) {
	var req addTagsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	title := chi.URLParam(r, "title")
	if err := s.notes.AddTags(title, req.Tags); err != nil {
		writeError(w, err)
		return
	}

	note, _ := s.notes.Find(title)
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) removeNoteTag(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := chi.URLParam(r, "title")
	if err := s.notes.RemoveTag(title, chi.URLParam(r, "tag")); err != nil {
		writeError(w, err)
		return
	}

	note, _ := s.notes.Find(title)
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// searchNotesByTags is the multi-tag prefix search used by this front end
// only: every comma-separated partial tag must prefix-match at least one of
// the note's tags.
func (s *Server) searchNotesByTags(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("tags")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query parameter 'tags' is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, toNoteResponses(s.notes.SearchByTags(query)))
}
