package api

import "organizer/internal/model"

// createContactRequest is the POST /contacts body. A contact always carries
// at least one phone.
type createContactRequest struct {
	Name     string   `json:"name" validate:"required"`
	Phones   []string `json:"phones" validate:"required,min=1"`
	Email    string   `json:"email,omitempty"`
	Address  string   `json:"address,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

// updateContactRequest is the PUT /contacts/{name} body. The phone list,
// email, address and birthday are replaced wholesale; an empty birthday
// clears it.
type updateContactRequest struct {
	Phones   []string `json:"phones" validate:"required,min=1"`
	Email    string   `json:"email,omitempty"`
	Address  string   `json:"address,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

// createNoteRequest is the POST /notes body.
type createNoteRequest struct {
	Title   string   `json:"title" validate:"required"`
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// updateNoteRequest is the PUT /notes/{title} body. Content and the whole
// tag set are replaced.
type updateNoteRequest struct {
	Content string   `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// addTagsRequest is the POST /notes/{title}/tags body.
type addTagsRequest struct {
	Tags []string `json:"tags" validate:"required,min=1"`
}

type contactResponse struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Email    string   `json:"email,omitempty"`
	Address  string   `json:"address,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
}

type noteResponse struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type birthdaysResponse struct {
	Days    int    `json:"days"`
	Message string `json:"message"`
}

func toContactResponse(rec *model.Record) contactResponse {
	return contactResponse{
		Name:     rec.Name().String(),
		Phones:   rec.Phones(),
		Email:    rec.Email(),
		Address:  rec.Address(),
		Birthday: rec.Birthday().String(),
	}
}

func toContactResponses(recs []*model.Record) []contactResponse {
	out := make([]contactResponse, len(recs))
	for i, rec := range recs {
		out[i] = toContactResponse(rec)
	}
	return out
}

func toNoteResponse(note *model.Note) noteResponse {
	return noteResponse{
		Title:   note.Title(),
		Content: note.Content(),
		Tags:    note.Tags(),
	}
}

func toNoteResponses(notes []*model.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i, note := range notes {
		out[i] = toNoteResponse(note)
	}
	return out
}
