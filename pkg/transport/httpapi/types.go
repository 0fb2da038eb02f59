package httpapi

import (
	"errors"

	"github.com/aretw0/notebox/pkg/core"
)

// NoteRequest is the body of add and edit calls. Both fields must be
// present; an explicit "" is a valid value.
type NoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NewNoteRequest builds a request carrying both fields.
func NewNoteRequest(title, content string) NoteRequest {
	return NoteRequest{Title: &title, Content: &content}
}

func (r NoteRequest) validate() error {
	switch {
	case r.Title == nil && r.Content == nil:
		return errors.New("title and content are required")
	case r.Title == nil:
		return errors.New("title is required")
	case r.Content == nil:
		return errors.New("content is required")
	}
	return nil
}

// AddResponse is returned by POST /v1/notes.
type AddResponse struct {
	OK bool `json:"ok"`
}

// ListResponse is returned by GET /v1/notes.
type ListResponse struct {
	Notes []core.Note `json:"notes"`
}

// NoteResponse is returned by get and edit. Note is null when the index is
// out of range or the caller has no notes.
type NoteResponse struct {
	Note *core.Note `json:"note"`
}

// DeleteResponse is returned by DELETE /v1/notes/:index.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ErrorResponse carries decode and authentication failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
