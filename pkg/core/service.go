package core

import (
	"context"
	"log/slog"
)

// Service handles the business logic for notes.
// It is the single object handed to every request handler; the caller's
// Principal is always passed explicitly.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new Service. A nil logger discards output.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// AddNote appends a note to the caller's sequence. It always reports true.
func (s *Service) AddNote(ctx context.Context, p Principal, title, content string) bool {
	ok := s.store.Add(ctx, p, Note{Title: title, Content: content})
	s.logger.DebugContext(ctx, "note added", "principal", p)
	return ok
}

// ListNotes returns a copy of the caller's notes in insertion order.
func (s *Service) ListNotes(ctx context.Context, p Principal) []Note {
	notes := s.store.List(ctx, p)
	s.logger.DebugContext(ctx, "notes listed", "principal", p, "count", len(notes))
	return notes
}

// GetNote returns the note at index, if any.
func (s *Service) GetNote(ctx context.Context, p Principal, index uint64) (Note, bool) {
	n, found := s.store.Get(ctx, p, index)
	s.logger.DebugContext(ctx, "note fetched", "principal", p, "index", index, "found", found)
	return n, found
}

// DeleteNote removes the note at index and reports whether a removal occurred.
func (s *Service) DeleteNote(ctx context.Context, p Principal, index uint64) bool {
	deleted := s.store.Delete(ctx, p, index)
	s.logger.DebugContext(ctx, "note delete", "principal", p, "index", index, "found", deleted)
	return deleted
}

// EditNote replaces the note at index and returns the updated copy, if any.
func (s *Service) EditNote(ctx context.Context, p Principal, index uint64, title, content string) (Note, bool) {
	n, found := s.store.Edit(ctx, p, index, title, content)
	s.logger.DebugContext(ctx, "note edit", "principal", p, "index", index, "found", found)
	return n, found
}

// Watch observes the caller's changes if the store supports it.
func (s *Service) Watch(ctx context.Context, p Principal) (<-chan Event, error) {
	w, ok := s.store.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx, p)
}
