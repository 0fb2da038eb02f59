package core

import "context"

// Store defines the contract for keeping per-principal note sequences.
//
// Indices are 0-based and dense. Negative outcomes (no sequence for the
// principal, index out of range) are reported through the boolean result,
// never as errors. Implementations must return copies so callers cannot
// mutate stored notes.
type Store interface {
	// Add appends n to the principal's sequence, creating it if absent.
	// It always reports true.
	Add(ctx context.Context, p Principal, n Note) bool

	// List returns a snapshot of the principal's sequence in insertion order.
	// The result is never nil.
	List(ctx context.Context, p Principal) []Note

	// Get returns the note at index.
	Get(ctx context.Context, p Principal, index uint64) (Note, bool)

	// Delete removes the note at index, shifting later notes down by one.
	Delete(ctx context.Context, p Principal, index uint64) bool

	// Edit replaces both fields of the note at index and returns the updated note.
	Edit(ctx context.Context, p Principal, index uint64, title, content string) (Note, bool)
}

// Watchable defines an interface for stores that publish change events.
type Watchable interface {
	// Watch streams the principal's own events until ctx is done.
	Watch(ctx context.Context, p Principal) (<-chan Event, error)
}
