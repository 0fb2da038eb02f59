package memory

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
// It reports sizes only; note contents never leave the store through it.
type StoreState struct {
	Principals    int    `json:"principals"`
	Notes         int    `json:"notes"`
	EventBuffer   int    `json:"event_buffer"`
	Subscribers   int    `json:"subscribers"`
	DroppedEvents uint64 `json:"dropped_events"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	total := 0
	for _, seq := range s.notes {
		total += len(seq)
	}
	principals := len(s.notes)
	s.mu.RUnlock()

	subs, dropped := s.broker.stats()
	return StoreState{
		Principals:    principals,
		Notes:         total,
		EventBuffer:   s.config.EventBuffer,
		Subscribers:   subs,
		DroppedEvents: dropped,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
