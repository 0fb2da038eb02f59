// Package memory provides the process-local implementation of core.Store.
package memory

import (
	"context"
	"crypto/rand"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/aretw0/notebox/pkg/core"
)

// DefaultEventBuffer is the per-subscriber buffer used when Config.EventBuffer is zero.
const DefaultEventBuffer = 100

// Config holds the configuration for the in-memory store.
type Config struct {
	Logger      *slog.Logger
	EventBuffer int // per-subscriber channel size; events beyond it are dropped
}

// Store implements core.Store with a single map guarded by one RWMutex.
// Reads take the read lock, writes take the write lock, so every operation
// observes a consistent snapshot and writes are totally ordered.
type Store struct {
	mu      sync.RWMutex
	notes   map[core.Principal][]core.Note
	broker  *broker
	entropy io.Reader
	config  Config
}

// NewStore creates an empty store.
func NewStore(config Config) *Store {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Store{
		notes:   make(map[core.Principal][]core.Note),
		broker:  newBroker(config.EventBuffer),
		entropy: ulid.Monotonic(rand.Reader, 0),
		config:  config,
	}
}

// Add appends n to the principal's sequence.
func (s *Store) Add(ctx context.Context, p core.Principal, n core.Note) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := uint64(len(s.notes[p]))
	s.notes[p] = append(s.notes[p], n)
	s.publish(core.EventCreate, p, index)
	return true
}

// List returns a copy of the principal's sequence.
func (s *Store) List(ctx context.Context, p core.Principal) []core.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.notes[p]
	if len(seq) == 0 {
		return []core.Note{}
	}
	return slices.Clone(seq)
}

// Get returns the note at index.
func (s *Store) Get(ctx context.Context, p core.Principal, index uint64) (core.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seq := s.notes[p]
	if index >= uint64(len(seq)) {
		return core.Note{}, false
	}
	return seq[index], true
}

// Delete removes the note at index. The principal's entry is kept even when
// the sequence becomes empty.
func (s *Store) Delete(ctx context.Context, p core.Principal, index uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.notes[p]
	if !ok || index >= uint64(len(seq)) {
		return false
	}
	s.notes[p] = slices.Delete(seq, int(index), int(index)+1)
	s.publish(core.EventDelete, p, index)
	return true
}

// Edit replaces both fields of the note at index.
func (s *Store) Edit(ctx context.Context, p core.Principal, index uint64, title, content string) (core.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.notes[p]
	if !ok || index >= uint64(len(seq)) {
		return core.Note{}, false
	}
	seq[index] = core.Note{Title: title, Content: content}
	s.publish(core.EventModify, p, index)
	return seq[index], true
}

// Watch streams the principal's events until ctx is done.
func (s *Store) Watch(ctx context.Context, p core.Principal) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.broker.subscribe(ctx, p, false), nil
}

// WatchAll streams every principal's events until ctx is done. It is meant
// for server-side auditing and must never be exposed to callers.
func (s *Store) WatchAll(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.broker.subscribe(ctx, "", true), nil
}

// publish must be called with s.mu held for writing so event order matches write order.
func (s *Store) publish(t core.EventType, p core.Principal, index uint64) {
	now := time.Now()
	e := core.Event{
		ID:        ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		Type:      t,
		Principal: p,
		Index:     index,
		Timestamp: now.Unix(),
	}
	// No I/O here: the write lock is held. Drops show up in State.
	s.broker.publish(e)
}

var _ core.Store = (*Store)(nil)
var _ core.Watchable = (*Store)(nil)
