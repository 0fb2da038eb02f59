// Package lifecycle exposes note change feeds as lifecycle sources.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notebox/pkg/core"
)

// ErrAlreadyStarted is returned by Start on a second call.
var ErrAlreadyStarted = errors.New("source already started")

// Source forwards core.Events from a change feed as lifecycle events,
// keeping only the event types it was configured with.
type Source struct {
	in      <-chan core.Event
	out     chan lifecycle.Event
	types   map[core.EventType]bool
	started atomic.Bool
	skipped atomic.Uint64
}

// SourceOption configures a Source.
type SourceOption func(*Source)

// WithTypes keeps only events of the given types. Without it every event passes.
func WithTypes(types ...core.EventType) SourceOption {
	return func(s *Source) {
		if len(types) == 0 {
			return
		}
		s.types = make(map[core.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
}

// NewSource wraps events. Nothing is read until Start.
func NewSource(events <-chan core.Event, opts ...SourceOption) *Source {
	s := &Source{
		in:  events,
		out: make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Events implements lifecycle.Source. The channel closes when ctx passed to
// Start ends or the upstream feed closes.
func (s *Source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start implements lifecycle.Source.
func (s *Source) Start(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	lifecycle.Go(ctx, s.forward)
	return nil
}

// Skipped reports how many events were filtered out.
func (s *Source) Skipped() uint64 {
	return s.skipped.Load()
}

func (s *Source) forward(ctx context.Context) error {
	defer close(s.out)
	for {
		var e core.Event
		select {
		case <-ctx.Done():
			return nil
		case next, ok := <-s.in:
			if !ok {
				return nil
			}
			e = next
		}

		if s.types != nil && !s.types[e.Type] {
			s.skipped.Add(1)
			continue
		}

		select {
		case s.out <- e:
		case <-ctx.Done():
			return nil
		}
	}
}

// ParseEventTypes reads a comma-separated list such as "create,delete".
// An empty string yields no types, meaning no filter.
func ParseEventTypes(list string) ([]core.EventType, error) {
	var types []core.EventType
	for _, raw := range strings.Split(list, ",") {
		name := strings.ToUpper(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		switch t := core.EventType(name); t {
		case core.EventCreate, core.EventModify, core.EventDelete:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown event type %q", raw)
		}
	}
	return types, nil
}

var _ lifecycle.Source = (*Source)(nil)
