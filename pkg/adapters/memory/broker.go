package memory

import (
	"context"
	"sync"

	"github.com/aretw0/notebox/pkg/core"
)

type subscriber struct {
	principal core.Principal
	all       bool
	ch        chan core.Event
}

// broker fans events out to per-principal subscribers without ever blocking the publisher.
type broker struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]*subscriber
	buffer  int
	dropped uint64
}

func newBroker(buffer int) *broker {
	return &broker{
		subs:   make(map[int]*subscriber),
		buffer: buffer,
	}
}

// subscribe registers a subscriber that is removed (and its channel closed) when ctx ends.
// With all set, the subscriber receives every principal's events.
func (b *broker) subscribe(ctx context.Context, p core.Principal, all bool) <-chan core.Event {
	sub := &subscriber{principal: p, all: all, ch: make(chan core.Event, b.buffer)}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(sub.ch)
		b.mu.Unlock()
	}()

	return sub.ch
}

// publish delivers e to the subscribers of e.Principal (and to audit subscribers)
// without blocking. Events a full subscriber cannot take are counted as dropped.
func (b *broker) publish(e core.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if !sub.all && sub.principal != e.Principal {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			b.dropped++
		}
	}
}

func (b *broker) stats() (subscribers int, dropped uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs), b.dropped
}
