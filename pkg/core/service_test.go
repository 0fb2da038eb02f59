package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/notebox/pkg/core"
)

// MockStore implements core.Store with a plain map.
// It deliberately does NOT implement core.Watchable to test fallback/errors.
type MockStore struct {
	notes map[core.Principal][]core.Note
}

func NewMockStore() *MockStore {
	return &MockStore{notes: make(map[core.Principal][]core.Note)}
}

func (m *MockStore) Add(ctx context.Context, p core.Principal, n core.Note) bool {
	m.notes[p] = append(m.notes[p], n)
	return true
}

func (m *MockStore) List(ctx context.Context, p core.Principal) []core.Note {
	return append([]core.Note{}, m.notes[p]...)
}

func (m *MockStore) Get(ctx context.Context, p core.Principal, index uint64) (core.Note, bool) {
	seq := m.notes[p]
	if index >= uint64(len(seq)) {
		return core.Note{}, false
	}
	return seq[index], true
}

func (m *MockStore) Delete(ctx context.Context, p core.Principal, index uint64) bool {
	seq := m.notes[p]
	if index >= uint64(len(seq)) {
		return false
	}
	m.notes[p] = append(seq[:index], seq[index+1:]...)
	return true
}

func (m *MockStore) Edit(ctx context.Context, p core.Principal, index uint64, title, content string) (core.Note, bool) {
	seq := m.notes[p]
	if index >= uint64(len(seq)) {
		return core.Note{}, false
	}
	seq[index] = core.Note{Title: title, Content: content}
	return seq[index], true
}

func TestService_CRUD(t *testing.T) {
	service := core.NewService(NewMockStore(), nil)
	ctx := context.TODO()
	alice := core.Principal("alice")

	// 1. Add
	if !service.AddNote(ctx, alice, "a", "A") {
		t.Fatal("AddNote reported false")
	}

	// 2. Get
	n, ok := service.GetNote(ctx, alice, 0)
	if !ok {
		t.Fatal("GetNote(0) not found")
	}
	if n != (core.Note{Title: "a", Content: "A"}) {
		t.Errorf("unexpected note %+v", n)
	}

	// 3. List
	service.AddNote(ctx, alice, "b", "B")
	if notes := service.ListNotes(ctx, alice); len(notes) != 2 {
		t.Errorf("expected 2 notes, got %d", len(notes))
	}

	// 4. Edit
	n, ok = service.EditNote(ctx, alice, 1, "b*", "B*")
	if !ok || n.Title != "b*" {
		t.Errorf("EditNote returned (%+v, %v)", n, ok)
	}

	// 5. Delete
	if !service.DeleteNote(ctx, alice, 0) {
		t.Fatal("DeleteNote(0) reported false")
	}
	if _, ok := service.GetNote(ctx, alice, 1); ok {
		t.Error("expected index 1 to be gone after deletion")
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	service := core.NewService(NewMockStore(), nil)

	_, err := service.Watch(context.TODO(), "alice")
	if !errors.Is(err, core.ErrNotWatchable) {
		t.Fatalf("expected ErrNotWatchable, got %v", err)
	}
}

func TestService_State(t *testing.T) {
	service := core.NewService(NewMockStore(), nil)

	state, ok := service.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", service.State())
	}
	if state.StoreType != "store" || state.Watchable {
		t.Errorf("unexpected state %+v", state)
	}
	if service.ComponentType() != "service" {
		t.Errorf("unexpected component type %q", service.ComponentType())
	}
}
