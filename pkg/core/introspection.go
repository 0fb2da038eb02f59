package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	StoreType string `json:"store_type"`
	Watchable bool   `json:"watchable"`
	Store     any    `json:"store,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	state := ServiceState{StoreType: "unknown"}
	if s.store == nil {
		return state
	}

	state.StoreType = "store"
	if comp, ok := s.store.(introspection.Component); ok {
		state.StoreType = comp.ComponentType()
	}
	if intro, ok := s.store.(introspection.Introspectable); ok {
		state.Store = intro.State()
	}
	_, state.Watchable = s.store.(Watchable)

	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
