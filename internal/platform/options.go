package platform

import (
	"log/slog"

	"github.com/aretw0/notebox/pkg/core"
)

// options holds the internal configuration for the notebox service.
type options struct {
	store       core.Store
	logger      *slog.Logger
	eventBuffer int
}

// Option defines a functional option for configuring notebox.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		store:       nil,
		logger:      nil,
		eventBuffer: 0,
	}
}

// WithLogger sets the logger for the service and the default store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore allows injecting a custom store implementation.
// If provided, the default in-memory store will be skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithEventBuffer sets the per-subscriber buffer of the default store's change feed.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}
