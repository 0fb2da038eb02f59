package notebox

import (
	"log/slog"

	"github.com/aretw0/notebox/internal/platform"
	"github.com/aretw0/notebox/pkg/core"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/notebox.Version=...".
var Version = "0.1.0-dev"

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// Principal is a public alias for the caller identity.
type Principal = core.Principal

// Service is a public alias for the domain service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring notebox.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithEventBuffer allows specifying the per-subscriber size of the change feed buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// --- Factory ---

// New creates a new notebox Service backed by the in-memory store unless
// WithStore is given.
func New(opts ...Option) *core.Service {
	return platform.New(opts...)
}
