package platform

import (
	"github.com/aretw0/notebox/pkg/adapters/memory"
	"github.com/aretw0/notebox/pkg/core"
)

// New wires a core.Service.
//
//	svc := notebox.New(notebox.WithLogger(logger))
func New(opts ...Option) *core.Service {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	store := o.store
	if store == nil {
		store = memory.NewStore(memory.Config{
			Logger:      o.logger,
			EventBuffer: o.eventBuffer,
		})
	}

	return core.NewService(store, o.logger)
}
