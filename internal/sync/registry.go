package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// Handler consumes the payload of one push-channel frame.
type Handler func(ctx context.Context, payload json.RawMessage)

// Registry binds frame kinds to handlers for exactly one connection
// instance. A connection that is torn down detaches its registry so a
// successor connection never double-delivers through stale handlers.
type Registry struct {
	mu       sync.Mutex
	attached bool
	handlers map[string]Handler
}

// NewRegistry creates a detached registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Attach binds the given handlers. It may be called at most once per registry
// instance; a second call is an error rather than a silent re-bind, because
// duplicate handlers mean duplicate delivery.
func (r *Registry) Attach(handlers map[string]Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attached {
		return fmt.Errorf("registry already attached")
	}
	r.handlers = make(map[string]Handler, len(handlers))
	for kind, h := range handlers {
		if h == nil {
			continue
		}
		r.handlers[kind] = h
	}
	r.attached = true
	return nil
}

// Detach releases every handler. Safe to call at any time, repeatedly, and
// before Attach ever happened.
func (r *Registry) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = nil
	r.attached = false
}

// Dispatch routes one frame to its bound handler. Frames arriving while
// detached, and frames of unknown kind, are dropped.
func (r *Registry) Dispatch(ctx context.Context, kind string, payload json.RawMessage) {
	r.mu.Lock()
	h, ok := r.handlers[kind]
	r.mu.Unlock()
	if !ok {
		log.Printf("sync: dropping frame of unhandled kind %q", kind)
		return
	}
	h(ctx, payload)
}
