// Package registry implements the typed publish/subscribe registry the drag
// engine uses to deliver lifecycle events.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/drake/pkg/domain"
)

// Subscription identifies a registered listener.
type Subscription uint64

type entry struct {
	id Subscription
	fn domain.Listener
}

// Registry manages listeners keyed by event type.
type Registry struct {
	mu        sync.RWMutex
	listeners map[domain.EventType][]entry
	nextID    Subscription
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		listeners: make(map[domain.EventType][]entry),
	}
}

// On registers fn for events of type t. Listeners run in registration order.
func (r *Registry) On(t domain.EventType, fn domain.Listener) Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.listeners[t] = append(r.listeners[t], entry{id: r.nextID, fn: fn})
	return r.nextID
}

// Off removes a listener and reports whether it was registered.
func (r *Registry) Off(id Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for t, entries := range r.listeners {
		for i, e := range entries {
			if e.id == id {
				r.listeners[t] = append(entries[:i:i], entries[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Clear removes every listener.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[domain.EventType][]entry)
}

// Count returns the number of listeners for t.
func (r *Registry) Count(t domain.EventType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.listeners[t])
}

// Emit delivers e to every listener of its type. All listeners run even when
// some fail; their errors (and recovered panics, wrapped in
// domain.ErrListenerPanic) are joined into the returned error.
func (r *Registry) Emit(e domain.Event) error {
	r.mu.RLock()
	entries := append([]entry(nil), r.listeners[e.Type]...)
	r.mu.RUnlock()

	var errs []error
	for _, en := range entries {
		if err := call(en.fn, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func call(fn domain.Listener, e domain.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s listener: %v", domain.ErrListenerPanic, e.Type, rec)
		}
	}()
	if err := fn(e); err != nil {
		return fmt.Errorf("%s listener: %w", e.Type, err)
	}
	return nil
}
