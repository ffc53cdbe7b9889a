package events

import (
	"reflect"
	"sync"
)

// Listener receives broadcast values.
type Listener[T any] interface {
	Notify(T)
}

// ListenerFunc adapts a plain function to Listener. Functions are not
// comparable, so every ListenerFunc subscription is a distinct entry.
type ListenerFunc[T any] func(T)

// Notify calls f(v).
func (f ListenerFunc[T]) Notify(v T) { f(v) }

// Registry is a set of listeners with a synchronous Broadcast.
//
// Subscribing the same comparable listener (for example a pointer) twice
// keeps a single entry; both returned unsubscribe funcs remove it.
type Registry[T any] struct {
	mu      sync.RWMutex
	nextID  uint64
	entries map[uint64]Listener[T]
	order   []uint64
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[uint64]Listener[T])}
}

// Subscribe registers l and returns a func that unregisters it. The returned
// func is safe to call more than once.
func (r *Registry[T]) Subscribe(l Listener[T]) func() {
	if l == nil {
		return func() {}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.findLocked(l); ok {
		return r.unsubscriber(id)
	}

	r.nextID++
	id := r.nextID
	r.entries[id] = l
	r.order = append(r.order, id)
	return r.unsubscriber(id)
}

// Len returns the number of registered listeners.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Broadcast delivers v to every listener in subscription order. Listeners
// added or removed during a broadcast take effect on the next one.
func (r *Registry[T]) Broadcast(v T) {
	r.mu.RLock()
	listeners := make([]Listener[T], 0, len(r.order))
	for _, id := range r.order {
		listeners = append(listeners, r.entries[id])
	}
	r.mu.RUnlock()

	for _, l := range listeners {
		l.Notify(v)
	}
}

func (r *Registry[T]) unsubscriber(id uint64) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.entries[id]; !ok {
			return
		}
		delete(r.entries, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i:i], r.order[i+1:]...)
				break
			}
		}
	}
}

func (r *Registry[T]) findLocked(l Listener[T]) (uint64, bool) {
	if !reflect.TypeOf(l).Comparable() {
		return 0, false
	}
	for id, existing := range r.entries {
		if reflect.TypeOf(existing).Comparable() && existing == l {
			return id, true
		}
	}
	return 0, false
}
