package component

import (
	"github.com/emberline/server/internal/core/entity"
	"github.com/emberline/server/internal/core/event"
)

// Store is a generic typed map store for component data, keyed by entity
// handle. No reflect, no interface{} — pure generics.
// Single-goroutine access only (game loop).
type Store[T any] struct {
	data map[entity.Handle]*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[entity.Handle]*T, 64),
	}
}

func (s *Store[T]) Set(h entity.Handle, c *T) {
	s.data[h] = c
}

func (s *Store[T]) Get(h entity.Handle) (*T, bool) {
	c, ok := s.data[h]
	return c, ok
}

func (s *Store[T]) Has(h entity.Handle) bool {
	_, ok := s.data[h]
	return ok
}

func (s *Store[T]) Remove(h entity.Handle) {
	delete(s.data, h)
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

func (s *Store[T]) Each(fn func(entity.Handle, *T)) {
	for h, c := range s.data {
		fn(h, c)
	}
}

// Removable is implemented by all component stores so the Registry can
// bulk-remove a destroyed entity's data from every store.
type Removable interface {
	Remove(entity.Handle)
}

// Registry tracks component stores and clears destroyed entities from all of
// them when the destroy notification fires.
type Registry struct {
	stores []Removable
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make([]Removable, 0, 8),
	}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// RemoveAll clears the given entity from every registered store.
func (r *Registry) RemoveAll(h entity.Handle) {
	for _, s := range r.stores {
		s.Remove(h)
	}
}

// Bind subscribes the registry to the system's destroy notification. Call it
// after every other destroy observer is subscribed: delivery is in
// subscription order, and observers registered later than the registry would
// find the destroyed entity's data already gone.
func (r *Registry) Bind(sys *entity.System) event.Subscription {
	return sys.Events.Destroy.Subscribe(func(ev entity.Destroyed) {
		r.RemoveAll(ev.Handle)
	})
}
