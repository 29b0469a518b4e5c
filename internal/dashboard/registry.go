package dashboard

import (
	"errors"
	"fmt"
)

// ErrUnknownWidget is returned when a widget id has no registered factory.
var ErrUnknownWidget = errors.New("unknown widget")

// Factory builds a widget instance.
type Factory[T any] func() T

// Registry maps widget identities to factories.
type Registry[T any] struct {
	factories map[string]Factory[T]
	ids       []string
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{factories: make(map[string]Factory[T])}
}

// Register binds id to f. Re-registering an id replaces its factory and
// keeps its original position in IDs.
func (r *Registry[T]) Register(id string, f Factory[T]) {
	if _, ok := r.factories[id]; !ok {
		r.ids = append(r.ids, id)
	}
	r.factories[id] = f
}

// Lookup returns the factory for id, or an error wrapping ErrUnknownWidget.
func (r *Registry[T]) Lookup(id string) (Factory[T], error) {
	f, ok := r.factories[id]
	if !ok || f == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, id)
	}
	return f, nil
}

// New builds a widget for id.
func (r *Registry[T]) New(id string) (T, error) {
	f, err := r.Lookup(id)
	if err != nil {
		var zero T
		return zero, err
	}
	return f(), nil
}

// Has reports whether id is registered.
func (r *Registry[T]) Has(id string) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry[T]) IDs() []string {
	return append([]string(nil), r.ids...)
}
