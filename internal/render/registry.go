package render

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"text/template"
)

var (
	// ErrEmptyName is returned when registering a function without a name
	ErrEmptyName = errors.New("function name is empty")
	// ErrNotFunc is returned when the registered value is not a function
	ErrNotFunc = errors.New("value is not a function")
	// ErrDuplicate is returned when a name is registered twice
	ErrDuplicate = errors.New("function already registered")
)

// Registry maps template function names to implementations.
// Hosts fill it explicitly at startup; nothing registers itself on import.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]any
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]any)}
}

// Register adds fn under name
func (r *Registry) Register(name string, fn any) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		return fmt.Errorf("%s: %w", name, ErrNotFunc)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[name]; exists {
		return fmt.Errorf("%s: %w", name, ErrDuplicate)
	}
	r.funcs[name] = fn
	return nil
}

// FuncMap returns a copy of the registered functions
func (r *Registry) FuncMap() template.FuncMap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	funcs := make(template.FuncMap, len(r.funcs))
	for name, fn := range r.funcs {
		funcs[name] = fn
	}
	return funcs
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
