// Package symbols keeps the typeclass validity registry: which classes exist,
// which method signatures they declare and which of those carry defaults.
// It is shared by reference between every interpreter clone.
package symbols

import (
	"sort"
	"sync"
)

// Registry records every typeclass passed to AddTypeclass.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Typeclass
	owners  map[string]string // method name -> class name
}

func NewRegistry() *Registry {
	return &Registry{
		classes: make(map[string]*Typeclass),
		owners:  make(map[string]string),
	}
}

// Define registers (or redefines) a typeclass.
func (r *Registry) Define(tc *Typeclass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.classes[tc.Name]; ok {
		for _, m := range old.Methods {
			if r.owners[m.Name] == tc.Name {
				delete(r.owners, m.Name)
			}
		}
	}
	r.classes[tc.Name] = tc
	for _, m := range tc.Methods {
		r.owners[m.Name] = tc.Name
	}
}

// Lookup returns the typeclass registered under name.
func (r *Registry) Lookup(name string) (*Typeclass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tc, ok := r.classes[name]
	return tc, ok
}

// Exists checks if a typeclass is defined
func (r *Registry) Exists(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// ClassForMethod returns the class that most recently declared method.
func (r *Registry) ClassForMethod(method string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.owners[method]
	return name, ok
}

// Names returns the registered class names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
