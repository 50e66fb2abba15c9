package evaluator

import (
	"sync"

	"github.com/funvibe/tessera/internal/typesystem"
)

// NewScope returns an empty function-local scope. Closures keep their defining
// scope as outer.
func NewScope() *Scope {
	return &Scope{store: make(map[string]*Variable)}
}

func NewEnclosedScope(outer *Scope) *Scope {
	s := NewScope()
	s.outer = outer
	return s
}

type Scope struct {
	mu    sync.RWMutex
	store map[string]*Variable
	outer *Scope
}

func (s *Scope) Get(name string) (*Variable, bool) {
	if s == nil {
		return nil, false
	}
	s.mu.RLock()
	v, ok := s.store[name]
	s.mu.RUnlock()
	if !ok && s.outer != nil {
		v, ok = s.outer.Get(name)
	}
	return v, ok
}

// Set binds name in this scope, shadowing any outer binding.
func (s *Scope) Set(name string, v *Variable) *Variable {
	s.mu.Lock()
	s.store[name] = v
	s.mu.Unlock()
	return v
}

// Define creates a binding for value, mutable when requested. The binding
// never shares a cell with a reference passed as value.
func (s *Scope) Define(name string, declared typesystem.Type, value Object, mutable bool) (*Variable, error) {
	val, err := detach(value)
	if err != nil {
		return nil, withName(err, name)
	}
	if mutable {
		val = NewReference(val)
	}
	v, err := NewVariable(declared, val)
	if err != nil {
		return nil, withName(err, name)
	}
	return s.Set(name, v), nil
}

// Update assigns through the nearest binding of name. It reports false when
// no scope in the chain binds name.
func (s *Scope) Update(name string, val Object) (bool, error) {
	v, ok := s.Get(name)
	if !ok {
		return false, nil
	}
	if err := v.AssignValue(val); err != nil {
		return true, withName(err, name)
	}
	return true, nil
}

// Detached flattens the scope chain into one scope that shares no cell with
// s. Mutable bindings become immutable snapshots and immutable ones are
// shared. Inner bindings shadow outer ones.
func (s *Scope) Detached() (*Scope, error) {
	out := NewScope()
	for sc := s; sc != nil; sc = sc.outer {
		for name, v := range sc.GetStore() {
			if _, shadowed := out.store[name]; shadowed {
				continue
			}
			if v.IsMutable() {
				snap, err := v.Snapshot()
				if err != nil {
					return nil, withName(err, name)
				}
				v = snap
			}
			out.store[name] = v
		}
	}
	return out, nil
}

// GetStore returns a copy of this scope's own bindings.
func (s *Scope) GetStore() map[string]*Variable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	copy := make(map[string]*Variable, len(s.store))
	for k, v := range s.store {
		copy[k] = v
	}
	return copy
}
