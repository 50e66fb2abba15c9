package evaluator

import (
	"sync"

	"github.com/funvibe/tessera/internal/typesystem"
)

// Variable pairs an optional declared type with a value slot. The slot holds
// either a plain value (immutable binding) or a *Reference (mutable binding).
type Variable struct {
	Declared typesystem.Type // nil when the binding was not annotated

	mu    sync.RWMutex
	value Object
}

// NewVariable binds value under declared, checking the declared type.
func NewVariable(declared typesystem.Type, value Object) (*Variable, error) {
	v := &Variable{Declared: declared}
	if err := v.SetValue(value); err != nil {
		return nil, err
	}
	return v, nil
}

// NewMutableVariable binds value in a fresh cell so it can be reassigned.
// A reference value is copied, never aliased.
func NewMutableVariable(declared typesystem.Type, value Object) (*Variable, error) {
	val, err := detach(value)
	if err != nil {
		return nil, err
	}
	return NewVariable(declared, NewReference(val))
}

// IsMutable reports whether the slot currently holds a reference.
func (v *Variable) IsMutable() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.value.(*Reference)
	return ok
}

// SetValue is the initial bind. It replaces the slot unconditionally once the
// declared type accepts val.
func (v *Variable) SetValue(val Object) error {
	if val == nil {
		return newError(ErrInvalidCall, "", "cannot bind a nil value")
	}
	if err := typesystem.Check(v.Declared, val.RuntimeType()); err != nil {
		return mismatch("", err, "cannot bind value")
	}
	v.mu.Lock()
	v.value = val
	v.mu.Unlock()
	return nil
}

// AssignValue writes val through the binding's cell so that every alias
// observes it. Without a declared type the current content type must be kept.
func (v *Variable) AssignValue(val Object) error {
	v.mu.RLock()
	ref, ok := v.value.(*Reference)
	v.mu.RUnlock()
	if !ok {
		return newError(ErrImmutableAssignment, "", "binding is not mutable")
	}
	if r, isRef := val.(*Reference); isRef {
		val = r.Load()
	}
	if val == nil {
		return newError(ErrInvalidCall, "", "cannot assign a nil value")
	}

	expected := v.Declared
	if expected == nil {
		expected = ref.Load().RuntimeType()
	}
	if err := typesystem.Check(expected, val.RuntimeType()); err != nil {
		return mismatch("", err, "cannot assign value")
	}
	ref.Store(val)
	return nil
}

// GetImmutable returns a detached copy of the current content.
func (v *Variable) GetImmutable() (Object, error) {
	return cloneContent(v.Value())
}

// GetMutable returns the aliasing reference held by a mutable binding.
func (v *Variable) GetMutable() (*Reference, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ref, ok := v.value.(*Reference)
	if !ok {
		return nil, newError(ErrImmutableAssignment, "", "binding is not mutable")
	}
	return ref, nil
}

// Value returns the raw slot content, which may be a *Reference.
func (v *Variable) Value() Object {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// ValueType is the runtime type of the current content.
func (v *Variable) ValueType() typesystem.Type {
	val := v.Value()
	if val == nil {
		return typesystem.Any
	}
	return val.RuntimeType()
}

// Type is the declared type, falling back to the content type.
func (v *Variable) Type() typesystem.Type {
	if v.Declared != nil {
		return v.Declared
	}
	return v.ValueType()
}

// Snapshot returns an immutable copy of the binding that shares no storage
// with v.
func (v *Variable) Snapshot() (*Variable, error) {
	val, err := v.GetImmutable()
	if err != nil {
		return nil, err
	}
	return &Variable{Declared: v.Declared, value: val}, nil
}

func cloneContent(val Object) (Object, error) {
	if r, ok := val.(*Reference); ok {
		val = r.Load()
	}
	if val == nil {
		return nil, newError(ErrUnboundName, "", "binding has no value")
	}
	return val.Clone()
}
