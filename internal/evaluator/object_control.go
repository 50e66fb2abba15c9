package evaluator

import (
	"sync"

	"github.com/funvibe/tessera/internal/typesystem"
)

// Cell is shared, interior-mutable storage. Every Reference onto the same
// cell observes every Store.
type Cell struct {
	mu    sync.RWMutex
	value Object
}

func (c *Cell) Load() Object {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Cell) Store(v Object) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// Reference is a live alias onto a Cell. It can be re-aliased with
// CreateReference but never copied with Clone.
type Reference struct {
	cell *Cell
}

// NewReference boxes v in a fresh cell. Boxing an existing reference copies
// its current content into the new cell; use CreateReference to alias.
func NewReference(v Object) *Reference {
	if r, ok := v.(*Reference); ok {
		val, err := detach(r)
		if err != nil {
			val = r.Load()
		}
		v = val
	}
	return &Reference{cell: &Cell{value: v}}
}

// detach replaces a reference with a copy of its content. Other values are
// returned as is.
func detach(v Object) (Object, error) {
	if r, ok := v.(*Reference); ok {
		return cloneContent(r)
	}
	return v, nil
}

// CreateReference returns a new alias onto the storage of obj, which must
// already be a Reference.
func CreateReference(obj Object) (*Reference, error) {
	r, ok := obj.(*Reference)
	if !ok || r == nil || r.cell == nil {
		return nil, newError(ErrInvalidReference, "", "cannot create a reference to a %s value", typeOrNil(obj))
	}
	return &Reference{cell: r.cell}, nil
}

func (r *Reference) Load() Object   { return r.cell.Load() }
func (r *Reference) Store(v Object) { r.cell.Store(v) }

// SameCell reports whether r and o alias the same storage.
func (r *Reference) SameCell(o *Reference) bool {
	return o != nil && r.cell == o.cell
}

func (r *Reference) Type() ObjectType { return REFERENCE_OBJ }
func (r *Reference) Inspect() string  { return "&" + r.Load().Inspect() }
func (r *Reference) RuntimeType() typesystem.Type {
	return typesystem.TRef{Type: r.Load().RuntimeType()}
}
func (r *Reference) Clone() (Object, error) {
	return nil, newError(ErrNonDuplicable, "", "a reference must be aliased explicitly, not copied")
}

func typeOrNil(obj Object) string {
	if obj == nil {
		return "nil"
	}
	return string(obj.Type())
}
