package evaluator

import (
	"github.com/funvibe/tessera/internal/typesystem"
)

type ObjectType string

const (
	INTEGER_OBJ   = "INTEGER"
	UINTEGER_OBJ  = "UINTEGER"
	FLOAT_OBJ     = "FLOAT"
	CHAR_OBJ      = "CHAR"
	BYTE_OBJ      = "BYTE"
	BOOLEAN_OBJ   = "BOOLEAN"
	LIST_OBJ      = "LIST"
	TUPLE_OBJ     = "TUPLE"
	FUNCTION_OBJ  = "FUNCTION"
	PROMISE_OBJ   = "PROMISE"
	ALGEBRAIC_OBJ = "ALGEBRAIC"
	ALIAS_OBJ     = "ALIAS"
	REFERENCE_OBJ = "REFERENCE"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
	// RuntimeType derives the value's type. It is deterministic and has no
	// side effects, so repeated calls return Equal types.
	RuntimeType() typesystem.Type
	// Clone returns an independent structural copy. Promises and references
	// are unique handles and fail with ErrNonDuplicable.
	Clone() (Object, error)
}

// CloneAll clones every object in objs.
func CloneAll(objs []Object) ([]Object, error) {
	out := make([]Object, len(objs))
	for i, obj := range objs {
		c, err := obj.Clone()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// IsTruthy reports whether obj counts as true in a condition.
func IsTruthy(obj Object) bool {
	switch o := obj.(type) {
	case *Boolean:
		return o.Value
	case *Integer:
		return o.Value != 0
	case *UInteger:
		return o.Value != 0
	case *Byte:
		return o.Value != 0
	case *Float:
		return o.Value != 0
	case *Alias:
		return IsTruthy(o.Value)
	case *Reference:
		return IsTruthy(o.Load())
	case nil:
		return false
	default:
		return true
	}
}
