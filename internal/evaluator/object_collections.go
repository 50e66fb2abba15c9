package evaluator

import (
	"strings"

	"github.com/funvibe/tessera/internal/typesystem"
)

// List is a homogeneous sequence. ElementType is the declared element type
// (nil means Any).
type List struct {
	Elements    []Object
	ElementType typesystem.Type
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	if IsStringList(l) {
		return `"` + ListToString(l) + `"`
	}
	parts := make([]string, len(l.Elements))
	for i, el := range l.Elements {
		parts[i] = el.Inspect()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (l *List) RuntimeType() typesystem.Type {
	return typesystem.ListOf(typesystem.OrAny(l.ElementType))
}
func (l *List) Clone() (Object, error) {
	elements, err := CloneAll(l.Elements)
	if err != nil {
		return nil, err
	}
	return &List{Elements: elements, ElementType: l.ElementType}, nil
}

// NewList builds a list whose element type is taken from the first element.
func NewList(elements []Object) *List {
	var elemType typesystem.Type = typesystem.Any
	if len(elements) > 0 {
		elemType = elements[0].RuntimeType()
	}
	return &List{Elements: elements, ElementType: elemType}
}

// StringToList converts a Go string to a (List Char).
func StringToList(s string) *List {
	runes := []rune(s)
	elements := make([]Object, len(runes))
	for i, r := range runes {
		elements[i] = &Char{Value: r}
	}
	return &List{Elements: elements, ElementType: typesystem.Char}
}

// IsStringList checks if a list is declared as, or made only of, Chars.
func IsStringList(l *List) bool {
	if l.ElementType != nil && typesystem.Key(l.ElementType) == typesystem.Char.String() {
		return true
	}
	if len(l.Elements) == 0 {
		return false
	}
	for _, el := range l.Elements {
		if _, ok := el.(*Char); !ok {
			return false
		}
	}
	return true
}

// ListToString converts a list of Chars to a Go string
func ListToString(l *List) string {
	var out strings.Builder
	for _, el := range l.Elements {
		if c, ok := el.(*Char); ok {
			out.WriteRune(c.Value)
		}
	}
	return out.String()
}

// Tuple
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t *Tuple) RuntimeType() typesystem.Type {
	if len(t.Elements) == 0 {
		return typesystem.Unit
	}
	elemTypes := make([]typesystem.Type, len(t.Elements))
	for i, el := range t.Elements {
		elemTypes[i] = el.RuntimeType()
	}
	return typesystem.TTuple{Elements: elemTypes}
}
func (t *Tuple) Clone() (Object, error) {
	elements, err := CloneAll(t.Elements)
	if err != nil {
		return nil, err
	}
	return &Tuple{Elements: elements}, nil
}

// UnitValue is the empty tuple.
func UnitValue() *Tuple {
	return &Tuple{}
}
