package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/tessera/internal/config"
)

// Type is the interface for all types in our system.
// Types are immutable once built and are passed around by value.
type Type interface {
	String() string
	isType()
}

// TSingle is a named scalar or nominal type (e.g. Int, Char) or a generic
// variable (a single-character name such as 'a').
type TSingle struct {
	Name string
}

func (t TSingle) isType()        {}
func (t TSingle) String() string { return t.Name }

// TTuple represents a tuple type (e.g. (Int, Char)).
type TTuple struct {
	Elements []Type
}

func (t TTuple) isType() {}

func (t TTuple) String() string {
	return "(" + joinTypes(t.Elements, ", ") + ")"
}

// TFunc represents a function signature with its effects.
type TFunc struct {
	Params     []Type
	Effects    []Type
	ReturnType Type
}

func (t TFunc) isType() {}

func (t TFunc) String() string {
	var out strings.Builder
	out.WriteString("fn(")
	out.WriteString(joinTypes(t.Params, ", "))
	out.WriteString(")")
	if len(t.Effects) > 0 {
		out.WriteString(" <")
		out.WriteString(joinTypes(t.Effects, ", "))
		out.WriteString(">")
	}
	out.WriteString(" -> ")
	out.WriteString(typeString(t.ReturnType))
	return out.String()
}

// TApp represents a generic type application (e.g. List Int).
type TApp struct {
	Constructor Type
	Args        []Type
}

func (t TApp) isType() {}

func (t TApp) String() string {
	if len(t.Args) == 0 {
		return typeString(t.Constructor)
	}
	return fmt.Sprintf("(%s %s)", typeString(t.Constructor), joinTypes(t.Args, " "))
}

// TRef is the type of a live reference onto storage of type Type.
type TRef struct {
	Type Type
}

func (t TRef) isType()        {}
func (t TRef) String() string { return "&" + typeString(t.Type) }

// TAlias is a named alias From for the type To.
type TAlias struct {
	From Type
	To   Type
}

func (t TAlias) isType()        {}
func (t TAlias) String() string { return typeString(t.From) }

// TUnit is the empty tuple type.
type TUnit struct{}

func (t TUnit) isType()        {}
func (t TUnit) String() string { return "()" }

// Built-in types
var (
	Int   = TSingle{Name: config.IntTypeName}
	UInt  = TSingle{Name: config.UIntTypeName}
	Float = TSingle{Name: config.FloatTypeName}
	Char  = TSingle{Name: config.CharTypeName}
	Byte  = TSingle{Name: config.ByteTypeName}
	Bool  = TSingle{Name: config.BoolTypeName}
	Any   = TSingle{Name: config.AnyTypeName}
	Unit  = TUnit{}
)

// Single returns the named type.
func Single(name string) TSingle {
	return TSingle{Name: name}
}

// ListOf returns (List elem).
func ListOf(elem Type) TApp {
	return TApp{Constructor: TSingle{Name: config.ListTypeName}, Args: []Type{elem}}
}

// PromiseOf returns (Promise t).
func PromiseOf(t Type) TApp {
	return TApp{Constructor: TSingle{Name: config.PromiseTypeName}, Args: []Type{t}}
}

// OrAny substitutes Any for a missing type annotation.
func OrAny(t Type) Type {
	if t == nil {
		return Any
	}
	return t
}

func typeString(t Type) string {
	if t == nil {
		return config.AnyTypeName
	}
	return t.String()
}

func joinTypes(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = typeString(t)
	}
	return strings.Join(parts, sep)
}
