package typesystem

import (
	"unicode/utf8"

	"github.com/funvibe/tessera/internal/config"
)

// IsWildcard reports whether a single-type name unifies with anything:
// the literal Any, or a one-character generic variable such as 'a'.
//
// Every one-character name is an unconditional wildcard. Two occurrences of
// 'a' in one signature are not required to bind the same type.
func IsWildcard(name string) bool {
	return name == config.AnyTypeName || utf8.RuneCountInString(name) == 1
}

// Equal reports whether a and b are structurally equal for type checking and
// dispatch. It is symmetric but not transitive: 'a' equals both Int and Float
// while Int does not equal Float. References and aliases are transparent.
func Equal(a, b Type) bool {
	a, b = OrAny(a), OrAny(b)

	if r, ok := a.(TRef); ok {
		return Equal(r.Type, b)
	}
	if r, ok := b.(TRef); ok {
		return Equal(a, r.Type)
	}
	if al, ok := a.(TAlias); ok {
		return Equal(al.To, b)
	}
	if al, ok := b.(TAlias); ok {
		return Equal(a, al.To)
	}

	if s, ok := a.(TSingle); ok && IsWildcard(s.Name) {
		return true
	}
	if s, ok := b.(TSingle); ok && IsWildcard(s.Name) {
		return true
	}

	switch x := a.(type) {
	case TSingle:
		y, ok := b.(TSingle)
		return ok && x.Name == y.Name
	case TTuple:
		y, ok := b.(TTuple)
		return ok && equalAll(x.Elements, y.Elements)
	case TFunc:
		y, ok := b.(TFunc)
		return ok &&
			equalAll(x.Params, y.Params) &&
			equalAll(x.Effects, y.Effects) &&
			Equal(x.ReturnType, y.ReturnType)
	case TApp:
		y, ok := b.(TApp)
		return ok && Equal(x.Constructor, y.Constructor) && equalAll(x.Args, y.Args)
	case TUnit:
		_, ok := b.(TUnit)
		return ok
	}
	return false
}

func equalAll(xs, ys []Type) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !Equal(xs[i], ys[i]) {
			return false
		}
	}
	return true
}

// Resolve strips references and aliases down to the underlying structure.
func Resolve(t Type) Type {
	for {
		switch x := t.(type) {
		case TRef:
			t = x.Type
		case TAlias:
			t = x.To
		default:
			return OrAny(t)
		}
	}
}

// Key returns the canonical dispatch key of t. References and aliases
// are resolved at every level so that (List &Int) and (List Int) share a key.
func Key(t Type) string {
	return normalize(t).String()
}

func normalize(t Type) Type {
	switch x := Resolve(t).(type) {
	case TTuple:
		return TTuple{Elements: normalizeAll(x.Elements)}
	case TFunc:
		return TFunc{
			Params:     normalizeAll(x.Params),
			Effects:    normalizeAll(x.Effects),
			ReturnType: normalize(x.ReturnType),
		}
	case TApp:
		return TApp{Constructor: normalize(x.Constructor), Args: normalizeAll(x.Args)}
	default:
		return x
	}
}

func normalizeAll(types []Type) []Type {
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = normalize(t)
	}
	return out
}
