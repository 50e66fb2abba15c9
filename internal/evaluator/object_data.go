package evaluator

import (
	"sort"
	"strings"

	"github.com/funvibe/tessera/internal/typesystem"
)

// AlgebraicKind distinguishes sum and product instances.
type AlgebraicKind int

const (
	Sum AlgebraicKind = iota
	Product
)

func (k AlgebraicKind) String() string {
	if k == Product {
		return "product"
	}
	return "sum"
}

// Algebraic is an instance of a user-defined sum or product type.
type Algebraic struct {
	Kind     AlgebraicKind
	TypeName string            // e.g. "Option"
	Tag      string            // Variant constructor, e.g. "Some" (empty for products)
	TypeArgs []typesystem.Type // e.g. [Int] for (Option Int)
	Fields   map[string]Object
}

func (a *Algebraic) Type() ObjectType { return ALGEBRAIC_OBJ }
func (a *Algebraic) Inspect() string {
	name := a.Tag
	if name == "" {
		name = a.TypeName
	}
	if len(a.Fields) == 0 {
		return name
	}
	keys := a.fieldNames()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + a.Fields[k].Inspect()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
func (a *Algebraic) RuntimeType() typesystem.Type {
	if len(a.TypeArgs) == 0 {
		return typesystem.Single(a.TypeName)
	}
	return typesystem.TApp{
		Constructor: typesystem.Single(a.TypeName),
		Args:        append([]typesystem.Type(nil), a.TypeArgs...),
	}
}
func (a *Algebraic) Clone() (Object, error) {
	fields := make(map[string]Object, len(a.Fields))
	for _, k := range a.fieldNames() {
		c, err := a.Fields[k].Clone()
		if err != nil {
			return nil, err
		}
		fields[k] = c
	}
	return &Algebraic{
		Kind:     a.Kind,
		TypeName: a.TypeName,
		Tag:      a.Tag,
		TypeArgs: append([]typesystem.Type(nil), a.TypeArgs...),
		Fields:   fields,
	}, nil
}

func (a *Algebraic) fieldNames() []string {
	keys := make([]string, 0, len(a.Fields))
	for k := range a.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Alias wraps a value under a type alias, e.g. Meters over Float.
type Alias struct {
	Name   typesystem.Type // The alias
	Target typesystem.Type // The aliased type; nil derives it from Value
	Value  Object
}

func (a *Alias) Type() ObjectType { return ALIAS_OBJ }
func (a *Alias) Inspect() string  { return a.Name.String() + "(" + a.Value.Inspect() + ")" }
func (a *Alias) RuntimeType() typesystem.Type {
	target := a.Target
	if target == nil {
		target = a.Value.RuntimeType()
	}
	return typesystem.TAlias{From: a.Name, To: target}
}
func (a *Alias) Clone() (Object, error) {
	inner, err := a.Value.Clone()
	if err != nil {
		return nil, err
	}
	return &Alias{Name: a.Name, Target: a.Target, Value: inner}, nil
}
