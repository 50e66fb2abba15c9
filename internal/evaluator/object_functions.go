package evaluator

import (
	"context"
	"fmt"
	"strings"

	"github.com/funvibe/tessera/internal/typesystem"
)

// Body is an opaque function body handle produced by the parser. The core
// never looks inside it except to recognise NativeBody.
type Body interface{}

// NativeBody is a function body implemented in Go. It receives the bound
// local scope and runs on whichever goroutine invoked the function.
type NativeBody func(ctx context.Context, interp *Interpreter, scope *Scope) (Object, error)

// Param is a named function parameter with an optional declared type.
type Param struct {
	Name string
	Type typesystem.Type // nil for untyped parameters
}

// IsReference reports whether the parameter binds by live alias.
func (p Param) IsReference() bool {
	_, ok := p.Type.(typesystem.TRef)
	return ok
}

// Function is a function value or closure.
type Function struct {
	Name       string // Function name (empty for lambdas)
	Spawn      bool   // Run on a new goroutine and return a Promise
	Params     []Param
	Effects    []typesystem.Type
	ReturnType typesystem.Type // nil for unannotated
	Closure    *Scope          // Captured scope, may be nil
	Body       Body
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Type != nil {
			params[i] = fmt.Sprintf("%s: %s", p.Name, p.Type)
		} else {
			params[i] = p.Name
		}
	}
	prefix := "fn"
	if f.Spawn {
		prefix = "spawn fn"
	}
	if f.Name != "" {
		prefix += " " + f.Name
	}
	return fmt.Sprintf("%s(%s) { ... }", prefix, strings.Join(params, ", "))
}
func (f *Function) RuntimeType() typesystem.Type {
	paramTypes := make([]typesystem.Type, len(f.Params))
	for i, p := range f.Params {
		paramTypes[i] = typesystem.OrAny(p.Type)
	}
	return typesystem.TFunc{
		Params:     paramTypes,
		Effects:    append([]typesystem.Type(nil), f.Effects...),
		ReturnType: typesystem.OrAny(f.ReturnType),
	}
}

// Clone copies the signature. The closure scope and body handle are shared.
func (f *Function) Clone() (Object, error) {
	cp := *f
	cp.Params = append([]Param(nil), f.Params...)
	cp.Effects = append([]typesystem.Type(nil), f.Effects...)
	return &cp, nil
}

// displayName is used in error messages.
func (f *Function) displayName() string {
	if f.Name == "" {
		return "<lambda>"
	}
	return f.Name
}
