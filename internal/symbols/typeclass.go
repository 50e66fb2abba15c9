package symbols

import (
	"github.com/funvibe/tessera/internal/typesystem"
	"github.com/hashicorp/go-set/v3"
)

// Method is one entry of a typeclass declaration.
type Method struct {
	Name       string
	Signature  typesystem.Type // Generic signature, e.g. fn(a, a) -> Bool
	HasDefault bool            // True if the class ships a default implementation
}

// Typeclass is a named set of method signatures.
type Typeclass struct {
	Name    string
	Methods []Method

	declared *set.Set[string]
	abstract *set.Set[string]
}

// NewTypeclass builds a typeclass from its methods in declaration order.
// A later method with the same name replaces an earlier one.
func NewTypeclass(name string, methods []Method) *Typeclass {
	tc := &Typeclass{
		Name:     name,
		declared: set.New[string](len(methods)),
		abstract: set.New[string](len(methods)),
	}
	for _, m := range methods {
		if tc.declared.Contains(m.Name) {
			for i := range tc.Methods {
				if tc.Methods[i].Name == m.Name {
					tc.Methods[i] = m
				}
			}
		} else {
			tc.Methods = append(tc.Methods, m)
			tc.declared.Insert(m.Name)
		}
		if m.HasDefault {
			tc.abstract.Remove(m.Name)
		} else {
			tc.abstract.Insert(m.Name)
		}
	}
	return tc
}

// Declares reports whether the class has a method with this name.
func (tc *Typeclass) Declares(method string) bool {
	return tc.declared.Contains(method)
}

// Signature returns the declared signature of a method.
func (tc *Typeclass) Signature(method string) (typesystem.Type, bool) {
	for _, m := range tc.Methods {
		if m.Name == method {
			return m.Signature, true
		}
	}
	return nil, false
}

// RequiredMethods returns the methods without a default implementation,
// in declaration order.
func (tc *Typeclass) RequiredMethods() []string {
	var required []string
	for _, m := range tc.Methods {
		if tc.abstract.Contains(m.Name) {
			required = append(required, m.Name)
		}
	}
	return required
}

// Missing returns the required methods not present in implemented.
func (tc *Typeclass) Missing(implemented []string) []string {
	have := set.From(implemented)
	var missing []string
	for _, name := range tc.RequiredMethods() {
		if !have.Contains(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Undeclared returns the names in implemented that the class does not declare.
func (tc *Typeclass) Undeclared(implemented []string) []string {
	var extra []string
	for _, name := range implemented {
		if !tc.declared.Contains(name) {
			extra = append(extra, name)
		}
	}
	return extra
}
