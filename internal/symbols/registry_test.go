package symbols

import (
	"reflect"
	"testing"

	"github.com/funvibe/tessera/internal/typesystem"
)

func eqClass() *Typeclass {
	a := typesystem.Single("a")
	sig := typesystem.TFunc{Params: []typesystem.Type{a, a}, ReturnType: typesystem.Bool}
	return NewTypeclass("Eq", []Method{
		{Name: "==", Signature: sig},
		{Name: "!=", Signature: sig, HasDefault: true},
		{Name: "describe", Signature: typesystem.TFunc{Params: []typesystem.Type{a}, ReturnType: typesystem.ListOf(typesystem.Char)}},
	})
}

func TestTypeclassMethods(t *testing.T) {
	tc := eqClass()

	if !tc.Declares("==") || !tc.Declares("!=") {
		t.Fatal("expected == and != to be declared")
	}
	if tc.Declares("<") {
		t.Error("< should not be declared")
	}

	if got, want := tc.RequiredMethods(), []string{"==", "describe"}; !reflect.DeepEqual(got, want) {
		t.Errorf("RequiredMethods() = %v, want %v", got, want)
	}
	if got, want := tc.Missing([]string{"=="}), []string{"describe"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
	if got := tc.Missing([]string{"==", "describe"}); len(got) != 0 {
		t.Errorf("Missing() = %v, want none", got)
	}
	if got, want := tc.Undeclared([]string{"==", "<"}), []string{"<"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Undeclared() = %v, want %v", got, want)
	}

	sig, ok := tc.Signature("==")
	if !ok || sig.String() != "fn(a, a) -> Bool" {
		t.Errorf("Signature(==) = %v, %v", sig, ok)
	}
}

func TestTypeclassRedeclaredMethod(t *testing.T) {
	tc := NewTypeclass("Show", []Method{
		{Name: "show", Signature: typesystem.Any},
		{Name: "show", Signature: typesystem.Any, HasDefault: true},
	})
	if len(tc.Methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(tc.Methods))
	}
	if len(tc.RequiredMethods()) != 0 {
		t.Errorf("later default should make show non-abstract, got %v", tc.RequiredMethods())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if r.Exists("Eq") {
		t.Fatal("empty registry should not contain Eq")
	}

	r.Define(eqClass())
	r.Define(NewTypeclass("Ord", []Method{{Name: "<", Signature: typesystem.Any}}))

	if !r.Exists("Eq") {
		t.Fatal("Eq should exist after Define")
	}
	if owner, ok := r.ClassForMethod("!="); !ok || owner != "Eq" {
		t.Errorf("ClassForMethod(!=) = %q, %v", owner, ok)
	}
	if _, ok := r.ClassForMethod("show"); ok {
		t.Error("show has no owner")
	}
	if got, want := r.Names(), []string{"Eq", "Ord"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	// Redefinition drops methods the new declaration no longer has.
	r.Define(NewTypeclass("Eq", []Method{{Name: "==", Signature: typesystem.Any}}))
	if _, ok := r.ClassForMethod("!="); ok {
		t.Error("!= should be dropped after redefinition")
	}
	tc, _ := r.Lookup("Eq")
	if len(tc.Methods) != 1 {
		t.Errorf("redefined Eq has %d methods", len(tc.Methods))
	}
}
