package evaluator

import (
	"errors"
	"testing"

	"github.com/funvibe/tessera/internal/typesystem"
)

func sampleValues() []Object {
	return []Object{
		&Integer{Value: 3},
		&UInteger{Value: 7},
		&Float{Value: 1.5},
		&Char{Value: 'x'},
		&Byte{Value: 0xff},
		TRUE,
		NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}}),
		StringToList("hi"),
		&Tuple{Elements: []Object{&Integer{Value: 1}, &Char{Value: 'a'}}},
		UnitValue(),
		&Function{Name: "inc", Params: []Param{{Name: "x", Type: typesystem.Int}}, ReturnType: typesystem.Int},
		&Algebraic{Kind: Sum, TypeName: "Option", Tag: "Some", TypeArgs: []typesystem.Type{typesystem.Int},
			Fields: map[string]Object{"value": &Integer{Value: 4}}},
		&Alias{Name: typesystem.Single("Meters"), Value: &Float{Value: 2}},
		NewReference(&Integer{Value: 9}),
		newPromise("work", typesystem.Int),
	}
}

func TestRuntimeTypeIsDeterministic(t *testing.T) {
	for _, v := range sampleValues() {
		first := v.RuntimeType()
		second := v.RuntimeType()
		if first.String() != second.String() || !typesystem.Equal(first, second) {
			t.Errorf("%s: RuntimeType() not stable: %s vs %s", v.Inspect(), first, second)
		}
	}
}

func TestRuntimeTypeShapes(t *testing.T) {
	tests := []struct {
		val  Object
		want string
	}{
		{&Integer{Value: 1}, "Int"},
		{NewList([]Object{&Integer{Value: 1}}), "(List Int)"},
		{NewList(nil), "(List Any)"},
		{StringToList("abc"), "(List Char)"},
		{&Tuple{Elements: []Object{&Integer{Value: 1}, &Char{Value: 'a'}}}, "(Int, Char)"},
		{UnitValue(), "()"},
		{&Function{Params: []Param{{Name: "a", Type: typesystem.Int}, {Name: "b"}}, ReturnType: typesystem.Bool}, "fn(Int, Any) -> Bool"},
		{&Algebraic{Kind: Product, TypeName: "Point"}, "Point"},
		{&Algebraic{Kind: Sum, TypeName: "Option", Tag: "None", TypeArgs: []typesystem.Type{typesystem.Int}}, "(Option Int)"},
		{&Alias{Name: typesystem.Single("Meters"), Value: &Float{Value: 1}}, "Meters"},
		{NewReference(&Float{Value: 1}), "&Float"},
		{newPromise("p", typesystem.Int), "(Promise Int)"},
	}
	for _, tt := range tests {
		if got := tt.val.RuntimeType().String(); got != tt.want {
			t.Errorf("RuntimeType(%s) = %s, want %s", tt.val.Inspect(), got, tt.want)
		}
	}

	alias := &Alias{Name: typesystem.Single("Meters"), Value: &Float{Value: 1}}
	if !typesystem.Equal(alias.RuntimeType(), typesystem.Float) {
		t.Error("alias should be Equal to its target type")
	}
}

func TestCloneNonDuplicable(t *testing.T) {
	for _, v := range []Object{NewReference(&Integer{Value: 1}), newPromise("p", nil)} {
		if _, err := v.Clone(); !errors.Is(err, ErrNonDuplicable) {
			t.Errorf("Clone(%s) error = %v, want ErrNonDuplicable", v.Type(), err)
		}
	}

	nested := NewList([]Object{NewReference(&Integer{Value: 1})})
	if _, err := nested.Clone(); !errors.Is(err, ErrNonDuplicable) {
		t.Errorf("cloning a list holding a reference: error = %v, want ErrNonDuplicable", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Algebraic{Kind: Product, TypeName: "Box", Fields: map[string]Object{
		"items": NewList([]Object{&Integer{Value: 1}}),
	}}
	c, err := orig.Clone()
	if err != nil {
		t.Fatalf("Clone() error: %v", err)
	}
	cp := c.(*Algebraic)
	cp.Fields["items"].(*List).Elements[0] = &Integer{Value: 99}

	if got := orig.Fields["items"].(*List).Elements[0].Inspect(); got != "1" {
		t.Errorf("original mutated through clone: %s", got)
	}
}

func TestFunctionCloneSharesClosure(t *testing.T) {
	closure := NewScope()
	fn := &Function{Name: "f", Params: []Param{{Name: "x"}}, Closure: closure}
	c, err := fn.Clone()
	if err != nil {
		t.Fatalf("Clone() error: %v", err)
	}
	cp := c.(*Function)
	if cp.Closure != closure {
		t.Error("function clone should share its closure scope")
	}
	cp.Params[0].Name = "y"
	if fn.Params[0].Name != "x" {
		t.Error("function clone should copy its parameter list")
	}
}

func TestCreateReference(t *testing.T) {
	ref := NewReference(&Integer{Value: 1})
	alias, err := CreateReference(ref)
	if err != nil {
		t.Fatalf("CreateReference() error: %v", err)
	}
	if !alias.SameCell(ref) {
		t.Fatal("alias should share the original cell")
	}
	alias.Store(&Integer{Value: 2})
	if got := ref.Load().Inspect(); got != "2" {
		t.Errorf("write through alias not visible: got %s", got)
	}

	if _, err := CreateReference(&Integer{Value: 1}); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("CreateReference(Int) error = %v, want ErrInvalidReference", err)
	}
	if _, err := CreateReference(nil); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("CreateReference(nil) error = %v, want ErrInvalidReference", err)
	}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		val  Object
		want string
	}{
		{&UInteger{Value: 3}, "3u"},
		{&Byte{Value: 10}, "0x0a"},
		{StringToList("hey"), `"hey"`},
		{NewList([]Object{&Integer{Value: 1}, &Integer{Value: 2}}), "[1, 2]"},
		{&Algebraic{Kind: Sum, TypeName: "Option", Tag: "Some", Fields: map[string]Object{"value": &Integer{Value: 4}}}, "Some(value: 4)"},
		{NewReference(&Char{Value: 'q'}), "&'q'"},
		{&Function{Name: "go", Spawn: true, Params: []Param{{Name: "n", Type: typesystem.Int}}}, "spawn fn go(n: Int) { ... }"},
	}
	for _, tt := range tests {
		if got := tt.val.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		val  Object
		want bool
	}{
		{TRUE, true},
		{FALSE, false},
		{&Integer{Value: 0}, false},
		{&Integer{Value: 3}, true},
		{NewReference(FALSE), false},
		{&Alias{Name: typesystem.Single("Flag"), Value: TRUE}, true},
		{UnitValue(), true},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsTruthy(tt.val); got != tt.want {
			t.Errorf("IsTruthy(%v) = %v, want %v", tt.val, got, tt.want)
		}
	}
}
