package evaluator

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/tessera/internal/config"
)

func TestDecodeYAML(t *testing.T) {
	tests := []struct {
		input string
		want  string
		typ   string
	}{
		{"42", "42", "Int"},
		{"1.5", "1.5", "Float"},
		{"true", "true", "Bool"},
		{"hello", `"hello"`, "(List Char)"},
		{"[1, 2, 3]", "[1, 2, 3]", "(List Int)"},
		{"~", "()", "()"},
		{"name: ada\nage: 36", `Record(age: 36, name: "ada")`, "Record"},
		{"18446744073709551615", "18446744073709551615u", "UInt"},
	}
	for _, tt := range tests {
		obj, err := DecodeYAML([]byte(tt.input))
		if err != nil {
			t.Errorf("DecodeYAML(%q): %v", tt.input, err)
			continue
		}
		if got := obj.Inspect(); got != tt.want {
			t.Errorf("DecodeYAML(%q) = %s, want %s", tt.input, got, tt.want)
		}
		if got := obj.RuntimeType().String(); got != tt.typ {
			t.Errorf("DecodeYAML(%q) type = %s, want %s", tt.input, got, tt.typ)
		}
	}

	if _, err := DecodeYAML([]byte("a: [1, 2")); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestEncodeYAML(t *testing.T) {
	rec := NewRecord(map[string]Object{
		"name": StringToList("ada"),
		"tags": NewList([]Object{&Integer{Value: 1}, NewReference(&Integer{Value: 2})}),
	})
	out, err := EncodeYAML(rec)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(out)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := back.Inspect(), `Record(name: "ada", tags: [1, 2])`; got != want {
		t.Errorf("round trip = %s, want %s", got, want)
	}

	none := &Algebraic{Kind: Sum, TypeName: "Option", Tag: "None"}
	out, err = EncodeYAML(none)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(out)) != "None" {
		t.Errorf("EncodeYAML(None) = %q", out)
	}

	if _, err := EncodeYAML(&Function{Name: "f"}); err == nil {
		t.Error("expected an error encoding a function")
	}
}

func TestSeedGlobalsFromConfig(t *testing.T) {
	cfg, err := config.ParseConfig([]byte(`
globals:
  shared:
    version: 3
  mutable:
    counter: 0
  local:
    scratch: [1, 2, 3]
`), "tessera.yaml")
	if err != nil {
		t.Fatal(err)
	}
	interp := newTestInterpreter(t, cfg)

	for tier, want := range map[Tier][]string{
		SharedImmutable: {"version"},
		SharedMutable:   {"counter"},
		ThreadLocal:     {"scratch"},
	} {
		if got := interp.GlobalNames(tier); !reflect.DeepEqual(got, want) {
			t.Errorf("GlobalNames(%s) = %v, want %v", tier, got, want)
		}
	}

	if err := interp.AssignVariable(nil, "version", &Integer{Value: 4}); !errors.Is(err, ErrImmutableAssignment) {
		t.Errorf("assign version: error = %v, want ErrImmutableAssignment", err)
	}
	if err := interp.AssignVariable(nil, "counter", &Integer{Value: 1}); err != nil {
		t.Errorf("assign counter: %v", err)
	}
	v, err := interp.LookupVariable(nil, "scratch")
	if err != nil {
		t.Fatal(err)
	}
	if got := derefValue(v.Value()).Inspect(); got != "[1, 2, 3]" {
		t.Errorf("scratch = %s", got)
	}

	// Clones share the seeded shared tiers but not the thread-local one.
	clone := interp.ForThread()
	if _, err := clone.LookupVariable(nil, "version"); err != nil {
		t.Errorf("clone lookup version: %v", err)
	}
	if _, err := clone.LookupVariable(nil, "scratch"); !errors.Is(err, ErrUnboundName) {
		t.Errorf("clone lookup scratch: error = %v, want ErrUnboundName", err)
	}
}
