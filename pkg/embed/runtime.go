// Package tessera is the embedding API for the tessera runtime core. Parsers
// and statement evaluators build types, values and body handles and drive
// the core through a Runtime.
package tessera

import (
	"context"
	"fmt"

	"github.com/funvibe/tessera/internal/config"
	"github.com/funvibe/tessera/internal/evaluator"
	"gopkg.in/yaml.v3"
)

// Runtime wraps a root interpreter.
type Runtime struct {
	interp *evaluator.Interpreter
}

// HostFunc is a Go function callable from the runtime. It receives the
// detached argument values in parameter order.
type HostFunc func(ctx context.Context, args []Object) (Object, error)

// New creates a runtime with the default configuration.
func New(opts ...Option) (*Runtime, error) {
	return NewWithConfig(nil, opts...)
}

// NewWithConfig creates a runtime from an already parsed configuration.
func NewWithConfig(cfg *Config, opts ...Option) (*Runtime, error) {
	interp, err := evaluator.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Runtime{interp: interp}, nil
}

// Load finds tessera.yaml in dir or one of its parents and creates a
// runtime from it. Without a config file the defaults are used.
func Load(dir string, opts ...Option) (*Runtime, error) {
	path, err := config.FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return New(opts...)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, opts...)
}

// Interpreter returns the root interpreter for direct access.
func (r *Runtime) Interpreter() *Interpreter {
	return r.interp
}

// Bind registers fn under name as a named function with the given
// parameters and return type.
func (r *Runtime) Bind(name string, params []Param, ret Type, fn HostFunc) error {
	body := evaluator.NativeBody(func(ctx context.Context, _ *evaluator.Interpreter, scope *evaluator.Scope) (Object, error) {
		args := make([]Object, len(params))
		for i, p := range params {
			v, ok := scope.Get(p.Name)
			if !ok {
				return nil, fmt.Errorf("%s: parameter %s not bound", name, p.Name)
			}
			args[i] = v.Value()
			if ref, isRef := args[i].(*Reference); isRef {
				args[i] = ref.Load()
			}
		}
		return fn(ctx, args)
	})
	return r.interp.AddFunction(name, &evaluator.Function{
		Name:       name,
		Params:     params,
		ReturnType: ret,
		Body:       body,
	})
}

// Call resolves and invokes name with plain values.
func (r *Runtime) Call(ctx context.Context, name string, args ...Object) (Object, error) {
	return r.interp.Call(ctx, name, args...)
}

// Set declares a global in tier.
func (r *Runtime) Set(name string, tier Tier, value Object) error {
	return r.interp.DeclareGlobal(name, tier, nil, value)
}

// Get reads a global, returning its current value.
func (r *Runtime) Get(name string) (Object, error) {
	v, err := r.interp.LookupVariable(nil, name)
	if err != nil {
		return nil, err
	}
	val := v.Value()
	if ref, ok := val.(*Reference); ok {
		return ref.Load(), nil
	}
	return val, nil
}

// ToValue converts a Go value to a runtime value through its YAML form.
func ToValue(v interface{}) (Object, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", v, err)
	}
	return evaluator.DecodeYAML(data)
}

// FromValue fills out from a runtime value through its YAML form.
func FromValue(obj Object, out interface{}) error {
	data, err := evaluator.EncodeYAML(obj)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", out, err)
	}
	return nil
}
