package evaluator

import (
	"context"

	"github.com/funvibe/tessera/internal/typesystem"
)

// CallFunction resolves name against args and invokes the result. args are
// the caller's own variables, so reference parameters can alias them.
func (interp *Interpreter) CallFunction(ctx context.Context, scope *Scope, name string, args []*Variable) (Object, error) {
	fn, err := interp.ResolveFunction(scope, name, args)
	if err != nil {
		return nil, err
	}
	return interp.Invoke(ctx, fn, args)
}

// Call is CallFunction for plain values. Each value is bound immutably, so
// functions with reference parameters cannot be called this way.
func (interp *Interpreter) Call(ctx context.Context, name string, values ...Object) (Object, error) {
	args := make([]*Variable, len(values))
	for i, val := range values {
		v, err := NewVariable(nil, val)
		if err != nil {
			return nil, withName(err, name)
		}
		args[i] = v
	}
	return interp.CallFunction(ctx, nil, name, args)
}

// Invoke binds args to fn's parameters and runs its body. A spawn function
// runs on a new goroutine with its own interpreter clone and a detached copy
// of its closure, and Invoke returns a *Promise at once.
func (interp *Interpreter) Invoke(ctx context.Context, fn *Function, args []*Variable) (Object, error) {
	name := fn.displayName()
	closure := fn.Closure
	if fn.Spawn {
		detached, err := closure.Detached()
		if err != nil {
			return nil, withName(err, name)
		}
		closure = detached
	}
	local, err := bindParams(fn, closure, args)
	if err != nil {
		return nil, err
	}

	if fn.Spawn {
		return interp.spawn(ctx, fn, local), nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := interp.evalBody(ctx, fn, local)
	if err != nil {
		return nil, withName(err, name)
	}
	if err := typesystem.Check(fn.ReturnType, val.RuntimeType()); err != nil {
		return nil, mismatch(name, err, "return value")
	}
	return val, nil
}

// bindParams type-checks args and binds them in a scope enclosed by closure.
// Reference parameters alias the caller's cell; all others receive a
// detached snapshot.
func bindParams(fn *Function, closure *Scope, args []*Variable) (*Scope, error) {
	name := fn.displayName()
	if len(args) != len(fn.Params) {
		return nil, newError(ErrInvalidCall, name, "expects %d arguments, got %d", len(fn.Params), len(args))
	}

	local := NewEnclosedScope(closure)
	for i, p := range fn.Params {
		arg := args[i]
		if arg == nil {
			return nil, newError(ErrInvalidCall, name, "argument %d (%s) is missing", i+1, p.Name)
		}
		argType := arg.ValueType()
		if err := typesystem.Check(typesystem.OrAny(p.Type), argType); err != nil {
			return nil, mismatch(name, err, "argument %d (%s)", i+1, p.Name)
		}

		if p.IsReference() {
			if fn.Spawn {
				return nil, newError(ErrReferenceInThreadedCall, name, "parameter %s is a reference", p.Name)
			}
			ref, err := arg.GetMutable()
			if err != nil {
				return nil, newError(ErrImmutableAssignment, name, "reference parameter %s needs a mutable argument", p.Name)
			}
			alias, err := CreateReference(ref)
			if err != nil {
				return nil, withName(err, name)
			}
			local.Set(p.Name, &Variable{Declared: p.Type, value: alias})
			continue
		}

		snap, err := arg.GetImmutable()
		if err != nil {
			return nil, withName(err, name)
		}
		local.Set(p.Name, &Variable{Declared: p.Type, value: snap})
	}
	return local, nil
}

func (interp *Interpreter) spawn(ctx context.Context, fn *Function, local *Scope) *Promise {
	worker := interp.ForThread()
	p := newPromise(fn.displayName(), fn.ReturnType)
	worker.logger.Debug("spawned", "function", p.Function, "promise", p.ID.String())

	go func() {
		defer func() {
			if r := recover(); r != nil {
				worker.logger.Error("spawned body panicked", "function", p.Function, "promise", p.ID.String(), "panic", r)
				p.poison(r)
			}
		}()
		val, err := worker.evalBody(context.WithoutCancel(ctx), fn, local)
		if err != nil {
			p.fail(err)
			return
		}
		p.resolve(val)
	}()
	return p
}

func (interp *Interpreter) evalBody(ctx context.Context, fn *Function, local *Scope) (Object, error) {
	var (
		val Object
		err error
	)
	switch body := fn.Body.(type) {
	case NativeBody:
		val, err = body(ctx, interp, local)
	case nil:
		return nil, newError(ErrInvalidCall, fn.displayName(), "function has no body")
	default:
		if interp.evaluator == nil {
			return nil, newError(ErrInvalidCall, fn.displayName(), "no body evaluator configured")
		}
		val, err = interp.evaluator.EvalBody(ctx, interp, local, fn.Body)
	}
	if err != nil {
		return nil, err
	}
	if val == nil {
		val = UnitValue()
	}
	return val, nil
}
