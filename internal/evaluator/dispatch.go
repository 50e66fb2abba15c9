package evaluator

// Resolver is one source of callables. ResolveFunction consults resolvers in
// order and the first hit wins.
type Resolver interface {
	Name() string
	Resolve(interp *Interpreter, scope *Scope, name string, args []*Variable) (*Function, bool)
}

// DefaultResolvers returns the standard chain: named function, typeclass
// instance on the first argument, typeclass default, local closure.
func DefaultResolvers() []Resolver {
	return []Resolver{
		namedResolver{},
		instanceResolver{},
		defaultResolver{},
		closureResolver{},
	}
}

type namedResolver struct{}

func (namedResolver) Name() string { return "function" }
func (namedResolver) Resolve(interp *Interpreter, _ *Scope, name string, _ []*Variable) (*Function, bool) {
	return interp.tables.function(name)
}

type instanceResolver struct{}

func (instanceResolver) Name() string { return "instance" }
func (instanceResolver) Resolve(interp *Interpreter, _ *Scope, name string, args []*Variable) (*Function, bool) {
	if len(args) == 0 || args[0] == nil {
		return nil, false
	}
	e, ok := interp.tables.instanceFor(name, args[0].ValueType())
	if !ok {
		return nil, false
	}
	return e.fn, true
}

type defaultResolver struct{}

func (defaultResolver) Name() string { return "default" }
func (defaultResolver) Resolve(interp *Interpreter, _ *Scope, name string, _ []*Variable) (*Function, bool) {
	return interp.tables.defaultFor(name)
}

type closureResolver struct{}

func (closureResolver) Name() string { return "closure" }
func (closureResolver) Resolve(_ *Interpreter, scope *Scope, name string, _ []*Variable) (*Function, bool) {
	v, ok := scope.Get(name)
	if !ok {
		return nil, false
	}
	fn, ok := derefValue(v.Value()).(*Function)
	return fn, ok
}

// ResolveFunction finds the callable for name given the call's arguments.
func (interp *Interpreter) ResolveFunction(scope *Scope, name string, args []*Variable) (*Function, error) {
	for _, r := range interp.resolvers {
		if fn, ok := r.Resolve(interp, scope, name, args); ok {
			interp.logger.Debug("resolved function", "name", name, "source", r.Name())
			return fn, nil
		}
	}
	return nil, newError(ErrUnboundName, name, "no function, instance, default or closure with this name")
}
