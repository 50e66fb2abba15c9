package evaluator

import (
	"context"
	"log/slog"
	"os"

	"github.com/funvibe/tessera/internal/config"
	"github.com/funvibe/tessera/internal/symbols"
	"github.com/funvibe/tessera/internal/typesystem"
	"github.com/google/uuid"
)

// BodyEvaluator executes a function body handle against a bound local scope.
// It is called synchronously and from spawned goroutines.
type BodyEvaluator interface {
	EvalBody(ctx context.Context, interp *Interpreter, scope *Scope, body Body) (Object, error)
}

// BodyEvaluatorFunc adapts a plain function to BodyEvaluator.
type BodyEvaluatorFunc func(ctx context.Context, interp *Interpreter, scope *Scope, body Body) (Object, error)

func (f BodyEvaluatorFunc) EvalBody(ctx context.Context, interp *Interpreter, scope *Scope, body Body) (Object, error) {
	return f(ctx, interp, scope, body)
}

// Interpreter ties the symbol tables and global tiers together. The tables
// and shared tiers are shared by every clone made with ForThread; the
// thread-local tier is not. A single Interpreter is meant to be driven by
// one goroutine at a time.
type Interpreter struct {
	ThreadID uuid.UUID

	tables    *symbolTables
	globals   *globalStore
	resolvers []Resolver
	evaluator BodyEvaluator
	cfg       *config.Config
	logger    *slog.Logger
	base      *slog.Logger // logger without the thread attribute
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithEvaluator sets the evaluator used for non-native function bodies.
func WithEvaluator(ev BodyEvaluator) Option {
	return func(i *Interpreter) { i.evaluator = ev }
}

// WithLogger overrides the logger built from the logging config.
func WithLogger(l *slog.Logger) Option {
	return func(i *Interpreter) { i.logger = l }
}

// WithResolvers replaces the function resolver chain.
func WithResolvers(rs ...Resolver) Option {
	return func(i *Interpreter) { i.resolvers = rs }
}

// New creates a root interpreter. A nil cfg uses config.Default(). Globals
// listed in cfg are declared before New returns.
func New(cfg *config.Config, opts ...Option) (*Interpreter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	interp := &Interpreter{
		ThreadID:  uuid.New(),
		tables:    newSymbolTables(),
		resolvers: DefaultResolvers(),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(interp)
	}
	if interp.logger == nil {
		interp.logger = config.NewLogger(os.Stderr, cfg.Logging)
	}
	interp.base = interp.logger
	interp.logger = interp.base.With("thread", interp.ThreadID.String())
	interp.globals = newGlobalStore(newSharedGlobals(cfg.Locking, interp.logger))

	if err := SeedGlobals(interp, cfg.Globals); err != nil {
		return nil, err
	}
	return interp, nil
}

// ForThread returns a clone for another goroutine. It shares every table
// and both shared global tiers but starts with an empty thread-local tier.
func (interp *Interpreter) ForThread() *Interpreter {
	id := uuid.New()
	clone := &Interpreter{
		ThreadID:  id,
		tables:    interp.tables,
		globals:   interp.globals.forThread(),
		resolvers: interp.resolvers,
		evaluator: interp.evaluator,
		cfg:       interp.cfg,
		logger:    interp.base.With("thread", id.String()),
		base:      interp.base,
	}
	interp.logger.Debug("interpreter cloned", "clone", id.String())
	return clone
}

func (interp *Interpreter) Config() *config.Config { return interp.cfg }
func (interp *Interpreter) Logger() *slog.Logger   { return interp.logger }

// AddFunction registers fn under name in the named-function table.
func (interp *Interpreter) AddFunction(name string, fn *Function) error {
	if fn == nil {
		return newError(ErrInvalidCall, name, "cannot register a nil function")
	}
	if fn.Name == "" {
		fn.Name = name
	}
	interp.tables.addFunction(name, fn)
	return nil
}

// TypeclassMethod is one method of a typeclass declaration. A nil Default
// makes the method abstract.
type TypeclassMethod struct {
	Name      string
	Signature typesystem.Type
	Default   *Function
}

// InstanceMethod is one method body of a typeclass instance.
type InstanceMethod struct {
	Name     string
	Function *Function
}

// AddTypeclass records class and its method signatures. Default bodies are
// callable immediately, before any instance exists.
func (interp *Interpreter) AddTypeclass(class string, methods []TypeclassMethod) error {
	decl := make([]symbols.Method, len(methods))
	for i, m := range methods {
		if m.Default != nil && m.Signature != nil {
			if err := typesystem.Check(m.Signature, m.Default.RuntimeType()); err != nil {
				return mismatch(m.Name, err, "default of %s", class)
			}
		}
		decl[i] = symbols.Method{Name: m.Name, Signature: m.Signature, HasDefault: m.Default != nil}
	}
	interp.tables.classes.Define(symbols.NewTypeclass(class, decl))

	for _, m := range methods {
		if m.Default == nil {
			continue
		}
		if m.Default.Name == "" {
			m.Default.Name = m.Name
		}
		interp.tables.addDefault(m.Name, m.Default)
	}
	interp.logger.Debug("typeclass registered", "class", class, "methods", len(methods))
	return nil
}

// AddTypeclassInstance registers the methods of class for forType. Every
// abstract method must be implemented and every body must fit its signature.
func (interp *Interpreter) AddTypeclassInstance(class string, forType typesystem.Type, methods []InstanceMethod) error {
	tc, ok := interp.tables.classes.Lookup(class)
	if !ok {
		return newError(ErrUnknownTypeclass, class, "no typeclass declared with this name")
	}

	names := make([]string, len(methods))
	for i, m := range methods {
		if m.Function == nil {
			return newError(ErrInvalidInstance, m.Name, "%s for %s has no body", class, typeName(forType))
		}
		names[i] = m.Name
	}
	if extra := tc.Undeclared(names); len(extra) > 0 {
		return newError(ErrInvalidInstance, extra[0], "not a method of %s", class)
	}
	if missing := tc.Missing(names); len(missing) > 0 {
		return newError(ErrInvalidInstance, missing[0], "%s for %s leaves this method unimplemented", class, typeName(forType))
	}
	for _, m := range methods {
		sig, _ := tc.Signature(m.Name)
		if err := typesystem.Check(sig, m.Function.RuntimeType()); err != nil {
			return mismatch(m.Name, err, "%s for %s", class, typeName(forType))
		}
	}

	for _, m := range methods {
		if m.Function.Name == "" {
			m.Function.Name = m.Name
		}
		interp.tables.addInstance(class, m.Name, forType, m.Function)
	}
	interp.logger.Debug("instance registered", "class", class, "type", typeName(forType))
	return nil
}

// DeclareGlobal binds name in tier. Thread-local and shared-mutable
// globals are reassignable; shared-immutable ones never change again.
func (interp *Interpreter) DeclareGlobal(name string, tier Tier, declared typesystem.Type, value Object) error {
	if err := interp.globals.declare(name, tier, declared, value); err != nil {
		return err
	}
	interp.logger.Debug("global declared", "name", name, "tier", tier.String())
	return nil
}

// LookupVariable resolves name for reading: local scope, thread-local,
// shared-immutable, then shared-mutable. Shared globals come back as
// detached snapshots.
func (interp *Interpreter) LookupVariable(scope *Scope, name string) (*Variable, error) {
	if v, ok := scope.Get(name); ok {
		return v, nil
	}
	v, ok, err := interp.globals.lookup(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, newError(ErrUnboundName, name, "no variable with this name")
	}
	return v, nil
}

// AssignVariable writes val to name. Writes prefer the most global tier:
// shared-mutable, shared-immutable (always an error), thread-local, then
// the local scope. This is deliberately not the reverse of LookupVariable.
func (interp *Interpreter) AssignVariable(scope *Scope, name string, val Object) error {
	if handled, err := interp.globals.assign(name, val); handled {
		return err
	}
	if scope != nil {
		if found, err := scope.Update(name, val); found {
			return err
		}
	}
	return newError(ErrUnboundName, name, "no variable with this name")
}

// WithMutableGlobal runs fn while holding the lock of the shared-mutable
// global name, for read-modify-write updates. fn must read and write through
// the Variable it is given: looking up, assigning or redeclaring name through
// this interpreter while fn runs fails with ErrInvalidCall.
func (interp *Interpreter) WithMutableGlobal(name string, fn func(*Variable) error) error {
	return interp.globals.withMutable(name, fn)
}

// GlobalNames lists the globals declared in tier, sorted.
func (interp *Interpreter) GlobalNames(tier Tier) []string {
	return interp.globals.names(tier)
}

// FunctionNames lists the named-function table, sorted.
func (interp *Interpreter) FunctionNames() []string {
	return interp.tables.functionNames()
}

// Typeclasses lists the registered typeclass names, sorted.
func (interp *Interpreter) Typeclasses() []string {
	return interp.tables.classes.Names()
}

// InstanceTypes lists the dispatch keys with an instance of method.
func (interp *Interpreter) InstanceTypes(method string) []string {
	return interp.tables.instanceTypes(method)
}
