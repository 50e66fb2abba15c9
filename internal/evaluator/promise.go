package evaluator

import (
	"context"
	"fmt"
	"sync"

	"github.com/funvibe/tessera/internal/typesystem"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type PromiseStatus int

const (
	PromisePending PromiseStatus = iota
	PromiseResolved
	PromiseFailed
	PromisePoisoned
)

func (s PromiseStatus) String() string {
	switch s {
	case PromiseResolved:
		return "resolved"
	case PromiseFailed:
		return "failed"
	case PromisePoisoned:
		return "poisoned"
	default:
		return "pending"
	}
}

// Promise is the unique handle to a function body running on its own
// goroutine. It resolves exactly once and cannot be cloned.
type Promise struct {
	ID         uuid.UUID
	Function   string
	ReturnType typesystem.Type

	mu     sync.Mutex
	status PromiseStatus
	result Object
	err    error
	done   chan struct{}
}

func newPromise(function string, returnType typesystem.Type) *Promise {
	return &Promise{
		ID:         uuid.New(),
		Function:   function,
		ReturnType: returnType,
		done:       make(chan struct{}),
	}
}

func (p *Promise) Type() ObjectType { return PROMISE_OBJ }
func (p *Promise) Inspect() string {
	return fmt.Sprintf("<promise %s %s>", p.ID, p.Status())
}
func (p *Promise) RuntimeType() typesystem.Type {
	return typesystem.PromiseOf(typesystem.OrAny(p.ReturnType))
}
func (p *Promise) Clone() (Object, error) {
	return nil, newError(ErrNonDuplicable, p.Function, "a promise is a unique handle to in-flight work")
}

func (p *Promise) Status() PromiseStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Done is closed once the promise leaves the pending state.
func (p *Promise) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the spawned body finishes and returns its result.
// A body that panicked surfaces as ErrPoisonedPromise.
func (p *Promise) Await() (Object, error) {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.err
}

func (p *Promise) resolve(val Object) {
	if err := typesystem.Check(p.ReturnType, val.RuntimeType()); err != nil {
		p.complete(PromiseFailed, nil, mismatch(p.Function, err, "promised return value"))
		return
	}
	p.complete(PromiseResolved, val, nil)
}

func (p *Promise) fail(err error) {
	p.complete(PromiseFailed, nil, withName(err, p.Function))
}

func (p *Promise) poison(r interface{}) {
	p.complete(PromisePoisoned, nil, newError(ErrPoisonedPromise, p.Function, "spawned body panicked: %v", r))
}

func (p *Promise) complete(status PromiseStatus, val Object, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != PromisePending {
		return
	}
	p.status = status
	p.result = val
	p.err = err
	close(p.done)
}

// AwaitAll joins every promise and returns their results in order. The
// first failure is returned; ctx only bounds the wait, the spawned bodies
// keep running.
func AwaitAll(ctx context.Context, promises ...*Promise) ([]Object, error) {
	results := make([]Object, len(promises))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range promises {
		g.Go(func() error {
			select {
			case <-p.Done():
			case <-gctx.Done():
				return gctx.Err()
			}
			val, err := p.Await()
			if err != nil {
				return err
			}
			results[i] = val
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
