package evaluator

import (
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/funvibe/tessera/internal/config"
	"github.com/funvibe/tessera/internal/typesystem"
)

// Tier selects where a global variable lives.
type Tier int

const (
	// ThreadLocal globals are private to one interpreter clone.
	ThreadLocal Tier = iota
	// SharedImmutable globals are visible to every clone and never change.
	SharedImmutable
	// SharedMutable globals are visible to every clone; each entry has its own lock.
	SharedMutable
)

func (t Tier) String() string {
	switch t {
	case ThreadLocal:
		return "thread-local"
	case SharedImmutable:
		return "shared-immutable"
	case SharedMutable:
		return "shared-mutable"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// lockedEntry is one shared-mutable global. A holder that panics leaves the
// entry poisoned for good. holder is the store of the interpreter currently
// inside the lock.
type lockedEntry struct {
	name     string
	mu       sync.Mutex
	poisoned atomic.Bool
	holder   atomic.Pointer[globalStore]
	variable *Variable
}

// sharedGlobals is created once per root interpreter and shared by pointer
// with every clone.
type sharedGlobals struct {
	mu        sync.RWMutex
	immutable map[string]*Variable
	mutable   map[string]*lockedEntry

	locking config.LockConfig
	logger  *slog.Logger
}

func newSharedGlobals(locking config.LockConfig, logger *slog.Logger) *sharedGlobals {
	return &sharedGlobals{
		immutable: make(map[string]*Variable),
		mutable:   make(map[string]*lockedEntry),
		locking:   locking,
		logger:    logger,
	}
}

// globalStore is the per-interpreter view of the three tiers. The
// thread-local map is owned by a single interpreter and is not locked.
type globalStore struct {
	local  map[string]*Variable
	shared *sharedGlobals
}

func newGlobalStore(shared *sharedGlobals) *globalStore {
	return &globalStore{local: make(map[string]*Variable), shared: shared}
}

// forThread shares both shared tiers and starts an empty thread-local tier.
func (g *globalStore) forThread() *globalStore {
	return newGlobalStore(g.shared)
}

func (g *globalStore) declare(name string, tier Tier, declared typesystem.Type, value Object) error {
	s := g.shared
	s.mu.RLock()
	_, frozen := s.immutable[name]
	entry := s.mutable[name]
	s.mu.RUnlock()
	if frozen {
		return newError(ErrImmutableAssignment, name, "already declared as a shared-immutable global")
	}

	switch tier {
	case ThreadLocal:
		v, err := NewMutableVariable(declared, value)
		if err != nil {
			return withName(err, name)
		}
		g.local[name] = v
		return nil

	case SharedImmutable:
		if entry != nil {
			return newError(ErrImmutableAssignment, name, "already declared as a shared-mutable global")
		}
		val, err := detach(value)
		if err != nil {
			return withName(err, name)
		}
		v, err := NewVariable(declared, val)
		if err != nil {
			return withName(err, name)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.immutable[name]; exists {
			return newError(ErrImmutableAssignment, name, "already declared as a shared-immutable global")
		}
		s.immutable[name] = v
		return nil

	case SharedMutable:
		v, err := NewMutableVariable(declared, value)
		if err != nil {
			return withName(err, name)
		}
		if entry != nil {
			return s.withEntry(g, entry, func(*Variable) error {
				entry.variable = v
				return nil
			})
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, exists := s.immutable[name]; exists {
			return newError(ErrImmutableAssignment, name, "already declared as a shared-immutable global")
		}
		if _, exists := s.mutable[name]; exists {
			return newError(ErrInvalidCall, name, "concurrent declaration of a shared-mutable global")
		}
		s.mutable[name] = &lockedEntry{name: name, variable: v}
		return nil
	}
	return newError(ErrInvalidCall, name, "unknown global tier %s", tier)
}

// lookup searches thread-local, shared-immutable, then shared-mutable.
// Shared tiers hand out detached snapshots.
func (g *globalStore) lookup(name string) (*Variable, bool, error) {
	if v, ok := g.local[name]; ok {
		return v, true, nil
	}

	s := g.shared
	s.mu.RLock()
	frozen, isFrozen := s.immutable[name]
	entry := s.mutable[name]
	s.mu.RUnlock()

	if isFrozen {
		snap, err := frozen.Snapshot()
		if err != nil {
			return nil, true, withName(err, name)
		}
		return snap, true, nil
	}
	if entry != nil {
		var snap *Variable
		err := s.withEntry(g, entry, func(v *Variable) error {
			var err error
			snap, err = v.Snapshot()
			return err
		})
		if err != nil {
			return nil, true, withName(err, name)
		}
		return snap, true, nil
	}
	return nil, false, nil
}

// assign writes val in the order shared-mutable, shared-immutable (which
// always fails), thread-local. It reports whether any tier holds name.
func (g *globalStore) assign(name string, val Object) (bool, error) {
	s := g.shared
	s.mu.RLock()
	entry := s.mutable[name]
	_, isFrozen := s.immutable[name]
	s.mu.RUnlock()

	if entry != nil {
		err := s.withEntry(g, entry, func(v *Variable) error {
			return v.AssignValue(val)
		})
		return true, withName(err, name)
	}
	if isFrozen {
		return true, newError(ErrImmutableAssignment, name, "cannot assign to a shared-immutable global")
	}
	if v, ok := g.local[name]; ok {
		return true, withName(v.AssignValue(val), name)
	}
	return false, nil
}

// withMutable runs fn with the shared-mutable entry for name locked.
func (g *globalStore) withMutable(name string, fn func(*Variable) error) error {
	g.shared.mu.RLock()
	entry := g.shared.mutable[name]
	g.shared.mu.RUnlock()
	if entry == nil {
		return newError(ErrUnboundName, name, "no shared-mutable global")
	}
	return withName(g.shared.withEntry(g, entry, fn), name)
}

func (g *globalStore) names(tier Tier) []string {
	var out []string
	switch tier {
	case ThreadLocal:
		for k := range g.local {
			out = append(out, k)
		}
	case SharedImmutable:
		g.shared.mu.RLock()
		for k := range g.shared.immutable {
			out = append(out, k)
		}
		g.shared.mu.RUnlock()
	case SharedMutable:
		g.shared.mu.RLock()
		for k := range g.shared.mutable {
			out = append(out, k)
		}
		g.shared.mu.RUnlock()
	}
	sort.Strings(out)
	return out
}

// withEntry acquires entry on behalf of owner, runs fn and releases it. If fn
// panics the entry is poisoned and the panic continues up the holder's stack.
// An owner that already holds entry gets an error instead of a deadlock.
func (s *sharedGlobals) withEntry(owner *globalStore, entry *lockedEntry, fn func(*Variable) error) error {
	if entry.holder.Load() == owner {
		return newError(ErrInvalidCall, entry.name, "reentrant access to a shared-mutable global")
	}
	if err := s.acquire(entry); err != nil {
		return err
	}
	entry.holder.Store(owner)
	done := false
	defer func() {
		if !done {
			entry.poisoned.Store(true)
			s.logger.Error("shared-mutable global poisoned", "name", entry.name)
		}
		entry.holder.Store(nil)
		entry.mu.Unlock()
	}()
	err := fn(entry.variable)
	done = true
	return err
}

func (s *sharedGlobals) acquire(entry *lockedEntry) error {
	switch s.locking.Strategy {
	case config.LockBlock:
		entry.mu.Lock()
	case config.LockSpin:
		for !entry.mu.TryLock() {
			runtime.Gosched()
		}
	default:
		wait := s.locking.MinBackoff
		for !entry.mu.TryLock() {
			time.Sleep(wait)
			if wait *= 2; wait > s.locking.MaxBackoff {
				wait = s.locking.MaxBackoff
			}
		}
	}
	if entry.poisoned.Load() {
		entry.mu.Unlock()
		return newError(ErrPoisonedLock, entry.name, "a previous holder panicked mid-update")
	}
	return nil
}

func derefValue(val Object) Object {
	if r, ok := val.(*Reference); ok {
		return r.Load()
	}
	return val
}
