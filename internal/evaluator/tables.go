package evaluator

import (
	"sort"
	"sync"

	"github.com/funvibe/tessera/internal/symbols"
	"github.com/funvibe/tessera/internal/typesystem"
)

type instanceKey struct {
	method  string
	typeKey string
}

type instanceEntry struct {
	class   string
	method  string
	forType typesystem.Type
	fn      *Function
}

// symbolTables holds the named-function, typeclass-instance and
// typeclass-default tables plus the typeclass registry. One set is created
// per root interpreter and shared by every clone.
type symbolTables struct {
	mu        sync.RWMutex
	functions map[string]*Function
	instances map[instanceKey]*instanceEntry
	order     []*instanceEntry // registration order, for the Equal scan
	defaults  map[string]*Function

	classes *symbols.Registry
}

func newSymbolTables() *symbolTables {
	return &symbolTables{
		functions: make(map[string]*Function),
		instances: make(map[instanceKey]*instanceEntry),
		defaults:  make(map[string]*Function),
		classes:   symbols.NewRegistry(),
	}
}

func (t *symbolTables) addFunction(name string, fn *Function) {
	t.mu.Lock()
	t.functions[name] = fn
	t.mu.Unlock()
}

func (t *symbolTables) function(name string) (*Function, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.functions[name]
	return fn, ok
}

func (t *symbolTables) addDefault(method string, fn *Function) {
	t.mu.Lock()
	t.defaults[method] = fn
	t.mu.Unlock()
}

func (t *symbolTables) defaultFor(method string) (*Function, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.defaults[method]
	return fn, ok
}

// addInstance registers fn as method for forType, replacing any earlier
// registration under the same dispatch key.
func (t *symbolTables) addInstance(class, method string, forType typesystem.Type, fn *Function) {
	entry := &instanceEntry{class: class, method: method, forType: forType, fn: fn}
	key := instanceKey{method: method, typeKey: typesystem.Key(forType)}

	t.mu.Lock()
	defer t.mu.Unlock()
	if old, ok := t.instances[key]; ok {
		for i, e := range t.order {
			if e == old {
				t.order = append(t.order[:i], t.order[i+1:]...)
				break
			}
		}
	}
	t.instances[key] = entry
	t.order = append(t.order, entry)
}

// instanceFor finds the implementation of method for argType. An exact
// dispatch key wins; otherwise the first registered instance whose type is
// Equal to argType is used, so an instance for (List a) serves (List Int).
func (t *symbolTables) instanceFor(method string, argType typesystem.Type) (*instanceEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e, ok := t.instances[instanceKey{method: method, typeKey: typesystem.Key(argType)}]; ok {
		return e, true
	}
	for _, e := range t.order {
		if e.method == method && typesystem.Equal(e.forType, argType) {
			return e, true
		}
	}
	return nil, false
}

// instanceTypes lists the dispatch keys registered for method.
func (t *symbolTables) instanceTypes(method string) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []string
	for k := range t.instances {
		if k.method == method {
			out = append(out, k.typeKey)
		}
	}
	sort.Strings(out)
	return out
}

func (t *symbolTables) functionNames() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.functions))
	for k := range t.functions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
