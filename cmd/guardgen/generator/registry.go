package generator

import (
	"sync"

	"github.com/tlipoca9/guardgen/ir"
)

// Registry manages rule compilers.
type Registry struct {
	mu    sync.RWMutex
	rules map[ir.RuleKind]RuleFactory
}

// NewRegistry creates a new rule registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[ir.RuleKind]RuleFactory)}
}

// Register registers a rule factory, replacing any earlier one for the kind.
func (r *Registry) Register(kind ir.RuleKind, factory RuleFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[kind] = factory
}

// Get returns a rule instance by kind, or nil.
func (r *Registry) Get(kind ir.RuleKind) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if factory, ok := r.rules[kind]; ok {
		return factory()
	}
	return nil
}

// Kinds returns the registered kinds in ir.RuleKinds order.
func (r *Registry) Kinds() []ir.RuleKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []ir.RuleKind
	for _, k := range ir.RuleKinds {
		if _, ok := r.rules[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// DefaultRegistry is the global rule registry.
var DefaultRegistry = NewRegistry()
