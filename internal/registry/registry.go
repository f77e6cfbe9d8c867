// Package registry stores workflow definitions by ID for a single engine
// instance. Registration runs cycle validation; lookups are safe under
// concurrent executions.
package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/flowgrid/internal/dag"
	"github.com/vk/flowgrid/internal/workflow"
)

// Registry is the shared, read-mostly store of workflow definitions. It is
// written only at registration time and read on every execution, so a
// RWMutex keeps concurrent Execute calls cheap.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]*workflow.Definition
	order []string
}

// New creates an empty registry. Each registry is owned by its caller;
// tests can hold several independent instances.
func New() *Registry {
	return &Registry{
		defs: make(map[string]*workflow.Definition),
	}
}

// Register validates the definition and stores it. Step IDs must be unique
// within the definition and the dependency graph must be acyclic; a cycle
// aborts registration with *workflow.CycleError before anything is stored.
// An already-registered workflow ID is rejected with
// *workflow.DuplicateError rather than silently overwritten.
func (r *Registry) Register(def *workflow.Definition) error {
	seen := make(map[string]struct{}, len(def.Steps))
	for i := range def.Steps {
		if _, dup := seen[def.Steps[i].ID]; dup {
			return fmt.Errorf("workflow %q: duplicate step id %q", def.ID, def.Steps[i].ID)
		}
		seen[def.Steps[i].ID] = struct{}{}
	}

	if err := dag.Validate(def.ID, def.Steps); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; exists {
		return &workflow.DuplicateError{WorkflowID: def.ID}
	}

	slog.Debug("Registering workflow.", "workflow", def.ID, "steps", len(def.Steps))
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

// Get returns the definition registered under id, or false if absent.
func (r *Registry) Get(id string) (*workflow.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	return def, ok
}

// List returns all registered workflow IDs in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports how many workflows are registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}
