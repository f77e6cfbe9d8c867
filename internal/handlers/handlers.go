// Package handlers holds the named action implementations available to
// HCL-defined workflow steps. Built-in modules register themselves here at
// startup; the loader resolves each step's `action` attribute against it.
package handlers

import (
	"fmt"
	"log/slog"

	"github.com/vk/flowgrid/internal/workflow"
)

// Module is the interface built-in action packages implement to be
// registered with an application instance.
type Module interface {
	Register(h *Handlers)
}

// Handlers holds all the registered actions for one application instance.
type Handlers struct {
	all map[string]workflow.Action
}

// New creates and initializes an empty Handlers registry.
func New() *Handlers {
	return &Handlers{
		all: make(map[string]workflow.Action),
	}
}

// Register adds an action under the given name. Registering the same name
// twice is a programmer error, so it panics like the registration of any
// other process-wide handler would.
func (h *Handlers) Register(name string, action workflow.Action) {
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("action handler with name '%s' already registered", name))
	}
	slog.Debug("Registering action handler.", "name", name)
	h.all[name] = action
}

// Lookup returns the action registered under name, or false if absent.
func (h *Handlers) Lookup(name string) (workflow.Action, bool) {
	action, ok := h.all[name]
	return action, ok
}

// Names returns the registered handler names, for diagnostics.
func (h *Handlers) Names() []string {
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	return names
}
