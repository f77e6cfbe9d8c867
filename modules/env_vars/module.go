package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/workflow"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Run snapshots the process environment into the step output under "env".
func Run(ctx context.Context, input workflow.Record) (workflow.Record, error) {
	envMap := make(map[string]any)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}

	return workflow.Record{"env": envMap}, nil
}

// Register registers the action with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.Register("env_vars", workflow.ActionFunc(Run))
}
