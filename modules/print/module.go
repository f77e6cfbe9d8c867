package print

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/workflow"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Run dumps the composed input to stdout and passes it through unchanged so
// downstream steps still see the data.
func Run(ctx context.Context, input workflow.Record) (workflow.Record, error) {
	slog.Info("Printing step input.", "keys", len(input))

	if len(input) == 0 {
		fmt.Println("      (empty)")
		return input, nil
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("      %s = %v\n", k, input[k])
	}

	return input, nil
}

// Register registers the action with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.Register("print", workflow.ActionFunc(Run))
}
