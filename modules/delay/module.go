package delay

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/workflow"
)

// Module implements the handlers.Module interface for this package.
type Module struct{}

// Run pauses for the duration named by the "duration" input (Go duration
// syntax, e.g. "250ms"), honoring context cancellation.
func Run(ctx context.Context, input workflow.Record) (workflow.Record, error) {
	raw, ok := input["duration"].(string)
	if !ok {
		return nil, fmt.Errorf("delay requires a string 'duration' input")
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q: %w", raw, err)
	}

	ctxlog.FromContext(ctx).Debug("Delaying.", "duration", d)
	select {
	case <-time.After(d):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return workflow.Record{"slept": raw}, nil
}

// Register registers the action with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.Register("delay", workflow.ActionFunc(Run))
}
