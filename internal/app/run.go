package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/workflow"
)

// Run executes the selected workflow, or every registered workflow in
// registration order when none is selected. The first failed execution
// aborts the run with an error naming the failing step.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.healthCheckServer()
		defer a.closeHealthCheckServer()
	}

	ids := a.registry.List()
	if a.config.WorkflowID != "" {
		ids = []string{a.config.WorkflowID}
	}
	if len(ids) == 0 {
		a.logger.Warn("No workflows found, nothing to execute.")
		return nil
	}

	a.logger.Info("Action handlers registered.", "names", a.handlers.Names())

	for _, id := range ids {
		a.logger.Info("Starting execution.", "workflow", id)
		exec, err := a.engine.Execute(ctx, id, a.config.Input)
		if err != nil {
			return fmt.Errorf("execution of workflow %q failed: %w", id, err)
		}
		a.report(exec)
		if exec.Status == workflow.StatusFailed {
			return fmt.Errorf("workflow %q failed: %s", id, failedStepMessage(exec))
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// report logs per-step outcomes and prints the aggregate output.
func (a *App) report(exec *workflow.Execution) {
	for _, res := range exec.StepResults {
		a.logger.Info("Step finished.",
			"workflow", exec.WorkflowID,
			"step", res.StepID,
			"status", res.Status,
			"duration", res.FinishedAt.Sub(res.StartedAt),
		)
	}
	a.logger.Info("Execution finished.",
		"workflow", exec.WorkflowID,
		"execution", exec.ID,
		"status", exec.Status,
		"duration", exec.FinishedAt.Sub(exec.StartedAt),
	)

	if exec.Status != workflow.StatusCompleted {
		return
	}

	keys := make([]string, 0, len(exec.Output))
	for k := range exec.Output {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(a.outW, "workflow %s output:\n", exec.WorkflowID)
	for _, k := range keys {
		fmt.Fprintf(a.outW, "  %s = %v\n", k, exec.Output[k])
	}
}

// failedStepMessage extracts the failing step's error for the run summary.
func failedStepMessage(exec *workflow.Execution) string {
	for _, res := range exec.StepResults {
		if res.Status == workflow.StepFailed {
			return fmt.Sprintf("step %q: %s", res.StepID, res.Error)
		}
	}
	return "unknown step failure"
}
