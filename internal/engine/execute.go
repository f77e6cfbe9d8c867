package engine

import (
	"context"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/workflow"
)

// stepOutcome carries one finished step attempt chain back to the
// coordinator loop.
type stepOutcome struct {
	idx    int
	result *workflow.StepResult
}

// Execute runs the workflow registered under workflowID against the given
// initial input and returns the resulting Execution record.
//
// It fails with *workflow.NotFoundError when the ID is unregistered and with
// *workflow.CircularDependencyError when a scheduling pass finds no runnable
// step while steps remain (possible only if the definition bypassed
// registration-time validation or carries dangling dependency references).
// Step failures are never returned as errors: they are normalized into the
// Execution, which comes back with status failed, the failing step's result,
// and the results of every step that finished before (or alongside) it.
func (e *Engine) Execute(ctx context.Context, workflowID string, input workflow.Record) (*workflow.Execution, error) {
	def, ok := e.registry.Get(workflowID)
	if !ok {
		return nil, &workflow.NotFoundError{WorkflowID: workflowID}
	}

	exec := workflow.NewExecution(workflowID, input, e.clock())
	logger := ctxlog.FromContext(ctx).With("workflow", workflowID, "execution", exec.ID)
	logger.Debug("Execution started.", "steps", len(def.Steps), "parallelism", e.parallelism)

	total := len(def.Steps)

	// Remaining dependency counters and the reverse adjacency used to
	// decrement them. Dangling references are counted but never decremented,
	// so a step that names one can never become runnable.
	remaining := make([]int, total)
	dependents := make(map[string][]int, total)
	for i := range def.Steps {
		remaining[i] = len(def.Steps[i].DependsOn)
		for _, depID := range def.Steps[i].DependsOn {
			dependents[depID] = append(dependents[depID], i)
		}
	}

	var ready []int
	for i := range def.Steps {
		if remaining[i] == 0 {
			ready = append(ready, i)
		}
	}

	// All scheduling state below is owned by this goroutine; workers only
	// run the step and report back on the channel.
	outputs := make(map[string]workflow.Record, total)
	completedOrder := make([]string, 0, total)
	done := make(chan stepOutcome)
	inFlight := 0
	failed := false

	// cursor is the declared index of the most recently dispatched step.
	// Dispatch resumes scanning after it and wraps to a fresh pass when the
	// current one is exhausted, so a step that unlocks at an earlier index
	// than steps still pending waits for the next pass.
	cursor := -1

	for {
		for !failed && len(ready) > 0 && inFlight < e.parallelism {
			var idx int
			idx, ready, cursor = takeNext(ready, cursor)
			step := &def.Steps[idx]
			in := composeInput(exec.Input, step, outputs)
			inFlight++
			go func(idx int, step *workflow.Step, in workflow.Record) {
				done <- stepOutcome{idx: idx, result: e.runStep(ctx, logger, step, in)}
			}(idx, step, in)
		}
		if inFlight == 0 {
			break
		}

		outcome := <-done
		inFlight--
		res := outcome.result
		exec.StepResults[res.StepID] = res

		if res.Status == workflow.StepFailed {
			// Fail fast: drain whatever is in flight, start nothing new.
			failed = true
			continue
		}
		if failed {
			// A sibling that was already running when another step failed.
			// Its result stays on record but no progress is made from it.
			continue
		}

		outputs[res.StepID] = res.Output
		completedOrder = append(completedOrder, res.StepID)
		for _, depIdx := range dependents[res.StepID] {
			remaining[depIdx]--
			if remaining[depIdx] == 0 {
				ready = insertOrdered(ready, depIdx)
			}
		}
	}

	if failed {
		exec.Status = workflow.StatusFailed
		exec.FinishedAt = e.clock()
		logger.Warn("Execution failed.", "completed", len(completedOrder), "total", total)
		return exec, nil
	}

	if len(completedOrder) < total {
		var stalled []string
		for i := range def.Steps {
			if _, ok := outputs[def.Steps[i].ID]; !ok {
				stalled = append(stalled, def.Steps[i].ID)
			}
		}
		return nil, &workflow.CircularDependencyError{WorkflowID: workflowID, Remaining: stalled}
	}

	exec.Output = e.aggregateOutput(def, completedOrder, outputs)
	exec.Status = workflow.StatusCompleted
	exec.FinishedAt = e.clock()
	logger.Debug("Execution completed.", "steps", total)
	return exec, nil
}

// composeInput builds a step's effective input: the execution input overlaid
// with each declared dependency's output, in declaration order, last write
// wins. The sources are never mutated, so composing twice with the same
// outputs yields the identical record.
func composeInput(base workflow.Record, step *workflow.Step, outputs map[string]workflow.Record) workflow.Record {
	in := base.Clone()
	for _, depID := range step.DependsOn {
		in.Overlay(outputs[depID])
	}
	return in
}

// aggregateOutput merges every step's output into the execution-level
// record. The serial baseline merges in completion order; concurrent runs
// merge in declared step order to stay deterministic.
func (e *Engine) aggregateOutput(def *workflow.Definition, completedOrder []string, outputs map[string]workflow.Record) workflow.Record {
	order := completedOrder
	if e.parallelism > 1 {
		order = make([]string, 0, len(def.Steps))
		for i := range def.Steps {
			order = append(order, def.Steps[i].ID)
		}
	}

	agg := make(workflow.Record)
	for _, id := range order {
		agg.Overlay(outputs[id])
	}
	return agg
}

// takeNext removes and returns the next ready index to dispatch. The ready
// slice is kept sorted ascending; selection takes the lowest index greater
// than the cursor, or wraps to the lowest index overall when the current
// scan pass has nothing left. The returned cursor is the chosen index.
func takeNext(ready []int, cursor int) (int, []int, int) {
	pos := 0
	for i, v := range ready {
		if v > cursor {
			pos = i
			break
		}
	}
	idx := ready[pos]
	ready = append(ready[:pos], ready[pos+1:]...)
	return idx, ready, idx
}

// insertOrdered inserts idx into a slice kept sorted ascending, so dispatch
// can locate its scan position with a single forward pass.
func insertOrdered(ready []int, idx int) []int {
	pos := len(ready)
	for i, v := range ready {
		if v > idx {
			pos = i
			break
		}
	}
	ready = append(ready, 0)
	copy(ready[pos+1:], ready[pos:])
	ready[pos] = idx
	return ready
}
