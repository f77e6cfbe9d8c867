package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/vk/flowgrid/internal/workflow"
)

// runStep invokes a step's action under its retry policy and returns the
// terminal StepResult. A retryable step with MaxRetries = m is attempted up
// to m+1 times; the wait before re-attempting grows linearly with the number
// of failures so far. Only the last error survives into the result: earlier
// failed attempts leave no trace beyond the timestamps.
func (e *Engine) runStep(ctx context.Context, logger *slog.Logger, step *workflow.Step, input workflow.Record) *workflow.StepResult {
	res := &workflow.StepResult{
		StepID:    step.ID,
		Status:    workflow.StepRunning,
		StartedAt: e.clock(),
	}

	maxAttempts := 1
	if step.Retryable && step.MaxRetries > 0 {
		maxAttempts = step.MaxRetries + 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			// Backoff suspends only this step's goroutine; unrelated steps
			// keep running when parallelism allows.
			delay := backoff(attempt-1, e.retryBase)
			logger.Debug("Backing off before retry.", "step", step.ID, "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				lastErr = ctx.Err()
				return failResult(res, lastErr, e.clock())
			}
		}

		out, err := e.invoke(ctx, step, input)
		if err == nil {
			res.Status = workflow.StepCompleted
			res.Output = out
			res.FinishedAt = e.clock()
			return res
		}
		lastErr = err
		logger.Warn("Step attempt failed.", "step", step.ID, "attempt", attempt, "max_attempts", maxAttempts, "error", err)
	}

	return failResult(res, lastErr, e.clock())
}

// invoke runs the action itself, guarding against a step registered without
// one and normalizing a nil output to an empty record.
func (e *Engine) invoke(ctx context.Context, step *workflow.Step, input workflow.Record) (out workflow.Record, err error) {
	if step.Action == nil {
		return nil, &missingActionError{stepID: step.ID}
	}
	out, err = step.Action.Run(ctx, input)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = workflow.Record{}
	}
	return out, nil
}

// backoff returns the linear backoff delay after the given number of failed
// attempts.
func backoff(failures int, base time.Duration) time.Duration {
	return time.Duration(failures) * base
}

func failResult(res *workflow.StepResult, err error, now time.Time) *workflow.StepResult {
	res.Status = workflow.StepFailed
	res.Error = err.Error()
	res.FinishedAt = now
	return res
}

type missingActionError struct {
	stepID string
}

func (e *missingActionError) Error() string {
	return "step " + e.stepID + " has no action"
}
