package workflow

import (
	"context"
	"fmt"
	"time"
)

// Action is the unit of work attached to a step. Implementations are opaque
// to the engine: they receive the step's composed input and either return an
// output record or fail with an error carrying a human-readable message.
type Action interface {
	Run(ctx context.Context, input Record) (Record, error)
}

// ActionFunc adapts a plain function to the Action interface.
type ActionFunc func(ctx context.Context, input Record) (Record, error)

// Run implements Action.
func (f ActionFunc) Run(ctx context.Context, input Record) (Record, error) {
	return f(ctx, input)
}

// Step is one node of a workflow's dependency graph.
type Step struct {
	// ID must be unique within the workflow.
	ID string
	// Name is the human-readable display name.
	Name string
	// Action performs the step's work.
	Action Action
	// DependsOn lists the IDs of steps whose outputs this step consumes.
	// It must not contain the step's own ID.
	DependsOn []string
	// Retryable allows the engine to retry the action on failure.
	Retryable bool
	// MaxRetries caps retry attempts after the first. Zero means no retry.
	MaxRetries int
}

// Definition is a named, ordered collection of steps forming a DAG. It is
// immutable once registered; the engine never mutates a stored definition.
type Definition struct {
	ID    string
	Name  string
	Steps []Step
}

// Step returns the step with the given ID, or nil if absent.
func (d *Definition) Step(id string) *Step {
	for i := range d.Steps {
		if d.Steps[i].ID == id {
			return &d.Steps[i]
		}
	}
	return nil
}

// Status enumerates the lifecycle states of an Execution. Pending and
// Cancelled exist for completeness of the state model; the engine itself
// only produces Running, Completed, and Failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// StepStatus enumerates the lifecycle states of a single step attempt chain.
type StepStatus string

const (
	StepRunning   StepStatus = "running"
	StepCompleted StepStatus = "completed"
	StepFailed    StepStatus = "failed"
)

// StepResult records the terminal outcome of one step within an Execution.
// Output is present iff the step completed; Error is present iff it failed.
// Retries that eventually succeed leave no trace beyond the timestamps.
type StepResult struct {
	StepID     string
	Status     StepStatus
	Output     Record
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Execution is the record of one run of a workflow against an initial input.
// StepResults holds an entry for every step that was attempted; steps never
// reached have no entry. Output is populated only on successful completion.
type Execution struct {
	ID          string
	WorkflowID  string
	Status      Status
	StepResults map[string]*StepResult
	StartedAt   time.Time
	FinishedAt  time.Time
	Input       Record
	Output      Record
}

// NewExecution creates a running Execution for the given workflow. The ID is
// derived from the workflow ID and a nanosecond timestamp, which is unique
// per call within one process.
func NewExecution(workflowID string, input Record, now time.Time) *Execution {
	return &Execution{
		ID:          fmt.Sprintf("%s-%d", workflowID, now.UnixNano()),
		WorkflowID:  workflowID,
		Status:      StatusRunning,
		StepResults: make(map[string]*StepResult),
		StartedAt:   now,
		Input:       input,
	}
}
