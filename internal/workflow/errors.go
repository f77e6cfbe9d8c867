package workflow

import "fmt"

// CycleError reports a dependency cycle found while validating a workflow.
// From and To are the two endpoints of the edge that closed the cycle; a
// self-dependency reports the same ID for both.
type CycleError struct {
	WorkflowID string
	From       string
	To         string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("workflow %q: dependency cycle between step %q and step %q", e.WorkflowID, e.From, e.To)
}

// NotFoundError reports an execute call against an unregistered workflow ID.
type NotFoundError struct {
	WorkflowID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workflow %q is not registered", e.WorkflowID)
}

// DuplicateError reports a registration attempt for an ID that already exists.
type DuplicateError struct {
	WorkflowID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("workflow %q is already registered", e.WorkflowID)
}

// CircularDependencyError is the engine's defense against executing a graph
// that bypassed validation: a scheduling pass found no runnable step while
// steps remain. It is an internal-consistency fault, not a step outcome.
type CircularDependencyError struct {
	WorkflowID string
	Remaining  []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("workflow %q: no runnable step among remaining %v; graph was not validated or is corrupted", e.WorkflowID, e.Remaining)
}
