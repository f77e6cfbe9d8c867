package dag

import (
	"github.com/vk/flowgrid/internal/workflow"
)

// Validate checks that the dependency relation over the given steps is
// acyclic. It returns nil when the steps admit at least one topological
// order, or a *workflow.CycleError naming both endpoints of the edge that
// closed a cycle.
//
// Dependency IDs that reference no declared step are ignored here: they can
// never be satisfied, but they cannot form a cycle either, and the engine
// handles the resulting stall separately. A step depending on itself is
// reported as a cycle with identical endpoints.
//
// The traversal is a depth-first search with two marks per step: "permanent"
// for steps fully explored in some earlier traversal and "temporary" for
// steps on the current recursion path. Reaching a temporary step means the
// path loops back on itself. Every step is explored at most once overall, so
// validation is linear in steps plus edges, and every disconnected component
// is covered.
func Validate(workflowID string, steps []workflow.Step) error {
	byID := make(map[string]*workflow.Step, len(steps))
	for i := range steps {
		byID[steps[i].ID] = &steps[i]
	}

	permanent := make(map[string]bool, len(steps))
	temporary := make(map[string]bool)

	var visit func(s *workflow.Step) error
	visit = func(s *workflow.Step) error {
		if permanent[s.ID] {
			return nil
		}
		temporary[s.ID] = true

		for _, depID := range s.DependsOn {
			if depID == s.ID {
				return &workflow.CycleError{WorkflowID: workflowID, From: s.ID, To: s.ID}
			}
			dep, ok := byID[depID]
			if !ok {
				// Dangling reference: never satisfiable, but not a cycle.
				continue
			}
			if temporary[depID] {
				// The dependency is already on our recursion path.
				return &workflow.CycleError{WorkflowID: workflowID, From: s.ID, To: depID}
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		delete(temporary, s.ID)
		permanent[s.ID] = true
		return nil
	}

	// Start a traversal from every step so disconnected components are
	// validated too, in declared order so reports are deterministic.
	for i := range steps {
		if !permanent[steps[i].ID] {
			if err := visit(&steps[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
