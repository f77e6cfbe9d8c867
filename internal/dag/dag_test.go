package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func steps(defs ...workflow.Step) []workflow.Step { return defs }

func step(id string, deps ...string) workflow.Step {
	return workflow.Step{ID: id, DependsOn: deps}
}

func TestValidate(t *testing.T) {
	t.Run("empty step set has no cycles", func(t *testing.T) {
		assert.NoError(t, Validate("wf", nil))
	})

	t.Run("steps without edges have no cycles", func(t *testing.T) {
		assert.NoError(t, Validate("wf", steps(step("a"), step("b"))))
	})

	t.Run("linear chain is valid", func(t *testing.T) {
		assert.NoError(t, Validate("wf", steps(step("a"), step("b", "a"), step("c", "b"))))
	})

	t.Run("diamond is valid", func(t *testing.T) {
		assert.NoError(t, Validate("wf", steps(
			step("a"),
			step("b", "a"),
			step("c", "a"),
			step("d", "b", "c"),
		)))
	})

	t.Run("two step cycle reports both endpoints", func(t *testing.T) {
		err := Validate("g1", steps(step("x", "y"), step("y", "x")))
		require.Error(t, err)

		var cycleErr *workflow.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, "g1", cycleErr.WorkflowID)
		assert.ElementsMatch(t, []string{"x", "y"}, []string{cycleErr.From, cycleErr.To})
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		err := Validate("wf", steps(step("a", "a")))
		var cycleErr *workflow.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.Equal(t, "a", cycleErr.From)
		assert.Equal(t, "a", cycleErr.To)
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		err := Validate("wf", steps(
			step("a", "c"),
			step("b", "a"),
			step("c", "b"),
		))
		var cycleErr *workflow.CycleError
		require.ErrorAs(t, err, &cycleErr)
	})

	t.Run("cycle in a disconnected component is found", func(t *testing.T) {
		err := Validate("wf", steps(
			step("a"),
			step("b", "a"),
			step("p", "q"),
			step("q", "p"),
		))
		var cycleErr *workflow.CycleError
		require.ErrorAs(t, err, &cycleErr)
		assert.ElementsMatch(t, []string{"p", "q"}, []string{cycleErr.From, cycleErr.To})
	})

	t.Run("dangling dependency is not a cycle", func(t *testing.T) {
		assert.NoError(t, Validate("wf", steps(step("a", "ghost"))))
	})

	t.Run("shared dependency is explored once", func(t *testing.T) {
		// b and c both depend on a; the second traversal must treat a as
		// already explored rather than part of a cycle.
		assert.NoError(t, Validate("wf", steps(
			step("a"),
			step("b", "a"),
			step("c", "a", "b"),
		)))
	})
}
