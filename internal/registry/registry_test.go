package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()

	def := &workflow.Definition{ID: "etl", Name: "ETL", Steps: []workflow.Step{{ID: "a"}}}
	require.NoError(t, r.Register(def))

	got, ok := r.Get("etl")
	require.True(t, ok)
	assert.Same(t, def, got)

	_, ok = r.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&workflow.Definition{ID: "etl"}))

	err := r.Register(&workflow.Definition{ID: "etl"})
	var dupErr *workflow.DuplicateError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "etl", dupErr.WorkflowID)
	assert.Equal(t, 1, r.Len())
}

func TestRegisterRejectsCycles(t *testing.T) {
	r := New()
	err := r.Register(&workflow.Definition{ID: "g1", Steps: []workflow.Step{
		{ID: "x", DependsOn: []string{"y"}},
		{ID: "y", DependsOn: []string{"x"}},
	}})

	var cycleErr *workflow.CycleError
	require.ErrorAs(t, err, &cycleErr)

	// The workflow must not have been stored.
	_, ok := r.Get("g1")
	assert.False(t, ok)
	assert.Empty(t, r.List())
}

func TestRegisterRejectsDuplicateStepIDs(t *testing.T) {
	r := New()
	err := r.Register(&workflow.Definition{ID: "wf", Steps: []workflow.Step{
		{ID: "a"},
		{ID: "a"},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate step id")
	assert.Equal(t, 0, r.Len())
}

func TestListPreservesRegistrationOrder(t *testing.T) {
	r := New()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, r.Register(&workflow.Definition{ID: id}))
	}
	assert.Equal(t, []string{"c", "a", "b"}, r.List())
}

func TestConcurrentRegisterAndGet(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("wf-%d", i)
			assert.NoError(t, r.Register(&workflow.Definition{ID: id}))
			_, ok := r.Get(id)
			assert.True(t, ok)
			r.List()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 32, r.Len())
}
