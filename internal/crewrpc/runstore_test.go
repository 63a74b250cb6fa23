package crewrpc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStoreBeginFinish(t *testing.T) {
	store := NewRunStore()

	id := store.Begin(MethodPlan)
	require.NotEmpty(t, id)

	run, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, MethodPlan, run.Method)
	assert.Equal(t, RunWorking, run.State)
	assert.False(t, run.StartedAt.IsZero())
	assert.True(t, run.FinishedAt.IsZero())

	store.Finish(id, nil)

	run, ok = store.Get(id)
	require.True(t, ok)
	assert.Equal(t, RunCompleted, run.State)
	assert.False(t, run.FinishedAt.IsZero())
	assert.Empty(t, run.Error)
}

func TestRunStoreFinishWithError(t *testing.T) {
	store := NewRunStore()

	id := store.Begin(MethodWrite)
	store.Finish(id, errors.New("crew exploded"))

	run, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, RunFailed, run.State)
	assert.Equal(t, "crew exploded", run.Error)
}

func TestRunStoreGetUnknown(t *testing.T) {
	store := NewRunStore()

	_, ok := store.Get("nope")
	assert.False(t, ok)

	// Finishing an unknown ID is a no-op.
	store.Finish("nope", nil)
}

func TestRunStoreListOrderAndFilter(t *testing.T) {
	store := NewRunStore()

	first := store.Begin(MethodPlan)
	second := store.Begin(MethodWrite)
	third := store.Begin(MethodWrite)

	store.Finish(first, nil)
	store.Finish(second, errors.New("boom"))

	all := store.List("")
	require.Len(t, all, 3)
	assert.Equal(t, first, all[0].ID)
	assert.Equal(t, second, all[1].ID)
	assert.Equal(t, third, all[2].ID)

	failed := store.List(RunFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, second, failed[0].ID)

	working := store.List(RunWorking)
	require.Len(t, working, 1)
	assert.Equal(t, third, working[0].ID)
}

func TestRunStoreGetReturnsCopy(t *testing.T) {
	store := NewRunStore()

	id := store.Begin(MethodPlan)
	run, ok := store.Get(id)
	require.True(t, ok)

	run.State = RunFailed

	again, ok := store.Get(id)
	require.True(t, ok)
	assert.Equal(t, RunWorking, again.State)
}
