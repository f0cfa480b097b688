package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) (*Scheduler, *mockStore) {
	t.Helper()
	store := &mockStore{}
	registry := NewRegistry()
	require.NoError(t, RegisterDefaultWorkflows(registry, "09:00"))
	return NewScheduler(NewEngine(registry, store, nil)), store
}

func TestSchedulerAddDailyWorkflow(t *testing.T) {
	s, _ := newTestScheduler(t)

	require.NoError(t, s.AddDailyWorkflow(WorkflowDailyStats, "09:00"))
	assert.Equal(t, []string{WorkflowDailyStats}, s.ScheduledWorkflows())

	// Re-adding replaces the previous schedule instead of stacking
	require.NoError(t, s.AddDailyWorkflow(WorkflowDailyStats, "18:30"))
	assert.Len(t, s.ScheduledWorkflows(), 1)
}

func TestSchedulerAddDailyWorkflowInvalidTime(t *testing.T) {
	s, _ := newTestScheduler(t)

	tests := []string{"", "9am", "25:00", "10:60", "-1:30"}
	for _, tt := range tests {
		assert.Error(t, s.AddDailyWorkflow(WorkflowDailyStats, tt), "time %q", tt)
	}
	assert.Empty(t, s.ScheduledWorkflows())
}

func TestSchedulerRemoveWorkflow(t *testing.T) {
	s, _ := newTestScheduler(t)

	require.NoError(t, s.AddDailyWorkflow(WorkflowDailyStats, "09:00"))
	s.RemoveWorkflow(WorkflowDailyStats)
	assert.Empty(t, s.ScheduledWorkflows())

	// Removing an unscheduled workflow is a no-op
	s.RemoveWorkflow("ghost")
}

func TestSchedulerStartStopIdempotent(t *testing.T) {
	s, _ := newTestScheduler(t)

	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
}

func TestRunScheduledPersistsOutcome(t *testing.T) {
	s, store := newTestScheduler(t)

	// daily_stats with a nil notifier resolves to a degraded but
	// completed run
	s.runScheduled(WorkflowDailyStats)

	require.Len(t, store.executions, 1)
	assert.Equal(t, WorkflowDailyStats, store.executions[0].WorkflowID)
	assert.Equal(t, "completed", store.executions[0].Status)
}

func TestRunScheduledDisabledWorkflow(t *testing.T) {
	s, store := newTestScheduler(t)
	s.engine.Registry().SetEnabled(WorkflowDailyStats, false)

	s.runScheduled(WorkflowDailyStats)

	assert.Empty(t, store.executions)
}

func TestRunScheduledUnknownWorkflow(t *testing.T) {
	s, store := newTestScheduler(t)

	// Must not panic, the failure is logged
	s.runScheduled("ghost")

	assert.Empty(t, store.executions)
}
