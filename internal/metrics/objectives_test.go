package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeObjectiveProgress(t *testing.T) {
	tasks := []Task{
		{Objective: "learn piano", Status: TaskStatusCompleted, DurationMinutes: minutes(30)},
		{Objective: "ship side project", Status: TaskStatusPending, DurationMinutes: minutes(120)},
		{Objective: "learn piano", Status: TaskStatusPending},
		{Objective: "", Status: TaskStatusCompleted, DurationMinutes: minutes(45)},
		{Objective: "learn piano", Status: TaskStatusCompleted, DurationMinutes: minutes(20)},
	}

	progress := ComputeObjectiveProgress(tasks)
	assert.Len(t, progress, 2, "tasks without an objective form no bucket")

	// First-seen order, not alphabetical, not by count.
	assert.Equal(t, "learn piano", progress[0].Objective)
	assert.Equal(t, 3, progress[0].Total)
	assert.Equal(t, 2, progress[0].Completed)
	assert.InDelta(t, 66.666, progress[0].Percentage, 0.001)
	// Minutes cover the whole group regardless of status, missing = 0.
	assert.Equal(t, 50, progress[0].Minutes)

	assert.Equal(t, "ship side project", progress[1].Objective)
	assert.Equal(t, 0.0, progress[1].Percentage)
	assert.Equal(t, 120, progress[1].Minutes)
}

func TestComputeObjectiveProgressEmpty(t *testing.T) {
	assert.Empty(t, ComputeObjectiveProgress(nil))
	assert.Empty(t, ComputeObjectiveProgress([]Task{{Status: TaskStatusCompleted}}))
}
