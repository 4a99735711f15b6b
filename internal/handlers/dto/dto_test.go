package dto_test

import (
	"testing"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestFromTask тестирует представление задачи для клиента
func TestFromTask(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 0, 0, 0, time.Local)
	yesterday := models.DateOf(now.AddDate(0, 0, -1))
	today := models.DateOf(now)

	tests := []struct {
		name            string
		task            models.Task
		expectedDue     *string
		expectedOverdue bool
	}{
		{
			name: "success - no due date",
			task: models.Task{Priority: models.PriorityLow},
		},
		{
			name:            "success - past due is overdue",
			task:            models.Task{DueDate: &yesterday},
			expectedDue:     ptr("2026-05-19"),
			expectedOverdue: true,
		},
		{
			name:        "success - completed is never overdue",
			task:        models.Task{DueDate: &yesterday, Completed: true},
			expectedDue: ptr("2026-05-19"),
		},
		{
			name:        "success - due today is not overdue",
			task:        models.Task{DueDate: &today},
			expectedDue: ptr("2026-05-20"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.task.ID = uuid.New()
			resp := dto.FromTask(&tt.task, now)

			assert.Equal(t, tt.expectedDue, resp.DueDate)
			assert.Equal(t, tt.expectedOverdue, resp.IsOverdue)
			assert.NotNil(t, resp.Labels)
		})
	}

	resp := dto.FromTask(&models.Task{Priority: "UNKNOWN"}, now)
	assert.Equal(t, "СРЕДНИЙ", resp.Priority.Label)
}

func ptr(s string) *string { return &s }
