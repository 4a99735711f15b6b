package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskOption изменяет задачу при создании или обновлении
type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithPriority(priority Priority) TaskOption {
	return func(task *Task) {
		task.Priority = priority
	}
}

// WithDueDate хранит только дату, время отбрасывается
func WithDueDate(due time.Time) TaskOption {
	return func(task *Task) {
		d := DateOf(due)
		task.DueDate = &d
	}
}

func WithoutDueDate() TaskOption {
	return func(task *Task) {
		task.DueDate = nil
	}
}

func WithAssignedMember(memberID uuid.UUID) TaskOption {
	return func(task *Task) {
		if memberID == uuid.Nil {
			task.AssignedMember = nil
			return
		}
		id := memberID
		task.AssignedMember = &id
	}
}
