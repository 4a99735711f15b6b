package models

import (
	"time"

	"github.com/google/uuid"
)

type RuleStatus string

const (
	RuleActive   RuleStatus = "Активно"
	RuleInactive RuleStatus = "Неактивно"
)

func (s RuleStatus) Color() string {
	if s == RuleActive {
		return "#61bd4f"
	}
	return "#5e6c84"
}

const (
	TriggerTaskCreated     = "Задача создана"
	TriggerTaskMoved       = "Задача перемещена"
	TriggerDueDatePassed   = "Срок истек"
	TriggerPriorityChanged = "Изменен приоритет"
	TriggerTaskCompleted   = "Задача выполнена"
)

const (
	ActionAddLabel       = "Добавить метку"
	ActionChangePriority = "Изменить приоритет"
	ActionMoveToColumn   = "Переместить в колонку"
	ActionAssignMember   = "Назначить участника"
	ActionSetDueDate     = "Установить срок"
)

var (
	Triggers = []string{TriggerTaskCreated, TriggerTaskMoved, TriggerDueDatePassed, TriggerPriorityChanged, TriggerTaskCompleted}
	Actions  = []string{ActionAddLabel, ActionChangePriority, ActionMoveToColumn, ActionAssignMember, ActionSetDueDate}
)

type AutomationRule struct {
	ID             uuid.UUID  `json:"id"`
	Trigger        string     `json:"trigger"`
	Action         string     `json:"action"`
	Parameters     string     `json:"parameters"`
	Status         RuleStatus `json:"status"`
	ExecutionCount int        `json:"execution_count"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (r AutomationRule) Description() string {
	return r.Trigger + " → " + r.Action + ": " + r.Parameters
}

type RuleStats struct {
	Total           int `json:"total"`
	ActiveCount     int `json:"active_count"`
	TotalExecutions int `json:"total_executions"`
}
