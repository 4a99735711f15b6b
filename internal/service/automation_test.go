package service_test

import (
	"testing"
	"time"

	"projectFlow/internal/models"
	"projectFlow/internal/service"
	"projectFlow/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAutomationService_CreateRule тестирует создание правил
func TestAutomationService_CreateRule(t *testing.T) {
	tests := []struct {
		name         string
		trigger      string
		action       string
		parameters   string
		expectedCode string
	}{
		{
			name:       "success - valid rule",
			trigger:    models.TriggerTaskCreated,
			action:     models.ActionAddLabel,
			parameters: "Новые",
		},
		{
			name:         "error - trigger not selected",
			action:       models.ActionAddLabel,
			parameters:   "Новые",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - action not selected",
			trigger:      models.TriggerTaskCreated,
			parameters:   "Новые",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - whitespace parameters",
			trigger:      models.TriggerTaskCreated,
			action:       models.ActionAddLabel,
			parameters:   "   ",
			expectedCode: service.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := &fakeScheduler{}
			svc := service.NewAutomationService(sched)

			rule, err := svc.CreateRule(tt.trigger, tt.action, tt.parameters)

			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, service.CodeOf(err))
				assert.Empty(t, svc.Rules())
				assert.Empty(t, sched.jobs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.RuleActive, rule.Status)
			assert.Equal(t, 0, rule.ExecutionCount)
			assert.Len(t, svc.Rules(), 1)
			assert.Equal(t, []time.Duration{service.DefaultExecutionDelay}, sched.delays)
		})
	}
}

// TestAutomationService_Duplicate тестирует поиск дубликатов без учёта регистра
func TestAutomationService_Duplicate(t *testing.T) {
	svc := service.NewAutomationService(&fakeScheduler{})

	first, err := svc.CreateRule("Задача создана", "Добавить метку", "Новые")
	require.NoError(t, err)

	_, err = svc.CreateRule("задача создана", "добавить метку", "новые")
	assert.Equal(t, service.CodeDuplicate, service.CodeOf(err))

	_, err = svc.CreateRule("Задача создана", "Добавить метку", "Срочные")
	assert.NoError(t, err)

	rules := svc.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, first.ID, rules[0].ID)
	assert.Equal(t, models.TriggerTaskCreated, rules[0].Trigger)
}

// TestAutomationService_Execution тестирует однократное отложенное срабатывание
func TestAutomationService_Execution(t *testing.T) {
	sched := &fakeScheduler{}
	var executed []models.AutomationRule
	svc := service.NewAutomationService(sched,
		service.WithExecutionDelay(time.Millisecond),
		service.WithOnExecuted(func(r models.AutomationRule) { executed = append(executed, r) }))

	rule, err := svc.CreateRule(models.TriggerTaskMoved, models.ActionSetDueDate, "завтра")
	require.NoError(t, err)
	assert.Equal(t, 0, rule.ExecutionCount)
	assert.Equal(t, []time.Duration{time.Millisecond}, sched.delays)

	assert.Equal(t, 1, sched.Fire())
	assert.Equal(t, 0, sched.Fire())

	stored, err := svc.GetRule(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ExecutionCount)

	require.Len(t, executed, 1)
	assert.Equal(t, rule.ID, executed[0].ID)
	assert.Equal(t, 1, executed[0].ExecutionCount)

	// выключенное правило тоже считает срабатывание
	inactive, err := svc.CreateRule(models.TriggerTaskMoved, models.ActionSetDueDate, "послезавтра")
	require.NoError(t, err)
	_, err = svc.SetRuleStatus(inactive.ID, models.RuleInactive)
	require.NoError(t, err)
	sched.Fire()
	stored, err = svc.GetRule(inactive.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ExecutionCount)
}

// TestAutomationService_DeleteCancelsExecution тестирует отмену срабатывания при удалении
func TestAutomationService_DeleteCancelsExecution(t *testing.T) {
	sched := &fakeScheduler{}
	calls := 0
	svc := service.NewAutomationService(sched, service.WithOnExecuted(func(models.AutomationRule) { calls++ }))

	rule, err := svc.CreateRule(models.TriggerTaskCompleted, models.ActionMoveToColumn, "Готово")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRule(rule.ID))
	assert.Equal(t, 0, sched.Fire())
	assert.Equal(t, 0, calls)
	assert.Empty(t, svc.Rules())

	err = svc.DeleteRule(rule.ID)
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

// TestAutomationService_Status тестирует смену статуса правила
func TestAutomationService_Status(t *testing.T) {
	svc := service.NewAutomationService(&fakeScheduler{})
	rule, err := svc.CreateRule(models.TriggerPriorityChanged, models.ActionAssignMember, "alice")
	require.NoError(t, err)

	toggled, err := svc.ToggleRuleStatus(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RuleInactive, toggled.Status)

	toggled, err = svc.ToggleRuleStatus(rule.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RuleActive, toggled.Status)

	_, err = svc.SetRuleStatus(rule.ID, "Пауза")
	assert.Equal(t, service.CodeValidation, service.CodeOf(err))

	_, err = svc.ToggleRuleStatus(uuid.New())
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

// TestComputeStats тестирует агрегат по правилам
func TestComputeStats(t *testing.T) {
	tests := []struct {
		name     string
		rules    []models.AutomationRule
		expected models.RuleStats
	}{
		{
			name:     "success - empty catalog",
			expected: models.RuleStats{},
		},
		{
			name: "success - mixed statuses",
			rules: []models.AutomationRule{
				{Status: models.RuleActive, ExecutionCount: 3},
				{Status: models.RuleInactive, ExecutionCount: 2},
				{Status: models.RuleActive},
			},
			expected: models.RuleStats{Total: 3, ActiveCount: 2, TotalExecutions: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.ComputeStats(tt.rules))
		})
	}

	svc := service.NewAutomationService(&fakeScheduler{}, service.WithExampleRules())
	assert.Equal(t, models.RuleStats{Total: 3, ActiveCount: 2, TotalExecutions: 2}, svc.Stats())
}

// TestAutomationService_RealScheduler тестирует срабатывание через TimerScheduler
func TestAutomationService_RealScheduler(t *testing.T) {
	sched := worker.NewTimerScheduler()
	defer sched.Stop()

	done := make(chan models.AutomationRule, 1)
	svc := service.NewAutomationService(sched,
		service.WithExecutionDelay(10*time.Millisecond),
		service.WithOnExecuted(func(r models.AutomationRule) { done <- r }))

	rule, err := svc.CreateRule(models.TriggerDueDatePassed, models.ActionChangePriority, "Высокий")
	require.NoError(t, err)
	assert.Equal(t, 0, rule.ExecutionCount)

	select {
	case executed := <-done:
		assert.Equal(t, rule.ID, executed.ID)
		assert.Equal(t, 1, executed.ExecutionCount)
	case <-time.After(2 * time.Second):
		t.Fatal("правило не сработало")
	}
}
