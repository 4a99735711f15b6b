package service

import (
	"strings"
	"sync"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultExecutionDelay = 2 * time.Second

// AutomationService хранит правила "когда -> сделать" в памяти.
// Каждое новое правило один раз имитирует срабатывание через delay, реальных источников событий нет.
type AutomationService struct {
	mtx        sync.Mutex
	rules      []*models.AutomationRule
	pending    map[uuid.UUID]func()
	scheduler  Scheduler
	delay      time.Duration
	onExecuted func(models.AutomationRule)
}

type AutomationOption func(*AutomationService)

func WithExecutionDelay(delay time.Duration) AutomationOption {
	return func(s *AutomationService) {
		s.delay = delay
	}
}

// WithOnExecuted - fn вызывается из горутины планировщика после срабатывания правила
func WithOnExecuted(fn func(models.AutomationRule)) AutomationOption {
	return func(s *AutomationService) {
		s.onExecuted = fn
	}
}

// WithExampleRules добавляет демонстрационные правила
func WithExampleRules() AutomationOption {
	return func(s *AutomationService) {
		now := time.Now()
		examples := []models.AutomationRule{
			{Trigger: models.TriggerDueDatePassed, Action: models.ActionChangePriority, Parameters: "Высокий", Status: models.RuleActive, ExecutionCount: 1},
			{Trigger: models.TriggerTaskCreated, Action: models.ActionAddLabel, Parameters: "Новые", Status: models.RuleInactive},
			{Trigger: models.TriggerTaskCompleted, Action: models.ActionMoveToColumn, Parameters: "Готово", Status: models.RuleActive, ExecutionCount: 1},
		}
		for _, r := range examples {
			r := r
			r.ID = uuid.New()
			r.CreatedAt = now
			s.rules = append(s.rules, &r)
		}
	}
}

func NewAutomationService(scheduler Scheduler, opts ...AutomationOption) *AutomationService {
	s := &AutomationService{
		pending:   make(map[uuid.UUID]func()),
		scheduler: scheduler,
		delay:     DefaultExecutionDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// canonical приводит известные триггеры и действия к каноническому написанию
func canonical(value string, known []string) string {
	for _, k := range known {
		if strings.EqualFold(k, value) {
			return k
		}
	}
	return value
}

func (s *AutomationService) CreateRule(trigger, action, parameters string) (models.AutomationRule, error) {
	trigger = strings.TrimSpace(trigger)
	action = strings.TrimSpace(action)
	parameters = strings.TrimSpace(parameters)

	if trigger == "" {
		return models.AutomationRule{}, NewValidationError("trigger", "триггер не выбран")
	}
	if action == "" {
		return models.AutomationRule{}, NewValidationError("action", "действие не выбрано")
	}
	if parameters == "" {
		return models.AutomationRule{}, NewValidationError("parameters", "укажите параметры")
	}

	trigger = canonical(trigger, models.Triggers)
	action = canonical(action, models.Actions)

	s.mtx.Lock()
	for _, r := range s.rules {
		if strings.EqualFold(r.Trigger, trigger) &&
			strings.EqualFold(r.Action, action) &&
			strings.EqualFold(r.Parameters, parameters) {
			s.mtx.Unlock()
			logger.Warn("Service: Такое правило уже есть", zap.String("rule", r.Description()))
			return models.AutomationRule{}, NewDuplicate(ResourceRule, "описанием", r.Description())
		}
	}

	rule := &models.AutomationRule{
		ID:         uuid.New(),
		Trigger:    trigger,
		Action:     action,
		Parameters: parameters,
		Status:     models.RuleActive,
		CreatedAt:  time.Now(),
	}
	s.rules = append(s.rules, rule)
	s.pending[rule.ID] = func() {}
	created := *rule
	s.mtx.Unlock()

	cancel := s.scheduler.Schedule(s.delay, func() { s.execute(created.ID) })

	// запись исчезает, если правило уже сработало или удалено
	s.mtx.Lock()
	if _, ok := s.pending[created.ID]; ok {
		s.pending[created.ID] = cancel
	}
	s.mtx.Unlock()

	logger.Info("Service: Правило автоматизации создано",
		zap.String("rule_id", created.ID.String()),
		zap.String("rule", created.Description()))
	return created, nil
}

func (s *AutomationService) execute(id uuid.UUID) {
	s.mtx.Lock()
	delete(s.pending, id)
	rule := s.find(id)
	if rule == nil {
		s.mtx.Unlock()
		return
	}
	rule.ExecutionCount++
	executed := *rule
	callback := s.onExecuted
	s.mtx.Unlock()

	logger.Info("Service: Правило сработало",
		zap.String("rule_id", id.String()),
		zap.Int("executions", executed.ExecutionCount))

	if callback != nil {
		callback(executed)
	}
}

// find вызывается под s.mtx
func (s *AutomationService) find(id uuid.UUID) *models.AutomationRule {
	for _, r := range s.rules {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (s *AutomationService) Rules() []models.AutomationRule {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	res := make([]models.AutomationRule, 0, len(s.rules))
	for _, r := range s.rules {
		res = append(res, *r)
	}
	return res
}

func (s *AutomationService) GetRule(id uuid.UUID) (models.AutomationRule, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	rule := s.find(id)
	if rule == nil {
		return models.AutomationRule{}, NewNotFound(ResourceRule, id.String())
	}
	return *rule, nil
}

func (s *AutomationService) SetRuleStatus(id uuid.UUID, status models.RuleStatus) (models.AutomationRule, error) {
	if status != models.RuleActive && status != models.RuleInactive {
		return models.AutomationRule{}, NewValidationError("status", "допустимо Активно или Неактивно")
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	rule := s.find(id)
	if rule == nil {
		return models.AutomationRule{}, NewNotFound(ResourceRule, id.String())
	}
	rule.Status = status

	logger.Info("Service: Статус правила изменён",
		zap.String("rule_id", id.String()),
		zap.String("status", string(status)))
	return *rule, nil
}

func (s *AutomationService) ToggleRuleStatus(id uuid.UUID) (models.AutomationRule, error) {
	rule, err := s.GetRule(id)
	if err != nil {
		return models.AutomationRule{}, err
	}
	next := models.RuleActive
	if rule.Status == models.RuleActive {
		next = models.RuleInactive
	}
	return s.SetRuleStatus(id, next)
}

// DeleteRule удаляет правило и отменяет его несработавшее выполнение
func (s *AutomationService) DeleteRule(id uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for i, r := range s.rules {
		if r.ID != id {
			continue
		}
		s.rules = append(s.rules[:i], s.rules[i+1:]...)
		if cancel, ok := s.pending[id]; ok {
			cancel()
			delete(s.pending, id)
		}
		logger.Info("Service: Правило удалено", zap.String("rule_id", id.String()))
		return nil
	}
	return NewNotFound(ResourceRule, id.String())
}

func (s *AutomationService) Stats() models.RuleStats {
	return ComputeStats(s.Rules())
}

// ComputeStats не меняет правила
func ComputeStats(rules []models.AutomationRule) models.RuleStats {
	stats := models.RuleStats{Total: len(rules)}
	for _, r := range rules {
		if r.Status == models.RuleActive {
			stats.ActiveCount++
		}
		stats.TotalExecutions += r.ExecutionCount
	}
	return stats
}
