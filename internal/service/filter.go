package service

import (
	"strings"
	"time"

	"projectFlow/internal/models"
)

type DueBucket string

const (
	DueAny           DueBucket = "any"
	DueToday         DueBucket = "today"
	DueNextSevenDays DueBucket = "week"
	DueOverdue       DueBucket = "overdue"
)

type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusActive    StatusFilter = "active"
	StatusCompleted StatusFilter = "completed"
)

// FilterCriteria: пустые поля ничего не ограничивают. Now задаёт "сегодня", нулевое значение - текущее время.
type FilterCriteria struct {
	SearchText string
	Priorities []models.Priority
	Due        DueBucket
	Status     StatusFilter
	Now        time.Time
}

func ParseDueBucket(s string) (DueBucket, bool) {
	switch b := DueBucket(strings.ToLower(strings.TrimSpace(s))); b {
	case "", DueAny:
		return DueAny, true
	case DueToday, DueNextSevenDays, DueOverdue:
		return b, true
	default:
		return DueAny, false
	}
}

func ParseStatusFilter(s string) (StatusFilter, bool) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", StatusAll:
		return StatusAll, true
	case StatusActive, StatusCompleted:
		return f, true
	default:
		return StatusAll, false
	}
}

// FilterTasks оставляет задачи, подходящие под все условия, порядок входа сохраняется
func FilterTasks(tasks []*models.Task, criteria FilterCriteria) []*models.Task {
	now := criteria.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := models.DateOf(now)
	search := strings.ToLower(strings.TrimSpace(criteria.SearchText))

	priorities := make(map[models.Priority]struct{}, len(criteria.Priorities))
	for _, p := range criteria.Priorities {
		priorities[p] = struct{}{}
	}

	res := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if !matchesSearch(t, search) {
			continue
		}
		if len(priorities) > 0 {
			if _, ok := priorities[t.Priority]; !ok {
				continue
			}
		}
		if !matchesDue(t, criteria.Due, today) {
			continue
		}
		if !matchesStatus(t, criteria.Status) {
			continue
		}
		res = append(res, t)
	}
	return res
}

func matchesSearch(t *models.Task, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search)
}

func matchesDue(t *models.Task, bucket DueBucket, today time.Time) bool {
	if bucket == "" || bucket == DueAny {
		return true
	}
	if t.DueDate == nil {
		return false
	}

	// дата срока берётся как календарная, без перевода часового пояса
	y, m, d := t.DueDate.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	switch bucket {
	case DueToday:
		return due.Equal(today)
	case DueNextSevenDays:
		return !due.Before(today) && !due.After(today.AddDate(0, 0, 7))
	case DueOverdue:
		return due.Before(today) && !t.Completed
	default:
		return true
	}
}

func matchesStatus(t *models.Task, status StatusFilter) bool {
	switch status {
	case StatusActive:
		return !t.Completed
	case StatusCompleted:
		return t.Completed
	default:
		return true
	}
}
