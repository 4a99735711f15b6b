package models

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	ColumnID       uuid.UUID  `json:"column_id" db:"column_id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	Position       int        `json:"position" db:"position"`
	Priority       Priority   `json:"priority" db:"priority"`
	DueDate        *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed      bool       `json:"completed" db:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Archived       bool       `json:"archived" db:"archived"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	Labels         []string   `json:"labels" db:"labels"`
	AssignedMember *uuid.UUID `json:"assigned_member,omitempty" db:"assigned_member"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

func NormalizeLabel(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// AddLabel возвращает false, если метка уже есть или имя пустое
func (t *Task) AddLabel(name string) bool {
	name = NormalizeLabel(name)
	if name == "" || slices.Contains(t.Labels, name) {
		return false
	}
	t.Labels = append(t.Labels, name)
	return true
}

func (t *Task) RemoveLabel(name string) bool {
	name = NormalizeLabel(name)
	idx := slices.Index(t.Labels, name)
	if idx < 0 {
		return false
	}
	t.Labels = slices.Delete(t.Labels, idx, idx+1)
	return true
}

func (t *Task) Clone() *Task {
	c := *t
	c.Labels = slices.Clone(t.Labels)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		c.CompletedAt = &d
	}
	if t.ArchivedAt != nil {
		d := *t.ArchivedAt
		c.ArchivedAt = &d
	}
	if t.AssignedMember != nil {
		m := *t.AssignedMember
		c.AssignedMember = &m
	}
	return &c
}

// DateOf обрезает время до календарной даты в часовом поясе t
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SortByPosition - ORDER BY position, created_at
func SortByPosition(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

func SortColumnsByPosition(columns []*Column) {
	sort.SliceStable(columns, func(i, j int) bool {
		if columns[i].Position != columns[j].Position {
			return columns[i].Position < columns[j].Position
		}
		return columns[i].CreatedAt.Before(columns[j].CreatedAt)
	})
}

func SortProjectsByPosition(projects []*Project) {
	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].Position != projects[j].Position {
			return projects[i].Position < projects[j].Position
		}
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
}
