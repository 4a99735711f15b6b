package dto

import (
	"time"

	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/google/uuid"
)

// DateLayout - формат срока задачи в запросах и ответах
const DateLayout = "2006-01-02"

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type CreateColumnRequest struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

type UpdateColumnRequest struct {
	Title *string `json:"title,omitempty"`
	Color *string `json:"color,omitempty"`
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// UpdateTaskRequest: пустая строка в due_date снимает срок
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}

type MoveTaskRequest struct {
	ColumnID uuid.UUID `json:"column_id"`
}

type LabelRequest struct {
	Name string `json:"name"`
}

// AssignRequest: нулевой member_id снимает исполнителя
type AssignRequest struct {
	MemberID uuid.UUID `json:"member_id"`
}

type CreateLabelRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type InviteMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

type CreateRuleRequest struct {
	Trigger    string `json:"trigger"`
	Action     string `json:"action"`
	Parameters string `json:"parameters"`
}

type RuleStatusRequest struct {
	Status string `json:"status"`
}

type PriorityResponse struct {
	Value     models.Priority `json:"value"`
	Label     string          `json:"label"`
	Color     string          `json:"color"`
	TextColor string          `json:"text_color"`
}

type TaskResponse struct {
	ID             uuid.UUID        `json:"id"`
	ColumnID       uuid.UUID        `json:"column_id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Position       int              `json:"position"`
	Priority       PriorityResponse `json:"priority"`
	DueDate        *string          `json:"due_date,omitempty"`
	Completed      bool             `json:"completed"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	Archived       bool             `json:"archived"`
	ArchivedAt     *time.Time       `json:"archived_at,omitempty"`
	Labels         []string         `json:"labels"`
	AssignedMember *uuid.UUID       `json:"assigned_member,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	IsOverdue      bool             `json:"is_overdue"`
}

func FromPriority(p models.Priority) PriorityResponse {
	info := p.Info()
	return PriorityResponse{Value: p, Label: info.Label, Color: info.Color, TextColor: info.TextColor}
}

func FromTask(t *models.Task, now time.Time) TaskResponse {
	resp := TaskResponse{
		ID:             t.ID,
		ColumnID:       t.ColumnID,
		Title:          t.Title,
		Description:    t.Description,
		Position:       t.Position,
		Priority:       FromPriority(t.Priority),
		Completed:      t.Completed,
		CompletedAt:    t.CompletedAt,
		Archived:       t.Archived,
		ArchivedAt:     t.ArchivedAt,
		Labels:         t.Labels,
		AssignedMember: t.AssignedMember,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if resp.Labels == nil {
		resp.Labels = []string{}
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(DateLayout)
		resp.DueDate = &due
		resp.IsOverdue = !t.Completed && due < now.Format(DateLayout)
	}
	return resp
}

func FromTaskList(tasks []*models.Task, now time.Time) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t, now)
	}
	return result
}

type BoardColumnResponse struct {
	Column *models.Column `json:"column"`
	Tasks  []TaskResponse `json:"tasks"`
}

type BoardResponse struct {
	Project *models.Project       `json:"project"`
	Columns []BoardColumnResponse `json:"columns"`
}

func FromBoard(b *service.Board, now time.Time) BoardResponse {
	resp := BoardResponse{Project: b.Project, Columns: make([]BoardColumnResponse, len(b.Columns))}
	for i, c := range b.Columns {
		resp.Columns[i] = BoardColumnResponse{Column: c.Column, Tasks: FromTaskList(c.Tasks, now)}
	}
	return resp
}

type RuleResponse struct {
	models.AutomationRule
	Description string `json:"description"`
	StatusColor string `json:"status_color"`
}

func FromRule(r models.AutomationRule) RuleResponse {
	return RuleResponse{AutomationRule: r, Description: r.Description(), StatusColor: r.Status.Color()}
}

func FromRuleList(rules []models.AutomationRule) []RuleResponse {
	result := make([]RuleResponse, len(rules))
	for i, r := range rules {
		result[i] = FromRule(r)
	}
	return result
}
