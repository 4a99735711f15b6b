package handlers

import (
	"context"
	"io"

	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, username, password, email string) (service.Session, error)
	Login(ctx context.Context, username, password string) (service.Session, error)
	ChangePassword(ctx context.Context, session service.Session, oldPassword, newPassword string) error
}

type ProjectService interface {
	CreateProject(ctx context.Context, session service.Session, title, description string, opts ...service.ProjectOption) (*models.Project, error)
	EnsureDefaultBoard(ctx context.Context, session service.Session) (*models.Project, bool, error)
	GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListProjects(ctx context.Context, session service.Session) ([]*models.Project, error)
	ListArchivedProjects(ctx context.Context, session service.Session) ([]*models.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, opts ...service.ProjectOption) (*models.Project, error)
	ArchiveProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	RestoreProject(ctx context.Context, id uuid.UUID) (*models.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	GetBoard(ctx context.Context, id uuid.UUID) (*service.Board, error)
}

type ColumnService interface {
	CreateColumn(ctx context.Context, projectID uuid.UUID, title, color string) (*models.Column, error)
	GetColumn(ctx context.Context, id uuid.UUID) (*models.Column, error)
	UpdateColumn(ctx context.Context, id uuid.UUID, opts ...service.ColumnOption) (*models.Column, error)
	ArchiveColumn(ctx context.Context, id uuid.UUID) (*models.Column, error)
	RestoreColumn(ctx context.Context, id uuid.UUID) (*models.Column, error)
	DeleteColumn(ctx context.Context, id uuid.UUID) error
	ListColumns(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error)
	ListArchivedColumns(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error)
}

type TaskService interface {
	CreateTask(ctx context.Context, columnID uuid.UUID, title, description string, opts ...models.TaskOption) (*models.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, opts ...models.TaskOption) (*models.Task, error)
	ToggleCompletion(ctx context.Context, id uuid.UUID) (*models.Task, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Task, error)
	MoveTask(ctx context.Context, id, columnID uuid.UUID) (*models.Task, error)
	ArchiveTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	RestoreTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	PurgeTask(ctx context.Context, id uuid.UUID) error
	AddLabel(ctx context.Context, id uuid.UUID, name string) (*models.Task, error)
	RemoveLabel(ctx context.Context, id uuid.UUID, name string) (*models.Task, error)
	AssignMember(ctx context.Context, id, memberID uuid.UUID) (*models.Task, error)
	ListTasks(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error)
	ListArchivedTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	FilterProjectTasks(ctx context.Context, projectID uuid.UUID, criteria service.FilterCriteria) ([]*models.Task, error)
}

type LabelService interface {
	CreateLabel(ctx context.Context, name, color, description string) (*models.Label, error)
	ListLabels(ctx context.Context) ([]*models.Label, error)
	DeleteLabel(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (service.LabelStats, error)
}

type MemberService interface {
	InviteMember(ctx context.Context, projectID uuid.UUID, email string, role models.MemberRole) (*models.ProjectMember, error)
	ActivateMember(ctx context.Context, id uuid.UUID) (*models.ProjectMember, error)
	ChangeRole(ctx context.Context, id uuid.UUID, role models.MemberRole) (*models.ProjectMember, error)
	RemoveMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error)
}

type AttachmentService interface {
	AttachFile(ctx context.Context, taskID uuid.UUID, filename string, content io.Reader) (*models.Attachment, error)
	ListAttachments(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error)
	OpenAttachment(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error)
	DeleteAttachment(ctx context.Context, id uuid.UUID) error
}

type AutomationService interface {
	CreateRule(trigger, action, parameters string) (models.AutomationRule, error)
	Rules() []models.AutomationRule
	GetRule(id uuid.UUID) (models.AutomationRule, error)
	SetRuleStatus(id uuid.UUID, status models.RuleStatus) (models.AutomationRule, error)
	ToggleRuleStatus(id uuid.UUID) (models.AutomationRule, error)
	DeleteRule(id uuid.UUID) error
	Stats() models.RuleStats
}

type OrderingService interface {
	NextColumnPosition(ctx context.Context, projectID uuid.UUID) (int, error)
	NextTaskPosition(ctx context.Context, columnID uuid.UUID) (int, error)
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
