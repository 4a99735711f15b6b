package repository

import (
	"context"

	"projectFlow/internal/models"

	"github.com/google/uuid"
)

// Update и Delete возвращают ErrNotFound, если записи нет.
// Create возвращает ErrDuplicate при нарушении уникальности.

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	// активные по position, архивные по updated_at DESC
	ListByOwner(ctx context.Context, ownerID uuid.UUID, archived bool) ([]*models.Project, error)
	// MaxPosition среди активных проектов владельца, ok=false если их нет
	MaxPosition(ctx context.Context, ownerID uuid.UUID) (max int, ok bool, err error)
}

type ColumnRepository interface {
	Create(ctx context.Context, column *models.Column) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Column, error)
	Update(ctx context.Context, column *models.Column) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error)
	ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error)
	MaxPosition(ctx context.Context, projectID uuid.UUID) (max int, ok bool, err error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByColumn - только активные, ORDER BY position, created_at
	ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error)
	// ListAllByColumn - активные и архивные, для каскадного удаления
	ListAllByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)
	MaxPosition(ctx context.Context, columnID uuid.UUID) (max int, ok bool, err error)
}

type LabelRepository interface {
	Create(ctx context.Context, label *models.Label) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Label, error)
	GetByName(ctx context.Context, name string) (*models.Label, error)
	List(ctx context.Context) ([]*models.Label, error)
	Update(ctx context.Context, label *models.Label) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *models.ProjectMember) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectMember, error)
	// GetByEmail сравнивает email без учёта регистра
	GetByEmail(ctx context.Context, projectID uuid.UUID, email string) (*models.ProjectMember, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error)
	Update(ctx context.Context, member *models.ProjectMember) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Store объединяет репозитории одного хранилища
type Store interface {
	Users() UserRepository
	Projects() ProjectRepository
	Columns() ColumnRepository
	Tasks() TaskRepository
	Labels() LabelRepository
	Members() MemberRepository
	Attachments() AttachmentRepository

	// InTx выполняет fn атомарно: при ошибке изменения откатываются
	InTx(ctx context.Context, fn func(Store) error) error
	HealthCheck(ctx context.Context) error
}
