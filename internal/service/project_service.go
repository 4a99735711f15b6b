package service

import (
	"context"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectOption func(*models.Project)

func WithProjectTitle(title string) ProjectOption {
	return func(p *models.Project) {
		p.Title = title
	}
}

func WithProjectDescription(description string) ProjectOption {
	return func(p *models.Project) {
		p.Description = description
	}
}

func WithProjectColor(color string) ProjectOption {
	return func(p *models.Project) {
		p.Color = color
	}
}

type ProjectService struct {
	store repository.Store
	blobs BlobStore
}

func NewProjectService(store repository.Store, blobs BlobStore) *ProjectService {
	return &ProjectService{
		store: store,
		blobs: blobs,
	}
}

// Board - активная доска проекта
type Board struct {
	Project *models.Project
	Columns []BoardColumn
}

type BoardColumn struct {
	Column *models.Column
	Tasks  []*models.Task
}

// CreateProject добавляет проект в конец списка пользователя, владелец становится участником проекта
func (s *ProjectService) CreateProject(ctx context.Context, session Session, title, description string, opts ...ProjectOption) (*models.Project, error) {
	if err := session.valid(); err != nil {
		return nil, err
	}

	project := &models.Project{
		ID:          uuid.New(),
		OwnerID:     session.UserID(),
		Title:       title,
		Description: description,
	}
	for _, opt := range opts {
		opt(project)
	}

	var err error
	if project.Title, err = validateTitle("title", project.Title); err != nil {
		logger.Warn("Service: Ошибка валидации проекта", zap.Error(err))
		return nil, err
	}
	if project.Color, err = colorOrDefault(project.Color, models.DefaultProjectColor); err != nil {
		return nil, err
	}

	err = s.store.InTx(ctx, func(st repository.Store) error {
		return createProjectTx(ctx, st, session, project, nil)
	})
	if err != nil {
		return nil, repoError(err, ResourceProject, project.ID, "создание проекта")
	}

	logger.Info("Service: Проект создан",
		zap.String("project_id", project.ID.String()),
		zap.String("owner_id", project.OwnerID.String()))
	return project, nil
}

func createProjectTx(ctx context.Context, st repository.Store, session Session, project *models.Project, columns []models.ColumnTemplate) error {
	pos, err := nextProjectPosition(ctx, st, project.OwnerID)
	if err != nil {
		return err
	}
	project.Position = pos

	if err := st.Projects().Create(ctx, project); err != nil {
		return err
	}

	owner := &models.ProjectMember{
		ID:        uuid.New(),
		ProjectID: project.ID,
		Username:  session.User.Username,
		Email:     session.User.Email,
		Role:      models.RoleOwner,
		Status:    models.MemberActive,
		InvitedAt: time.Now(),
	}
	if err := st.Members().Create(ctx, owner); err != nil {
		return err
	}

	for i, tpl := range columns {
		column := &models.Column{
			ID:        uuid.New(),
			ProjectID: project.ID,
			Title:     tpl.Title,
			Color:     tpl.Color,
			Position:  i,
			CreatedAt: time.Now(),
		}
		if err := st.Columns().Create(ctx, column); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDefaultBoard создаёт стартовую доску, если у пользователя нет активных проектов.
// created=false - доска не понадобилась.
func (s *ProjectService) EnsureDefaultBoard(ctx context.Context, session Session) (project *models.Project, created bool, err error) {
	if err := session.valid(); err != nil {
		return nil, false, err
	}

	projects, err := s.store.Projects().ListByOwner(ctx, session.UserID(), false)
	if err != nil {
		return nil, false, repoError(err, ResourceProject, uuid.Nil, "получение проектов")
	}
	if len(projects) > 0 {
		return projects[0], false, nil
	}

	project = &models.Project{
		ID:          uuid.New(),
		OwnerID:     session.UserID(),
		Title:       models.DefaultBoardTitle,
		Description: models.DefaultBoardDescription,
		Color:       models.DefaultBoardColor,
	}

	err = s.store.InTx(ctx, func(st repository.Store) error {
		return createProjectTx(ctx, st, session, project, models.DefaultBoardColumns)
	})
	if err != nil {
		return nil, false, repoError(err, ResourceProject, project.ID, "создание стартовой доски")
	}

	logger.Info("Service: Создана стартовая доска",
		zap.String("project_id", project.ID.String()),
		zap.String("user_id", session.UserID().String()))
	return project, true, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceProject, id, "получение проекта")
	}
	return project, nil
}

func (s *ProjectService) ListProjects(ctx context.Context, session Session) ([]*models.Project, error) {
	if err := session.valid(); err != nil {
		return nil, err
	}
	projects, err := s.store.Projects().ListByOwner(ctx, session.UserID(), false)
	if err != nil {
		return nil, repoError(err, ResourceProject, uuid.Nil, "получение проектов")
	}
	return projects, nil
}

func (s *ProjectService) ListArchivedProjects(ctx context.Context, session Session) ([]*models.Project, error) {
	if err := session.valid(); err != nil {
		return nil, err
	}
	projects, err := s.store.Projects().ListByOwner(ctx, session.UserID(), true)
	if err != nil {
		return nil, repoError(err, ResourceProject, uuid.Nil, "получение архивных проектов")
	}
	return projects, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, opts ...ProjectOption) (*models.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceProject, id, "получение проекта")
	}
	if project.Archived {
		return nil, NewInvalidState(ResourceProject, id.String(), "проект в архиве")
	}

	for _, opt := range opts {
		opt(project)
	}
	if project.Title, err = validateTitle("title", project.Title); err != nil {
		return nil, err
	}
	if project.Color, err = colorOrDefault(project.Color, models.DefaultProjectColor); err != nil {
		return nil, err
	}

	if err := s.store.Projects().Update(ctx, project); err != nil {
		return nil, repoError(err, ResourceProject, id, "обновление проекта")
	}

	logger.Info("Service: Проект обновлён", zap.String("project_id", id.String()))
	return project, nil
}

// ArchiveProject повторно для архивного проекта ничего не меняет
func (s *ProjectService) ArchiveProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceProject, id, "получение проекта")
	}
	if project.Archived {
		return project, nil
	}

	now := time.Now()
	project.Archived = true
	project.ArchivedAt = &now

	if err := s.store.Projects().Update(ctx, project); err != nil {
		return nil, repoError(err, ResourceProject, id, "архивация проекта")
	}

	logger.Info("Service: Проект архивирован", zap.String("project_id", id.String()))
	return project, nil
}

func (s *ProjectService) RestoreProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceProject, id, "получение проекта")
	}
	if !project.Archived {
		return project, nil
	}

	project.Archived = false
	project.ArchivedAt = nil

	if err := s.store.Projects().Update(ctx, project); err != nil {
		return nil, repoError(err, ResourceProject, id, "восстановление проекта")
	}

	logger.Info("Service: Проект восстановлен", zap.String("project_id", id.String()))
	return project, nil
}

// DeleteProject безвозвратно удаляет проект с колонками, задачами, вложениями и участниками
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Projects().GetByID(ctx, id); err != nil {
		return repoError(err, ResourceProject, id, "получение проекта")
	}

	var keys []string
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		keys, err = deleteProjectTree(ctx, st, id)
		return err
	})
	if err != nil {
		logger.Error("Service: Каскадное удаление проекта прервано", err, zap.String("project_id", id.String()))
		return NewCascadeError(ResourceProject, id.String(), err)
	}

	removeBlobs(ctx, s.blobs, keys)

	logger.Info("Service: Проект удалён",
		zap.String("project_id", id.String()),
		zap.Int("attachments", len(keys)))
	return nil
}

// GetBoard - активные колонки проекта с активными задачами
func (s *ProjectService) GetBoard(ctx context.Context, id uuid.UUID) (*Board, error) {
	project, err := s.store.Projects().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceProject, id, "получение проекта")
	}

	columns, err := s.store.Columns().ListByProject(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceColumn, id, "получение колонок")
	}

	board := &Board{Project: project, Columns: make([]BoardColumn, 0, len(columns))}
	for _, c := range columns {
		tasks, err := s.store.Tasks().ListByColumn(ctx, c.ID)
		if err != nil {
			return nil, repoError(err, ResourceTask, c.ID, "получение задач")
		}
		board.Columns = append(board.Columns, BoardColumn{Column: c, Tasks: tasks})
	}
	return board, nil
}
