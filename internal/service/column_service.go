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

type ColumnOption func(*models.Column)

func WithColumnTitle(title string) ColumnOption {
	return func(c *models.Column) {
		c.Title = title
	}
}

func WithColumnColor(color string) ColumnOption {
	return func(c *models.Column) {
		c.Color = color
	}
}

type ColumnService struct {
	store repository.Store
	blobs BlobStore
}

func NewColumnService(store repository.Store, blobs BlobStore) *ColumnService {
	return &ColumnService{
		store: store,
		blobs: blobs,
	}
}

// CreateColumn добавляет колонку справа от активных колонок проекта
func (s *ColumnService) CreateColumn(ctx context.Context, projectID uuid.UUID, title, color string) (*models.Column, error) {
	title, err := validateTitle("title", title)
	if err != nil {
		logger.Warn("Service: Ошибка валидации колонки", zap.Error(err))
		return nil, err
	}
	if color, err = colorOrDefault(color, models.DefaultColumnColor); err != nil {
		return nil, err
	}

	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceProject, projectID, "получение проекта")
	}
	if project.Archived {
		logger.Warn("Service: Проект в архиве", zap.String("project_id", projectID.String()))
		return nil, NewNotFound(ResourceProject, projectID.String())
	}

	pos, err := nextColumnPosition(ctx, s.store, projectID)
	if err != nil {
		return nil, repoError(err, ResourceColumn, projectID, "вычисление позиции")
	}

	column := &models.Column{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     title,
		Color:     color,
		Position:  pos,
		CreatedAt: time.Now(),
	}
	if err := s.store.Columns().Create(ctx, column); err != nil {
		return nil, repoError(err, ResourceColumn, column.ID, "создание колонки")
	}

	logger.Info("Service: Колонка создана",
		zap.String("column_id", column.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.Int("position", pos))
	return column, nil
}

func (s *ColumnService) GetColumn(ctx context.Context, id uuid.UUID) (*models.Column, error) {
	column, err := s.store.Columns().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceColumn, id, "получение колонки")
	}
	return column, nil
}

func (s *ColumnService) UpdateColumn(ctx context.Context, id uuid.UUID, opts ...ColumnOption) (*models.Column, error) {
	column, err := s.store.Columns().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceColumn, id, "получение колонки")
	}
	if column.Archived {
		return nil, NewInvalidState(ResourceColumn, id.String(), "колонка в архиве")
	}

	for _, opt := range opts {
		opt(column)
	}
	if column.Title, err = validateTitle("title", column.Title); err != nil {
		return nil, err
	}
	if column.Color, err = colorOrDefault(column.Color, models.DefaultColumnColor); err != nil {
		return nil, err
	}

	if err := s.store.Columns().Update(ctx, column); err != nil {
		return nil, repoError(err, ResourceColumn, id, "обновление колонки")
	}

	logger.Info("Service: Колонка обновлена", zap.String("column_id", id.String()))
	return column, nil
}

// ArchiveColumn убирает колонку с доски, задачи колонки не трогаются
func (s *ColumnService) ArchiveColumn(ctx context.Context, id uuid.UUID) (*models.Column, error) {
	column, err := s.store.Columns().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceColumn, id, "получение колонки")
	}
	if column.Archived {
		return column, nil
	}

	now := time.Now()
	column.Archived = true
	column.ArchivedAt = &now

	if err := s.store.Columns().Update(ctx, column); err != nil {
		return nil, repoError(err, ResourceColumn, id, "архивация колонки")
	}

	logger.Info("Service: Колонка архивирована", zap.String("column_id", id.String()))
	return column, nil
}

func (s *ColumnService) RestoreColumn(ctx context.Context, id uuid.UUID) (*models.Column, error) {
	column, err := s.store.Columns().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceColumn, id, "получение колонки")
	}
	if !column.Archived {
		return column, nil
	}

	column.Archived = false
	column.ArchivedAt = nil

	if err := s.store.Columns().Update(ctx, column); err != nil {
		return nil, repoError(err, ResourceColumn, id, "восстановление колонки")
	}

	logger.Info("Service: Колонка восстановлена", zap.String("column_id", id.String()))
	return column, nil
}

// DeleteColumn безвозвратно удаляет колонку вместе со всеми её задачами
func (s *ColumnService) DeleteColumn(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.Columns().GetByID(ctx, id); err != nil {
		return repoError(err, ResourceColumn, id, "получение колонки")
	}

	var keys []string
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		keys, err = deleteColumnTree(ctx, st, id)
		return err
	})
	if err != nil {
		logger.Error("Service: Каскадное удаление колонки прервано", err, zap.String("column_id", id.String()))
		return NewCascadeError(ResourceColumn, id.String(), err)
	}

	removeBlobs(ctx, s.blobs, keys)

	logger.Info("Service: Колонка удалена", zap.String("column_id", id.String()))
	return nil
}

func (s *ColumnService) ListColumns(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	columns, err := s.store.Columns().ListByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceColumn, projectID, "получение колонок")
	}
	return columns, nil
}

func (s *ColumnService) ListArchivedColumns(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	columns, err := s.store.Columns().ListArchivedByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceColumn, projectID, "получение архивных колонок")
	}
	return columns, nil
}
