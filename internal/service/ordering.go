package service

import (
	"context"
	"errors"
	"fmt"

	"projectFlow/internal/logger"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Позиции не перенумеровываются при удалении и архивации, пропуски допустимы.
// Два одновременных добавления могут получить одну позицию, порядок тогда решает created_at.

func nextPosition(max int, ok bool) int {
	if !ok {
		return 0
	}
	return max + 1
}

func nextProjectPosition(ctx context.Context, st repository.Store, ownerID uuid.UUID) (int, error) {
	max, ok, err := st.Projects().MaxPosition(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("позиция проекта: %w", err)
	}
	return nextPosition(max, ok), nil
}

func nextColumnPosition(ctx context.Context, st repository.Store, projectID uuid.UUID) (int, error) {
	max, ok, err := st.Columns().MaxPosition(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("позиция колонки: %w", err)
	}
	return nextPosition(max, ok), nil
}

func nextTaskPosition(ctx context.Context, st repository.Store, columnID uuid.UUID) (int, error) {
	max, ok, err := st.Tasks().MaxPosition(ctx, columnID)
	if err != nil {
		return 0, fmt.Errorf("позиция задачи: %w", err)
	}
	return nextPosition(max, ok), nil
}

type OrderingService struct {
	store repository.Store
}

func NewOrderingService(store repository.Store) *OrderingService {
	return &OrderingService{store: store}
}

// NextColumnPosition - позиция для новой колонки проекта
func (s *OrderingService) NextColumnPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	if _, err := s.store.Projects().GetByID(ctx, projectID); err != nil {
		return 0, repoError(err, ResourceProject, projectID, "получение проекта")
	}
	pos, err := nextColumnPosition(ctx, s.store, projectID)
	if err != nil {
		logger.Error("Service: Не удалось вычислить позицию", err, zap.String("project_id", projectID.String()))
		return 0, NewPersistenceError("вычисление позиции", err)
	}
	return pos, nil
}

// NextTaskPosition - позиция для новой задачи колонки
func (s *OrderingService) NextTaskPosition(ctx context.Context, columnID uuid.UUID) (int, error) {
	if _, err := s.store.Columns().GetByID(ctx, columnID); err != nil {
		return 0, repoError(err, ResourceColumn, columnID, "получение колонки")
	}
	pos, err := nextTaskPosition(ctx, s.store, columnID)
	if err != nil {
		logger.Error("Service: Не удалось вычислить позицию", err, zap.String("column_id", columnID.String()))
		return 0, NewPersistenceError("вычисление позиции", err)
	}
	return pos, nil
}

// repoError переводит ошибку репозитория в бизнес-ошибку
func repoError(err error, resource Resource, id uuid.UUID, operation string) error {
	var busErr *BusinessError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &busErr):
		return err
	case errors.Is(err, repository.ErrNotFound):
		logger.Info("Service: Запись не найдена",
			zap.String("resource", string(resource)),
			zap.String("target_id", id.String()))
		return NewNotFound(resource, id.String())
	default:
		logger.Error("Service: Ошибка хранилища", err,
			zap.String("operation", operation),
			zap.String("target_id", id.String()))
		return NewPersistenceError(operation, err)
	}
}
