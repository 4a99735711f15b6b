package service

import (
	"context"
	"errors"
	"fmt"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Каскадное удаление выполняется внутри транзакции хранилища.
// Функции возвращают ключи файлов вложений, файлы удаляются после фиксации.

func deleteTaskTree(ctx context.Context, st repository.Store, task *models.Task) ([]string, error) {
	taskID := task.ID
	attachments, err := st.Attachments().ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("вложения задачи %s: %w", taskID, err)
	}

	keys := make([]string, 0, len(attachments))
	for _, a := range attachments {
		if err := st.Attachments().Delete(ctx, a.ID); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("удаление вложения %s: %w", a.ID, err)
		}
		keys = append(keys, a.FilePath)
	}

	if err := st.Tasks().Delete(ctx, taskID); err != nil {
		return nil, fmt.Errorf("удаление задачи %s: %w", taskID, err)
	}

	for _, name := range task.Labels {
		if err := adjustLabelUsage(ctx, st, name, -1); err != nil {
			return nil, fmt.Errorf("счётчик метки %s: %w", name, err)
		}
	}
	return keys, nil
}

func deleteColumnTree(ctx context.Context, st repository.Store, columnID uuid.UUID) ([]string, error) {
	tasks, err := st.Tasks().ListAllByColumn(ctx, columnID)
	if err != nil {
		return nil, fmt.Errorf("задачи колонки %s: %w", columnID, err)
	}

	var keys []string
	for _, t := range tasks {
		taskKeys, err := deleteTaskTree(ctx, st, t)
		if err != nil {
			return nil, err
		}
		keys = append(keys, taskKeys...)
	}

	if err := st.Columns().Delete(ctx, columnID); err != nil {
		return nil, fmt.Errorf("удаление колонки %s: %w", columnID, err)
	}
	return keys, nil
}

func deleteProjectTree(ctx context.Context, st repository.Store, projectID uuid.UUID) ([]string, error) {
	active, err := st.Columns().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("колонки проекта %s: %w", projectID, err)
	}
	archived, err := st.Columns().ListArchivedByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("архивные колонки проекта %s: %w", projectID, err)
	}

	var keys []string
	for _, c := range append(active, archived...) {
		columnKeys, err := deleteColumnTree(ctx, st, c.ID)
		if err != nil {
			return nil, err
		}
		keys = append(keys, columnKeys...)
	}

	members, err := st.Members().ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("участники проекта %s: %w", projectID, err)
	}
	for _, m := range members {
		if err := st.Members().Delete(ctx, m.ID); err != nil {
			return nil, fmt.Errorf("удаление участника %s: %w", m.ID, err)
		}
	}

	if err := st.Projects().Delete(ctx, projectID); err != nil {
		return nil, fmt.Errorf("удаление проекта %s: %w", projectID, err)
	}
	return keys, nil
}

// removeBlobs удаляет файлы, строки которых уже удалены; ошибки только логируются
func removeBlobs(ctx context.Context, blobs BlobStore, keys []string) {
	if blobs == nil || len(keys) == 0 {
		return
	}

	var errs error
	for _, key := range keys {
		errs = multierr.Append(errs, blobs.Delete(ctx, key))
	}

	if errs != nil {
		logger.Warn("Service: Не удалось удалить файлы вложений",
			zap.Int("failed", len(multierr.Errors(errs))),
			zap.Int("total", len(keys)),
			zap.Error(errs))
	}
}
