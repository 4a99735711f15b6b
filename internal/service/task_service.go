package service

import (
	"context"
	"errors"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики задач

type TaskService struct {
	store repository.Store
	blobs BlobStore
}

func NewTaskService(store repository.Store, blobs BlobStore) *TaskService {
	return &TaskService{
		store: store,
		blobs: blobs,
	}
}

// CreateTask добавляет задачу в конец активной колонки. В архивную колонку создавать нельзя.
func (s *TaskService) CreateTask(ctx context.Context, columnID uuid.UUID, title, description string, opts ...models.TaskOption) (*models.Task, error) {
	title, err := validateTitle("title", title)
	if err != nil {
		logger.Warn("Service: Ошибка валидации задачи", zap.Error(err))
		return nil, err
	}

	if err := s.activeColumn(ctx, columnID); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		ID:          uuid.New(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Priority:    models.PriorityMedium,
		Labels:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(task)
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	pos, err := nextTaskPosition(ctx, s.store, columnID)
	if err != nil {
		return nil, repoError(err, ResourceTask, columnID, "вычисление позиции")
	}
	task.Position = pos

	if err := s.store.Tasks().Create(ctx, task); err != nil {
		return nil, repoError(err, ResourceTask, task.ID, "создание задачи")
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", task.ID.String()),
		zap.String("column_id", columnID.String()),
		zap.Int("position", pos))
	return task, nil
}

// activeColumn - колонка существует и не в архиве, иначе NOT_FOUND
func (s *TaskService) activeColumn(ctx context.Context, columnID uuid.UUID) error {
	column, err := s.store.Columns().GetByID(ctx, columnID)
	if err != nil {
		return repoError(err, ResourceColumn, columnID, "получение колонки")
	}
	if column.Archived {
		logger.Warn("Service: Колонка в архиве", zap.String("column_id", columnID.String()))
		return NewNotFound(ResourceColumn, columnID.String())
	}
	return nil
}

func validateTask(task *models.Task) error {
	var err error
	if task.Title, err = validateTitle("title", task.Title); err != nil {
		return err
	}
	if !task.Priority.Valid() {
		return NewValidationError("priority", "допустимо LOW, MEDIUM, HIGH, CRITICAL")
	}
	return nil
}

func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "получение задачи")
	}
	return task, nil
}

// editable возвращает задачу, которую можно менять: архивные задачи только восстанавливаются или удаляются
func (s *TaskService) editable(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "получение задачи")
	}
	if task.Archived {
		logger.Warn("Service: Изменение архивной задачи", zap.String("task_id", id.String()))
		return nil, NewInvalidState(ResourceTask, id.String(), "задача в архиве")
	}
	return task, nil
}

func (s *TaskService) save(ctx context.Context, task *models.Task, operation string) error {
	if err := s.store.Tasks().Update(ctx, task); err != nil {
		return repoError(err, ResourceTask, task.ID, operation)
	}
	return nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, opts ...models.TaskOption) (*models.Task, error) {
	task, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(task)
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	if err := s.save(ctx, task, "обновление задачи"); err != nil {
		return nil, err
	}

	logger.Info("Service: Задача обновлена", zap.String("task_id", id.String()))
	return task, nil
}

// ToggleCompletion переключает отметку выполнения
func (s *TaskService) ToggleCompletion(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.setCompleted(ctx, task, !task.Completed)
}

// SetCompleted идемпотентен: повторная установка того же значения ничего не меняет
func (s *TaskService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*models.Task, error) {
	task, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Completed == completed {
		return task, nil
	}
	return s.setCompleted(ctx, task, completed)
}

func (s *TaskService) setCompleted(ctx context.Context, task *models.Task, completed bool) (*models.Task, error) {
	task.Completed = completed
	if completed {
		now := time.Now()
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}

	if err := s.save(ctx, task, "отметка выполнения"); err != nil {
		return nil, err
	}

	logger.Info("Service: Статус выполнения изменён",
		zap.String("task_id", task.ID.String()),
		zap.Bool("completed", completed))
	return task, nil
}

// MoveTask переносит задачу в конец другой активной колонки
func (s *TaskService) MoveTask(ctx context.Context, id, columnID uuid.UUID) (*models.Task, error) {
	task, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.ColumnID == columnID {
		return task, nil
	}
	if err := s.activeColumn(ctx, columnID); err != nil {
		return nil, err
	}

	pos, err := nextTaskPosition(ctx, s.store, columnID)
	if err != nil {
		return nil, repoError(err, ResourceTask, columnID, "вычисление позиции")
	}

	from := task.ColumnID
	task.ColumnID = columnID
	task.Position = pos

	if err := s.save(ctx, task, "перемещение задачи"); err != nil {
		return nil, err
	}

	logger.Info("Service: Задача перемещена",
		zap.String("task_id", id.String()),
		zap.String("from_column", from.String()),
		zap.String("to_column", columnID.String()),
		zap.Int("position", pos))
	return task, nil
}

// ArchiveTask сохраняет column_id, повторная архивация ничего не меняет
func (s *TaskService) ArchiveTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "получение задачи")
	}
	if task.Archived {
		return task, nil
	}

	now := time.Now()
	task.Archived = true
	task.ArchivedAt = &now

	if err := s.save(ctx, task, "архивация задачи"); err != nil {
		return nil, err
	}

	logger.Info("Service: Задача архивирована", zap.String("task_id", id.String()))
	return task, nil
}

// RestoreTask снимает отметку архива, остальные поля не меняются
func (s *TaskService) RestoreTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "получение задачи")
	}
	if !task.Archived {
		return task, nil
	}

	task.Archived = false
	task.ArchivedAt = nil

	if err := s.save(ctx, task, "восстановление задачи"); err != nil {
		return nil, err
	}

	logger.Info("Service: Задача восстановлена",
		zap.String("task_id", id.String()),
		zap.String("column_id", task.ColumnID.String()))
	return task, nil
}

// PurgeTask безвозвратно удаляет архивную задачу вместе с вложениями
func (s *TaskService) PurgeTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.store.Tasks().GetByID(ctx, id)
	if err != nil {
		return repoError(err, ResourceTask, id, "получение задачи")
	}
	if !task.Archived {
		logger.Warn("Service: Удаление неархивной задачи", zap.String("task_id", id.String()))
		return NewInvalidState(ResourceTask, id.String(), "удалить можно только задачу из архива")
	}

	var keys []string
	err = s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		keys, err = deleteTaskTree(ctx, st, task)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound(ResourceTask, id.String())
		}
		logger.Error("Service: Не удалось удалить задачу", err, zap.String("task_id", id.String()))
		return NewPersistenceError("удаление задачи", err)
	}

	removeBlobs(ctx, s.blobs, keys)

	logger.Info("Service: Задача удалена навсегда", zap.String("task_id", id.String()))
	return nil
}

// AddLabel ставит метку на задачу; для меток из каталога растёт счётчик использования
func (s *TaskService) AddLabel(ctx context.Context, id uuid.UUID, name string) (*models.Task, error) {
	if models.NormalizeLabel(name) == "" {
		return nil, NewValidationError("label", "не может быть пустой")
	}

	var task *models.Task
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		if task, err = s.editableIn(ctx, st, id); err != nil {
			return err
		}
		if !task.AddLabel(name) {
			return nil
		}
		if err := st.Tasks().Update(ctx, task); err != nil {
			return err
		}
		return adjustLabelUsage(ctx, st, models.NormalizeLabel(name), 1)
	})
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "добавление метки")
	}

	logger.Info("Service: Метка добавлена",
		zap.String("task_id", id.String()),
		zap.String("label", models.NormalizeLabel(name)))
	return task, nil
}

func (s *TaskService) RemoveLabel(ctx context.Context, id uuid.UUID, name string) (*models.Task, error) {
	var task *models.Task
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		if task, err = s.editableIn(ctx, st, id); err != nil {
			return err
		}
		if !task.RemoveLabel(name) {
			return nil
		}
		if err := st.Tasks().Update(ctx, task); err != nil {
			return err
		}
		return adjustLabelUsage(ctx, st, models.NormalizeLabel(name), -1)
	})
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "удаление метки")
	}

	logger.Info("Service: Метка снята",
		zap.String("task_id", id.String()),
		zap.String("label", models.NormalizeLabel(name)))
	return task, nil
}

func (s *TaskService) editableIn(ctx context.Context, st repository.Store, id uuid.UUID) (*models.Task, error) {
	task, err := st.Tasks().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceTask, id, "получение задачи")
	}
	if task.Archived {
		return nil, NewInvalidState(ResourceTask, id.String(), "задача в архиве")
	}
	return task, nil
}

// adjustLabelUsage меняет счётчик метки каталога, метки вне каталога пропускаются
func adjustLabelUsage(ctx context.Context, st repository.Store, name string, delta int) error {
	label, err := st.Labels().GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	label.UsageCount = max(label.UsageCount+delta, 0)
	return st.Labels().Update(ctx, label)
}

// AssignMember назначает участника проекта задачи, uuid.Nil снимает назначение
func (s *TaskService) AssignMember(ctx context.Context, id, memberID uuid.UUID) (*models.Task, error) {
	task, err := s.editable(ctx, id)
	if err != nil {
		return nil, err
	}

	if memberID != uuid.Nil {
		member, err := s.store.Members().GetByID(ctx, memberID)
		if err != nil {
			return nil, repoError(err, ResourceMember, memberID, "получение участника")
		}
		column, err := s.store.Columns().GetByID(ctx, task.ColumnID)
		if err != nil {
			return nil, repoError(err, ResourceColumn, task.ColumnID, "получение колонки")
		}
		if member.ProjectID != column.ProjectID {
			return nil, NewValidationError("member_id", "участник из другого проекта")
		}
	}

	models.WithAssignedMember(memberID)(task)
	if err := s.save(ctx, task, "назначение участника"); err != nil {
		return nil, err
	}

	logger.Info("Service: Участник назначен",
		zap.String("task_id", id.String()),
		zap.String("member_id", memberID.String()))
	return task, nil
}

// ListTasks - активные задачи колонки по позиции; задачи архивной колонки тоже доступны
func (s *TaskService) ListTasks(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	if _, err := s.store.Columns().GetByID(ctx, columnID); err != nil {
		return nil, repoError(err, ResourceColumn, columnID, "получение колонки")
	}
	tasks, err := s.store.Tasks().ListByColumn(ctx, columnID)
	if err != nil {
		return nil, repoError(err, ResourceTask, columnID, "получение задач")
	}
	return tasks, nil
}

func (s *TaskService) ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	tasks, err := s.store.Tasks().ListByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceTask, projectID, "получение задач проекта")
	}
	return tasks, nil
}

func (s *TaskService) ListArchivedTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	tasks, err := s.store.Tasks().ListArchivedByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceTask, projectID, "получение архивных задач")
	}
	return tasks, nil
}

// FilterProjectTasks применяет FilterTasks к активным задачам проекта
func (s *TaskService) FilterProjectTasks(ctx context.Context, projectID uuid.UUID, criteria FilterCriteria) ([]*models.Task, error) {
	tasks, err := s.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return FilterTasks(tasks, criteria), nil
}
