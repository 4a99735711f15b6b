package inmemory

import (
	"context"
	"sort"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	s *Storage
}

func (r *TaskStorage) Create(ctx context.Context, taskToCreate *models.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[taskToCreate.ID]; ok {
		return repo.ErrDuplicate
	}

	now := time.Now()
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = now
	}
	taskToCreate.UpdatedAt = now

	r.s.tasks[taskToCreate.ID] = taskToCreate.Clone()
	return nil
}

func (r *TaskStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return t.Clone(), nil
}

func (r *TaskStorage) Update(ctx context.Context, taskToUpdate *models.Task) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}
	taskToUpdate.UpdatedAt = time.Now()
	r.s.tasks[taskToUpdate.ID] = taskToUpdate.Clone()
	return nil
}

func (r *TaskStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskStorage) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Task{}
	for _, t := range r.s.tasks {
		if t.ColumnID == columnID && !t.Archived {
			res = append(res, t.Clone())
		}
	}
	models.SortByPosition(res)
	return res, nil
}

func (r *TaskStorage) ListAllByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Task{}
	for _, t := range r.s.tasks {
		if t.ColumnID == columnID {
			res = append(res, t.Clone())
		}
	}
	models.SortByPosition(res)
	return res, nil
}

// задачи всех колонок проекта, новые первыми
func (r *TaskStorage) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := r.byProject(projectID, false)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *TaskStorage) ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := r.byProject(projectID, true)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].UpdatedAt.After(res[j].UpdatedAt)
	})
	return res, nil
}

func (r *TaskStorage) byProject(projectID uuid.UUID, archived bool) []*models.Task {
	res := []*models.Task{}
	for _, t := range r.s.tasks {
		if t.Archived != archived {
			continue
		}
		col, ok := r.s.columns[t.ColumnID]
		if !ok || col.ProjectID != projectID {
			continue
		}
		res = append(res, t.Clone())
	}
	// порядок map случаен, фиксируем базовый перед сортировкой по времени
	models.SortByPosition(res)
	return res
}

func (r *TaskStorage) MaxPosition(ctx context.Context, columnID uuid.UUID) (int, bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	max, found := 0, false
	for _, t := range r.s.tasks {
		if t.ColumnID != columnID || t.Archived {
			continue
		}
		if !found || t.Position > max {
			max, found = t.Position, true
		}
	}
	return max, found, nil
}
