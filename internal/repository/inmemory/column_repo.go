package inmemory

import (
	"context"
	"sort"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type ColumnStorage struct {
	s *Storage
}

func (r *ColumnStorage) Create(ctx context.Context, column *models.Column) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.columns[column.ID]; ok {
		return repo.ErrDuplicate
	}
	if column.CreatedAt.IsZero() {
		column.CreatedAt = time.Now()
	}
	r.s.columns[column.ID] = *column
	return nil
}

func (r *ColumnStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Column, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	c, ok := r.s.columns[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &c, nil
}

func (r *ColumnStorage) Update(ctx context.Context, column *models.Column) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.columns[column.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.columns[column.ID] = *column
	return nil
}

func (r *ColumnStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.columns[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.columns, id)
	return nil
}

func (r *ColumnStorage) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Column{}
	for _, c := range r.s.columns {
		if c.ProjectID == projectID && !c.Archived {
			c := c
			res = append(res, &c)
		}
	}
	models.SortColumnsByPosition(res)
	return res, nil
}

// ListArchivedByProject - свежие архивные колонки первыми
func (r *ColumnStorage) ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Column{}
	for _, c := range r.s.columns {
		if c.ProjectID == projectID && c.Archived {
			c := c
			res = append(res, &c)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return archivedAt(res[i].ArchivedAt).After(archivedAt(res[j].ArchivedAt))
	})
	return res, nil
}

func (r *ColumnStorage) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	max, found := 0, false
	for _, c := range r.s.columns {
		if c.ProjectID != projectID || c.Archived {
			continue
		}
		if !found || c.Position > max {
			max, found = c.Position, true
		}
	}
	return max, found, nil
}

func archivedAt(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
