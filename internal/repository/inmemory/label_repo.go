package inmemory

import (
	"context"
	"sort"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type LabelStorage struct {
	s *Storage
}

func (r *LabelStorage) Create(ctx context.Context, label *models.Label) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	for _, l := range r.s.labels {
		if l.Name == label.Name {
			return repo.ErrDuplicate
		}
	}
	if label.CreatedAt.IsZero() {
		label.CreatedAt = time.Now()
	}
	r.s.labels[label.ID] = *label
	return nil
}

func (r *LabelStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Label, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	l, ok := r.s.labels[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &l, nil
}

func (r *LabelStorage) GetByName(ctx context.Context, name string) (*models.Label, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, l := range r.s.labels {
		if l.Name == name {
			return &l, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *LabelStorage) List(ctx context.Context) ([]*models.Label, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := make([]*models.Label, 0, len(r.s.labels))
	for _, l := range r.s.labels {
		l := l
		res = append(res, &l)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res, nil
}

func (r *LabelStorage) Update(ctx context.Context, label *models.Label) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.labels[label.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, l := range r.s.labels {
		if id != label.ID && l.Name == label.Name {
			return repo.ErrDuplicate
		}
	}
	r.s.labels[label.ID] = *label
	return nil
}

func (r *LabelStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.labels[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.labels, id)
	return nil
}
