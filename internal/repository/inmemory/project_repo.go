package inmemory

import (
	"context"
	"sort"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type ProjectStorage struct {
	s *Storage
}

func (r *ProjectStorage) Create(ctx context.Context, project *models.Project) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[project.ID]; ok {
		return repo.ErrDuplicate
	}

	now := time.Now()
	if project.CreatedAt.IsZero() {
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	r.s.projects[project.ID] = *project
	return nil
}

func (r *ProjectStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &p, nil
}

func (r *ProjectStorage) Update(ctx context.Context, project *models.Project) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[project.ID]; !ok {
		return repo.ErrNotFound
	}
	project.UpdatedAt = time.Now()
	r.s.projects[project.ID] = *project
	return nil
}

func (r *ProjectStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.projects, id)
	return nil
}

func (r *ProjectStorage) ListByOwner(ctx context.Context, ownerID uuid.UUID, archived bool) ([]*models.Project, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Project{}
	for _, p := range r.s.projects {
		if p.OwnerID != ownerID || p.Archived != archived {
			continue
		}
		p := p
		res = append(res, &p)
	}

	if archived {
		sort.SliceStable(res, func(i, j int) bool {
			return res[i].UpdatedAt.After(res[j].UpdatedAt)
		})
		return res, nil
	}
	models.SortProjectsByPosition(res)
	return res, nil
}

func (r *ProjectStorage) MaxPosition(ctx context.Context, ownerID uuid.UUID) (int, bool, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	max, found := 0, false
	for _, p := range r.s.projects {
		if p.OwnerID != ownerID || p.Archived {
			continue
		}
		if !found || p.Position > max {
			max, found = p.Position, true
		}
	}
	return max, found, nil
}
