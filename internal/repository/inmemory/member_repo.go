package inmemory

import (
	"context"
	"sort"
	"strings"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type MemberStorage struct {
	s *Storage
}

func (r *MemberStorage) Create(ctx context.Context, member *models.ProjectMember) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	for _, m := range r.s.members {
		if m.ProjectID == member.ProjectID && strings.EqualFold(m.Email, member.Email) {
			return repo.ErrDuplicate
		}
	}
	if member.InvitedAt.IsZero() {
		member.InvitedAt = time.Now()
	}
	r.s.members[member.ID] = *member
	return nil
}

func (r *MemberStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	m, ok := r.s.members[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &m, nil
}

func (r *MemberStorage) GetByEmail(ctx context.Context, projectID uuid.UUID, email string) (*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, m := range r.s.members {
		if m.ProjectID == projectID && strings.EqualFold(m.Email, email) {
			return &m, nil
		}
	}
	return nil, repo.ErrNotFound
}

// ORDER BY role, username
func (r *MemberStorage) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.ProjectMember{}
	for _, m := range r.s.members {
		if m.ProjectID == projectID {
			m := m
			res = append(res, &m)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Role.Rank() != res[j].Role.Rank() {
			return res[i].Role.Rank() < res[j].Role.Rank()
		}
		return res[i].Username < res[j].Username
	})
	return res, nil
}

func (r *MemberStorage) Update(ctx context.Context, member *models.ProjectMember) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.members[member.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.members[member.ID] = *member
	return nil
}

func (r *MemberStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.members[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.members, id)
	return nil
}
