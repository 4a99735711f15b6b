package inmemory

import (
	"context"
	"strings"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	s *Storage
}

func (r *UserStorage) Create(ctx context.Context, user *models.User) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return repo.ErrDuplicate
		}
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (r *UserStorage) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *UserStorage) Update(ctx context.Context, user *models.User) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && (u.Username == user.Username || strings.EqualFold(u.Email, user.Email)) {
			return repo.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}
