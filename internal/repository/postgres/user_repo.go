package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	q querier
}

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	defer observe("создание пользователя", time.Now())

	query := `INSERT INTO users (id, username, email, password_hash, created_at)
				VALUES ($1, $2, $3, $4, NOW())
				RETURNING created_at`

	err := r.q.QueryRow(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		return mapError("создание пользователя", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	defer observe("получение пользователя", time.Now())

	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение пользователя", err)
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observe("получение пользователя", time.Now())

	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		return nil, mapError("получение пользователя", err)
	}
	return u, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observe("получение пользователя", time.Now())

	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, mapError("получение пользователя", err)
	}
	return u, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	defer observe("обновление пользователя", time.Now())

	query := `UPDATE users
			SET username = $1,
				email = $2,
				password_hash = $3
			WHERE id = $4`

	tag, err := r.q.Exec(ctx, query, user.Username, user.Email, user.PasswordHash, user.ID)
	if err != nil {
		return mapError("обновление пользователя", err)
	}
	return affected(tag)
}
