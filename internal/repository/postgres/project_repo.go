package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProjectRepo struct {
	q querier
}

const projectColumns = `id, owner_id, title, description, color, position,
				is_archived, archived_at, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	p := &models.Project{}
	err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.Color,
		&p.Position,
		&p.Archived,
		&p.ArchivedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	defer observe("создание проекта", time.Now())

	query := `INSERT INTO projects
				(id, owner_id, title, description, color, position, is_archived, archived_at, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
				RETURNING created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		project.ID,
		project.OwnerID,
		project.Title,
		project.Description,
		project.Color,
		project.Position,
		project.Archived,
		project.ArchivedAt,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return mapError("создание проекта", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	defer observe("получение проекта", time.Now())

	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение проекта", err)
	}
	return p, nil
}

func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	defer observe("обновление проекта", time.Now())

	query := `UPDATE projects
			SET title = $1,
				description = $2,
				color = $3,
				position = $4,
				is_archived = $5,
				archived_at = $6,
				updated_at = NOW()
			WHERE id = $7
			RETURNING updated_at`

	err := r.q.QueryRow(ctx, query,
		project.Title,
		project.Description,
		project.Color,
		project.Position,
		project.Archived,
		project.ArchivedAt,
		project.ID,
	).Scan(&project.UpdatedAt)
	if err != nil {
		return mapError("обновление проекта", err)
	}
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление проекта", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление проекта", err)
	}
	return affected(tag)
}

func (r *ProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, archived bool) ([]*models.Project, error) {
	defer observe("получение проектов", time.Now())

	order := `position, created_at`
	if archived {
		order = `updated_at DESC`
	}
	query := `SELECT ` + projectColumns + ` FROM projects
				WHERE owner_id = $1 AND is_archived = $2
				ORDER BY ` + order

	rows, err := r.q.Query(ctx, query, ownerID, archived)
	if err != nil {
		return nil, mapError("получение проектов", err)
	}
	return collect(rows, scanProject)
}

func (r *ProjectRepo) MaxPosition(ctx context.Context, ownerID uuid.UUID) (int, bool, error) {
	defer observe("позиция проекта", time.Now())

	var max *int
	query := `SELECT MAX(position) FROM projects WHERE owner_id = $1 AND is_archived = FALSE`
	if err := r.q.QueryRow(ctx, query, ownerID).Scan(&max); err != nil {
		return 0, false, mapError("позиция проекта", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}
