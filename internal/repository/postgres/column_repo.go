package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ColumnRepo struct {
	q querier
}

const columnColumns = `id, project_id, title, color, position, is_archived, archived_at, created_at`

func scanColumn(row pgx.Row) (*models.Column, error) {
	c := &models.Column{}
	err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&c.Title,
		&c.Color,
		&c.Position,
		&c.Archived,
		&c.ArchivedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ColumnRepo) Create(ctx context.Context, column *models.Column) error {
	defer observe("создание колонки", time.Now())

	query := `INSERT INTO columns
				(id, project_id, title, color, position, is_archived, archived_at, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
				RETURNING created_at`

	err := r.q.QueryRow(ctx, query,
		column.ID,
		column.ProjectID,
		column.Title,
		column.Color,
		column.Position,
		column.Archived,
		column.ArchivedAt,
	).Scan(&column.CreatedAt)
	if err != nil {
		return mapError("создание колонки", err)
	}
	return nil
}

func (r *ColumnRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Column, error) {
	defer observe("получение колонки", time.Now())

	c, err := scanColumn(r.q.QueryRow(ctx, `SELECT `+columnColumns+` FROM columns WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение колонки", err)
	}
	return c, nil
}

func (r *ColumnRepo) Update(ctx context.Context, column *models.Column) error {
	defer observe("обновление колонки", time.Now())

	query := `UPDATE columns
			SET title = $1,
				color = $2,
				position = $3,
				is_archived = $4,
				archived_at = $5
			WHERE id = $6`

	tag, err := r.q.Exec(ctx, query,
		column.Title,
		column.Color,
		column.Position,
		column.Archived,
		column.ArchivedAt,
		column.ID,
	)
	if err != nil {
		return mapError("обновление колонки", err)
	}
	return affected(tag)
}

func (r *ColumnRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление колонки", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM columns WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление колонки", err)
	}
	return affected(tag)
}

func (r *ColumnRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	defer observe("получение колонок", time.Now())

	query := `SELECT ` + columnColumns + ` FROM columns
				WHERE project_id = $1 AND is_archived = FALSE
				ORDER BY position, created_at`

	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, mapError("получение колонок", err)
	}
	return collect(rows, scanColumn)
}

func (r *ColumnRepo) ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Column, error) {
	defer observe("получение архивных колонок", time.Now())

	query := `SELECT ` + columnColumns + ` FROM columns
				WHERE project_id = $1 AND is_archived = TRUE
				ORDER BY archived_at DESC`

	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, mapError("получение архивных колонок", err)
	}
	return collect(rows, scanColumn)
}

func (r *ColumnRepo) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, bool, error) {
	defer observe("позиция колонки", time.Now())

	var max *int
	query := `SELECT MAX(position) FROM columns WHERE project_id = $1 AND is_archived = FALSE`
	if err := r.q.QueryRow(ctx, query, projectID).Scan(&max); err != nil {
		return 0, false, mapError("позиция колонки", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}
