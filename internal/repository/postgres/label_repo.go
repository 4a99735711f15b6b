package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LabelRepo struct {
	q querier
}

const labelColumns = `id, name, color, description, usage_count, created_at`

func scanLabel(row pgx.Row) (*models.Label, error) {
	l := &models.Label{}
	if err := row.Scan(&l.ID, &l.Name, &l.Color, &l.Description, &l.UsageCount, &l.CreatedAt); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *LabelRepo) Create(ctx context.Context, label *models.Label) error {
	defer observe("создание метки", time.Now())

	query := `INSERT INTO labels (id, name, color, description, usage_count, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				RETURNING created_at`

	err := r.q.QueryRow(ctx, query,
		label.ID, label.Name, label.Color, label.Description, label.UsageCount,
	).Scan(&label.CreatedAt)
	if err != nil {
		return mapError("создание метки", err)
	}
	return nil
}

func (r *LabelRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Label, error) {
	defer observe("получение метки", time.Now())

	l, err := scanLabel(r.q.QueryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение метки", err)
	}
	return l, nil
}

func (r *LabelRepo) GetByName(ctx context.Context, name string) (*models.Label, error) {
	defer observe("получение метки", time.Now())

	l, err := scanLabel(r.q.QueryRow(ctx, `SELECT `+labelColumns+` FROM labels WHERE name = $1`, name))
	if err != nil {
		return nil, mapError("получение метки", err)
	}
	return l, nil
}

func (r *LabelRepo) List(ctx context.Context) ([]*models.Label, error) {
	defer observe("получение меток", time.Now())

	rows, err := r.q.Query(ctx, `SELECT `+labelColumns+` FROM labels ORDER BY name`)
	if err != nil {
		return nil, mapError("получение меток", err)
	}
	return collect(rows, scanLabel)
}

func (r *LabelRepo) Update(ctx context.Context, label *models.Label) error {
	defer observe("обновление метки", time.Now())

	query := `UPDATE labels
			SET name = $1,
				color = $2,
				description = $3,
				usage_count = $4
			WHERE id = $5`

	tag, err := r.q.Exec(ctx, query, label.Name, label.Color, label.Description, label.UsageCount, label.ID)
	if err != nil {
		return mapError("обновление метки", err)
	}
	return affected(tag)
}

func (r *LabelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление метки", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление метки", err)
	}
	return affected(tag)
}
