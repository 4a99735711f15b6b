package postgres

import (
	"context"
	"strings"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TaskRepo struct {
	q querier
}

const taskColumns = `t.id, t.column_id, t.title, t.description, t.position, t.priority, t.due_date,
				t.is_completed, t.completed_at, t.is_archived, t.archived_at, t.labels,
				t.assigned_member, t.created_at, t.updated_at`

// приоритет хранится в нижнем регистре, как в старой базе
func priorityToDB(p models.Priority) string {
	return strings.ToLower(string(p))
}

func scanTask(row pgx.Row) (*models.Task, error) {
	t := &models.Task{}
	var priority string
	err := row.Scan(
		&t.ID,
		&t.ColumnID,
		&t.Title,
		&t.Description,
		&t.Position,
		&priority,
		&t.DueDate,
		&t.Completed,
		&t.CompletedAt,
		&t.Archived,
		&t.ArchivedAt,
		&t.Labels,
		&t.AssignedMember,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Priority, _ = models.ParsePriority(priority)
	if t.Labels == nil {
		t.Labels = []string{}
	}
	return t, nil
}

func labelsOrEmpty(labels []string) []string {
	if labels == nil {
		return []string{}
	}
	return labels
}

func (r *TaskRepo) Create(ctx context.Context, task *models.Task) error {
	defer observe("создание задачи", time.Now())

	query := `INSERT INTO tasks
				(id, column_id, title, description, position, priority, due_date,
				 is_completed, completed_at, is_archived, archived_at, labels, assigned_member,
				 created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
				RETURNING created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		task.ID,
		task.ColumnID,
		task.Title,
		task.Description,
		task.Position,
		priorityToDB(task.Priority),
		task.DueDate,
		task.Completed,
		task.CompletedAt,
		task.Archived,
		task.ArchivedAt,
		labelsOrEmpty(task.Labels),
		task.AssignedMember,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return mapError("создание задачи", err)
	}
	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	defer observe("получение задачи", time.Now())

	t, err := scanTask(r.q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = $1`, id))
	if err != nil {
		return nil, mapError("получение задачи", err)
	}
	return t, nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	defer observe("обновление задачи", time.Now())

	query := `UPDATE tasks
			SET column_id = $1,
				title = $2,
				description = $3,
				position = $4,
				priority = $5,
				due_date = $6,
				is_completed = $7,
				completed_at = $8,
				is_archived = $9,
				archived_at = $10,
				labels = $11,
				assigned_member = $12,
				updated_at = NOW()
			WHERE id = $13
			RETURNING updated_at`

	err := r.q.QueryRow(ctx, query,
		task.ColumnID,
		task.Title,
		task.Description,
		task.Position,
		priorityToDB(task.Priority),
		task.DueDate,
		task.Completed,
		task.CompletedAt,
		task.Archived,
		task.ArchivedAt,
		labelsOrEmpty(task.Labels),
		task.AssignedMember,
		task.ID,
	).Scan(&task.UpdatedAt)
	if err != nil {
		return mapError("обновление задачи", err)
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление задачи", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление задачи", err)
	}
	return affected(tag)
}

func (r *TaskRepo) list(ctx context.Context, operation, query string, args ...any) ([]*models.Task, error) {
	defer observe(operation, time.Now())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(operation, err)
	}
	return collect(rows, scanTask)
}

func (r *TaskRepo) ListByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	return r.list(ctx, "получение задач колонки",
		`SELECT `+taskColumns+` FROM tasks t
			WHERE t.column_id = $1 AND t.is_archived = FALSE
			ORDER BY t.position, t.created_at`, columnID)
}

func (r *TaskRepo) ListAllByColumn(ctx context.Context, columnID uuid.UUID) ([]*models.Task, error) {
	return r.list(ctx, "получение всех задач колонки",
		`SELECT `+taskColumns+` FROM tasks t
			WHERE t.column_id = $1
			ORDER BY t.position, t.created_at`, columnID)
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	return r.list(ctx, "получение задач проекта",
		`SELECT `+taskColumns+` FROM tasks t
			JOIN columns c ON t.column_id = c.id
			WHERE c.project_id = $1 AND t.is_archived = FALSE
			ORDER BY t.created_at DESC`, projectID)
}

func (r *TaskRepo) ListArchivedByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	return r.list(ctx, "получение архивных задач",
		`SELECT `+taskColumns+` FROM tasks t
			JOIN columns c ON t.column_id = c.id
			WHERE c.project_id = $1 AND t.is_archived = TRUE
			ORDER BY t.updated_at DESC`, projectID)
}

func (r *TaskRepo) MaxPosition(ctx context.Context, columnID uuid.UUID) (int, bool, error) {
	defer observe("позиция задачи", time.Now())

	var max *int
	query := `SELECT MAX(position) FROM tasks WHERE column_id = $1 AND is_archived = FALSE`
	if err := r.q.QueryRow(ctx, query, columnID).Scan(&max); err != nil {
		return 0, false, mapError("позиция задачи", err)
	}
	if max == nil {
		return 0, false, nil
	}
	return *max, true, nil
}
