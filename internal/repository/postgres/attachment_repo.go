package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttachmentRepo struct {
	q querier
}

const attachmentColumns = `id, task_id, filename, file_path, file_type, uploaded_at`

func scanAttachment(row pgx.Row) (*models.Attachment, error) {
	a := &models.Attachment{}
	if err := row.Scan(&a.ID, &a.TaskID, &a.Filename, &a.FilePath, &a.FileType, &a.UploadedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	defer observe("создание вложения", time.Now())

	query := `INSERT INTO attachments (id, task_id, filename, file_path, file_type, uploaded_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				RETURNING uploaded_at`

	err := r.q.QueryRow(ctx, query,
		attachment.ID,
		attachment.TaskID,
		attachment.Filename,
		attachment.FilePath,
		attachment.FileType,
	).Scan(&attachment.UploadedAt)
	if err != nil {
		return mapError("создание вложения", err)
	}
	return nil
}

func (r *AttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	defer observe("получение вложения", time.Now())

	a, err := scanAttachment(r.q.QueryRow(ctx, `SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение вложения", err)
	}
	return a, nil
}

func (r *AttachmentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	defer observe("получение вложений", time.Now())

	query := `SELECT ` + attachmentColumns + ` FROM attachments
				WHERE task_id = $1
				ORDER BY uploaded_at DESC`

	rows, err := r.q.Query(ctx, query, taskID)
	if err != nil {
		return nil, mapError("получение вложений", err)
	}
	return collect(rows, scanAttachment)
}

func (r *AttachmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление вложения", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM attachments WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление вложения", err)
	}
	return affected(tag)
}
