package postgres

import (
	"context"
	"time"

	"projectFlow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MemberRepo struct {
	q querier
}

const memberColumns = `id, project_id, username, email, role, status, invited_at`

func scanMember(row pgx.Row) (*models.ProjectMember, error) {
	m := &models.ProjectMember{}
	if err := row.Scan(&m.ID, &m.ProjectID, &m.Username, &m.Email, &m.Role, &m.Status, &m.InvitedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MemberRepo) Create(ctx context.Context, member *models.ProjectMember) error {
	defer observe("создание участника", time.Now())

	query := `INSERT INTO project_members (id, project_id, username, email, role, status, invited_at)
				VALUES ($1, $2, $3, $4, $5, $6, NOW())
				RETURNING invited_at`

	err := r.q.QueryRow(ctx, query,
		member.ID,
		member.ProjectID,
		member.Username,
		member.Email,
		string(member.Role),
		string(member.Status),
	).Scan(&member.InvitedAt)
	if err != nil {
		return mapError("создание участника", err)
	}
	return nil
}

func (r *MemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectMember, error) {
	defer observe("получение участника", time.Now())

	m, err := scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM project_members WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("получение участника", err)
	}
	return m, nil
}

func (r *MemberRepo) GetByEmail(ctx context.Context, projectID uuid.UUID, email string) (*models.ProjectMember, error) {
	defer observe("получение участника", time.Now())

	query := `SELECT ` + memberColumns + ` FROM project_members
				WHERE project_id = $1 AND LOWER(email) = LOWER($2)`

	m, err := scanMember(r.q.QueryRow(ctx, query, projectID, email))
	if err != nil {
		return nil, mapError("получение участника", err)
	}
	return m, nil
}

// порядок ролей совпадает с models.MemberRole.Rank
func (r *MemberRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	defer observe("получение участников", time.Now())

	query := `SELECT ` + memberColumns + ` FROM project_members
				WHERE project_id = $1
				ORDER BY CASE role
					WHEN 'Владелец' THEN 0
					WHEN 'Администратор' THEN 1
					WHEN 'Участник' THEN 2
					WHEN 'Наблюдатель' THEN 3
					ELSE 4 END,
				username`

	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, mapError("получение участников", err)
	}
	return collect(rows, scanMember)
}

func (r *MemberRepo) Update(ctx context.Context, member *models.ProjectMember) error {
	defer observe("обновление участника", time.Now())

	query := `UPDATE project_members
			SET username = $1,
				email = $2,
				role = $3,
				status = $4
			WHERE id = $5`

	tag, err := r.q.Exec(ctx, query,
		member.Username, member.Email, string(member.Role), string(member.Status), member.ID)
	if err != nil {
		return mapError("обновление участника", err)
	}
	return affected(tag)
}

func (r *MemberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer observe("удаление участника", time.Now())

	tag, err := r.q.Exec(ctx, `DELETE FROM project_members WHERE id = $1`, id)
	if err != nil {
		return mapError("удаление участника", err)
	}
	return affected(tag)
}
