package service_test

import (
	"testing"

	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjectService_CreateProject тестирует создание проекта
func TestProjectService_CreateProject(t *testing.T) {
	env := newTestEnv(t)
	session := env.session(t)

	tests := []struct {
		name         string
		session      service.Session
		title        string
		opts         []service.ProjectOption
		expectedCode string
		check        func(*testing.T, *models.Project)
	}{
		{
			name:    "success - default color",
			session: session,
			title:   " Ремонт ",
			check: func(t *testing.T, p *models.Project) {
				assert.Equal(t, "Ремонт", p.Title)
				assert.Equal(t, models.DefaultProjectColor, p.Color)
				assert.Equal(t, session.UserID(), p.OwnerID)
			},
		},
		{
			name:    "success - custom color",
			session: session,
			title:   "Дача",
			opts:    []service.ProjectOption{service.WithProjectColor("#123abc")},
			check: func(t *testing.T, p *models.Project) {
				assert.Equal(t, "#123abc", p.Color)
				assert.Equal(t, 1, p.Position)
			},
		},
		{
			name:         "error - empty title",
			session:      session,
			title:        "",
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - bad color",
			session:      session,
			title:        "Проект",
			opts:         []service.ProjectOption{service.WithProjectColor("red")},
			expectedCode: service.CodeValidation,
		},
		{
			name:         "error - no session",
			session:      service.Session{},
			title:        "Проект",
			expectedCode: service.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := env.svc.Projects.CreateProject(env.ctx, tt.session, tt.title, "", tt.opts...)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, service.CodeOf(err))
				return
			}
			require.NoError(t, err)
			tt.check(t, project)

			members, err := env.svc.Members.ListMembers(env.ctx, project.ID)
			require.NoError(t, err)
			require.Len(t, members, 1)
			assert.Equal(t, models.RoleOwner, members[0].Role)
			assert.Equal(t, models.MemberActive, members[0].Status)
			assert.Equal(t, session.User.Username, members[0].Username)
		})
	}
}

// TestProjectService_ArchiveRestore тестирует архив проектов
func TestProjectService_ArchiveRestore(t *testing.T) {
	env := newTestEnv(t)
	session := env.session(t)
	first := env.project(t, session)
	second := env.project(t, session)

	archived, err := env.svc.Projects.ArchiveProject(env.ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, archived.Archived)

	again, err := env.svc.Projects.ArchiveProject(env.ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, *archived.ArchivedAt, *again.ArchivedAt)

	active, err := env.svc.Projects.ListProjects(env.ctx, session)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	list, err := env.svc.Projects.ListArchivedProjects(env.ctx, session)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	_, err = env.svc.Projects.UpdateProject(env.ctx, first.ID, service.WithProjectTitle("Новое"))
	assert.Equal(t, service.CodeInvalidState, service.CodeOf(err))

	_, err = env.svc.Columns.CreateColumn(env.ctx, first.ID, "Колонка", "")
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))

	restored, err := env.svc.Projects.RestoreProject(env.ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Nil(t, restored.ArchivedAt)

	_, err = env.svc.Projects.ArchiveProject(env.ctx, uuid.New())
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

// TestProjectService_GetBoard тестирует сборку доски
func TestProjectService_GetBoard(t *testing.T) {
	env := newTestEnv(t)
	project, todo := env.board(t)
	done := env.column(t, project.ID, "Готово")
	hidden := env.column(t, project.ID, "Скрытая")

	a := env.task(t, todo.ID, "A")
	b := env.task(t, todo.ID, "B")
	archived := env.task(t, done.ID, "Архивная")
	env.task(t, hidden.ID, "В скрытой")

	_, err := env.svc.Tasks.ArchiveTask(env.ctx, archived.ID)
	require.NoError(t, err)
	_, err = env.svc.Columns.ArchiveColumn(env.ctx, hidden.ID)
	require.NoError(t, err)

	board, err := env.svc.Projects.GetBoard(env.ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.ID, board.Project.ID)
	require.Len(t, board.Columns, 2)

	assert.Equal(t, todo.ID, board.Columns[0].Column.ID)
	require.Len(t, board.Columns[0].Tasks, 2)
	assert.Equal(t, a.ID, board.Columns[0].Tasks[0].ID)
	assert.Equal(t, b.ID, board.Columns[0].Tasks[1].ID)

	assert.Equal(t, done.ID, board.Columns[1].Column.ID)
	assert.Empty(t, board.Columns[1].Tasks)

	// задачи архивной колонки по-прежнему доступны по её id
	tasks, err := env.svc.Tasks.ListTasks(env.ctx, hidden.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

// TestColumnService_UpdateColumn тестирует изменение колонки
func TestColumnService_UpdateColumn(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)

	updated, err := env.svc.Columns.UpdateColumn(env.ctx, column.ID,
		service.WithColumnTitle("В работе"), service.WithColumnColor("#ff9f1a"))
	require.NoError(t, err)
	assert.Equal(t, "В работе", updated.Title)
	assert.Equal(t, "#ff9f1a", updated.Color)

	_, err = env.svc.Columns.UpdateColumn(env.ctx, column.ID, service.WithColumnTitle(" "))
	assert.Equal(t, service.CodeValidation, service.CodeOf(err))

	_, err = env.svc.Columns.ArchiveColumn(env.ctx, column.ID)
	require.NoError(t, err)
	_, err = env.svc.Columns.UpdateColumn(env.ctx, column.ID, service.WithColumnTitle("Новое"))
	assert.Equal(t, service.CodeInvalidState, service.CodeOf(err))

	restored, err := env.svc.Columns.RestoreColumn(env.ctx, column.ID)
	require.NoError(t, err)
	assert.False(t, restored.Archived)
	assert.Equal(t, "В работе", restored.Title)
}
