package inmemory_test

import (
	"context"
	"errors"
	"testing"

	"projectFlow/internal/models"
	"projectFlow/internal/repository"
	"projectFlow/internal/repository/inmemory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedColumn(t *testing.T, ctx context.Context, store *inmemory.Storage) models.Column {
	t.Helper()
	project := &models.Project{ID: uuid.New(), OwnerID: uuid.New(), Title: "Проект"}
	require.NoError(t, store.Projects().Create(ctx, project))

	column := &models.Column{ID: uuid.New(), ProjectID: project.ID, Title: "Колонка"}
	require.NoError(t, store.Columns().Create(ctx, column))
	return *column
}

// TestStorage_InTx тестирует откат и фиксацию транзакции
func TestStorage_InTx(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	column := seedColumn(t, ctx, store)

	kept := &models.Task{ID: uuid.New(), ColumnID: column.ID, Title: "Оставить"}
	require.NoError(t, store.Tasks().Create(ctx, kept))

	errBoom := errors.New("boom")
	err := store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Tasks().Create(ctx, &models.Task{ID: uuid.New(), ColumnID: column.ID, Title: "Новая"}); err != nil {
			return err
		}
		if err := tx.Tasks().Delete(ctx, kept.ID); err != nil {
			return err
		}
		// вложенная транзакция работает в той же
		return tx.InTx(ctx, func(inner repository.Store) error {
			return inner.Columns().Delete(ctx, column.ID)
		})
	})
	require.NoError(t, err)

	_, err = store.Columns().GetByID(ctx, column.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	column = seedColumn(t, ctx, store)
	require.NoError(t, store.Tasks().Create(ctx, &models.Task{ID: kept.ID, ColumnID: column.ID, Title: "Оставить"}))

	err = store.InTx(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Tasks().Delete(ctx, kept.ID))
		require.NoError(t, tx.Columns().Delete(ctx, column.ID))
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	task, err := store.Tasks().GetByID(ctx, kept.ID)
	require.NoError(t, err)
	assert.Equal(t, "Оставить", task.Title)

	_, err = store.Columns().GetByID(ctx, column.ID)
	assert.NoError(t, err)
}

// TestTaskStorage_Copies тестирует что наружу отдаются копии
func TestTaskStorage_Copies(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	column := seedColumn(t, ctx, store)

	task := &models.Task{ID: uuid.New(), ColumnID: column.ID, Title: "Задача", Labels: []string{"A"}}
	require.NoError(t, store.Tasks().Create(ctx, task))
	assert.False(t, task.CreatedAt.IsZero())

	task.Title = "Изменено"
	task.Labels[0] = "B"

	got, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Задача", got.Title)
	assert.Equal(t, []string{"A"}, got.Labels)

	assert.ErrorIs(t, store.Tasks().Create(ctx, got), repository.ErrDuplicate)
	assert.ErrorIs(t, store.Tasks().Update(ctx, &models.Task{ID: uuid.New()}), repository.ErrNotFound)
	assert.ErrorIs(t, store.Tasks().Delete(ctx, uuid.New()), repository.ErrNotFound)
}

// TestTaskStorage_Ordering тестирует порядок выдачи и максимальную позицию
func TestTaskStorage_Ordering(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()
	column := seedColumn(t, ctx, store)

	_, found, err := store.Tasks().MaxPosition(ctx, column.ID)
	require.NoError(t, err)
	assert.False(t, found)

	positions := []int{4, 0, 2}
	for _, p := range positions {
		require.NoError(t, store.Tasks().Create(ctx, &models.Task{ID: uuid.New(), ColumnID: column.ID, Position: p}))
	}
	archived := &models.Task{ID: uuid.New(), ColumnID: column.ID, Position: 9, Archived: true}
	require.NoError(t, store.Tasks().Create(ctx, archived))

	max, found, err := store.Tasks().MaxPosition(ctx, column.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 4, max)

	active, err := store.Tasks().ListByColumn(ctx, column.ID)
	require.NoError(t, err)
	require.Len(t, active, 3)
	for i, want := range []int{0, 2, 4} {
		assert.Equal(t, want, active[i].Position)
	}

	all, err := store.Tasks().ListAllByColumn(ctx, column.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	archivedList, err := store.Tasks().ListArchivedByProject(ctx, column.ProjectID)
	require.NoError(t, err)
	require.Len(t, archivedList, 1)
	assert.Equal(t, archived.ID, archivedList[0].ID)
}

// TestUserStorage_Unique тестирует уникальность имени и почты
func TestUserStorage_Unique(t *testing.T) {
	ctx := context.Background()
	store := inmemory.New()

	require.NoError(t, store.Users().Create(ctx, &models.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}))

	tests := []struct {
		name string
		user models.User
	}{
		{name: "error - same username", user: models.User{ID: uuid.New(), Username: "alice", Email: "other@example.com"}},
		{name: "error - same email ignoring case", user: models.User{ID: uuid.New(), Username: "bob", Email: "ALICE@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, store.Users().Create(ctx, &tt.user), repository.ErrDuplicate)
		})
	}

	user, err := store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}
