package blobstore_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"projectFlow/internal/blobstore"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStore_SaveOpenDelete тестирует полный цикл файла
func TestStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := blobstore.New(fs, "/data")

	n, err := store.Save(ctx, "task-1/plan.txt", strings.NewReader("план"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("план")), n)

	exists, err := afero.Exists(fs, "/data/task-1/plan.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Open(ctx, "task-1/plan.txt")
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "план", string(content))

	require.NoError(t, store.Delete(ctx, "task-1/plan.txt"))
	require.NoError(t, store.Delete(ctx, "task-1/plan.txt"))

	dirExists, err := afero.DirExists(fs, "/data/task-1")
	require.NoError(t, err)
	assert.False(t, dirExists)

	_, err = store.Open(ctx, "task-1/plan.txt")
	assert.Error(t, err)
}

// TestStore_KeyEscape тестирует что ключ не выходит за пределы каталога
func TestStore_KeyEscape(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := blobstore.New(fs, "/data")

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "success - parent segments dropped", key: "../../etc/passwd", expected: "/data/etc/passwd"},
		{name: "success - windows separators", key: `task\a.txt`, expected: "/data/task/a.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(ctx, tt.key, strings.NewReader("x"))
			require.NoError(t, err)

			exists, err := afero.Exists(fs, tt.expected)
			require.NoError(t, err)
			assert.True(t, exists)
		})
	}

	for _, key := range []string{"", "/", ".."} {
		_, err := store.Save(ctx, key, strings.NewReader("x"))
		assert.ErrorIs(t, err, blobstore.ErrInvalidKey)
	}
}

// TestStore_SaveCanceled тестирует отмену контекста до записи
func TestStore_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := blobstore.New(afero.NewMemMapFs(), "/data")
	_, err := store.Save(ctx, "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := store.Exists("a.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}
