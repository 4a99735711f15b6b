package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"projectFlow/internal/models"
	"projectFlow/internal/repository"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFileTypeOf тестирует тип файла по расширению
func TestFileTypeOf(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"report.pdf", "PDF"},
		{"archive.tar.gz", "GZ"},
		{"README", "FILE"},
		{".bashrc", "FILE"},
		{"trailing.", "FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.FileTypeOf(tt.filename))
		})
	}
}

// TestAttachmentService_Lifecycle тестирует загрузку, чтение и удаление вложений
func TestAttachmentService_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)
	task := env.task(t, column.ID, "С файлами")

	attachment, err := env.svc.Attachments.AttachFile(env.ctx, task.ID, `C:\docs\plan.docx`, strings.NewReader("содержимое"))
	require.NoError(t, err)
	assert.Equal(t, "plan.docx", attachment.Filename)
	assert.Equal(t, "DOCX", attachment.FileType)
	assert.Equal(t, task.ID.String()+"/plan.docx", attachment.FilePath)

	list, err := env.svc.Attachments.ListAttachments(env.ctx, task.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	got, rc, err := env.svc.Attachments.OpenAttachment(env.ctx, attachment.ID)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "содержимое", string(content))
	assert.Equal(t, attachment.ID, got.ID)

	require.NoError(t, env.svc.Attachments.DeleteAttachment(env.ctx, attachment.ID))

	exists, err := env.blobs.Exists(attachment.FilePath)
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = env.svc.Attachments.OpenAttachment(env.ctx, attachment.ID)
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

// TestAttachmentService_AttachFileErrors тестирует отказы при загрузке
func TestAttachmentService_AttachFileErrors(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)
	archived := env.task(t, column.ID, "Архивная")
	_, err := env.svc.Tasks.ArchiveTask(env.ctx, archived.ID)
	require.NoError(t, err)

	tests := []struct {
		name         string
		taskID       uuid.UUID
		filename     string
		expectedCode string
	}{
		{name: "error - empty filename", taskID: archived.ID, filename: "  ", expectedCode: service.CodeValidation},
		{name: "error - parent directory name", taskID: archived.ID, filename: "..", expectedCode: service.CodeValidation},
		{name: "error - unknown task", taskID: uuid.New(), filename: "a.txt", expectedCode: service.CodeNotFound},
		{name: "error - archived task", taskID: archived.ID, filename: "a.txt", expectedCode: service.CodeInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Attachments.AttachFile(env.ctx, tt.taskID, tt.filename, strings.NewReader("x"))
			assert.Equal(t, tt.expectedCode, service.CodeOf(err))
		})
	}
}

// TestAttachmentService_MissingFile тестирует запись без файла на диске
func TestAttachmentService_MissingFile(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)
	task := env.task(t, column.ID, "Задача")

	attachment, err := env.svc.Attachments.AttachFile(env.ctx, task.ID, "a.txt", strings.NewReader("x"))
	require.NoError(t, err)
	require.NoError(t, env.blobs.Delete(env.ctx, attachment.FilePath))

	_, _, err = env.svc.Attachments.OpenAttachment(env.ctx, attachment.ID)
	assert.Equal(t, service.CodeNotFound, service.CodeOf(err))
}

func readAttachment(t *testing.T, env *testEnv, id uuid.UUID) string {
	t.Helper()
	_, rc, err := env.svc.Attachments.OpenAttachment(env.ctx, id)
	require.NoError(t, err)
	defer rc.Close()
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(content)
}

// TestAttachmentService_SameFilename тестирует два вложения с одинаковым именем в одной задаче
func TestAttachmentService_SameFilename(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)
	task := env.task(t, column.ID, "С файлами")

	first, err := env.svc.Attachments.AttachFile(env.ctx, task.ID, "plan.txt", strings.NewReader("первый"))
	require.NoError(t, err)
	second, err := env.svc.Attachments.AttachFile(env.ctx, task.ID, "plan.txt", strings.NewReader("второй"))
	require.NoError(t, err)

	assert.NotEqual(t, first.FilePath, second.FilePath)
	assert.Equal(t, "plan.txt", second.Filename)
	assert.Equal(t, "первый", readAttachment(t, env, first.ID))
	assert.Equal(t, "второй", readAttachment(t, env, second.ID))

	require.NoError(t, env.svc.Attachments.DeleteAttachment(env.ctx, first.ID))
	assert.Equal(t, "второй", readAttachment(t, env, second.ID))
}

// TestAttachmentService_CreateFailureKeepsFiles тестирует что сбой записи не трогает файлы прежних вложений
func TestAttachmentService_CreateFailureKeepsFiles(t *testing.T) {
	env := newTestEnv(t)
	_, column := env.board(t)
	task := env.task(t, column.ID, "С файлами")

	first, err := env.svc.Attachments.AttachFile(env.ctx, task.ID, "plan.txt", strings.NewReader("первый"))
	require.NoError(t, err)

	failing := service.NewAttachmentService(failingAttachmentStore{Store: env.store}, env.blobs)
	_, err = failing.AttachFile(env.ctx, task.ID, "plan.txt", strings.NewReader("второй"))
	assert.Equal(t, service.CodePersistence, service.CodeOf(err))

	exists, err := env.blobs.Exists(first.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "первый", readAttachment(t, env, first.ID))

	files, err := afero.ReadDir(env.fs, "/attachments/"+task.ID.String())
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

// failingAttachmentStore отказывает в создании записей вложений
type failingAttachmentStore struct {
	repository.Store
}

func (s failingAttachmentStore) Attachments() repository.AttachmentRepository {
	return failingAttachments{AttachmentRepository: s.Store.Attachments()}
}

type failingAttachments struct {
	repository.AttachmentRepository
}

func (failingAttachments) Create(ctx context.Context, attachment *models.Attachment) error {
	return errors.New("connection lost")
}
