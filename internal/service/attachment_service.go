package service

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttachmentService struct {
	store repository.Store
	blobs BlobStore
}

func NewAttachmentService(store repository.Store, blobs BlobStore) *AttachmentService {
	return &AttachmentService{
		store: store,
		blobs: blobs,
	}
}

// FileTypeOf - расширение файла в верхнем регистре или FILE
func FileTypeOf(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot <= 0 || dot == len(filename)-1 {
		return "FILE"
	}
	return strings.ToUpper(filename[dot+1:])
}

func cleanFilename(filename string) (string, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", NewValidationError("filename", "некорректное имя файла")
	}
	return name, nil
}

// AttachFile сохраняет файл под ключом <taskID>/<filename>; если запись не создалась, файл удаляется.
// Повторное имя в той же задаче получает ключ <taskID>/<attachmentID>-<filename>, прежний файл не трогается.
func (s *AttachmentService) AttachFile(ctx context.Context, taskID uuid.UUID, filename string, content io.Reader) (*models.Attachment, error) {
	name, err := cleanFilename(filename)
	if err != nil {
		return nil, err
	}

	task, err := s.store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		return nil, repoError(err, ResourceTask, taskID, "получение задачи")
	}
	if task.Archived {
		return nil, NewInvalidState(ResourceTask, taskID.String(), "задача в архиве")
	}

	id := uuid.New()
	key, err := s.blobKey(ctx, taskID, id, name)
	if err != nil {
		return nil, err
	}

	size, err := s.blobs.Save(ctx, key, content)
	if err != nil {
		logger.Error("Service: Не удалось сохранить файл", err, zap.String("key", key))
		return nil, NewPersistenceError("сохранение файла", err)
	}

	attachment := &models.Attachment{
		ID:         id,
		TaskID:     taskID,
		Filename:   name,
		FilePath:   key,
		FileType:   FileTypeOf(name),
		UploadedAt: time.Now(),
	}
	if err := s.store.Attachments().Create(ctx, attachment); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			logger.Warn("Service: Файл без записи не удалён", zap.Error(delErr), zap.String("key", key))
		}
		return nil, repoError(err, ResourceAttachment, attachment.ID, "создание вложения")
	}

	logger.Info("Service: Файл прикреплён",
		zap.String("attachment_id", attachment.ID.String()),
		zap.String("task_id", taskID.String()),
		zap.Int64("bytes", size))
	return attachment, nil
}

func (s *AttachmentService) blobKey(ctx context.Context, taskID, id uuid.UUID, name string) (string, error) {
	key := taskID.String() + "/" + name

	existing, err := s.store.Attachments().ListByTask(ctx, taskID)
	if err != nil {
		return "", repoError(err, ResourceAttachment, taskID, "получение вложений")
	}
	for _, a := range existing {
		if a.FilePath == key {
			return taskID.String() + "/" + id.String() + "-" + name, nil
		}
	}
	return key, nil
}

func (s *AttachmentService) ListAttachments(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	attachments, err := s.store.Attachments().ListByTask(ctx, taskID)
	if err != nil {
		return nil, repoError(err, ResourceAttachment, taskID, "получение вложений")
	}
	return attachments, nil
}

// OpenAttachment - закрыть reader обязан вызывающий
func (s *AttachmentService) OpenAttachment(ctx context.Context, id uuid.UUID) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.store.Attachments().GetByID(ctx, id)
	if err != nil {
		return nil, nil, repoError(err, ResourceAttachment, id, "получение вложения")
	}

	rc, err := s.blobs.Open(ctx, attachment.FilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, NewNotFound(ResourceAttachment, attachment.FilePath)
		}
		logger.Error("Service: Не удалось открыть файл", err, zap.String("key", attachment.FilePath))
		return nil, nil, NewPersistenceError("чтение файла", err)
	}
	return attachment, rc, nil
}

// DeleteAttachment удаляет сначала файл, затем запись
func (s *AttachmentService) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	attachment, err := s.store.Attachments().GetByID(ctx, id)
	if err != nil {
		return repoError(err, ResourceAttachment, id, "получение вложения")
	}

	if err := s.blobs.Delete(ctx, attachment.FilePath); err != nil {
		logger.Error("Service: Не удалось удалить файл", err, zap.String("key", attachment.FilePath))
		return NewPersistenceError("удаление файла", err)
	}

	if err := s.store.Attachments().Delete(ctx, id); err != nil {
		return repoError(err, ResourceAttachment, id, "удаление вложения")
	}

	logger.Info("Service: Вложение удалено", zap.String("attachment_id", id.String()))
	return nil
}
