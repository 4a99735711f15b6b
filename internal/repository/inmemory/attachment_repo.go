package inmemory

import (
	"context"
	"sort"
	"time"

	"projectFlow/internal/models"
	repo "projectFlow/internal/repository"

	"github.com/google/uuid"
)

type AttachmentStorage struct {
	s *Storage
}

func (r *AttachmentStorage) Create(ctx context.Context, attachment *models.Attachment) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.attachments[attachment.ID]; ok {
		return repo.ErrDuplicate
	}
	if attachment.UploadedAt.IsZero() {
		attachment.UploadedAt = time.Now()
	}
	r.s.attachments[attachment.ID] = *attachment
	return nil
}

func (r *AttachmentStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Attachment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	a, ok := r.s.attachments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &a, nil
}

func (r *AttachmentStorage) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.Attachment, error) {
	r.s.mtx.RLock()
	defer r.s.mtx.RUnlock()

	res := []*models.Attachment{}
	for _, a := range r.s.attachments {
		if a.TaskID == taskID {
			a := a
			res = append(res, &a)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].UploadedAt.After(res[j].UploadedAt)
	})
	return res, nil
}

func (r *AttachmentStorage) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mtx.Lock()
	defer r.s.mtx.Unlock()

	if _, ok := r.s.attachments[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.attachments, id)
	return nil
}
