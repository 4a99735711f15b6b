package service

import (
	"context"
	"fmt"

	"projectFlow/internal/repository"
)

// Services - все операции ядра поверх одного хранилища
type Services struct {
	store repository.Store

	Users       *UserService
	Projects    *ProjectService
	Columns     *ColumnService
	Tasks       *TaskService
	Labels      *LabelService
	Members     *MemberService
	Attachments *AttachmentService
	Ordering    *OrderingService
	Automation  *AutomationService
}

func New(store repository.Store, blobs BlobStore, hasher PasswordHasher, automation *AutomationService) *Services {
	return &Services{
		store:       store,
		Users:       NewUserService(store, hasher),
		Projects:    NewProjectService(store, blobs),
		Columns:     NewColumnService(store, blobs),
		Tasks:       NewTaskService(store, blobs),
		Labels:      NewLabelService(store),
		Members:     NewMemberService(store),
		Attachments: NewAttachmentService(store, blobs),
		Ordering:    NewOrderingService(store),
		Automation:  automation,
	}
}

func (s *Services) HealthCheck(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}
