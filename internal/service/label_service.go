package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLabelColor = "#0079bf"

type LabelService struct {
	store repository.Store
}

func NewLabelService(store repository.Store) *LabelService {
	return &LabelService{store: store}
}

type LabelStats struct {
	Total      int `json:"total"`
	TotalUsage int `json:"total_usage"`
}

// CreateLabel хранит имя метки в верхнем регистре, имена уникальны
func (s *LabelService) CreateLabel(ctx context.Context, name, color, description string) (*models.Label, error) {
	name = models.NormalizeLabel(name)
	if name == "" {
		return nil, NewValidationError("name", "не может быть пустым")
	}
	color, err := colorOrDefault(color, defaultLabelColor)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = models.DefaultLabelDescription
	}

	_, err = s.store.Labels().GetByName(ctx, name)
	switch {
	case err == nil:
		logger.Warn("Service: Метка уже существует", zap.String("name", name))
		return nil, NewDuplicate(ResourceLabel, "именем", name)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, repoError(err, ResourceLabel, uuid.Nil, "проверка метки")
	}

	label := &models.Label{
		ID:          uuid.New(),
		Name:        name,
		Color:       color,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := s.store.Labels().Create(ctx, label); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewDuplicate(ResourceLabel, "именем", name)
		}
		return nil, repoError(err, ResourceLabel, label.ID, "создание метки")
	}

	logger.Info("Service: Метка создана",
		zap.String("label_id", label.ID.String()),
		zap.String("name", name))
	return label, nil
}

func (s *LabelService) ListLabels(ctx context.Context) ([]*models.Label, error) {
	labels, err := s.store.Labels().List(ctx)
	if err != nil {
		return nil, repoError(err, ResourceLabel, uuid.Nil, "получение меток")
	}
	return labels, nil
}

func (s *LabelService) DeleteLabel(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Labels().Delete(ctx, id); err != nil {
		return repoError(err, ResourceLabel, id, "удаление метки")
	}
	logger.Info("Service: Метка удалена", zap.String("label_id", id.String()))
	return nil
}

func ComputeLabelStats(labels []*models.Label) LabelStats {
	stats := LabelStats{Total: len(labels)}
	for _, l := range labels {
		stats.TotalUsage += l.UsageCount
	}
	return stats
}

func (s *LabelService) Stats(ctx context.Context) (LabelStats, error) {
	labels, err := s.ListLabels(ctx)
	if err != nil {
		return LabelStats{}, err
	}
	return ComputeLabelStats(labels), nil
}
