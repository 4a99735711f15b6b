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

const inviteEmailHost = "projectflow.com"

type MemberService struct {
	store repository.Store
}

func NewMemberService(store repository.Store) *MemberService {
	return &MemberService{store: store}
}

type MemberStats struct {
	Total   int    `json:"total"`
	Active  int    `json:"active"`
	Pending int    `json:"pending"`
	Owner   string `json:"owner"`
}

// InviteMember добавляет участника в статусе "Ожидает". Адрес без @ дополняется доменом projectflow.com.
func (s *MemberService) InviteMember(ctx context.Context, projectID uuid.UUID, email string, role models.MemberRole) (*models.ProjectMember, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, NewValidationError("email", "не может быть пустым")
	}
	if !strings.Contains(email, "@") {
		email += "@" + inviteEmailHost
	}
	if role == "" {
		role = models.RoleMember
	}
	if !role.Valid() {
		return nil, NewValidationError("role", "неизвестная роль")
	}

	project, err := s.store.Projects().GetByID(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceProject, projectID, "получение проекта")
	}
	if project.Archived {
		return nil, NewNotFound(ResourceProject, projectID.String())
	}

	_, err = s.store.Members().GetByEmail(ctx, projectID, email)
	switch {
	case err == nil:
		logger.Warn("Service: Участник уже в проекте", zap.String("email", email))
		return nil, NewDuplicate(ResourceMember, "email", email)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, repoError(err, ResourceMember, uuid.Nil, "проверка участника")
	}

	member := &models.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		Username:  strings.SplitN(email, "@", 2)[0],
		Email:     email,
		Role:      role,
		Status:    models.MemberPending,
		InvitedAt: time.Now(),
	}
	if err := s.store.Members().Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewDuplicate(ResourceMember, "email", email)
		}
		return nil, repoError(err, ResourceMember, member.ID, "приглашение участника")
	}

	logger.Info("Service: Приглашение отправлено",
		zap.String("member_id", member.ID.String()),
		zap.String("project_id", projectID.String()),
		zap.String("email", email))
	return member, nil
}

func (s *MemberService) ActivateMember(ctx context.Context, id uuid.UUID) (*models.ProjectMember, error) {
	member, err := s.store.Members().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceMember, id, "получение участника")
	}
	if member.Status == models.MemberActive {
		return member, nil
	}

	member.Status = models.MemberActive
	if err := s.store.Members().Update(ctx, member); err != nil {
		return nil, repoError(err, ResourceMember, id, "активация участника")
	}

	logger.Info("Service: Участник активирован", zap.String("member_id", id.String()))
	return member, nil
}

func (s *MemberService) ChangeRole(ctx context.Context, id uuid.UUID, role models.MemberRole) (*models.ProjectMember, error) {
	if !role.Valid() {
		return nil, NewValidationError("role", "неизвестная роль")
	}

	member, err := s.store.Members().GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, ResourceMember, id, "получение участника")
	}
	if member.Role == models.RoleOwner && role != models.RoleOwner {
		return nil, NewInvalidState(ResourceMember, id.String(), "роль владельца не меняется")
	}

	member.Role = role
	if err := s.store.Members().Update(ctx, member); err != nil {
		return nil, repoError(err, ResourceMember, id, "изменение роли")
	}

	logger.Info("Service: Роль участника изменена",
		zap.String("member_id", id.String()),
		zap.String("role", string(role)))
	return member, nil
}

// RemoveMember исключает участника; владельца исключить нельзя
func (s *MemberService) RemoveMember(ctx context.Context, id uuid.UUID) error {
	member, err := s.store.Members().GetByID(ctx, id)
	if err != nil {
		return repoError(err, ResourceMember, id, "получение участника")
	}
	if member.Role == models.RoleOwner {
		return NewInvalidState(ResourceMember, id.String(), "владельца нельзя исключить из проекта")
	}

	if err := s.store.Members().Delete(ctx, id); err != nil {
		return repoError(err, ResourceMember, id, "исключение участника")
	}

	logger.Info("Service: Участник исключён", zap.String("member_id", id.String()))
	return nil
}

func (s *MemberService) ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	members, err := s.store.Members().ListByProject(ctx, projectID)
	if err != nil {
		return nil, repoError(err, ResourceMember, projectID, "получение участников")
	}
	return members, nil
}

// FilterMembers ищет подстроку в имени, email и роли без учёта регистра
func FilterMembers(members []*models.ProjectMember, search string) []*models.ProjectMember {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return members
	}

	res := make([]*models.ProjectMember, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Username), search) ||
			strings.Contains(strings.ToLower(m.Email), search) ||
			strings.Contains(strings.ToLower(string(m.Role)), search) {
			res = append(res, m)
		}
	}
	return res
}

func ComputeMemberStats(members []*models.ProjectMember) MemberStats {
	stats := MemberStats{Total: len(members), Owner: "Неизвестно"}
	ownerFound := false
	for _, m := range members {
		switch m.Status {
		case models.MemberActive:
			stats.Active++
		case models.MemberPending:
			stats.Pending++
		}
		if !ownerFound && m.Role == models.RoleOwner {
			stats.Owner = m.Username
			ownerFound = true
		}
	}
	return stats
}
