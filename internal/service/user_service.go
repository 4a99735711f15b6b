package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minUsernameLen   = 3
	minPasswordLen   = 6
	maxPasswordBytes = 72 // предел bcrypt
	localEmailHost   = "projectflow.local"
)

type UserService struct {
	store  repository.Store
	hasher PasswordHasher
}

func NewUserService(store repository.Store, hasher PasswordHasher) *UserService {
	return &UserService{
		store:  store,
		hasher: hasher,
	}
}

// Register создаёт пользователя; пустой email заменяется на <username>@projectflow.local
func (s *UserService) Register(ctx context.Context, username, password, email string) (Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if utf8.RuneCountInString(username) < minUsernameLen {
		logger.Warn("Service: Ошибка валидации", zap.String("field", "username"))
		return Session{}, NewValidationError("username", fmt.Sprintf("минимум %d символа", minUsernameLen))
	}
	if err := validatePassword(password); err != nil {
		logger.Warn("Service: Ошибка валидации", zap.String("field", "password"))
		return Session{}, err
	}

	_, err := s.store.Users().GetByUsername(ctx, username)
	switch {
	case err == nil:
		logger.Warn("Service: Имя пользователя занято", zap.String("username", username))
		return Session{}, NewDuplicate(ResourceUser, "именем", username)
	case !errors.Is(err, repository.ErrNotFound):
		return Session{}, repoError(err, ResourceUser, uuid.Nil, "проверка имени пользователя")
	}

	email, err = s.resolveEmail(ctx, username, email)
	if err != nil {
		return Session{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Error("Service: Не удалось получить хеш пароля", err)
		return Session{}, fmt.Errorf("хеширование пароля: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return Session{}, s.duplicateUser(ctx, username, email)
		}
		return Session{}, repoError(err, ResourceUser, user.ID, "создание пользователя")
	}

	logger.Info("Service: Пользователь зарегистрирован",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return NewSession(*user), nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return NewValidationError("password", fmt.Sprintf("минимум %d символов", minPasswordLen))
	}
	if len(password) > maxPasswordBytes {
		return NewValidationError("password", fmt.Sprintf("не более %d байт", maxPasswordBytes))
	}
	return nil
}

// duplicateUser определяет, какое поле заняли между проверкой и вставкой
func (s *UserService) duplicateUser(ctx context.Context, username, email string) error {
	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		logger.Warn("Service: Имя пользователя занято", zap.String("username", username))
		return NewDuplicate(ResourceUser, "именем", username)
	}
	logger.Warn("Service: Email занят", zap.String("email", email))
	return NewDuplicate(ResourceUser, "email", email)
}

func (s *UserService) resolveEmail(ctx context.Context, username, email string) (string, error) {
	generated := email == ""
	if generated {
		email = username + "@" + localEmailHost
	}

	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return "", err
	}
	if !taken {
		return email, nil
	}
	if !generated {
		logger.Warn("Service: Email занят", zap.String("email", email))
		return "", NewDuplicate(ResourceUser, "email", email)
	}

	return fmt.Sprintf("%s%d@%s", username, time.Now().UnixMilli(), localEmailHost), nil
}

func (s *UserService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.store.Users().GetByEmail(ctx, email)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	default:
		return false, repoError(err, ResourceUser, uuid.Nil, "проверка email")
	}
}

func (s *UserService) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Session{}, NewValidationError("username", "не может быть пустым")
	}

	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.String("username", username))
			return Session{}, NewNotFound(ResourceUser, username)
		}
		return Session{}, repoError(err, ResourceUser, uuid.Nil, "получение пользователя")
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		logger.Warn("Service: Неверный пароль", zap.String("username", username))
		return Session{}, NewInvalidCredentials()
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, password)
	}

	logger.Info("Service: Пользователь вошёл", zap.String("user_id", user.ID.String()))
	return NewSession(*user), nil
}

// upgradeHash пересчитывает устаревший хеш, ошибка не мешает входу
func (s *UserService) upgradeHash(ctx context.Context, user *models.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Warn("Service: Не удалось пересчитать хеш", zap.Error(err))
		return
	}
	user.PasswordHash = hash
	if err := s.store.Users().Update(ctx, user); err != nil {
		logger.Warn("Service: Не удалось сохранить новый хеш", zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return
	}
	logger.Info("Service: Хеш пароля обновлён", zap.String("user_id", user.ID.String()))
}

func (s *UserService) ChangePassword(ctx context.Context, session Session, oldPassword, newPassword string) error {
	if err := session.valid(); err != nil {
		return err
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.store.Users().GetByID(ctx, session.UserID())
	if err != nil {
		return repoError(err, ResourceUser, session.UserID(), "получение пользователя")
	}
	if !s.hasher.Verify(user.PasswordHash, oldPassword) {
		return NewInvalidCredentials()
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("хеширование пароля: %w", err)
	}
	user.PasswordHash = hash
	if err := s.store.Users().Update(ctx, user); err != nil {
		return repoError(err, ResourceUser, user.ID, "обновление пароля")
	}

	logger.Info("Service: Пароль изменён", zap.String("user_id", user.ID.String()))
	return nil
}
