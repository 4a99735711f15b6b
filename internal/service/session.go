package service

import (
	"projectFlow/internal/models"

	"github.com/google/uuid"
)

// Session - вошедший пользователь, передаётся в операции явно
type Session struct {
	User models.User
}

func NewSession(user models.User) Session {
	return Session{User: user}
}

func (s Session) UserID() uuid.UUID {
	return s.User.ID
}

func (s Session) valid() error {
	if s.User.ID == uuid.Nil {
		return NewValidationError("session", "пользователь не авторизован")
	}
	return nil
}
