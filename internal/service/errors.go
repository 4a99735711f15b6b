package service

import (
	"errors"
	"fmt"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicate          = "DUPLICATE"
	CodePersistence        = "PERSISTENCE_ERROR"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

type Resource string

const (
	ResourceUser       Resource = "Пользователь"
	ResourceProject    Resource = "Проект"
	ResourceColumn     Resource = "Колонка"
	ResourceTask       Resource = "Задача"
	ResourceLabel      Resource = "Метка"
	ResourceMember     Resource = "Участник"
	ResourceAttachment Resource = "Вложение"
	ResourceRule       Resource = "Правило"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
	// Inconsistent - операция прервана на середине, данные могли остаться частично изменёнными
	Inconsistent bool
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

// UserMessage - текст для пользователя: либо "ничего не изменено", либо предупреждение о несогласованности
func (b *BusinessError) UserMessage() string {
	switch {
	case b.Inconsistent:
		return b.Message + ". Операция не выполнена, состояние может быть несогласованным"
	case b.Code == CodePersistence:
		return b.Message + ". Операция не выполнена"
	default:
		return b.Message + ". Ничего не изменено"
	}
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}

	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}

	return busErr
}

func NewNotFound(resource Resource, id string) *BusinessError {
	return &BusinessError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %s не найден(а)", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

func NewDuplicate(resource Resource, field, value string) *BusinessError {
	return &BusinessError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s с %s '%s' уже существует", resource, field, value),
		Details: map[string]any{
			"resource": resource,
			"field":    field,
			"value":    value,
		},
	}
}

func NewInvalidState(resource Resource, id, reason string) *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidState,
		Message: fmt.Sprintf("%s %s: %s", resource, id, reason),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
			"reason":   reason,
		},
	}
}

func NewInvalidCredentials() *BusinessError {
	return &BusinessError{
		Code:    CodeInvalidCredentials,
		Message: "Неверный пароль",
		Details: map[string]any{},
	}
}

func NewPersistenceError(operation string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("Ошибка хранилища при операции '%s'", operation),
		Details: map[string]any{
			"operation": operation,
		},
		Err: err,
	}
}

// NewCascadeError - сбой при каскадном удалении
func NewCascadeError(resource Resource, id string, err error) *BusinessError {
	return &BusinessError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("Не удалось удалить %s %s вместе с содержимым", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
		Err:          err,
		Inconsistent: true,
	}
}

// CodeOf возвращает код бизнес-ошибки или пустую строку
func CodeOf(err error) string {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr.Code
	}
	return ""
}

func IsInconsistent(err error) bool {
	var busErr *BusinessError
	return errors.As(err, &busErr) && busErr.Inconsistent
}
