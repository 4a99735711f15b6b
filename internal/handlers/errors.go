package handlers

import (
	"errors"
	"net/http"

	"projectFlow/internal/logger"
	"projectFlow/internal/service"

	"go.uber.org/zap"
)

func handleBusinessError(w http.ResponseWriter, err error) bool {
	var businessErr *service.BusinessError
	if !errors.As(err, &businessErr) {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("HTTP: Ошибка хранилища", err,
			zap.String("error_code", businessErr.Code),
			zap.Bool("inconsistent", businessErr.Inconsistent))
	} else {
		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode))
	}

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.UserMessage()),
		toPayload("details", businessErr.Details),
		toPayload("inconsistent", businessErr.Inconsistent),
	)
	return true
}

// handleError отвечает на ошибку сервиса, всё кроме бизнес-ошибок - 500
func handleError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	if handleBusinessError(w, err) {
		return
	}

	logger.Error("HTTP: Ошибка Service", err,
		zap.String("operation", operation),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, "внутренняя ошибка")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeDuplicate, service.CodeInvalidState:
		return http.StatusConflict
	case service.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case service.CodePersistence:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
