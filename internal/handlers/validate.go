package handlers

import (
	"encoding/json"
	"mime"
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// parseID читает uuid из параметра пути, при ошибке сам отвечает 400
func parseID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		logger.Warn("HTTP: Не удалось получить id",
			zap.String("param", param),
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "не удалось получить "+param+": "+err.Error())
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("param", param),
			zap.String("error", "nil id"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, param+" не может быть пустым")
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON проверяет Content-Type и читает тело запроса
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return false
	}

	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса: "+err.Error())
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, r *http.Request, field, message string) {
	logger.Warn("HTTP: Ошибка валидации",
		zap.String("field", field),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusBadRequest, message)
}

func parsePriority(w http.ResponseWriter, r *http.Request, value string) (models.Priority, bool) {
	p, ok := models.ParsePriority(value)
	if !ok {
		badRequest(w, r, "priority", "неизвестный приоритет: "+value)
	}
	return p, ok
}

// parseDueDate: пустая строка - срок не задан
func parseDueDate(w http.ResponseWriter, r *http.Request, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	due, err := time.ParseInLocation(dto.DateLayout, value, time.Local)
	if err != nil {
		badRequest(w, r, "due_date", "срок должен быть в формате ГГГГ-ММ-ДД")
		return nil, false
	}
	return &due, true
}
