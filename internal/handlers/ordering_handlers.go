package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/logger"

	"go.uber.org/zap"
)

// NextColumnPosition - позиция, которую получит новая колонка проекта
func (h *Handler) NextColumnPosition(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	pos, err := h.svc.Ordering.NextColumnPosition(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "next_column_position")
		return
	}

	logOut("Позиция колонки вычислена", start, http.StatusOK, zap.Int("position", pos))
	responseWithJSON(w, http.StatusOK, toPayload("position", pos))
}

// NextTaskPosition - позиция, которую получит новая или перемещённая в колонку задача
func (h *Handler) NextTaskPosition(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	columnID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	pos, err := h.svc.Ordering.NextTaskPosition(r.Context(), columnID)
	if err != nil {
		handleError(w, r, err, "next_task_position")
		return
	}

	logOut("Позиция задачи вычислена", start, http.StatusOK, zap.Int("position", pos))
	responseWithJSON(w, http.StatusOK, toPayload("position", pos))
}
