package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"

	"go.uber.org/zap"
)

func (h *Handler) ListLabels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	labels, err := h.svc.Labels.ListLabels(r.Context())
	if err != nil {
		handleError(w, r, err, "list_labels")
		return
	}

	logOut("Метки получены", start, http.StatusOK, zap.Int("count", len(labels)))
	responseWithJSON(w, http.StatusOK, toPayload("labels", labels))
}

func (h *Handler) CreateLabel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateLabelRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	label, err := h.svc.Labels.CreateLabel(r.Context(), request.Name, request.Color, request.Description)
	if err != nil {
		handleError(w, r, err, "create_label")
		return
	}

	logOut("Метка создана", start, http.StatusCreated, zap.String("label", label.Name))
	responseWithJSON(w, http.StatusCreated, toPayload("label", label))
}

func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Labels.DeleteLabel(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_label")
		return
	}

	logOut("Метка удалена", start, http.StatusNoContent, zap.String("label_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LabelStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	stats, err := h.svc.Labels.Stats(r.Context())
	if err != nil {
		handleError(w, r, err, "label_stats")
		return
	}

	logOut("Статистика меток получена", start, http.StatusOK)
	responseWithJSON(w, http.StatusOK, toPayload("stats", stats))
}
