package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/service"

	"go.uber.org/zap"
)

func (h *Handler) ListColumns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	columns, err := h.svc.Columns.ListColumns(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "list_columns")
		return
	}

	logOut("Колонки получены", start, http.StatusOK, zap.Int("count", len(columns)))
	responseWithJSON(w, http.StatusOK, toPayload("columns", columns))
}

func (h *Handler) ListArchivedColumns(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	columns, err := h.svc.Columns.ListArchivedColumns(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "list_archived_columns")
		return
	}

	logOut("Архивные колонки получены", start, http.StatusOK, zap.Int("count", len(columns)))
	responseWithJSON(w, http.StatusOK, toPayload("columns", columns))
}

func (h *Handler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.CreateColumnRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	column, err := h.svc.Columns.CreateColumn(r.Context(), projectID, request.Title, request.Color)
	if err != nil {
		handleError(w, r, err, "create_column")
		return
	}

	logOut("Колонка создана", start, http.StatusCreated, zap.String("column_id", column.ID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("column", column))
}

func (h *Handler) GetColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	column, err := h.svc.Columns.GetColumn(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_column")
		return
	}

	logOut("Колонка получена", start, http.StatusOK, zap.String("column_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("column", column))
}

func (h *Handler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateColumnRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	var opts []service.ColumnOption
	if request.Title != nil {
		opts = append(opts, service.WithColumnTitle(*request.Title))
	}
	if request.Color != nil {
		opts = append(opts, service.WithColumnColor(*request.Color))
	}

	column, err := h.svc.Columns.UpdateColumn(r.Context(), id, opts...)
	if err != nil {
		handleError(w, r, err, "update_column")
		return
	}

	logOut("Колонка обновлена", start, http.StatusOK, zap.String("column_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("column", column))
}

func (h *Handler) ArchiveColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	column, err := h.svc.Columns.ArchiveColumn(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "archive_column")
		return
	}

	logOut("Колонка в архиве", start, http.StatusOK, zap.String("column_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("column", column))
}

func (h *Handler) RestoreColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	column, err := h.svc.Columns.RestoreColumn(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "restore_column")
		return
	}

	logOut("Колонка восстановлена", start, http.StatusOK, zap.String("column_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("column", column))
}

func (h *Handler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Columns.DeleteColumn(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_column")
		return
	}

	logOut("Колонка удалена", start, http.StatusNoContent, zap.String("column_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
