package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/middleware"
	"projectFlow/internal/service"

	"go.uber.org/zap"
)

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	session, _ := middleware.SessionFrom(r.Context())
	projects, err := h.svc.Projects.ListProjects(r.Context(), session)
	if err != nil {
		handleError(w, r, err, "list_projects")
		return
	}

	logOut("Проекты получены", start, http.StatusOK, zap.Int("count", len(projects)))
	responseWithJSON(w, http.StatusOK, toPayload("projects", projects))
}

func (h *Handler) ListArchivedProjects(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	session, _ := middleware.SessionFrom(r.Context())
	projects, err := h.svc.Projects.ListArchivedProjects(r.Context(), session)
	if err != nil {
		handleError(w, r, err, "list_archived_projects")
		return
	}

	logOut("Архивные проекты получены", start, http.StatusOK, zap.Int("count", len(projects)))
	responseWithJSON(w, http.StatusOK, toPayload("projects", projects))
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateProjectRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	var opts []service.ProjectOption
	if request.Color != "" {
		opts = append(opts, service.WithProjectColor(request.Color))
	}

	session, _ := middleware.SessionFrom(r.Context())
	project, err := h.svc.Projects.CreateProject(r.Context(), session, request.Title, request.Description, opts...)
	if err != nil {
		handleError(w, r, err, "create_project")
		return
	}

	logOut("Проект создан", start, http.StatusCreated, zap.String("project_id", project.ID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("project", project))
}

func (h *Handler) EnsureDefaultBoard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	session, _ := middleware.SessionFrom(r.Context())
	project, created, err := h.svc.Projects.EnsureDefaultBoard(r.Context(), session)
	if err != nil {
		handleError(w, r, err, "ensure_default_board")
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	logOut("Стартовая доска проверена", start, code, zap.Bool("created", created))
	responseWithJSON(w, code, toPayload("project", project), toPayload("created", created))
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.svc.Projects.GetProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_project")
		return
	}

	logOut("Проект получен", start, http.StatusOK, zap.String("project_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("project", project))
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateProjectRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	var opts []service.ProjectOption
	if request.Title != nil {
		opts = append(opts, service.WithProjectTitle(*request.Title))
	}
	if request.Description != nil {
		opts = append(opts, service.WithProjectDescription(*request.Description))
	}
	if request.Color != nil {
		opts = append(opts, service.WithProjectColor(*request.Color))
	}

	project, err := h.svc.Projects.UpdateProject(r.Context(), id, opts...)
	if err != nil {
		handleError(w, r, err, "update_project")
		return
	}

	logOut("Проект обновлён", start, http.StatusOK, zap.String("project_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("project", project))
}

func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.svc.Projects.ArchiveProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "archive_project")
		return
	}

	logOut("Проект в архиве", start, http.StatusOK, zap.String("project_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("project", project))
}

func (h *Handler) RestoreProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.svc.Projects.RestoreProject(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "restore_project")
		return
	}

	logOut("Проект восстановлен", start, http.StatusOK, zap.String("project_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("project", project))
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Projects.DeleteProject(r.Context(), id); err != nil {
		handleError(w, r, err, "delete_project")
		return
	}

	logOut("Проект удалён", start, http.StatusNoContent, zap.String("project_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	board, err := h.svc.Projects.GetBoard(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_board")
		return
	}

	logOut("Доска получена", start, http.StatusOK,
		zap.String("project_id", id.String()),
		zap.Int("columns", len(board.Columns)))
	responseWithJSON(w, http.StatusOK, toPayload("board", dto.FromBoard(board, h.now())))
}
