package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	columnID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.svc.Tasks.ListTasks(r.Context(), columnID)
	if err != nil {
		handleError(w, r, err, "list_tasks")
		return
	}

	logOut("Задачи получены", start, http.StatusOK, zap.Int("count", len(tasks)))
	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, h.now())))
}

// FilterProjectTasks: ?search=&priority=HIGH,LOW&due=today|week|overdue&status=active|completed
func (h *Handler) FilterProjectTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	query := r.URL.Query()
	criteria := service.FilterCriteria{
		SearchText: query.Get("search"),
		Now:        h.now(),
	}

	if raw := query.Get("priority"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			p, ok := parsePriority(w, r, part)
			if !ok {
				return
			}
			criteria.Priorities = append(criteria.Priorities, p)
		}
	}

	if criteria.Due, ok = service.ParseDueBucket(query.Get("due")); !ok {
		badRequest(w, r, "due", "due: допустимо any, today, week, overdue")
		return
	}
	if criteria.Status, ok = service.ParseStatusFilter(query.Get("status")); !ok {
		badRequest(w, r, "status", "status: допустимо all, active, completed")
		return
	}

	tasks, err := h.svc.Tasks.FilterProjectTasks(r.Context(), projectID, criteria)
	if err != nil {
		handleError(w, r, err, "filter_tasks")
		return
	}

	logOut("Задачи проекта получены", start, http.StatusOK,
		zap.String("project_id", projectID.String()),
		zap.Int("count", len(tasks)))
	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, h.now())))
}

func (h *Handler) ListArchivedTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	tasks, err := h.svc.Tasks.ListArchivedTasks(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "list_archived_tasks")
		return
	}

	logOut("Архивные задачи получены", start, http.StatusOK, zap.Int("count", len(tasks)))
	responseWithJSON(w, http.StatusOK, toPayload("tasks", dto.FromTaskList(tasks, h.now())))
}

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	columnID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.CreateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	priority, ok := parsePriority(w, r, request.Priority)
	if !ok {
		return
	}
	due, ok := parseDueDate(w, r, request.DueDate)
	if !ok {
		return
	}

	opts := []models.TaskOption{models.WithPriority(priority)}
	if due != nil {
		opts = append(opts, models.WithDueDate(*due))
	}

	task, err := h.svc.Tasks.CreateTask(r.Context(), columnID, request.Title, request.Description, opts...)
	if err != nil {
		handleError(w, r, err, "create_task")
		return
	}

	logOut("Задача создана", start, http.StatusCreated, zap.String("task_id", task.ID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.svc.Tasks.GetTask(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "get_task")
		return
	}

	logOut("Задача получена", start, http.StatusOK, zap.String("task_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	var opts []models.TaskOption
	if request.Title != nil {
		opts = append(opts, models.WithTitle(*request.Title))
	}
	if request.Description != nil {
		opts = append(opts, models.WithDescription(*request.Description))
	}
	if request.Priority != nil {
		priority, ok := parsePriority(w, r, *request.Priority)
		if !ok {
			return
		}
		opts = append(opts, models.WithPriority(priority))
	}
	if request.DueDate != nil {
		due, ok := parseDueDate(w, r, *request.DueDate)
		if !ok {
			return
		}
		if due == nil {
			opts = append(opts, models.WithoutDueDate())
		} else {
			opts = append(opts, models.WithDueDate(*due))
		}
	}

	task, err := h.svc.Tasks.UpdateTask(r.Context(), id, opts...)
	if err != nil {
		handleError(w, r, err, "update_task")
		return
	}

	logOut("Задача обновлена", start, http.StatusOK, zap.String("task_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	h.taskAction(w, r, "toggle_completion", "Отметка выполнения изменена", h.svc.Tasks.ToggleCompletion)
}

func (h *Handler) ArchiveTask(w http.ResponseWriter, r *http.Request) {
	h.taskAction(w, r, "archive_task", "Задача в архиве", h.svc.Tasks.ArchiveTask)
}

func (h *Handler) RestoreTask(w http.ResponseWriter, r *http.Request) {
	h.taskAction(w, r, "restore_task", "Задача восстановлена", h.svc.Tasks.RestoreTask)
}

// taskAction - общий обработчик действий над задачей без тела запроса
func (h *Handler) taskAction(w http.ResponseWriter, r *http.Request, operation, msg string,
	action func(ctx context.Context, id uuid.UUID) (*models.Task, error)) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	task, err := action(r.Context(), id)
	if err != nil {
		handleError(w, r, err, operation)
		return
	}

	logOut(msg, start, http.StatusOK, zap.String("task_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) SetCompleted(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.SetCompletedRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	task, err := h.svc.Tasks.SetCompleted(r.Context(), id, request.Completed)
	if err != nil {
		handleError(w, r, err, "set_completed")
		return
	}

	logOut("Отметка выполнения установлена", start, http.StatusOK,
		zap.String("task_id", id.String()),
		zap.Bool("completed", task.Completed))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.MoveTaskRequest
	if !decodeJSON(w, r, &request) {
		return
	}
	if request.ColumnID == uuid.Nil {
		badRequest(w, r, "column_id", "column_id не может быть пустым")
		return
	}

	task, err := h.svc.Tasks.MoveTask(r.Context(), id, request.ColumnID)
	if err != nil {
		handleError(w, r, err, "move_task")
		return
	}

	logOut("Задача перемещена", start, http.StatusOK,
		zap.String("task_id", id.String()),
		zap.String("column_id", request.ColumnID.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) PurgeTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Tasks.PurgeTask(r.Context(), id); err != nil {
		handleError(w, r, err, "purge_task")
		return
	}

	logOut("Задача удалена", start, http.StatusNoContent, zap.String("task_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLabel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.LabelRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	task, err := h.svc.Tasks.AddLabel(r.Context(), id, request.Name)
	if err != nil {
		handleError(w, r, err, "add_label")
		return
	}

	logOut("Метка добавлена", start, http.StatusOK, zap.String("task_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) RemoveLabel(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.svc.Tasks.RemoveLabel(r.Context(), id, chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, r, err, "remove_label")
		return
	}

	logOut("Метка снята", start, http.StatusOK, zap.String("task_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}

func (h *Handler) AssignMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.AssignRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	task, err := h.svc.Tasks.AssignMember(r.Context(), id, request.MemberID)
	if err != nil {
		handleError(w, r, err, "assign_member")
		return
	}

	logOut("Исполнитель назначен", start, http.StatusOK,
		zap.String("task_id", id.String()),
		zap.String("member_id", request.MemberID.String()))
	responseWithJSON(w, http.StatusOK, toPayload("task", dto.FromTask(task, h.now())))
}
