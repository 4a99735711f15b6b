package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/logger"
	"projectFlow/internal/middleware"

	"github.com/go-chi/chi/v5"
)

type Services struct {
	Users       UserService
	Projects    ProjectService
	Columns     ColumnService
	Tasks       TaskService
	Labels      LabelService
	Members     MemberService
	Attachments AttachmentService
	Automation  AutomationService
	Ordering    OrderingService
	Health      HealthChecker
}

type Handler struct {
	svc      Services
	sessions *SessionRegistry
	now      func() time.Time
}

func NewHandler(svc Services, sessions *SessionRegistry) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		now:      time.Now,
	}
}

// Routes регистрирует все маршруты; всё кроме входа и health требует X-Session-Token
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Session(h.sessions.Lookup))
			r.Post("/logout", h.Logout)
			r.Put("/password", h.ChangePassword)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(h.sessions.Lookup))

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/archived", h.ListArchivedProjects)
			r.Post("/default", h.EnsureDefaultBoard)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetProject)
				r.Put("/", h.UpdateProject)
				r.Delete("/", h.DeleteProject)
				r.Post("/archive", h.ArchiveProject)
				r.Post("/restore", h.RestoreProject)
				r.Get("/board", h.GetBoard)
				r.Get("/next-position", h.NextColumnPosition)

				r.Get("/columns", h.ListColumns)
				r.Post("/columns", h.CreateColumn)
				r.Get("/columns/archived", h.ListArchivedColumns)

				r.Get("/tasks", h.FilterProjectTasks)
				r.Get("/tasks/archived", h.ListArchivedTasks)

				r.Get("/members", h.ListMembers)
				r.Post("/members", h.InviteMember)
				r.Get("/members/stats", h.MemberStats)
			})
		})

		r.Route("/columns/{id}", func(r chi.Router) {
			r.Get("/", h.GetColumn)
			r.Put("/", h.UpdateColumn)
			r.Delete("/", h.DeleteColumn)
			r.Post("/archive", h.ArchiveColumn)
			r.Post("/restore", h.RestoreColumn)
			r.Get("/tasks", h.ListTasks)
			r.Post("/tasks", h.CreateTask)
			r.Get("/next-position", h.NextTaskPosition)
		})

		r.Route("/tasks/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)
			r.Put("/", h.UpdateTask)
			r.Delete("/", h.PurgeTask)
			r.Post("/toggle", h.ToggleCompletion)
			r.Put("/completed", h.SetCompleted)
			r.Post("/move", h.MoveTask)
			r.Post("/archive", h.ArchiveTask)
			r.Post("/restore", h.RestoreTask)
			r.Post("/labels", h.AddLabel)
			r.Delete("/labels/{name}", h.RemoveLabel)
			r.Put("/assignee", h.AssignMember)
			r.Get("/attachments", h.ListAttachments)
			r.Post("/attachments", h.AttachFile)
		})

		r.Route("/attachments/{id}", func(r chi.Router) {
			r.Get("/", h.DownloadAttachment)
			r.Delete("/", h.DeleteAttachment)
		})

		r.Route("/labels", func(r chi.Router) {
			r.Get("/", h.ListLabels)
			r.Post("/", h.CreateLabel)
			r.Get("/stats", h.LabelStats)
			r.Delete("/{id}", h.DeleteLabel)
		})

		r.Route("/members/{id}", func(r chi.Router) {
			r.Post("/activate", h.ActivateMember)
			r.Put("/role", h.ChangeRole)
			r.Delete("/", h.RemoveMember)
		})

		r.Route("/automation/rules", func(r chi.Router) {
			r.Get("/", h.ListRules)
			r.Post("/", h.CreateRule)
			r.Get("/stats", h.RuleStats)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetRule)
				r.Post("/toggle", h.ToggleRule)
				r.Put("/status", h.SetRuleStatus)
				r.Delete("/", h.DeleteRule)
			})
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := h.svc.Health.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		responseWithJSON(w, http.StatusServiceUnavailable,
			toPayload("status", "unavailable"),
			toPayload("error", err.Error()))
		return
	}

	responseWithJSON(w, http.StatusOK,
		toPayload("status", "ok"),
		toPayload("time", h.now().Format(time.RFC3339)))
}
