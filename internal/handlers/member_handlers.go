package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"go.uber.org/zap"
)

// ListMembers: ?search= ищет по имени, email и роли
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.svc.Members.ListMembers(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "list_members")
		return
	}
	members = service.FilterMembers(members, r.URL.Query().Get("search"))

	logOut("Участники получены", start, http.StatusOK, zap.Int("count", len(members)))
	responseWithJSON(w, http.StatusOK, toPayload("members", members))
}

func (h *Handler) MemberStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	members, err := h.svc.Members.ListMembers(r.Context(), projectID)
	if err != nil {
		handleError(w, r, err, "member_stats")
		return
	}

	logOut("Статистика участников получена", start, http.StatusOK)
	responseWithJSON(w, http.StatusOK, toPayload("stats", service.ComputeMemberStats(members)))
}

func (h *Handler) InviteMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	projectID, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.InviteMemberRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	member, err := h.svc.Members.InviteMember(r.Context(), projectID, request.Email, models.MemberRole(request.Role))
	if err != nil {
		handleError(w, r, err, "invite_member")
		return
	}

	logOut("Участник приглашён", start, http.StatusCreated, zap.String("member_id", member.ID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("member", member))
}

func (h *Handler) ActivateMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	member, err := h.svc.Members.ActivateMember(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "activate_member")
		return
	}

	logOut("Участник активирован", start, http.StatusOK, zap.String("member_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("member", member))
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.ChangeRoleRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	member, err := h.svc.Members.ChangeRole(r.Context(), id, models.MemberRole(request.Role))
	if err != nil {
		handleError(w, r, err, "change_role")
		return
	}

	logOut("Роль изменена", start, http.StatusOK, zap.String("member_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("member", member))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Members.RemoveMember(r.Context(), id); err != nil {
		handleError(w, r, err, "remove_member")
		return
	}

	logOut("Участник исключён", start, http.StatusNoContent, zap.String("member_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
