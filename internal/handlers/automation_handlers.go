package handlers

import (
	"net/http"
	"time"

	"projectFlow/internal/handlers/dto"
	"projectFlow/internal/logger"
	"projectFlow/internal/models"

	"go.uber.org/zap"
)

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	rules := h.svc.Automation.Rules()

	logOut("Правила получены", start, http.StatusOK, zap.Int("count", len(rules)))
	responseWithJSON(w, http.StatusOK, toPayload("rules", dto.FromRuleList(rules)))
}

func (h *Handler) RuleStats(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	responseWithJSON(w, http.StatusOK, toPayload("stats", h.svc.Automation.Stats()))
}

func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.CreateRuleRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	rule, err := h.svc.Automation.CreateRule(request.Trigger, request.Action, request.Parameters)
	if err != nil {
		handleError(w, r, err, "create_rule")
		return
	}

	logOut("Правило создано", start, http.StatusCreated, zap.String("rule_id", rule.ID.String()))
	responseWithJSON(w, http.StatusCreated, toPayload("rule", dto.FromRule(rule)))
}

func (h *Handler) GetRule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	rule, err := h.svc.Automation.GetRule(id)
	if err != nil {
		handleError(w, r, err, "get_rule")
		return
	}

	logOut("Правило получено", start, http.StatusOK, zap.String("rule_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("rule", dto.FromRule(rule)))
}

func (h *Handler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	rule, err := h.svc.Automation.ToggleRuleStatus(id)
	if err != nil {
		handleError(w, r, err, "toggle_rule")
		return
	}

	logOut("Статус правила переключён", start, http.StatusOK, zap.String("rule_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("rule", dto.FromRule(rule)))
}

func (h *Handler) SetRuleStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	var request dto.RuleStatusRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	rule, err := h.svc.Automation.SetRuleStatus(id, models.RuleStatus(request.Status))
	if err != nil {
		handleError(w, r, err, "set_rule_status")
		return
	}

	logOut("Статус правила установлен", start, http.StatusOK, zap.String("rule_id", id.String()))
	responseWithJSON(w, http.StatusOK, toPayload("rule", dto.FromRule(rule)))
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Automation.DeleteRule(id); err != nil {
		handleError(w, r, err, "delete_rule")
		return
	}

	logOut("Правило удалено", start, http.StatusNoContent, zap.String("rule_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}
