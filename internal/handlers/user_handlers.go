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

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.RegisterRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session, err := h.svc.Users.Register(r.Context(), request.Username, request.Password, request.Email)
	if err != nil {
		handleError(w, r, err, "register")
		return
	}

	h.openSession(w, session, start, http.StatusCreated, "Пользователь зарегистрирован")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.LoginRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	session, err := h.svc.Users.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		handleError(w, r, err, "login")
		return
	}

	h.openSession(w, session, start, http.StatusOK, "Вход выполнен")
}

func (h *Handler) openSession(w http.ResponseWriter, session service.Session, start time.Time, code int, msg string) {
	token := h.sessions.Open(session)

	logOut(msg, start, code, zap.String("user_id", session.UserID().String()))
	responseWithJSON(w, code, toPayload("session", dto.SessionResponse{Token: token, User: session.User}))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	h.sessions.Close(middleware.SessionToken(r.Context()))

	logOut("Выход выполнен", start, http.StatusNoContent)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	session, _ := middleware.SessionFrom(r.Context())

	var request dto.ChangePasswordRequest
	if !decodeJSON(w, r, &request) {
		return
	}

	if err := h.svc.Users.ChangePassword(r.Context(), session, request.OldPassword, request.NewPassword); err != nil {
		handleError(w, r, err, "change_password")
		return
	}

	logOut("Пароль изменён", start, http.StatusNoContent, zap.String("user_id", session.UserID().String()))
	w.WriteHeader(http.StatusNoContent)
}
