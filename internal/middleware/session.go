package middleware

import (
	"context"
	"net/http"

	"projectFlow/internal/logger"
	"projectFlow/internal/service"

	"go.uber.org/zap"
)

const (
	SessionHeader = "X-Session-Token"

	sessionKey contextKey = "session"
	tokenKey   contextKey = "session_token"
)

// SessionLookup находит сессию по токену
type SessionLookup func(token string) (service.Session, bool)

// Session кладёт сессию в контекст, без действующего токена отвечает 401
func Session(lookup SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(SessionHeader)
			session, ok := lookup(token)
			if token == "" || !ok {
				logger.Warn("HTTP: Запрос без сессии",
					zap.String("path", r.URL.Path),
					zap.String("request_id", GetRequestID(r.Context())))

				writeJSON(w, http.StatusUnauthorized, map[string]any{
					"error":   "unauthorized",
					"message": "требуется вход в систему",
				})
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionFrom(ctx context.Context) (service.Session, bool) {
	session, ok := ctx.Value(sessionKey).(service.Session)
	return session, ok
}

func SessionToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
