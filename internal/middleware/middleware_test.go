package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"projectFlow/internal/middleware"
	"projectFlow/internal/models"
	"projectFlow/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// TestRequestID тестирует проброс и генерацию X-Request-ID
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

// TestRateLimit тестирует ограничение числа запросов
func TestRateLimit(t *testing.T) {
	handler := middleware.RateLimit(2)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "127.0.0.1:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.2:5000"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	unlimited := middleware.RateLimit(0)(http.HandlerFunc(okHandler))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		unlimited.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

// TestLoopback тестирует доступ только с локального адреса
func TestLoopback(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		expectedStatus int
	}{
		{name: "success - ipv4 loopback", remoteAddr: "127.0.0.1:4000", expectedStatus: http.StatusOK},
		{name: "success - ipv6 loopback", remoteAddr: "[::1]:4000", expectedStatus: http.StatusOK},
		{name: "error - remote address", remoteAddr: "192.168.1.10:4000", expectedStatus: http.StatusForbidden},
		{name: "error - garbage address", remoteAddr: "unknown", expectedStatus: http.StatusForbidden},
	}

	handler := middleware.Loopback(http.HandlerFunc(okHandler))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// TestSession тестирует проверку токена сессии
func TestSession(t *testing.T) {
	session := service.NewSession(models.User{ID: uuid.New(), Username: "alice"})
	lookup := func(token string) (service.Session, bool) {
		if token == "valid" {
			return session, true
		}
		return service.Session{}, false
	}

	var got service.Session
	var gotToken string
	handler := middleware.Session(lookup)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = middleware.SessionFrom(r.Context())
		require.True(t, ok)
		gotToken = middleware.SessionToken(r.Context())
	}))

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{name: "success - valid token", token: "valid", expectedStatus: http.StatusOK},
		{name: "error - missing token", token: "", expectedStatus: http.StatusUnauthorized},
		{name: "error - unknown token", token: "other", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set(middleware.SessionHeader, tt.token)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, session.User.Username, got.User.Username)
				assert.Equal(t, "valid", gotToken)
			} else {
				assert.Contains(t, w.Body.String(), "unauthorized")
			}
		})
	}
}

// TestCORS тестирует ответ на preflight-запрос
func TestCORS(t *testing.T) {
	handler := middleware.CORS([]string{"http://localhost:*"})(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", middleware.SessionHeader)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
