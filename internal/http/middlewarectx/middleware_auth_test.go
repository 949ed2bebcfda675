package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/jwt"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
	"github.com/magabrotheeeer/dashboard-shell/internal/storage/memory"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type staticChecker struct{}

func (staticChecker) CanStartDay(context.Context, string) (bool, error) { return true, nil }

func newRegistry() *session.Registry {
	store := memory.New()
	return session.NewRegistry(func() *gate.Gate { return gate.New(store, staticChecker{}) }, 0)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("secret", time.Hour)
	token, err := maker.GenerateToken(models.User{ID: "u1", Name: "Alice", Role: "Admin"})
	require.NoError(t, err)

	foreign, err := jwt.NewJWTMaker("other", time.Hour).GenerateToken(models.User{ID: "u1"})
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
		expectedUser   models.User
	}{
		{
			name:           "valid token",
			authHeader:     "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectedUser:   models.User{ID: "u1", Name: "Alice", Role: "Admin"},
		},
		{
			name:           "missing authorization header",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:           "invalid header format",
			authHeader:     "Token " + token,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"missing or invalid authorization header"}`,
		},
		{
			name:           "token signed with another key",
			authHeader:     "Bearer " + foreign,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid or expired token"}`,
		},
		{
			name:           "garbage token",
			authHeader:     "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid or expired token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got models.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = UserFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/navigation", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			JWTMiddleware(maker, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
			assert.Equal(t, tt.expectedUser, got)
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	registry := newRegistry()
	owner := models.User{ID: "u1", Role: "User"}
	s := registry.Open(owner)

	tests := []struct {
		name           string
		user           *models.User
		sessionID      string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "owner session",
			user:           &owner,
			sessionID:      s.ID,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no user in context",
			sessionID:      s.ID,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"user identification missing"}`,
		},
		{
			name:           "missing header",
			user:           &owner,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"missing or invalid session id"}`,
		},
		{
			name:           "unknown session",
			user:           &owner,
			sessionID:      "7f1f3c3e-1d2b-4c55-9a0e-0a4f5b1c2d3e",
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"session not found"}`,
		},
		{
			name:           "foreign session",
			user:           &models.User{ID: "u2", Role: "Admin"},
			sessionID:      s.ID,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"session belongs to another user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *session.Session
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = SessionFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/gate/evaluate", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), *tt.user))
			}
			if tt.sessionID != "" {
				req.Header.Set(SessionHeader, tt.sessionID)
			}
			rr := httptest.NewRecorder()
			SessionMiddleware(registry, newNoopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
				assert.Nil(t, got)
			} else {
				assert.Same(t, s, got)
			}
		})
	}
}
