package open

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

type MockService struct{ mock.Mock }

func (m *MockService) Open(user models.User) *session.Session {
	return m.Called(user).Get(0).(*session.Session)
}

func (m *MockService) Len() int { return m.Called().Int(0) }

type MockObserver struct{ mock.Mock }

func (m *MockObserver) SetOpenSessions(n int) { m.Called(n) }

func TestOpenHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := models.User{ID: "u1", Name: "Alice", Role: "User"}

	t.Run("opens session", func(t *testing.T) {
		svc := new(MockService)
		obs := new(MockObserver)
		svc.On("Open", user).Return(&session.Session{ID: "3b241101-e2bb-4255-8caf-4136c566a962", User: user}).Once()
		svc.On("Len").Return(3).Once()
		obs.On("SetOpenSessions", 3).Once()

		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), user))
		rr := httptest.NewRecorder()
		New(logger, svc, obs).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"status":"OK","data":{"session_id":"3b241101-e2bb-4255-8caf-4136c566a962"}}`, rr.Body.String())
		svc.AssertExpectations(t)
		obs.AssertExpectations(t)
	})

	t.Run("no user", func(t *testing.T) {
		svc := new(MockService)
		req := httptest.NewRequest(http.MethodPost, "/sessions", nil)
		rr := httptest.NewRecorder()
		New(logger, svc, nil).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertNotCalled(t, "Open", mock.Anything)
	})
}
