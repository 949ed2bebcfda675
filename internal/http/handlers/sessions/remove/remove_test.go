package remove

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

type MockService struct{ mock.Mock }

func (m *MockService) Close(id, userID string) error { return m.Called(id, userID).Error(0) }

func (m *MockService) Len() int { return m.Called().Int(0) }

type MockObserver struct{ mock.Mock }

func (m *MockObserver) SetOpenSessions(n int) { m.Called(n) }

const sessionID = "3b241101-e2bb-4255-8caf-4136c566a962"

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := models.User{ID: "u1", Role: "User"}

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService, *MockObserver)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "closed",
			id:   sessionID,
			setupMock: func(m *MockService, o *MockObserver) {
				m.On("Close", sessionID, "u1").Return(nil).Once()
				m.On("Len").Return(2).Once()
				o.On("SetOpenSessions", 2).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"session_id":"` + sessionID + `"}}`,
		},
		{
			name:           "invalid id",
			id:             "not-a-uuid",
			setupMock:      func(*MockService, *MockObserver) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"field SessionID can contain only uuid"}`,
		},
		{
			name: "not found",
			id:   sessionID,
			setupMock: func(m *MockService, _ *MockObserver) {
				m.On("Close", sessionID, "u1").Return(session.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"session not found"}`,
		},
		{
			name: "foreign session",
			id:   sessionID,
			setupMock: func(m *MockService, _ *MockObserver) {
				m.On("Close", sessionID, "u1").Return(session.ErrForbidden).Once()
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"session belongs to another user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			obs := new(MockObserver)
			tt.setupMock(svc, obs)

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					next.ServeHTTP(w, r.WithContext(middlewarectx.WithUser(r.Context(), user)))
				})
			})
			r.Delete("/sessions/{id}", New(logger, svc, obs).ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, "/sessions/"+tt.id, nil)
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			svc.AssertExpectations(t)
			obs.AssertExpectations(t)
		})
	}
}

func TestRemoveHandler_WithoutObserver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := new(MockService)
	svc.On("Close", sessionID, "u1").Return(nil).Once()

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middlewarectx.WithUser(r.Context(), models.User{ID: "u1"})))
		})
	})
	r.Delete("/sessions/{id}", New(logger, svc, nil).ServeHTTP)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/sessions/"+sessionID, nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
	svc.AssertNotCalled(t, "Len")
}
