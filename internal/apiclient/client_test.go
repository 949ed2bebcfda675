package apiclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

func TestClient_CanStartDay(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    bool
		wantErr bool
	}{
		{name: "прямой объект true", status: http.StatusOK, body: `{"canStartDay":true}`, want: true},
		{name: "прямой объект false", status: http.StatusOK, body: `{"canStartDay":false,"reason":"already started"}`},
		{name: "конверт с data", status: http.StatusOK, body: `{"success":true,"data":{"canStartDay":true}}`, want: true},
		{name: "конверт без поля", status: http.StatusOK, body: `{"success":true,"data":{}}`},
		{name: "конверт с data null", status: http.StatusOK, body: `{"success":false,"data":null}`},
		{name: "data false", status: http.StatusOK, body: `{"data":false,"canStartDay":true}`, want: true},
		{name: "data ноль", status: http.StatusOK, body: `{"data":0,"canStartDay":true}`, want: true},
		{name: "data пустая строка", status: http.StatusOK, body: `{"data":"","canStartDay":true}`, want: true},
		{name: "поле отсутствует", status: http.StatusOK, body: `{}`},
		{name: "ошибка сервера", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: true},
		{name: "не json", status: http.StatusOK, body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/attendance/verify/u1", r.URL.Path)
				assert.Equal(t, "Bearer svc-token", r.Header.Get("Authorization"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL+"/api/", "svc-token", time.Second)
			got, err := c.CanStartDay(context.Background(), "u1")

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_CanStartDay_EscapesUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attendance/verify/a%2Fb", r.URL.EscapedPath())
		_, _ = w.Write([]byte(`{"canStartDay":true}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "", time.Second).CanStartDay(context.Background(), "a/b")
	require.NoError(t, err)
	assert.True(t, got)
}

func TestClient_CanStartDay_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 50*time.Millisecond).CanStartDay(context.Background(), "u1")
	assert.Error(t, err)
}

func TestClient_DashboardStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard/stats", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"totalTasks":12,"completedTasks":5,"inProgressTasks":4,"pendingTasks":3,"totalTasksChange":8.5}}`))
	}))
	defer srv.Close()

	stats, err := NewClient(srv.URL, "", time.Second).DashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{
		TotalTasks:       12,
		CompletedTasks:   5,
		InProgressTasks:  4,
		PendingTasks:     3,
		TotalTasksChange: 8.5,
	}, stats)
}

func TestClient_DashboardStats_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).DashboardStats(context.Background())
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}
