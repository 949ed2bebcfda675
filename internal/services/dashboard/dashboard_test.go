package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/rabbitmq"
)

type StatsMock struct{ mock.Mock }

func (m *StatsMock) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type ObserverMock struct{ mock.Mock }

func (m *ObserverMock) ObserveBroadcast(kind string, err error) {
	m.Called(kind, err)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

var sampleStats = &models.DashboardStats{
	TotalTasks:       10,
	CompletedTasks:   4,
	InProgressTasks:  3,
	PendingTasks:     3,
	TotalTasksChange: 12.5,
}

func TestService_Stats(t *testing.T) {
	ttl := 30 * time.Second

	tests := []struct {
		name       string
		setupMocks func(s *StatsMock, c *CacheMock)
		want       *models.DashboardStats
		wantErr    bool
	}{
		{
			name: "cache hit",
			setupMocks: func(_ *StatsMock, c *CacheMock) {
				c.On("Get", mock.Anything, statsCacheKey, mock.Anything).
					Run(func(args mock.Arguments) {
						*args.Get(2).(*models.DashboardStats) = *sampleStats
					}).
					Return(true, nil).Once()
			},
			want: sampleStats,
		},
		{
			name: "cache miss fetches and caches",
			setupMocks: func(s *StatsMock, c *CacheMock) {
				c.On("Get", mock.Anything, statsCacheKey, mock.Anything).Return(false, nil).Once()
				s.On("DashboardStats", mock.Anything).Return(sampleStats, nil).Once()
				c.On("Set", mock.Anything, statsCacheKey, sampleStats, ttl).Return(nil).Once()
			},
			want: sampleStats,
		},
		{
			name: "cache failures are ignored",
			setupMocks: func(s *StatsMock, c *CacheMock) {
				c.On("Get", mock.Anything, statsCacheKey, mock.Anything).Return(false, errors.New("redis down")).Once()
				s.On("DashboardStats", mock.Anything).Return(sampleStats, nil).Once()
				c.On("Set", mock.Anything, statsCacheKey, sampleStats, ttl).Return(errors.New("redis down")).Once()
			},
			want: sampleStats,
		},
		{
			name: "remote failure",
			setupMocks: func(s *StatsMock, c *CacheMock) {
				c.On("Get", mock.Anything, statsCacheKey, mock.Anything).Return(false, nil).Once()
				s.On("DashboardStats", mock.Anything).Return(nil, errors.New("502")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := new(StatsMock)
			cache := new(CacheMock)
			tt.setupMocks(stats, cache)

			svc := NewService(stats, cache, nil, nil, ttl, newNoopLogger())
			got, err := svc.Stats(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "dashboard.Stats")
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			stats.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestService_StatsWithoutCache(t *testing.T) {
	stats := new(StatsMock)
	stats.On("DashboardStats", mock.Anything).Return(sampleStats, nil).Twice()

	svc := NewService(stats, nil, nil, nil, time.Minute, newNoopLogger())
	for range 2 {
		got, err := svc.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, sampleStats, got)
	}
	stats.AssertExpectations(t)
}

func TestService_Broadcasts(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	admin := models.User{ID: "a1", Role: "Admin"}
	manager := models.User{ID: "m1", Role: "Manager"}
	user := models.User{ID: "u1", Role: "User"}
	unknown := models.User{ID: "x1", Role: "guest"}

	type call func(s *Service, u models.User) error
	reminders := func(s *Service, u models.User) error { return s.BroadcastReminders(context.Background(), u) }
	aims := func(s *Service, u models.User) error { return s.BroadcastAimReminders(context.Background(), u) }
	reports := func(s *Service, u models.User) error { return s.GenerateReports(context.Background(), u) }

	tests := []struct {
		name       string
		call       call
		user       models.User
		kind       string
		routingKey string
		wantErr    error
	}{
		{name: "admin reminders", call: reminders, user: admin, kind: KindReminders, routingKey: rabbitmq.RoutingRemindersBroadcast},
		{name: "manager reports", call: reports, user: manager, kind: KindReports, routingKey: rabbitmq.RoutingReportsGenerate},
		{name: "user reminders forbidden", call: reminders, user: user, wantErr: ErrForbidden},
		{name: "unknown role reports forbidden", call: reports, user: unknown, wantErr: ErrForbidden},
		{name: "user aim reminders", call: aims, user: user, kind: KindAimReminders, routingKey: rabbitmq.RoutingAimsBroadcast},
		{name: "unknown role aim reminders", call: aims, user: unknown, kind: KindAimReminders, routingKey: rabbitmq.RoutingAimsBroadcast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := new(PublisherMock)
			obs := new(ObserverMock)
			if tt.wantErr == nil {
				want := models.BroadcastCommand{
					Kind:        tt.kind,
					RequestedBy: tt.user.ID,
					Role:        tt.user.Role,
					RequestedAt: fixed,
				}
				pub.On("Publish", mock.Anything, tt.routingKey, want).Return(nil).Once()
				obs.On("ObserveBroadcast", tt.kind, nil).Once()
			}

			svc := NewService(new(StatsMock), nil, pub, obs, 0, newNoopLogger())
			svc.now = func() time.Time { return fixed }

			err := tt.call(svc, tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			pub.AssertExpectations(t)
			obs.AssertExpectations(t)
		})
	}
}

func TestService_BroadcastPublishError(t *testing.T) {
	pubErr := errors.New("channel closed")
	pub := new(PublisherMock)
	pub.On("Publish", mock.Anything, rabbitmq.RoutingAimsBroadcast, mock.Anything).Return(pubErr).Once()
	obs := new(ObserverMock)
	obs.On("ObserveBroadcast", KindAimReminders, pubErr).Once()

	svc := NewService(new(StatsMock), nil, pub, obs, 0, newNoopLogger())
	err := svc.BroadcastAimReminders(context.Background(), models.User{ID: "u1", Role: "User"})

	assert.ErrorIs(t, err, pubErr)
	pub.AssertExpectations(t)
	obs.AssertExpectations(t)
}

func TestService_BroadcastWithoutPublisher(t *testing.T) {
	svc := NewService(new(StatsMock), nil, nil, nil, 0, newNoopLogger())

	err := svc.BroadcastReminders(context.Background(), models.User{ID: "a1", Role: "Admin"})
	assert.ErrorIs(t, err, ErrUnavailable)

	err = svc.GenerateReports(context.Background(), models.User{ID: "u1", Role: "User"})
	assert.ErrorIs(t, err, ErrForbidden)
}
