// Package dashboard содержит бизнес-логику страницы дашборда: статистику задач
// с кешированием и команды рассылок, доступные в зависимости от роли.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/navigation"
	"github.com/magabrotheeeer/dashboard-shell/internal/rabbitmq"
)

const statsCacheKey = "dashboard:stats"

// Виды команд рассылок.
const (
	KindReminders    = "reminders"
	KindAimReminders = "aim_reminders"
	KindReports      = "reports"
)

var (
	// ErrForbidden: роли пользователя действие недоступно.
	ErrForbidden = errors.New("action is not allowed for this role")
	// ErrUnavailable: брокер рассылок не настроен.
	ErrUnavailable = errors.New("broadcasts are not configured")
)

// StatsSource отдаёт статистику задач из удалённого API.
type StatsSource interface {
	DashboardStats(ctx context.Context) (*models.DashboardStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Publisher публикует команду с ключом маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Observer получает результаты рассылок (метрики).
type Observer interface {
	ObserveBroadcast(kind string, err error)
}

// Service: сервис страницы дашборда. cache, publisher и observer могут быть nil.
type Service struct {
	stats     StatsSource
	cache     Cache
	publisher Publisher
	observer  Observer
	statsTTL  time.Duration
	log       *slog.Logger
	now       func() time.Time
}

// NewService создаёт новый экземпляр Service.
func NewService(stats StatsSource, cache Cache, publisher Publisher, observer Observer, statsTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		stats:     stats,
		cache:     cache,
		publisher: publisher,
		observer:  observer,
		statsTTL:  statsTTL,
		log:       log,
		now:       time.Now,
	}
}

// Stats возвращает статистику задач, сначала заглядывая в кеш.
// Сбои кеша только логируются.
func (s *Service) Stats(ctx context.Context) (*models.DashboardStats, error) {
	const op = "dashboard.Stats"
	log := s.log.With(slog.String("op", op))

	if s.cache != nil {
		var cached models.DashboardStats
		found, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			log.Warn("failed to read stats from cache", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	stats, err := s.stats.DashboardStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil && s.statsTTL > 0 {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.statsTTL); err != nil {
			log.Warn("failed to cache stats", slog.String("key", statsCacheKey), sl.Err(err))
		}
	}
	return stats, nil
}

// BroadcastReminders ставит в очередь рассылку напоминаний. Только Admin и Manager.
func (s *Service) BroadcastReminders(ctx context.Context, user models.User) error {
	if !canManage(user) {
		return ErrForbidden
	}
	return s.broadcast(ctx, user, KindReminders, rabbitmq.RoutingRemindersBroadcast)
}

// BroadcastAimReminders ставит в очередь напоминания о целях. Доступно любой роли.
func (s *Service) BroadcastAimReminders(ctx context.Context, user models.User) error {
	return s.broadcast(ctx, user, KindAimReminders, rabbitmq.RoutingAimsBroadcast)
}

// GenerateReports ставит в очередь формирование отчётов. Только Admin и Manager.
func (s *Service) GenerateReports(ctx context.Context, user models.User) error {
	if !canManage(user) {
		return ErrForbidden
	}
	return s.broadcast(ctx, user, KindReports, rabbitmq.RoutingReportsGenerate)
}

func (s *Service) broadcast(ctx context.Context, user models.User, kind, routingKey string) error {
	const op = "dashboard.broadcast"
	if s.publisher == nil {
		return ErrUnavailable
	}

	cmd := models.BroadcastCommand{
		Kind:        kind,
		RequestedBy: user.ID,
		Role:        user.Role,
		RequestedAt: s.now().UTC(),
	}
	err := s.publisher.Publish(ctx, routingKey, cmd)
	if s.observer != nil {
		s.observer.ObserveBroadcast(kind, err)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("broadcast queued",
		slog.String("op", op),
		slog.String("kind", kind),
		slog.String("user_id", user.ID),
	)
	return nil
}

func canManage(user models.User) bool {
	switch navigation.ParseRole(user.Role) {
	case navigation.RoleAdmin, navigation.RoleManager:
		return true
	case navigation.RoleUser, navigation.RoleDefault:
		return false
	}
	return false
}
