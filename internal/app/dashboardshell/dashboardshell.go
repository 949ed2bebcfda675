// Package dashboardshell собирает приложение dashboard-shell: хранилище записей
// гейта, клиенты внешних сервисов, реестр сессий и HTTP-сервер.
package dashboardshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/dashboard-shell/internal/apiclient"
	"github.com/magabrotheeeer/dashboard-shell/internal/cache"
	"github.com/magabrotheeeer/dashboard-shell/internal/config"
	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/health"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/jwt"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/metrics"
	"github.com/magabrotheeeer/dashboard-shell/internal/migrations"
	"github.com/magabrotheeeer/dashboard-shell/internal/natsbus"
	"github.com/magabrotheeeer/dashboard-shell/internal/rabbitmq"
	"github.com/magabrotheeeer/dashboard-shell/internal/services/dashboard"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
	"github.com/magabrotheeeer/dashboard-shell/internal/storage/memory"
	"github.com/magabrotheeeer/dashboard-shell/internal/storage/postgresql"
	"github.com/magabrotheeeer/dashboard-shell/internal/storage/sqlite"
)

// App: приложение dashboard-shell.
type App struct {
	server        *http.Server
	logger        *slog.Logger
	sessions      *session.Registry
	metrics       *metrics.Metrics
	sweepInterval time.Duration
	closers       []io.Closer
}

// Deps: собранные зависимости для маршрутов.
type Deps struct {
	Tokens    middlewarectx.TokenParser
	Limiter   *middlewarectx.RateLimiter
	Sessions  *session.Registry
	Dashboard *dashboard.Service
	Metrics   *metrics.Metrics
	Checks    map[string]health.Pinger
}

// New создаёт приложение по конфигу. Ресурсы, открытые до ошибки, закрываются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *App, err error) {
	app := &App{
		logger:        logger,
		sweepInterval: cfg.SweepInterval,
	}
	defer func() {
		if err != nil {
			app.close()
		}
	}()

	checks := make(map[string]health.Pinger)

	var redisCache *cache.Cache
	if cfg.AddressRedis != "" {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, redisCache)
		checks["redis"] = redisCache
	}

	store, err := app.gateStore(ctx, cfg, redisCache, checks)
	if err != nil {
		return nil, err
	}

	publisher, err := app.publisher(cfg)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		logger.Warn("no broker configured, broadcasts are disabled")
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	app.metrics = m

	api := apiclient.NewClient(cfg.BaseURL, cfg.ServiceToken, cfg.TimeoutAPI)

	gateLogger := logger.With(slog.String("component", "gate"))
	registry := session.NewRegistry(func() *gate.Gate {
		return gate.New(store, api,
			gate.WithLogger(gateLogger),
			gate.WithObserver(m),
			gate.WithCheckTimeout(cfg.CheckTimeout),
		)
	}, cfg.MaxAge)
	app.sessions = registry

	var statsCache dashboard.Cache
	if redisCache != nil {
		statsCache = redisCache
	}
	dashboardService := dashboard.NewService(api, statsCache, publisher, m, cfg.StatsTTL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Tokens:    jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL),
		Limiter:   middlewarectx.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		Sessions:  registry,
		Dashboard: dashboardService,
		Metrics:   m,
		Checks:    checks,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) gateStore(ctx context.Context, cfg *config.Config, redisCache *cache.Cache, checks map[string]health.Pinger) (gate.Store, error) {
	const op = "dashboardshell.gateStore"

	switch cfg.Gate.Store {
	case config.GateStoreRedis:
		if redisCache == nil {
			return nil, fmt.Errorf("%s: redis is not configured", op)
		}
		return cache.NewRecords(redisCache, cfg.RecordTTL), nil
	case config.GateStorePostgres:
		db, err := postgresql.New(ctx, cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		if err := migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		checks["postgres"] = db
		return db, nil
	case config.GateStoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		checks["sqlite"] = db
		return db, nil
	case config.GateStoreMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("%s: unknown gate store %q", op, cfg.Gate.Store)
}

// publisher подключает брокер рассылок. Без брокера возвращает nil.
func (a *App) publisher(cfg *config.Config) (dashboard.Publisher, error) {
	switch {
	case cfg.RabbitMQ.URL != "":
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.RetryDelay)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, amqpCloser{conn})

		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.DashboardQueues())
		if err != nil {
			return nil, err
		}
		return rabbitmq.NewPublisher(ch, rabbitmq.NotificationsExchange), nil
	case cfg.NATSURL != "":
		pub, err := natsbus.Connect(cfg.NATSURL, cfg.SubjectPrefix)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pub)
		return pub, nil
	}
	return nil, nil
}

// Run запускает HTTP-сервер и чистку устаревших сессий до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go a.sweep(sweepCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}

func (a *App) sweep(ctx context.Context) {
	if a.sweepInterval <= 0 {
		return
	}
	ticker := time.NewTicker(a.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := a.sessions.Sweep(now); n > 0 {
				a.logger.Info("expired sessions closed", slog.Int("count", n))
			}
			a.metrics.SetOpenSessions(a.sessions.Len())
		}
	}
}

func (a *App) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close resource", sl.Err(err))
		}
	}
	a.closers = nil
}

type amqpCloser struct{ conn *amqp.Connection }

func (c amqpCloser) Close() error { return c.conn.Close() }
