package dashboardshell

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/dashboard-shell/docs"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/dashboard/broadcast"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/dashboard/stats"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/gate/complete"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/gate/dismiss"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/gate/evaluate"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/gate/status"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/health"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/navigation"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/sessions/open"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/handlers/sessions/remove"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/services/dashboard"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))
		r.Use(middlewarectx.RateLimitMiddleware(deps.Limiter, logger))

		r.Get("/navigation", navigation.New(logger, deps.Metrics).ServeHTTP)

		r.Post("/sessions", open.New(logger, deps.Sessions, deps.Metrics).ServeHTTP)
		r.Delete("/sessions/{id}", remove.New(logger, deps.Sessions, deps.Metrics).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.SessionMiddleware(deps.Sessions, logger))
			r.Get("/gate", status.New(logger).ServeHTTP)
			r.Post("/gate/evaluate", evaluate.New(logger).ServeHTTP)
			r.Post("/gate/complete", complete.New(logger).ServeHTTP)
			r.Post("/gate/dismiss", dismiss.New(logger).ServeHTTP)
		})

		svc := deps.Dashboard
		r.Get("/dashboard/stats", stats.New(logger, svc).ServeHTTP)
		r.Post("/dashboard/reminders",
			broadcast.New(logger, dashboard.KindReminders, svc.BroadcastReminders, "Reminders sent successfully").ServeHTTP)
		r.Post("/dashboard/aim-reminders",
			broadcast.New(logger, dashboard.KindAimReminders, svc.BroadcastAimReminders, "Aim reminders sent successfully").ServeHTTP)
		r.Post("/dashboard/reports",
			broadcast.New(logger, dashboard.KindReports, svc.GenerateReports, "Reports generation started").ServeHTTP)
	})

	r.Get("/health", health.New(logger, deps.Checks).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
