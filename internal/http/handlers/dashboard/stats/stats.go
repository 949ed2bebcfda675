// Package stats реализует HTTP-обработчик статистики задач для главной страницы.
package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

// Service описывает интерфейс получения статистики.
type Service interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// Handler обрабатывает GET /dashboard/stats.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP отдаёт статистику задач.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to load dashboard statistics", sl.Err(err))
		render.Status(r, http.StatusBadGateway)
		render.JSON(w, r, response.Error("failed to load dashboard statistics"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(res))
}
