// Package broadcast реализует HTTP-обработчики команд рассылок дашборда:
// напоминаний, напоминаний о целях и формирования отчётов.
//
// Обработчик только ставит команду в очередь. Письма и отчёты формирует
// серверная сторона.
package broadcast

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/services/dashboard"
)

// Action: операция сервиса, которую выполняет обработчик.
type Action func(ctx context.Context, user models.User) error

// Handler обрабатывает одну команду рассылки.
type Handler struct {
	log     *slog.Logger
	kind    string
	action  Action
	message string
}

// New создает Handler для команды kind. message уходит клиенту при успехе.
func New(log *slog.Logger, kind string, action Action, message string) *Handler {
	return &Handler{
		log:     log,
		kind:    kind,
		action:  action,
		message: message,
	}
}

// ServeHTTP ставит команду в очередь от имени пользователя из контекста.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.broadcast"

	log := h.log.With(
		slog.String("op", op),
		slog.String("kind", h.kind),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	err := h.action(r.Context(), user)
	switch {
	case errors.Is(err, dashboard.ErrForbidden):
		log.Warn("broadcast forbidden for role", slog.String("role", user.Role))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("action is not allowed for your role"))
		return
	case errors.Is(err, dashboard.ErrUnavailable):
		log.Error("broadcasts are not configured")
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("broadcasts are temporarily unavailable"))
		return
	case err != nil:
		log.Error("failed to queue broadcast", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not queue broadcast"))
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": h.message,
	}))
}
