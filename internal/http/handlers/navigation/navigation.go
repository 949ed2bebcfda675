// Package navigation реализует HTTP-обработчик боковой панели дашборда.
//
// Handler берёт пользователя из контекста, текущий путь из query-параметра path
// и отдаёт пункты меню для роли пользователя с отметкой активного пункта.
package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	nav "github.com/magabrotheeeer/dashboard-shell/internal/navigation"
)

// Observer получает роль, для которой построено меню.
type Observer interface {
	ObserveNavigation(role nav.Role)
}

// Request: параметры запроса.
type Request struct {
	Path string `validate:"omitempty,startswith=/,max=256"`
}

// Handler обрабатывает запросы на построение боковой панели.
type Handler struct {
	log      *slog.Logger
	observer Observer
	validate *validator.Validate
}

// New создает новый Handler. observer может быть nil.
func New(log *slog.Logger, observer Observer) *Handler {
	return &Handler{
		log:      log,
		observer: observer,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает GET /navigation?path=...
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.navigation"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req := Request{Path: r.URL.Query().Get("path")}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("invalid navigation request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	var user *models.User
	role := nav.RoleDefault
	if u, ok := middlewarectx.UserFrom(r.Context()); ok {
		user = &u
		role = nav.ParseRole(u.Role)
	}

	view := nav.BuildView(user, req.Path)
	if h.observer != nil {
		h.observer.ObserveNavigation(role)
	}

	log.Debug("navigation built", slog.String("role", view.Role), slog.Int("items", len(view.Items)))
	render.JSON(w, r, response.StatusOKWithData(view))
}
