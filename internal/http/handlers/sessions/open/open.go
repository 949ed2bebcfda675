// Package open реализует HTTP-обработчик открытия сессии гейта.
//
// Сессия соответствует одному монтированию оболочки дашборда: у неё свой гейт
// и своя защёлка. Фронтенд открывает сессию при загрузке страницы и передаёт
// её идентификатор в заголовке X-Session-ID.
package open

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

// Service описывает реестр сессий.
type Service interface {
	Open(user models.User) *session.Session
	Len() int
}

// Observer получает число открытых сессий.
type Observer interface {
	SetOpenSessions(n int)
}

// Handler обрабатывает POST /sessions.
type Handler struct {
	log      *slog.Logger
	service  Service
	observer Observer
}

// New создает новый Handler. observer может быть nil.
func New(log *slog.Logger, service Service, observer Observer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		observer: observer,
	}
}

// ServeHTTP открывает сессию для пользователя из контекста.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sessions.open"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		log.Error("user identification missing")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	s := h.service.Open(user)
	if h.observer != nil {
		h.observer.SetOpenSessions(h.service.Len())
	}

	log.Info("session opened", slog.String("session_id", s.ID), slog.String("user_id", user.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": s.ID,
	}))
}
