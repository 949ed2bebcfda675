// Package remove реализует HTTP-обработчик закрытия сессии гейта.
//
// Закрытие соответствует размонтированию оболочки: незавершённая проверка
// гейта этой сессии будет отброшена.
package remove

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

// Service описывает реестр сессий.
type Service interface {
	Close(id, userID string) error
	Len() int
}

// Observer получает число открытых сессий.
type Observer interface {
	SetOpenSessions(n int)
}

// Request: параметры запроса.
type Request struct {
	SessionID string `validate:"required,uuid"`
}

// Handler обрабатывает DELETE /sessions/{id}.
type Handler struct {
	log      *slog.Logger
	service  Service
	observer Observer
	validate *validator.Validate
}

// New создает новый Handler. observer может быть nil.
func New(log *slog.Logger, service Service, observer Observer) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		observer: observer,
		validate: validator.New(),
	}
}

// ServeHTTP закрывает сессию пользователя из контекста.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.sessions.remove"

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

	req := Request{SessionID: chi.URLParam(r, "id")}
	if err := h.validate.Struct(req); err != nil {
		log.Warn("invalid session id", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		if verrs, ok := err.(validator.ValidationErrors); ok {
			render.JSON(w, r, response.ValidationError(verrs))
			return
		}
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	err := h.service.Close(req.SessionID, user.ID)
	switch {
	case errors.Is(err, session.ErrNotFound):
		log.Info("session not found", slog.String("session_id", req.SessionID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("session not found"))
		return
	case errors.Is(err, session.ErrForbidden):
		log.Warn("session belongs to another user", slog.String("session_id", req.SessionID))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("session belongs to another user"))
		return
	case err != nil:
		log.Error("failed to close session", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not close session"))
		return
	}

	if h.observer != nil {
		h.observer.SetOpenSessions(h.service.Len())
	}

	log.Info("session closed", slog.String("session_id", req.SessionID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"session_id": req.SessionID,
	}))
}
