// Package complete реализует HTTP-обработчик успешного начала дня.
package complete

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
)

// Handler обрабатывает POST /gate/complete.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP сохраняет запись за текущий день и закрывает диалог.
// При ошибке хранилища состояние гейта не меняется, запрос можно повторить.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gate.complete"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	s, ok := middlewarectx.SessionFrom(r.Context())
	if !ok {
		log.Error("session missing in context")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("session missing"))
		return
	}

	d, err := s.Gate.Complete(r.Context(), &s.User)
	switch {
	case errors.Is(err, gate.ErrNoUser):
		log.Error("session has no user", slog.String("session_id", s.ID))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("session has no user"))
		return
	case err != nil:
		log.Error("failed to save start day record", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save start day record"))
		return
	}

	log.Info("start day completed",
		slog.String("session_id", s.ID),
		slog.String("record_key", d.RecordKey),
	)
	render.JSON(w, r, response.StatusOKWithData(d))
}
