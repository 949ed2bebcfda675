// Package dismiss реализует HTTP-обработчик закрытия диалога без начала дня.
package dismiss

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
)

// Handler обрабатывает POST /gate/dismiss.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP подавляет диалог до конца сессии. Запись за день не сохраняется.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gate.dismiss"

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

	d := s.Gate.Dismiss()
	log.Info("start day prompt dismissed", slog.String("session_id", s.ID), slog.String("state", d.State.String()))
	render.JSON(w, r, response.StatusOKWithData(d))
}
