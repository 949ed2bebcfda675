// Package evaluate реализует HTTP-обработчик оценки ежедневного гейта.
//
// Оценка выполняется не более одного раза за сессию. Повторные запросы
// получают текущий снимок без обращения к хранилищу и удалённому API.
package evaluate

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
)

// Handler обрабатывает POST /gate/evaluate.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP запускает оценку гейта сессии из контекста.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gate.evaluate"

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

	// Отмена запроса не прерывает проверку: повторной оценки в сессии не будет.
	d := s.Gate.Evaluate(context.WithoutCancel(r.Context()), &s.User)

	log.Info("gate evaluated",
		slog.String("session_id", s.ID),
		slog.String("state", d.State.String()),
		slog.Bool("should_prompt", d.ShouldPrompt),
	)
	render.JSON(w, r, response.StatusOKWithData(d))
}
