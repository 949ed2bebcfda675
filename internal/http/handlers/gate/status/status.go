package status

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
)

// Handler обрабатывает GET /gate.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP отдаёт текущий снимок гейта сессии.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.gate.status"

	s, ok := middlewarectx.SessionFrom(r.Context())
	if !ok {
		h.log.Error("session missing in context",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("session missing"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(s.Gate.Decision()))
}
