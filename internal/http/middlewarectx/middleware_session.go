package middlewarectx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/dashboard-shell/internal/http/response"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

// Sessions ищет сессию владельца.
type Sessions interface {
	Get(id, userID string) (*session.Session, error)
}

// SessionMiddleware находит сессию гейта по заголовку X-Session-ID.
// Требует, чтобы JWTMiddleware уже положил пользователя в контекст.
func SessionMiddleware(sessions Sessions, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFrom(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			id := r.Header.Get(SessionHeader)
			if _, err := uuid.Parse(id); err != nil {
				log.Warn("missing or invalid session id", slog.String("session_id", id))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("missing or invalid session id"))
				return
			}

			s, err := sessions.Get(id, user.ID)
			switch {
			case errors.Is(err, session.ErrForbidden):
				log.Warn("session belongs to another user", slog.String("session_id", id))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("session belongs to another user"))
				return
			case err != nil:
				log.Info("session not found", slog.String("session_id", id))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("session not found"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}
