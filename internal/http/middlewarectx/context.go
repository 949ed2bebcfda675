// Package middlewarectx содержит HTTP middleware dashboard-shell: проверку
// bearer-токена, поиск сессии гейта и ограничение частоты запросов.
//
// Middleware кладут пользователя и сессию в контекст запроса, обработчики
// достают их через UserFrom и SessionFrom.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/dashboard-shell/internal/models"
	"github.com/magabrotheeeer/dashboard-shell/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User: ключ для аутентифицированного пользователя в контексте.
	User Key = "user"
	// Session: ключ для сессии гейта в контексте.
	Session Key = "session"
)

// SessionHeader: заголовок с идентификатором сессии.
const SessionHeader = "X-Session-ID"

// WithUser кладёт пользователя в контекст.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, User, user)
}

// UserFrom достаёт пользователя из контекста.
func UserFrom(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(User).(models.User)
	return user, ok
}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, Session, s)
}

// SessionFrom достаёт сессию из контекста.
func SessionFrom(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(Session).(*session.Session)
	return s, ok && s != nil
}
