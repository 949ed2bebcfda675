// Package jwt разбирает и выпускает bearer-токены дашборда.
//
// Токен: источник роли: в нём лежат идентификатор, имя и роль пользователя.
// Сервис никогда не изменяет эти данные, только читает их.
package jwt

import (
	"time"

	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(user models.User) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на HS256 с общим секретом и временем жизни токена.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
