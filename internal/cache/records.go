package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Records хранит записи гейта в redis как обычные строки.
// Ключи живут ttl и устаревают сами, явного удаления нет.
type Records struct {
	cache *Cache
	ttl   time.Duration
}

// NewRecords создаёт хранилище записей гейта поверх кеша. ttl == 0: без срока жизни.
func NewRecords(c *Cache, ttl time.Duration) *Records {
	return &Records{cache: c, ttl: ttl}
}

// Get возвращает значение записи.
func (r *Records) Get(ctx context.Context, key string) (string, bool, error) {
	const op = "cache.Records.Get"
	val, err := r.cache.Db.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return val, true, nil
}

// Set сохраняет запись; последняя запись побеждает.
func (r *Records) Set(ctx context.Context, key, value string) error {
	const op = "cache.Records.Set"
	if err := r.cache.Db.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
