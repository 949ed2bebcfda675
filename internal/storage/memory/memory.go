// Package memory: хранилище записей гейта в памяти процесса.
// Подходит для одного инстанса и для тестов; записи не переживают рестарт.
package memory

import (
	"context"
	"sync"
)

// Records: потокобезопасная карта ключ-значение.
type Records struct {
	mu   sync.RWMutex
	data map[string]string
}

// New создаёт пустое хранилище.
func New() *Records {
	return &Records{data: make(map[string]string)}
}

// Get возвращает значение по ключу.
func (r *Records) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	return v, ok, nil
}

// Set сохраняет значение, перезаписывая прежнее.
func (r *Records) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}
