// Package session хранит сессии дашборда: каждая сессия: это одно
// «монтирование» оболочки во вкладке браузера со своим гейтом и защёлкой.
// Перезагрузка страницы открывает новую сессию.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

var (
	// ErrNotFound: сессии нет или она уже закрыта.
	ErrNotFound = errors.New("session not found")
	// ErrForbidden: сессия принадлежит другому пользователю.
	ErrForbidden = errors.New("session belongs to another user")
)

// Session: одна сессия пользователя.
type Session struct {
	ID        string
	User      models.User
	Gate      *gate.Gate
	CreatedAt time.Time
}

// GateFactory создаёт новый гейт для сессии.
type GateFactory func() *gate.Gate

// Registry: реестр открытых сессий в памяти процесса.
type Registry struct {
	newGate GateFactory
	maxAge  time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry создаёт реестр. maxAge == 0: сессии не устаревают.
func NewRegistry(newGate GateFactory, maxAge time.Duration) *Registry {
	return &Registry{
		newGate:  newGate,
		maxAge:   maxAge,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open открывает новую сессию для пользователя со свежим гейтом.
func (r *Registry) Open(user models.User) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		User:      user,
		Gate:      r.newGate(),
		CreatedAt: r.now(),
	}
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

// Get возвращает сессию владельцу.
func (r *Registry) Get(id, userID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.User.ID != userID {
		return nil, ErrForbidden
	}
	return s, nil
}

// Close закрывает сессию владельца; незавершённая проверка гейта будет отброшена.
func (r *Registry) Close(id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return ErrNotFound
	}
	if s.User.ID != userID {
		return ErrForbidden
	}
	s.Gate.Close()
	delete(r.sessions, id)
	return nil
}

// Sweep закрывает сессии старше maxAge и возвращает их число.
func (r *Registry) Sweep(now time.Time) int {
	if r.maxAge <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, s := range r.sessions {
		if now.Sub(s.CreatedAt) > r.maxAge {
			s.Gate.Close()
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Len возвращает число открытых сессий.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
