// Package gate реализует ежедневный гейт «начала дня»: не чаще раза в день
// на пользователя решает, нужно ли показать диалог начала рабочего дня.
//
// Гейт живёт в рамках одной сессии. Оценка запускается не более одного раза
// (защёлка выставляется атомарно до любого ввода-вывода), сначала проверяет
// локальную запись за текущий день и только при её отсутствии обращается
// к удалённой проверке возможности. Ошибка удалённой проверки никогда не
// блокирует пользователя: диалог просто не показывается.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/magabrotheeeer/dashboard-shell/internal/lib/sl"
	"github.com/magabrotheeeer/dashboard-shell/internal/models"
)

// ErrNoUser возвращается, если действие гейта выполняется без пользователя.
var ErrNoUser = errors.New("gate: no authenticated user")

// Store: синхронное хранилище ключ-значение для записей гейта.
type Store interface {
	// Get возвращает значение и признак его наличия.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set сохраняет значение по ключу, последняя запись побеждает.
	Set(ctx context.Context, key, value string) error
}

// Checker отвечает, может ли пользователь ещё начать свой день.
type Checker interface {
	CanStartDay(ctx context.Context, userID string) (bool, error)
}

// Observer получает итоги работы гейта (метрики).
type Observer interface {
	ObserveDecision(outcome Outcome)
}

// Decision: снимок состояния гейта, отдаётся фронтенду.
type Decision struct {
	State             State  `json:"state"`
	CapabilityChecked bool   `json:"capability_checked"`
	ShouldPrompt      bool   `json:"should_prompt"`
	RecordKey         string `json:"record_key,omitempty"`
}

// Gate: гейт одной сессии. Безопасен для конкурентного использования.
type Gate struct {
	store        Store
	checker      Checker
	now          func() time.Time
	log          *slog.Logger
	observer     Observer
	checkTimeout time.Duration

	latch  atomic.Bool
	closed atomic.Bool

	mu      sync.Mutex
	state   State
	checked bool
	key     string
}

// Option настраивает Gate.
type Option func(*Gate)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithLogger задаёт логгер.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) { g.log = log }
}

// WithObserver задаёт получателя итогов.
func WithObserver(o Observer) Option {
	return func(g *Gate) { g.observer = o }
}

// WithCheckTimeout ограничивает время удалённой проверки. Ноль: без ограничения.
func WithCheckTimeout(d time.Duration) Option {
	return func(g *Gate) { g.checkTimeout = d }
}

// New создаёт гейт в состоянии StateIdle.
func New(store Store, checker Checker, opts ...Option) *Gate {
	g := &Gate{
		store:   store,
		checker: checker,
		now:     time.Now,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate запускает оценку гейта для пользователя.
//
// Без пользователя гейт остаётся в StateIdle и защёлку не трогает.
// Повторный вызов в той же сессии ничего не делает и возвращает текущий снимок.
// Ошибки хранилища и удалённой проверки не возвращаются: гейт открыт при сбоях.
func (g *Gate) Evaluate(ctx context.Context, user *models.User) (d Decision) {
	const op = "gate.Evaluate"

	if user == nil || user.ID == "" {
		return g.Decision()
	}
	if !g.latch.CompareAndSwap(false, true) {
		return g.Decision()
	}

	key := RecordKey(user.ID, g.now())
	g.mu.Lock()
	g.state = StateChecking
	g.key = key
	g.mu.Unlock()

	log := g.log.With(
		slog.String("op", op),
		slog.String("user_id", user.ID),
		slog.String("key", key),
	)

	next, outcome := StateSuppressed, OutcomeCheckFailed
	defer func() {
		d = g.finish(log, next, outcome)
	}()
	next, outcome = g.check(ctx, log, user.ID, key)
	return d
}

func (g *Gate) check(ctx context.Context, log *slog.Logger, userID, key string) (State, Outcome) {
	_, found, err := g.store.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn("failed to read gate record, asking remote check", sl.Err(err))
	case found:
		log.Debug("gate record found, prompt suppressed")
		return StateSuppressed, OutcomeRecordFound
	}

	if g.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.checkTimeout)
		defer cancel()
	}

	canStart, err := g.checker.CanStartDay(ctx, userID)
	switch {
	case err != nil:
		log.Warn("capability check failed, prompt suppressed", sl.Err(err))
		return StateSuppressed, OutcomeCheckFailed
	case canStart:
		log.Info("user can start the day, prompting")
		return StatePromptPending, OutcomePrompt
	default:
		log.Debug("user cannot start the day, prompt suppressed")
		return StateSuppressed, OutcomeCannotStart
	}
}

func (g *Gate) finish(log *slog.Logger, next State, outcome Outcome) Decision {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed.Load() {
		log.Debug("gate closed while checking, result ignored", slog.String("state", next.String()))
		g.observe(OutcomeStaleIgnored)
		return g.decisionLocked()
	}

	g.state = next
	g.checked = true
	g.observe(outcome)
	return g.decisionLocked()
}

// Complete фиксирует успешное начало дня: сохраняет запись за текущий день
// и переводит StatePromptPending в StateResolved.
//
// Запись пишется в любом состоянии: начать день можно и не из диалога.
// При ошибке хранилища состояние не меняется, вызов можно повторить.
func (g *Gate) Complete(ctx context.Context, user *models.User) (Decision, error) {
	const op = "gate.Complete"

	if user == nil || user.ID == "" {
		return g.Decision(), ErrNoUser
	}

	key := RecordKey(user.ID, g.now())
	if err := g.store.Set(ctx, key, recordValue); err != nil {
		return g.Decision(), fmt.Errorf("%s: %w", op, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.key = key
	if g.state == StatePromptPending {
		g.state = StateResolved
		g.observe(OutcomeResolved)
	} else {
		g.observe(OutcomeRecorded)
	}
	return g.decisionLocked(), nil
}

// Dismiss закрывает диалог без выполнения действия. Запись не сохраняется,
// поэтому в новой сессии того же дня гейт спросит удалённую проверку снова.
func (g *Gate) Dismiss() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StatePromptPending {
		g.state = StateSuppressed
		g.observe(OutcomeDismissed)
	}
	return g.decisionLocked()
}

// Decision возвращает текущий снимок состояния.
func (g *Gate) Decision() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.decisionLocked()
}

// Close помечает гейт как закрытый: результат незавершённой проверки будет отброшен.
func (g *Gate) Close() {
	g.closed.Store(true)
}

func (g *Gate) decisionLocked() Decision {
	return Decision{
		State:             g.state,
		CapabilityChecked: g.checked,
		ShouldPrompt:      g.state == StatePromptPending,
		RecordKey:         g.key,
	}
}

func (g *Gate) observe(o Outcome) {
	if g.observer != nil {
		g.observer.ObserveDecision(o)
	}
}
