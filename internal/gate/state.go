package gate

// State: состояние гейта в рамках одной сессии.
type State int32

const (
	// StateIdle: оценка ещё не запускалась либо пользователя нет.
	StateIdle State = iota
	// StateChecking: идёт проверка локальной записи и удалённой возможности.
	StateChecking
	// StateSuppressed: диалог показывать не нужно.
	StateSuppressed
	// StatePromptPending: пользователю показан диалог начала дня.
	StatePromptPending
	// StateResolved: действие выполнено, запись за день сохранена.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateSuppressed:
		return "suppressed"
	case StatePromptPending:
		return "prompt_pending"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// MarshalText позволяет отдавать состояние в JSON строкой.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome: итог одной оценки гейта, используется для метрик.
type Outcome string

const (
	OutcomeRecordFound  Outcome = "record_found"
	OutcomePrompt       Outcome = "prompt"
	OutcomeCannotStart  Outcome = "cannot_start"
	OutcomeCheckFailed  Outcome = "check_failed"
	OutcomeResolved     Outcome = "resolved"
	OutcomeRecorded     Outcome = "recorded"
	OutcomeDismissed    Outcome = "dismissed"
	OutcomeStaleIgnored Outcome = "stale_ignored"
)
