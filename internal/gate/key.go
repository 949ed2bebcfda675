package gate

import (
	"fmt"
	"time"
)

const (
	keyPrefix = "startDayPromptShown"
	// recordValue: маркер записи; содержимое значения не используется.
	recordValue = "1"
)

// RecordKey возвращает ключ записи гейта для пользователя и момента времени.
// Дата: календарный день момента в UTC в формате YYYY-MM-DD.
func RecordKey(userID string, at time.Time) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, at.UTC().Format(time.DateOnly))
}
