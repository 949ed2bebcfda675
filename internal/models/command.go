package models

import "time"

// BroadcastCommand: сообщение, которое dashboard-shell публикует в очередь уведомлений.
// Само формирование писем и отчётов выполняет серверная сторона.
type BroadcastCommand struct {
	Kind        string    `json:"kind"`         // reminders, aim_reminders или reports
	RequestedBy string    `json:"requested_by"` // ID пользователя, инициировавшего рассылку
	Role        string    `json:"role"`         // Роль инициатора на момент запроса
	RequestedAt time.Time `json:"requested_at"` // Время запроса (UTC)
}
