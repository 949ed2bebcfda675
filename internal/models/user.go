// Package models содержит доменные структуры dashboard-shell: пользователя,
// пришедшего из аутентификации, статистику дашборда и команды рассылок.
// Структуры используются в бизнес‑логике, HTTP‑слое и клиентах внешних API.
package models

// User представляет аутентифицированного пользователя дашборда.
// Данные приходят из bearer-токена и никогда не изменяются внутри сервиса.
type User struct {
	ID   string `json:"id"`   // Идентификатор пользователя
	Name string `json:"name"` // Отображаемое имя
	Role string `json:"role"` // Роль: Admin, Manager, User и т.д.
}
