package navigation

// Role: закрытое множество ролей, от которых зависит набор пунктов меню.
// Любая неизвестная роль сводится к RoleDefault.
type Role string

const (
	// RoleAdmin: администратор: базовое меню плюс административные пункты.
	RoleAdmin Role = "Admin"
	// RoleManager: менеджер: базовое меню.
	RoleManager Role = "Manager"
	// RoleUser: сотрудник: отдельное пользовательское меню.
	RoleUser Role = "User"
	// RoleDefault: роль не указана или не распознана: базовое меню.
	RoleDefault Role = ""
)

// ParseRole сопоставляет строку роли с Role без нормализации регистра.
// Ошибки не бывает: всё нераспознанное становится RoleDefault.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleManager:
		return RoleManager
	case RoleUser:
		return RoleUser
	default:
		return RoleDefault
	}
}

// String возвращает метку роли для логов и метрик.
func (r Role) String() string {
	if r == RoleDefault {
		return "default"
	}
	return string(r)
}
