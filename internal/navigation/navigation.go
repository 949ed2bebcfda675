// Package navigation вычисляет пункты боковой панели дашборда по роли пользователя
// и определяет активный пункт для текущего пути.
//
// Пакет чистый: никакого ввода-вывода и логирования, только функции от (роль, путь).
package navigation

import "github.com/magabrotheeeer/dashboard-shell/internal/models"

// Resolve возвращает упорядоченный набор пунктов для роли.
//
// Приоритет: User получает только пользовательский набор, Admin: базовый набор
// и административные пункты после него, все остальные роли: базовый набор.
// Результат всегда новый срез, статические наборы вызывающему недоступны.
func Resolve(role Role) []Entry {
	switch role {
	case RoleUser:
		return concat(userSet)
	case RoleAdmin:
		return concat(baseSet, adminExtraSet)
	case RoleManager, RoleDefault:
		return concat(baseSet)
	}
	return concat(baseSet)
}

// IsActive сообщает, совпадает ли путь пункта с текущим путём.
// Сравнение строгое: без префиксов и нормализации завершающего слэша.
func IsActive(e Entry, currentPath string) bool {
	return e.Path == currentPath
}

// Item: пункт меню вместе с признаком активности.
type Item struct {
	Entry
	Active bool `json:"active"`
}

// Profile: карточка пользователя в подвале боковой панели.
type Profile struct {
	Name    string `json:"name"`
	Initial string `json:"initial"`
	Role    string `json:"role"`
}

// View: всё, что нужно фронтенду для отрисовки боковой панели.
type View struct {
	Role     string  `json:"role"`
	Items    []Item  `json:"items"`
	Settings Item    `json:"settings"`
	Profile  Profile `json:"profile"`
}

// BuildView собирает представление боковой панели для пользователя и текущего пути.
// При отсутствии пользователя используется базовый набор.
func BuildView(user *models.User, currentPath string) View {
	var rawRole, name string
	if user != nil {
		rawRole, name = user.Role, user.Name
	}
	role := ParseRole(rawRole)

	entries := Resolve(role)
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, Item{Entry: e, Active: IsActive(e, currentPath)})
	}

	return View{
		Role:     role.String(),
		Items:    items,
		Settings: Item{Entry: SettingsEntry, Active: IsActive(SettingsEntry, currentPath)},
		Profile:  profileOf(name, rawRole),
	}
}

func profileOf(name, role string) Profile {
	p := Profile{Name: "User", Initial: "U", Role: "User"}
	if name != "" {
		p.Name = name
		p.Initial = string([]rune(name)[:1])
	}
	if role != "" {
		p.Role = role
	}
	return p
}

func concat(sets ...[]Entry) []Entry {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make([]Entry, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
