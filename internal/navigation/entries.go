package navigation

// Icon: символьный идентификатор иконки; отрисовка остаётся на стороне фронтенда.
type Icon string

const (
	IconLayoutDashboard Icon = "layout-dashboard"
	IconCheckSquare     Icon = "check-square"
	IconNetwork         Icon = "network"
	IconUsers           Icon = "users"
	IconSparkles        Icon = "sparkles"
	IconTarget          Icon = "target"
	IconCheckCircle     Icon = "check-circle"
	IconMonitor         Icon = "monitor"
	IconUserCog         Icon = "user-cog"
	IconBarChart        Icon = "bar-chart"
	IconAirplay         Icon = "airplay"
	IconSettings        Icon = "settings"
)

// Entry: пункт навигации. Наборы пунктов статичны и не изменяются.
type Entry struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  Icon   `json:"icon"`
}

var baseSet = []Entry{
	{Title: "Dashboard", Path: "/dashboard", Icon: IconLayoutDashboard},
	{Title: "Tasks", Path: "/tasks", Icon: IconCheckSquare},
	{Title: "Dependencies", Path: "/dependencies", Icon: IconNetwork},
	{Title: "Departments", Path: "/departments", Icon: IconUsers},
	{Title: "AI Optimization", Path: "/optimization", Icon: IconSparkles},
	{Title: "All Aims", Path: "/all-aims", Icon: IconTarget},
	{Title: "Completed Tasks", Path: "/completedtask", Icon: IconCheckCircle},
	{Title: "Leaderboard", Path: "/leaderboard", Icon: IconSparkles},
}

var adminExtraSet = []Entry{
	{Title: "Employee Monitoring", Path: "/monitoring", Icon: IconMonitor},
	{Title: "User Management", Path: "/user-management", Icon: IconUserCog},
}

var userSet = []Entry{
	{Title: "Dashboard", Path: "/userdashboard", Icon: IconLayoutDashboard},
	{Title: "Progress", Path: "/progress", Icon: IconBarChart},
	{Title: "Set Aims", Path: "/aims", Icon: IconAirplay},
	{Title: "Leaderboard", Path: "/leaderboard", Icon: IconSparkles},
}

// SettingsEntry: ссылка на настройки в подвале боковой панели, вне основного списка.
var SettingsEntry = Entry{Title: "Settings", Path: "/settings", Icon: IconSettings}
