package models

// DashboardStats: сводка по задачам, которую показывает главная страница дашборда.
// Поля *Change содержат изменение показателя относительно прошлого периода в процентах.
type DashboardStats struct {
	TotalTasks            int     `json:"totalTasks"`
	CompletedTasks        int     `json:"completedTasks"`
	InProgressTasks       int     `json:"inProgressTasks"`
	PendingTasks          int     `json:"pendingTasks"`
	TotalTasksChange      float64 `json:"totalTasksChange"`
	CompletedTasksChange  float64 `json:"completedTasksChange"`
	InProgressTasksChange float64 `json:"inProgressTasksChange"`
	PendingTasksChange    float64 `json:"pendingTasksChange"`
}
