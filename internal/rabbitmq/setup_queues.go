package rabbitmq

// NotificationsExchange: exchange, в который dashboard-shell публикует команды.
const NotificationsExchange = "notifications"

// Ключи маршрутизации команд дашборда.
const (
	RoutingRemindersBroadcast = "reminders.broadcast"
	RoutingAimsBroadcast      = "aims.broadcast"
	RoutingReportsGenerate    = "reports.generate"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// DashboardQueues: очереди, которые читают серверные воркеры рассылок.
func DashboardQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "dashboard.reminders", RoutingKey: RoutingRemindersBroadcast},
		{QueueName: "dashboard.aim-reminders", RoutingKey: RoutingAimsBroadcast},
		{QueueName: "dashboard.reports", RoutingKey: RoutingReportsGenerate},
	}
}
