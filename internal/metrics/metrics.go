// Package metrics: prometheus-коллекторы dashboard-shell.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/dashboard-shell/internal/gate"
	"github.com/magabrotheeeer/dashboard-shell/internal/navigation"
)

const namespace = "dashboard_shell"

// Metrics хранит счётчики сервиса.
type Metrics struct {
	gateDecisions *prometheus.CounterVec
	navigation    *prometheus.CounterVec
	broadcasts    *prometheus.CounterVec
	sessions      prometheus.Gauge
}

// New создаёт и регистрирует коллекторы в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		gateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Итоги оценки ежедневного гейта.",
		}, []string{"outcome"}),
		navigation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "navigation",
			Name:      "resolutions_total",
			Help:      "Разрешения навигации по ролям.",
		}, []string{"role"}),
		broadcasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "broadcasts_total",
			Help:      "Опубликованные команды рассылок.",
		}, []string{"kind", "result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "open",
			Help:      "Открытые сессии гейта.",
		}),
	}
	reg.MustRegister(m.gateDecisions, m.navigation, m.broadcasts, m.sessions)
	return m
}

// ObserveDecision реализует gate.Observer.
func (m *Metrics) ObserveDecision(outcome gate.Outcome) {
	m.gateDecisions.WithLabelValues(string(outcome)).Inc()
}

// ObserveNavigation учитывает разрешение навигации для роли.
func (m *Metrics) ObserveNavigation(role navigation.Role) {
	m.navigation.WithLabelValues(role.String()).Inc()
}

// ObserveBroadcast учитывает публикацию команды рассылки.
func (m *Metrics) ObserveBroadcast(kind string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.broadcasts.WithLabelValues(kind, result).Inc()
}

// SetOpenSessions выставляет число открытых сессий.
func (m *Metrics) SetOpenSessions(n int) {
	m.sessions.Set(float64(n))
}
