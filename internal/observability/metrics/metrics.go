package metrics

import (
	"strconv"

	"go-health-companion/internal/intake"

	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics exposes counters for the intake flow. It implements
// intake.Observer.
type IntakeMetrics struct {
	transitionsTotal *prometheus.CounterVec
	completionsTotal *prometheus.CounterVec
	persistErrors    *prometheus.CounterVec
	activeSessions   prometheus.GaugeFunc
}

// NewIntakeMetrics registers the intake collectors. sessions, when non-nil,
// backs a gauge of in-memory sessions.
func NewIntakeMetrics(reg prometheus.Registerer, sessions func() int) *IntakeMetrics {
	m := &IntakeMetrics{
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "health_companion",
			Subsystem: "intake",
			Name:      "step_transitions_total",
			Help:      "Step transitions requested, by kind and whether the step moved",
		}, []string{"kind", "moved"}),
		completionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "health_companion",
			Subsystem: "intake",
			Name:      "completions_total",
			Help:      "Intake completion attempts by save outcome",
		}, []string{"status"}),
		persistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "health_companion",
			Subsystem: "storage",
			Name:      "persist_errors_total",
			Help:      "Failed writes to the state store, by feature",
		}, []string{"feature"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.transitionsTotal, m.completionsTotal, m.persistErrors)

	if sessions != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "health_companion",
			Subsystem: "intake",
			Name:      "active_sessions",
			Help:      "Intake sessions held in memory",
		}, func() float64 { return float64(sessions()) })
		reg.MustRegister(m.activeSessions)
	}
	return m
}

func (m *IntakeMetrics) ObserveTransition(kind string, moved bool) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(kind, strconv.FormatBool(moved)).Inc()
}

func (m *IntakeMetrics) ObserveCompletion(status intake.SaveStatus) {
	if m == nil {
		return
	}
	m.completionsTotal.WithLabelValues(string(status)).Inc()
}

func (m *IntakeMetrics) ObservePersistError(feature string) {
	if m == nil {
		return
	}
	m.persistErrors.WithLabelValues(feature).Inc()
}
