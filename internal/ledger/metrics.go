package ledger

import (
	"time"

	"player-wallet/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	operationsTotal     *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	generatedIDRetries  prometheus.Counter
	internalErrorsTotal *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		operationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wallet",
				Subsystem: "ledger",
				Name:      "operations_total",
				Help:      "Ledger operations partitioned by action and audit result.",
			},
			[]string{"action", "result"},
		),
		operationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "wallet",
				Subsystem: "ledger",
				Name:      "operation_duration_seconds",
				Help:      "Ledger operation latency partitioned by action.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		generatedIDRetries: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: "wallet",
				Subsystem: "ledger",
				Name:      "generated_id_retries_total",
				Help:      "Generated external IDs redrawn after colliding with an existing transaction.",
			},
		),
		internalErrorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "wallet",
				Subsystem: "ledger",
				Name:      "internal_errors_total",
				Help:      "Storage faults surfaced as internal errors, partitioned by action.",
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) observe(action store.ActionType, result store.AuditType, d time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(string(action), string(result)).Inc()
	m.operationDuration.WithLabelValues(string(action)).Observe(d.Seconds())
}

func (m *Metrics) retriedGeneratedID() {
	if m == nil {
		return
	}
	m.generatedIDRetries.Inc()
}

func (m *Metrics) internalError(action store.ActionType) {
	if m == nil {
		return
	}
	m.internalErrorsTotal.WithLabelValues(string(action)).Inc()
}
