package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for access evaluation. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Decision outcomes by status and reason
	DecisionOutcome *prometheus.CounterVec

	// Full Evaluate latency including store lookups
	EvaluateLatency prometheus.Histogram

	// Access events persisted by direction and status
	AccessLogged *prometheus.CounterVec

	// Rows removed by the retention loop
	AccessLogsPruned prometheus.Counter

	// Directory cache lookups by kind and result
	CacheLookups *prometheus.CounterVec

	// Organizations pointing at a preset that does not exist
	PresetMisses *prometheus.CounterVec
}

// New registers every collector on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		DecisionOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "porteria_decision_outcomes_total",
			Help: "Total access decisions by status and reason",
		}, []string{"status", "reason"}),

		EvaluateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "porteria_decision_evaluate_duration_seconds",
			Help:    "Duration of access rule evaluation",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		AccessLogged: f.NewCounterVec(prometheus.CounterOpts{
			Name: "porteria_access_logs_recorded_total",
			Help: "Access events recorded by direction and status",
		}, []string{"direction", "status"}),

		AccessLogsPruned: f.NewCounter(prometheus.CounterOpts{
			Name: "porteria_access_logs_pruned_total",
			Help: "Access log rows deleted by retention",
		}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "porteria_directory_cache_lookups_total",
			Help: "Directory cache lookups by kind and result",
		}, []string{"kind", "result"}), // result: "hit", "miss", "error"

		PresetMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "porteria_policy_preset_missing_total",
			Help: "Evaluations that referenced an unknown access rule preset",
		}, []string{"preset"}),
	}
}

func (m *Metrics) IncrementOutcome(status, reason string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, reason).Inc()
	}
}

func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementAccessLogged(direction, status string) {
	if m != nil {
		m.AccessLogged.WithLabelValues(direction, status).Inc()
	}
}

func (m *Metrics) AddPruned(n int64) {
	if m != nil && n > 0 {
		m.AccessLogsPruned.Add(float64(n))
	}
}

func (m *Metrics) IncrementCacheLookup(kind, result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(kind, result).Inc()
	}
}

func (m *Metrics) IncrementPresetMiss(preset string) {
	if m != nil {
		m.PresetMisses.WithLabelValues(preset).Inc()
	}
}
