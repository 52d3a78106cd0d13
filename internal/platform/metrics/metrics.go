package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores Prometheus del servicio.
type Metrics struct {
	EventsMaterialized prometheus.Counter
	SweepRuns          prometheus.Counter
	StatusTransitions  *prometheus.CounterVec
}

// New crea y registra las métricas en el registry por defecto.
func New() *Metrics {
	return &Metrics{
		EventsMaterialized: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pet_care_events_materialized_total",
			Help: "Care events created by the materializer",
		}),
		SweepRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pet_care_sweep_runs_total",
			Help: "Background materialization sweep executions",
		}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "pet_care_status_transitions_total",
			Help: "Care event status transitions applied",
		}, []string{"to"}),
	}
}

func (m *Metrics) IncEventsMaterialized(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.EventsMaterialized.Add(float64(n))
}

func (m *Metrics) IncSweepRuns() {
	if m == nil {
		return
	}
	m.SweepRuns.Inc()
}

func (m *Metrics) IncStatusTransition(to string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(to).Inc()
}
