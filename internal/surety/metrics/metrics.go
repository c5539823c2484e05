package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks every app operation end to end, ledger transaction included.
type Metrics struct {
	OperationDuration *prometheus.HistogramVec
	Operational       prometheus.Gauge
}

// New creates a new Metrics instance with all app metrics registered.
func New() *Metrics {
	return &Metrics{
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flightsurety_operation_duration_seconds",
			Help:    "Duration of app operations by operation and outcome",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation", "outcome"}),
		Operational: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "flightsurety_operational",
			Help: "1 while state-changing operations are enabled, 0 when the kill switch is off",
		}),
	}
}

// ObserveOperation records the duration of an operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation, outcome string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation, outcome).Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetOperational(on bool) {
	if on {
		m.Operational.Set(1)
		return
	}
	m.Operational.Set(0)
}
