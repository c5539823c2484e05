package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for airline admission and funding.
type Metrics struct {
	AirlinesAdmitted *prometheus.CounterVec
	VotesCast        prometheus.Counter
	AirlinesFunded   prometheus.Counter
	AdmitDuration    prometheus.Histogram
}

// New creates a new Metrics instance with all airline metrics registered.
func New() *Metrics {
	return &Metrics{
		AirlinesAdmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsurety_airlines_admitted_total",
			Help: "Total number of airlines admitted, by admission mode (open, vote)",
		}, []string{"mode"}),
		VotesCast: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_airline_votes_total",
			Help: "Total number of admission votes recorded",
		}),
		AirlinesFunded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_airlines_funded_total",
			Help: "Total number of airlines that paid the funding fee",
		}),
		AdmitDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "flightsurety_airline_admit_duration_seconds",
			Help:    "Duration of airline admission operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

func (m *Metrics) IncrementAdmitted(mode string) {
	m.AirlinesAdmitted.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncrementVotes() {
	m.VotesCast.Inc()
}

func (m *Metrics) IncrementFunded() {
	m.AirlinesFunded.Inc()
}

// ObserveAdmit records the duration of an admission.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAdmit(start time.Time) {
	m.AdmitDuration.Observe(time.Since(start).Seconds())
}
