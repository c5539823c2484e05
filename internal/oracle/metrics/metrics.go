package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for reporter consensus.
type Metrics struct {
	ReportersRegistered prometheus.Counter
	StatusRequests      *prometheus.CounterVec
	ReportsAccepted     prometheus.Counter
	ReportsRejected     *prometheus.CounterVec
	ConsensusReached    *prometheus.CounterVec
}

// New creates a new Metrics instance with all oracle metrics registered.
func New() *Metrics {
	return &Metrics{
		ReportersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_reporters_registered_total",
			Help: "Total number of status reporters registered",
		}),
		StatusRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsurety_status_requests_total",
			Help: "Status requests by outcome (opened, reused)",
		}, []string{"outcome"}),
		ReportsAccepted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_reports_accepted_total",
			Help: "Total number of status reports accepted into a bucket",
		}),
		ReportsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsurety_reports_rejected_total",
			Help: "Status reports ignored, by reason",
		}, []string{"reason"}),
		ConsensusReached: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsurety_consensus_reached_total",
			Help: "Requests settled by reporter consensus, by status code",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementRejected(reason string) {
	m.ReportsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementConsensus(status string) {
	m.ConsensusReached.WithLabelValues(status).Inc()
}
