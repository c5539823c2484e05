package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the flight registry.
type Metrics struct {
	FlightsRegistered prometheus.Counter
	FlightsResolved   *prometheus.CounterVec
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
}

// New creates a new Metrics instance with all flight metrics registered.
func New() *Metrics {
	return &Metrics{
		FlightsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_flights_registered_total",
			Help: "Total number of flights registered by funded airlines",
		}),
		FlightsResolved: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flightsurety_flights_resolved_total",
			Help: "Total number of flights resolved, by status code",
		}, []string{"status"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_flight_cache_hits_total",
			Help: "Resolved-flight lookups served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_flight_cache_misses_total",
			Help: "Flight lookups that went to the ledger",
		}),
	}
}

func (m *Metrics) IncrementRegistered() {
	m.FlightsRegistered.Inc()
}

func (m *Metrics) IncrementResolved(status string) {
	m.FlightsResolved.WithLabelValues(status).Inc()
}
