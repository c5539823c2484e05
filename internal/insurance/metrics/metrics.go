package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the insurance escrow.
// Wei amounts are tracked as float counters; they are for dashboards, not accounting.
type Metrics struct {
	PoliciesSold   prometheus.Counter
	PremiumsWei    prometheus.Counter
	ClaimsCredited prometheus.Counter
	CreditedWei    prometheus.Counter
	Payouts        prometheus.Counter
	PayoutsWei     prometheus.Counter
}

// New creates a new Metrics instance with all insurance metrics registered.
func New() *Metrics {
	return &Metrics{
		PoliciesSold: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_policies_sold_total",
			Help: "Total number of insurance claims purchased",
		}),
		PremiumsWei: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_premiums_wei_total",
			Help: "Sum of premiums collected, in wei",
		}),
		ClaimsCredited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_claims_credited_total",
			Help: "Total number of claims credited after an airline-caused delay",
		}),
		CreditedWei: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_credited_wei_total",
			Help: "Sum of payouts credited to insurees, in wei",
		}),
		Payouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_payouts_total",
			Help: "Total number of withdrawals paid out",
		}),
		PayoutsWei: promauto.NewCounter(prometheus.CounterOpts{
			Name: "flightsurety_payouts_wei_total",
			Help: "Sum of withdrawals paid out, in wei",
		}),
	}
}
