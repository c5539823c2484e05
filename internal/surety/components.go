package surety

import (
	"context"
	"log/slog"

	airlinemetrics "flightsurety/internal/airline/metrics"
	airlinesvc "flightsurety/internal/airline/service"
	"flightsurety/internal/entropy"
	flightmetrics "flightsurety/internal/flight/metrics"
	flightsvc "flightsurety/internal/flight/service"
	insurancemetrics "flightsurety/internal/insurance/metrics"
	insurancemodels "flightsurety/internal/insurance/models"
	insurancesvc "flightsurety/internal/insurance/service"
	oraclemetrics "flightsurety/internal/oracle/metrics"
	oraclesvc "flightsurety/internal/oracle/service"
	"flightsurety/internal/payments"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
)

// Settings configures the component services.
type Settings struct {
	AirlineFee      domain.Amount
	MaxPremium      domain.Amount
	ReporterFee     domain.Amount
	FlightCacheSize int
	Entropy         entropy.Source
	Transferer      payments.Transferer
	Logger          *slog.Logger
	// WithMetrics registers Prometheus collectors; leave false in tests that
	// build more than one set of components.
	WithMetrics bool
}

// NewComponents wires the services in dependency order: airlines, then
// flights (crediting through insurance), then insurance, then oracles.
func NewComponents(s Settings) Components {
	airlineOpts := []airlinesvc.Option{airlinesvc.WithLogger(s.Logger)}
	flightOpts := []flightsvc.Option{flightsvc.WithLogger(s.Logger)}
	insuranceOpts := []insurancesvc.Option{insurancesvc.WithLogger(s.Logger)}
	oracleOpts := []oraclesvc.Option{oraclesvc.WithLogger(s.Logger)}
	if s.FlightCacheSize != 0 {
		flightOpts = append(flightOpts, flightsvc.WithCacheSize(s.FlightCacheSize))
	}
	if s.WithMetrics {
		airlineOpts = append(airlineOpts, airlinesvc.WithMetrics(airlinemetrics.New()))
		flightOpts = append(flightOpts, flightsvc.WithMetrics(flightmetrics.New()))
		insuranceOpts = append(insuranceOpts, insurancesvc.WithMetrics(insurancemetrics.New()))
		oracleOpts = append(oracleOpts, oraclesvc.WithMetrics(oraclemetrics.New()))
	}

	airlines := airlinesvc.New(s.AirlineFee, airlineOpts...)
	crediter := &lazyCrediter{}
	flights := flightsvc.New(airlines, crediter, flightOpts...)
	insurance := insurancesvc.New(airlines, flights, s.Transferer, s.MaxPremium, insuranceOpts...)
	crediter.target = insurance
	oracles := oraclesvc.New(s.Entropy, flights, s.ReporterFee, oracleOpts...)

	return Components{
		Airlines:   airlines,
		Flights:    flights,
		Insurance:  insurance,
		Oracles:    oracles,
		Transferer: s.Transferer,
	}
}

// lazyCrediter breaks the construction cycle between flights, which credit
// through insurance, and insurance, which looks flights up.
type lazyCrediter struct {
	target flightsvc.Crediter
}

func (c *lazyCrediter) Credit(ctx context.Context, store storage.InsuranceStore, key domain.FlightKey) (*insurancemodels.CreditSummary, error) {
	return c.target.Credit(ctx, store, key)
}
