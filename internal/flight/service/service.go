// Package service implements the flight registry and its one-way status
// state machine.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	lru "github.com/hashicorp/golang-lru"

	"flightsurety/internal/events"
	"flightsurety/internal/flight/metrics"
	"flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
	"flightsurety/pkg/requestcontext"
)

// DefaultCacheSize bounds the resolved-flight cache.
const DefaultCacheSize = 1024

// AirlineRegistry gates registration on airline funding.
type AirlineRegistry interface {
	IsFunded(ctx context.Context, store storage.AirlineStore, addr domain.Address) (bool, error)
}

// Crediter is told when a flight first resolves to the airline-caused delay code.
type Crediter interface {
	Credit(ctx context.Context, store storage.InsuranceStore, key domain.FlightKey) (*insurancemodels.CreditSummary, error)
}

type Service struct {
	airlines AirlineRegistry
	crediter Crediter
	resolved *lru.Cache
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCacheSize sets how many resolved flights Get keeps in memory.
// A size of zero disables the cache.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size <= 0 {
			s.resolved = nil
			return
		}
		s.resolved, _ = lru.New(size)
	}
}

func New(airlines AirlineRegistry, crediter Crediter, opts ...Option) *Service {
	cache, _ := lru.New(DefaultCacheSize)
	s := &Service{airlines: airlines, crediter: crediter, resolved: cache}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register stores a new unresolved flight for a funded airline.
func (s *Service) Register(ctx context.Context, tx storage.Tx, airline domain.Address, number string, timestamp int64, departure, arrival string) (*models.Flight, error) {
	flight, err := models.NewFlight(airline, number, timestamp, departure, arrival, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	funded, err := s.airlines.IsFunded(ctx, tx, airline)
	if err != nil {
		return nil, err
	}
	if !funded {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "airline is not funded")
	}
	if err := tx.CreateFlight(ctx, flight); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "flight is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save flight")
	}

	if s.metrics != nil {
		s.metrics.IncrementRegistered()
	}
	s.logAudit(ctx, string(events.FlightRegistered),
		"flight_key", flight.Key.String(),
		"airline", airline.String(),
		"number", flight.Number,
	)
	events.Emit(ctx, events.FlightRegistered, airline.String(), flight.Key.String(), map[string]string{
		"number":    flight.Number,
		"timestamp": strconv.FormatInt(flight.ScheduledAt, 10),
		"departure": flight.Departure,
		"arrival":   flight.Arrival,
	})
	return flight, nil
}

// ProcessStatus is the caller-facing resolution path: it rejects flights
// that already landed, then resolves.
func (s *Service) ProcessStatus(ctx context.Context, tx storage.Tx, key domain.FlightKey, code domain.StatusCode) (bool, error) {
	flight, err := s.find(ctx, tx, key)
	if err != nil {
		return false, err
	}
	if flight == nil {
		return false, dErrors.New(dErrors.CodePreconditionFailed, "flight is not registered")
	}
	if err := flight.CanResolve(code); err != nil {
		return false, err
	}
	return s.Resolve(ctx, tx, key, code)
}

// Resolve writes the terminal status if the flight is still unresolved and
// reports whether it did. Resolving an already resolved flight is a no-op.
// The first resolution to StatusLateAirline credits the flight's insurees in
// the same transaction.
func (s *Service) Resolve(ctx context.Context, tx storage.Tx, key domain.FlightKey, code domain.StatusCode) (bool, error) {
	if code == domain.StatusUnknown || !code.IsKnown() {
		return false, dErrors.New(dErrors.CodePreconditionFailed, "unsupported status code")
	}
	flight, err := s.find(ctx, tx, key)
	if err != nil {
		return false, err
	}
	if flight == nil {
		return false, dErrors.New(dErrors.CodeNotFound, "flight not found")
	}
	if !flight.ApplyResolution(code, requestcontext.Now(ctx)) {
		return false, nil
	}
	if err := tx.UpdateFlightStatus(ctx, flight); err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update flight status")
	}

	if s.metrics != nil {
		s.metrics.IncrementResolved(code.String())
	}
	s.logAudit(ctx, string(events.FlightStatusResolved),
		"flight_key", key.String(),
		"status", int(code),
	)
	events.Emit(ctx, events.FlightStatusResolved, "", key.String(), map[string]string{
		"status": strconv.Itoa(int(code)),
	})

	if code == domain.StatusLateAirline && s.crediter != nil {
		if _, err := s.crediter.Credit(ctx, tx, key); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Get returns a flight or a NotFound error. Flights resolved before the
// current request are served from cache.
func (s *Service) Get(ctx context.Context, store storage.FlightStore, key domain.FlightKey) (*models.Flight, error) {
	if s.resolved != nil {
		if v, ok := s.resolved.Get(key); ok {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			cp := *v.(*models.Flight)
			return &cp, nil
		}
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}
	flight, err := s.find(ctx, store, key)
	if err != nil {
		return nil, err
	}
	if flight == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "flight not found")
	}
	// a flight resolved in the current transaction could still roll back
	if s.resolved != nil && flight.IsLanded() && flight.ResolvedAt.Before(requestcontext.Now(ctx)) {
		cp := *flight
		s.resolved.Add(key, &cp)
	}
	return flight, nil
}

func (s *Service) find(ctx context.Context, store storage.FlightStore, key domain.FlightKey) (*models.Flight, error) {
	flight, err := store.FindFlight(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load flight")
	}
	return flight, nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if s.logger == nil {
		return
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
}
