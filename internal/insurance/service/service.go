// Package service implements the insurance escrow: premium collection,
// idempotent crediting of delayed flights and pull-based withdrawal.
package service

import (
	"context"
	"errors"
	"log/slog"

	"flightsurety/internal/events"
	flightmodels "flightsurety/internal/flight/models"
	"flightsurety/internal/insurance/metrics"
	"flightsurety/internal/insurance/models"
	"flightsurety/internal/payments"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
	"flightsurety/pkg/requestcontext"
)

// AirlineRegistry gates premium acceptance on airline funding.
type AirlineRegistry interface {
	IsFunded(ctx context.Context, store storage.AirlineStore, addr domain.Address) (bool, error)
}

// FlightRegistry looks up the insured flight.
type FlightRegistry interface {
	Get(ctx context.Context, store storage.FlightStore, key domain.FlightKey) (*flightmodels.Flight, error)
}

type Service struct {
	airlines   AirlineRegistry
	flights    FlightRegistry
	transferer payments.Transferer
	maxPremium domain.Amount
	logger     *slog.Logger
	metrics    *metrics.Metrics
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

func New(airlines AirlineRegistry, flights FlightRegistry, transferer payments.Transferer, maxPremium domain.Amount, opts ...Option) *Service {
	s := &Service{
		airlines:   airlines,
		flights:    flights,
		transferer: transferer,
		maxPremium: maxPremium,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxPremium returns the largest premium accepted per claim.
func (s *Service) MaxPremium() domain.Amount {
	return s.maxPremium
}

// Purchase opens a claim for passenger on an unresolved flight of a funded
// airline and adds the premium to the pool.
func (s *Service) Purchase(ctx context.Context, tx storage.Tx, key domain.FlightKey, passenger domain.Address, premium domain.Amount) (*models.Claim, error) {
	flight, err := s.flights.Get(ctx, tx, key)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "flight is not registered")
		}
		return nil, err
	}
	if flight.IsLanded() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "flight already landed")
	}
	funded, err := s.airlines.IsFunded(ctx, tx, flight.Airline)
	if err != nil {
		return nil, err
	}
	if !funded {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "airline is not funded")
	}

	claim, err := models.NewClaim(key, passenger, premium, s.maxPremium, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := tx.AppendClaim(ctx, claim); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "passenger is already insured for this flight")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save claim")
	}
	if err := s.Deposit(ctx, tx, premium); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PoliciesSold.Inc()
		s.metrics.PremiumsWei.Add(premium.Float64())
	}
	s.logAudit(ctx, string(events.PassengerInsured),
		"flight_key", key.String(),
		"passenger", passenger.String(),
		"premium_wei", premium.String(),
	)
	events.Emit(ctx, events.PassengerInsured, passenger.String(), key.String(), map[string]string{
		"premium": premium.String(),
	})
	return claim, nil
}

// Credit moves the payout of every uncredited claim on the flight into its
// passenger's withdrawable balance. Claims already credited are skipped, so
// calling Credit again changes nothing.
func (s *Service) Credit(ctx context.Context, store storage.InsuranceStore, key domain.FlightKey) (*models.CreditSummary, error) {
	claims, err := store.ListClaims(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claims")
	}

	summary := &models.CreditSummary{FlightKey: key, Credited: []models.Credit{}}
	for _, claim := range claims {
		if claim.Credited {
			continue
		}
		payout := claim.Payout()
		balance, err := store.Balance(ctx, claim.Passenger)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load balance")
		}
		if err := store.SetBalance(ctx, claim.Passenger, balance.Add(payout)); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit balance")
		}
		if err := store.MarkClaimCredited(ctx, key, claim.Passenger); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to mark claim credited")
		}
		summary.Credited = append(summary.Credited, models.Credit{Passenger: claim.Passenger, Amount: payout})
		summary.Total = summary.Total.Add(payout)

		events.Emit(ctx, events.InsureeCredited, "", claim.Passenger.String(), map[string]string{
			"flight_key": key.String(),
			"amount":     payout.String(),
		})
		if s.metrics != nil {
			s.metrics.ClaimsCredited.Inc()
			s.metrics.CreditedWei.Add(payout.Float64())
		}
	}

	if len(summary.Credited) > 0 {
		s.logAudit(ctx, string(events.InsureeCredited),
			"flight_key", key.String(),
			"claims", len(summary.Credited),
			"total_wei", summary.Total.String(),
		)
	}
	return summary, nil
}

// Withdraw pays out who's entire balance. The balance is zeroed and the pool
// debited before the transfer runs, so a transfer that re-enters Withdraw
// finds nothing left to take.
func (s *Service) Withdraw(ctx context.Context, store storage.InsuranceStore, who domain.Address) (domain.Amount, error) {
	balance, err := store.Balance(ctx, who)
	if err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load balance")
	}
	if balance.IsZero() {
		return domain.Amount{}, dErrors.New(dErrors.CodePreconditionFailed, "nothing to withdraw")
	}
	pool, err := store.Pool(ctx)
	if err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pool")
	}
	remaining, ok := pool.Sub(balance)
	if !ok {
		return domain.Amount{}, dErrors.New(dErrors.CodeInsufficientFunds, "escrow pool cannot cover the balance")
	}

	if err := store.SetBalance(ctx, who, domain.Amount{}); err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear balance")
	}
	if err := store.SetPool(ctx, remaining); err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit pool")
	}

	if err := s.transferer.Transfer(ctx, who, balance); err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "payout transfer failed")
	}

	if s.metrics != nil {
		s.metrics.Payouts.Inc()
		s.metrics.PayoutsWei.Add(balance.Float64())
	}
	s.logAudit(ctx, string(events.PayoutMade),
		"passenger", who.String(),
		"amount_wei", balance.String(),
	)
	events.Emit(ctx, events.PayoutMade, who.String(), who.String(), map[string]string{
		"amount": balance.String(),
	})
	return balance, nil
}

// Deposit credits the pool.
func (s *Service) Deposit(ctx context.Context, store storage.InsuranceStore, amount domain.Amount) error {
	pool, err := store.Pool(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pool")
	}
	if err := store.SetPool(ctx, pool.Add(amount)); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit pool")
	}
	return nil
}

func (s *Service) Balance(ctx context.Context, store storage.InsuranceStore, who domain.Address) (domain.Amount, error) {
	balance, err := store.Balance(ctx, who)
	if err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load balance")
	}
	return balance, nil
}

// Claims lists the flight's claims in purchase order.
func (s *Service) Claims(ctx context.Context, store storage.InsuranceStore, key domain.FlightKey) ([]*models.Claim, error) {
	claims, err := store.ListClaims(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load claims")
	}
	return claims, nil
}

func (s *Service) Pool(ctx context.Context, store storage.InsuranceStore) (domain.Amount, error) {
	pool, err := store.Pool(ctx)
	if err != nil {
		return domain.Amount{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pool")
	}
	return pool, nil
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
