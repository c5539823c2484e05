// Package service implements the airline identity registry: admission by
// open enrolment or threshold voting, and one-time funding.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"flightsurety/internal/airline/metrics"
	"flightsurety/internal/airline/models"
	"flightsurety/internal/events"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
	"flightsurety/pkg/requestcontext"
)

// Service is stateless; every method runs against the store it is handed so
// that it joins the caller's transaction.
type Service struct {
	fee     domain.Amount
	logger  *slog.Logger
	metrics *metrics.Metrics
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

// New constructs a Service charging fee to fund an airline.
func New(fee domain.Amount, opts ...Option) *Service {
	s := &Service{fee: fee}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fee returns the airline funding fee.
func (s *Service) Fee() domain.Amount {
	return s.fee
}

// Bootstrap registers the deployment's first airline. It is a no-op when the
// airline already exists.
func (s *Service) Bootstrap(ctx context.Context, store storage.AirlineStore, first domain.Address) error {
	existing, err := s.find(ctx, store, first)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	airline, err := models.NewAirline(first, requestcontext.Now(ctx))
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	if err := store.SaveAirline(ctx, airline); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save airline")
	}
	s.logAudit(ctx, string(events.AirlineAdmitted), "airline", first.String(), "mode", "bootstrap")
	events.Emit(ctx, events.AirlineAdmitted, "", first.String(), map[string]string{"mode": "bootstrap"})
	return nil
}

// Admit registers candidate on behalf of sponsor.
//
// Up to OpenAdmissionThreshold registered airlines, admission is immediate.
// Past it, each call records one vote and the candidate is registered once
// the votes reach Quorum of the current registered count.
func (s *Service) Admit(ctx context.Context, store storage.AirlineStore, candidate, sponsor domain.Address) (*models.AdmissionResult, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveAdmit(start)
		}
	}()

	if candidate.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "candidate address is required")
	}
	sp, err := s.find(ctx, store, sponsor)
	if err != nil {
		return nil, err
	}
	if !sp.IsFunded() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "caller is not a funded airline")
	}
	existing, err := s.find(ctx, store, candidate)
	if err != nil {
		return nil, err
	}
	if existing.IsRegistered() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "airline is already registered")
	}

	counts, err := store.CountAirlines(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count airlines")
	}

	if !models.NeedsVote(counts.Registered) {
		if err := s.register(ctx, store, candidate, sponsor, "open", 0); err != nil {
			return nil, err
		}
		return &models.AdmissionResult{Success: true, Votes: 0, RegisteredAirlines: counts.Registered + 1}, nil
	}

	if err := store.AppendVote(ctx, candidate, sponsor); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "duplicate vote")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record vote")
	}
	voters, err := store.ListVotes(ctx, candidate)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load votes")
	}
	votes := len(voters)
	quorum := models.Quorum(counts.Registered)
	if s.metrics != nil {
		s.metrics.IncrementVotes()
	}
	events.Emit(ctx, events.AirlineVoted, sponsor.String(), candidate.String(), map[string]string{
		"votes":  strconv.Itoa(votes),
		"quorum": strconv.Itoa(quorum),
	})

	if votes < quorum {
		s.logAudit(ctx, string(events.AirlineVoted),
			"candidate", candidate.String(),
			"sponsor", sponsor.String(),
			"votes", votes,
			"quorum", quorum,
		)
		return &models.AdmissionResult{Success: false, Votes: votes, RegisteredAirlines: counts.Registered}, nil
	}

	if err := s.register(ctx, store, candidate, sponsor, "vote", votes); err != nil {
		return nil, err
	}
	if err := store.ClearVotes(ctx, candidate); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear votes")
	}
	return &models.AdmissionResult{Success: true, Votes: votes, RegisteredAirlines: counts.Registered + 1}, nil
}

func (s *Service) register(ctx context.Context, store storage.AirlineStore, candidate, sponsor domain.Address, mode string, votes int) error {
	airline, err := models.NewAirline(candidate, requestcontext.Now(ctx))
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, err.Error())
	}
	if err := store.SaveAirline(ctx, airline); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save airline")
	}
	if s.metrics != nil {
		s.metrics.IncrementAdmitted(mode)
	}
	s.logAudit(ctx, string(events.AirlineAdmitted),
		"candidate", candidate.String(),
		"sponsor", sponsor.String(),
		"mode", mode,
		"votes", votes,
	)
	events.Emit(ctx, events.AirlineAdmitted, sponsor.String(), candidate.String(), map[string]string{
		"mode":  mode,
		"votes": strconv.Itoa(votes),
	})
	return nil
}

// Fund marks a registered airline funded. value must cover the fee; the
// excess is reported as Refund for the caller to return.
func (s *Service) Fund(ctx context.Context, store storage.AirlineStore, addr domain.Address, value domain.Amount) (*models.FundingResult, error) {
	airline, err := s.find(ctx, store, addr)
	if err != nil {
		return nil, err
	}
	if err := airline.CanFund(value, s.fee); err != nil {
		return nil, err
	}
	airline.ApplyFunding(s.fee, requestcontext.Now(ctx))
	if err := store.SaveAirline(ctx, airline); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save airline")
	}

	refund, _ := value.Sub(s.fee)
	if s.metrics != nil {
		s.metrics.IncrementFunded()
	}
	s.logAudit(ctx, string(events.AirlineFunded),
		"airline", addr.String(),
		"fee_wei", s.fee.String(),
		"refund_wei", refund.String(),
	)
	events.Emit(ctx, events.AirlineFunded, addr.String(), addr.String(), map[string]string{
		"fee": s.fee.String(),
	})
	return &models.FundingResult{Fee: s.fee, Refund: refund}, nil
}

// Get returns the airline or a NotFound error.
func (s *Service) Get(ctx context.Context, store storage.AirlineStore, addr domain.Address) (*models.Airline, error) {
	airline, err := s.find(ctx, store, addr)
	if err != nil {
		return nil, err
	}
	if airline == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "airline not found")
	}
	return airline, nil
}

// IsFunded reports whether addr is a funded airline. Unknown addresses are not.
func (s *Service) IsFunded(ctx context.Context, store storage.AirlineStore, addr domain.Address) (bool, error) {
	airline, err := s.find(ctx, store, addr)
	if err != nil {
		return false, err
	}
	return airline.IsFunded(), nil
}

func (s *Service) Counts(ctx context.Context, store storage.AirlineStore) (models.Counts, error) {
	counts, err := store.CountAirlines(ctx)
	if err != nil {
		return models.Counts{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count airlines")
	}
	return counts, nil
}

// find returns nil without error for unknown airlines.
func (s *Service) find(ctx context.Context, store storage.AirlineStore, addr domain.Address) (*models.Airline, error) {
	airline, err := store.FindAirline(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load airline")
	}
	return airline, nil
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
