// Package service implements the index-based reporter protocol: reporters
// hold three indices, a status request is keyed by one index, and only
// reporters holding that index may answer it. The first status code to
// collect MinResponses matching reports settles the request and resolves
// the flight.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"flightsurety/internal/entropy"
	"flightsurety/internal/events"
	flightmodels "flightsurety/internal/flight/models"
	"flightsurety/internal/oracle/metrics"
	"flightsurety/internal/oracle/models"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
	"flightsurety/pkg/requestcontext"
)

// MaxIndexDraws bounds how many entropy draws registration may spend
// finding three distinct indices.
const MaxIndexDraws = 64

// FlightRegistry is the flight state the protocol reads and settles.
type FlightRegistry interface {
	Get(ctx context.Context, store storage.FlightStore, key domain.FlightKey) (*flightmodels.Flight, error)
	ProcessStatus(ctx context.Context, tx storage.Tx, key domain.FlightKey, code domain.StatusCode) (bool, error)
}

type Service struct {
	entropy entropy.Source
	flights FlightRegistry
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

// New constructs a Service charging fee to register a reporter.
func New(source entropy.Source, flights FlightRegistry, fee domain.Amount, opts ...Option) *Service {
	s := &Service{entropy: source, flights: flights, fee: fee}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Fee() domain.Amount {
	return s.fee
}

// Register assigns three distinct indices to a new reporter.
func (s *Service) Register(ctx context.Context, store storage.OracleStore, reporter domain.Address, value domain.Amount) (*models.Registration, error) {
	if value.LessThan(s.fee) {
		return nil, dErrors.New(dErrors.CodeInsufficientFunds, "value is below the reporter registration fee")
	}
	if _, err := store.FindOracle(ctx, reporter); err == nil {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "reporter is already registered")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reporter")
	}

	indices, err := s.drawIndices(ctx, reporter)
	if err != nil {
		return nil, err
	}
	oracle, err := models.NewOracle(reporter, indices, s.fee, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := store.CreateOracle(ctx, oracle); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "reporter is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reporter")
	}

	refund, _ := value.Sub(s.fee)
	if s.metrics != nil {
		s.metrics.ReportersRegistered.Inc()
	}
	s.logAudit(ctx, string(events.ReporterRegistered),
		"reporter", reporter.String(),
		"indices", formatIndices(indices[:]),
	)
	events.Emit(ctx, events.ReporterRegistered, reporter.String(), reporter.String(), map[string]string{
		"indices": formatIndices(indices[:]),
	})
	return &models.Registration{Indices: indices, Fee: s.fee, Refund: refund}, nil
}

func (s *Service) drawIndices(ctx context.Context, seed domain.Address) ([models.IndexCount]domain.Index, error) {
	var out [models.IndexCount]domain.Index
	n := 0
	for draw := 0; draw < MaxIndexDraws && n < models.IndexCount; draw++ {
		idx, err := s.entropy.Index(ctx, seed)
		if err != nil {
			return out, dErrors.Wrap(err, dErrors.CodeInternal, "failed to draw reporter index")
		}
		if !idx.Valid() || slices.Contains(out[:n], idx) {
			continue
		}
		out[n] = idx
		n++
	}
	if n < models.IndexCount {
		return out, dErrors.New(dErrors.CodeInternal, "could not draw distinct reporter indices")
	}
	return out, nil
}

// Indices returns the reporter's assigned indices.
func (s *Service) Indices(ctx context.Context, store storage.OracleStore, reporter domain.Address) ([models.IndexCount]domain.Index, error) {
	oracle, err := store.FindOracle(ctx, reporter)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return [models.IndexCount]domain.Index{}, dErrors.New(dErrors.CodePreconditionFailed, "reporter is not registered")
		}
		return [models.IndexCount]domain.Index{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reporter")
	}
	return oracle.Indices, nil
}

// Request opens a status request for a registered, unresolved flight. The
// index is drawn from the entropy source seeded with the requester. If the
// derived key is already open it is returned unchanged.
func (s *Service) Request(ctx context.Context, tx storage.Tx, requester, airline domain.Address, flight string, timestamp int64) (*models.StatusRequest, error) {
	f, err := s.flights.Get(ctx, tx, domain.NewFlightKey(airline, flight, timestamp))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodePreconditionFailed, "flight is not registered")
		}
		return nil, err
	}
	if f.IsLanded() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "flight already landed")
	}

	index, err := s.entropy.Index(ctx, requester)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to draw request index")
	}
	req := models.NewRequest(requester, index, f.Airline, f.Number, f.ScheduledAt, requestcontext.Now(ctx))

	existing, err := tx.FindRequest(ctx, req.Key)
	switch {
	case err == nil && existing.Open:
		if s.metrics != nil {
			s.metrics.StatusRequests.WithLabelValues("reused").Inc()
		}
		return &models.StatusRequest{Index: index, Key: req.Key}, nil
	case err == nil:
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "status request already settled")
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load status request")
	}

	if err := tx.CreateRequest(ctx, req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save status request")
	}
	if s.metrics != nil {
		s.metrics.StatusRequests.WithLabelValues("opened").Inc()
	}
	s.logAudit(ctx, string(events.FlightStatusRequested),
		"request_key", req.Key.String(),
		"index", int(index),
		"requester", requester.String(),
	)
	events.Emit(ctx, events.FlightStatusRequested, requester.String(), f.Key.String(), map[string]string{
		"index":       strconv.Itoa(int(index)),
		"airline":     f.Airline.String(),
		"flight":      f.Number,
		"timestamp":   strconv.FormatInt(f.ScheduledAt, 10),
		"request_key": req.Key.String(),
	})
	return &models.StatusRequest{Index: index, Key: req.Key, Created: true}, nil
}

// Submit records a reporter's assertion. Reports that cannot count are
// rejected through the outcome with no state change; only infrastructure
// failures return an error.
func (s *Service) Submit(ctx context.Context, tx storage.Tx, reporter domain.Address, report models.Report) (models.ReportOutcome, error) {
	key := report.Key()

	oracle, err := tx.FindOracle(ctx, reporter)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.reject(ctx, key, models.RejectUnknownReporter), nil
		}
		return models.ReportOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reporter")
	}
	if !oracle.Holds(report.Index) {
		return s.reject(ctx, key, models.RejectIndexNotAssigned), nil
	}

	req, err := tx.FindRequest(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return s.reject(ctx, key, models.RejectNoRequest), nil
		}
		return models.ReportOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load status request")
	}
	if !req.Open {
		return s.reject(ctx, key, models.RejectRequestClosed), nil
	}
	if report.Status == domain.StatusUnknown || !report.Status.IsKnown() {
		return s.reject(ctx, key, models.RejectUnsupportedCode), nil
	}

	flightKey := domain.NewFlightKey(report.Airline, report.Flight, report.Timestamp)
	flight, err := s.flights.Get(ctx, tx, flightKey)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return s.reject(ctx, key, models.RejectNoRequest), nil
		}
		return models.ReportOutcome{}, err
	}
	if flight.IsLanded() {
		return s.reject(ctx, key, models.RejectFlightLanded), nil
	}
	if req.HasReported(reporter) {
		return s.reject(ctx, key, models.RejectDuplicateReport), nil
	}

	if err := tx.AppendResponse(ctx, key, report.Status, reporter); err != nil {
		return models.ReportOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record report")
	}
	count := req.ApplyResponse(reporter, report.Status)
	outcome := models.ReportOutcome{Accepted: true, Count: count, StatusCode: report.Status, Key: key}

	if s.metrics != nil {
		s.metrics.ReportsAccepted.Inc()
	}
	events.Emit(ctx, events.StatusReported, reporter.String(), key.String(), map[string]string{
		"status": strconv.Itoa(int(report.Status)),
		"count":  strconv.Itoa(count),
	})

	if count < models.MinResponses {
		return outcome, nil
	}

	req.ApplyClose(report.Status, requestcontext.Now(ctx))
	if err := tx.CloseRequest(ctx, req); err != nil {
		return models.ReportOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to close status request")
	}
	if _, err := s.flights.ProcessStatus(ctx, tx, flightKey, report.Status); err != nil {
		return models.ReportOutcome{}, err
	}
	outcome.Settled = true

	if s.metrics != nil {
		s.metrics.IncrementConsensus(report.Status.String())
	}
	s.logAudit(ctx, "status_consensus_reached",
		"request_key", key.String(),
		"flight_key", flightKey.String(),
		"status", int(report.Status),
	)
	return outcome, nil
}

func (s *Service) reject(ctx context.Context, key domain.RequestKey, reason models.RejectReason) models.ReportOutcome {
	if s.metrics != nil {
		s.metrics.IncrementRejected(string(reason))
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "status report rejected",
			"request_key", key.String(),
			"reason", string(reason),
		)
	}
	return models.Rejected(key, reason)
}

// GetRequest looks up a status request by key.
func (s *Service) GetRequest(ctx context.Context, store storage.OracleStore, key domain.RequestKey) (*models.Request, error) {
	req, err := store.FindRequest(ctx, key)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "status request not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load status request")
	}
	return req, nil
}

func formatIndices(indices []domain.Index) string {
	parts := make([]byte, 0, len(indices)*2)
	for i, idx := range indices {
		if i > 0 {
			parts = append(parts, ',')
		}
		parts = strconv.AppendInt(parts, int64(idx), 10)
	}
	return string(parts)
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
