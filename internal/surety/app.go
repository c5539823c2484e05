// Package surety is the caller-facing application layer. Each operation runs
// as one ledger transaction: it checks the caller and the kill switch,
// delegates to the component services, settles refunds, and publishes the
// collected domain events only after the transaction commits.
package surety

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	airlinesvc "flightsurety/internal/airline/service"
	"flightsurety/internal/events"
	flightsvc "flightsurety/internal/flight/service"
	insurancesvc "flightsurety/internal/insurance/service"
	oraclesvc "flightsurety/internal/oracle/service"
	"flightsurety/internal/payments"
	"flightsurety/internal/storage"
	"flightsurety/internal/surety/metrics"
	"flightsurety/internal/surety/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
	txctx "flightsurety/pkg/platform/tx"
	"flightsurety/pkg/requestcontext"
)

const tracerName = "flightsurety/internal/surety"

// Components bundles the services the app orchestrates.
type Components struct {
	Airlines   *airlinesvc.Service
	Flights    *flightsvc.Service
	Insurance  *insurancesvc.Service
	Oracles    *oraclesvc.Service
	Transferer payments.Transferer
}

type App struct {
	ledger     storage.Ledger
	airlines   *airlinesvc.Service
	flights    *flightsvc.Service
	insurance  *insurancesvc.Service
	oracles    *oraclesvc.Service
	transferer payments.Transferer
	dispatcher events.Dispatcher
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// WithDispatcher sets where committed events go. Without one they are dropped.
func WithDispatcher(d events.Dispatcher) Option {
	return func(a *App) {
		a.dispatcher = d
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(a *App) {
		a.tracer = t
	}
}

func New(ledger storage.Ledger, c Components, opts ...Option) *App {
	a := &App{
		ledger:     ledger,
		airlines:   c.Airlines,
		flights:    c.Flights,
		insurance:  c.Insurance,
		oracles:    c.Oracles,
		transferer: c.Transferer,
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// access classifies how an operation interacts with the kill switch.
type access int

const (
	// read never mutates and runs regardless of the switch.
	read access = iota
	// mutate is refused while the switch is off.
	mutate
	// control is the switch itself.
	control
)

type opFunc func(ctx context.Context, tx storage.Tx, sys *models.System) error

// run executes fn in a ledger transaction. A call made while another
// operation's transaction is open on ctx (a transfer calling back in) joins
// that transaction; its events then ride on the outer operation.
func (a *App) run(ctx context.Context, name string, mode access, fn opFunc) (err error) {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "surety."+name, trace.WithAttributes(
		attribute.String("caller", requestcontext.Caller(ctx).String()),
	))
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = string(dErrors.CodeOf(err))
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		if a.metrics != nil {
			a.metrics.ObserveOperation(name, outcome, start)
		}
		span.End()
	}()

	if tx, ok := txctx.From[storage.Tx](ctx); ok {
		return a.exec(ctx, tx, mode, fn)
	}

	ctx, collector := events.WithCollector(ctx)
	err = a.ledger.RunInTx(ctx, func(tx storage.Tx) error {
		return a.exec(txctx.WithTx(ctx, tx), tx, mode, fn)
	})
	if err != nil {
		return err
	}
	if a.dispatcher != nil {
		if committed := collector.Events(); len(committed) > 0 {
			a.dispatcher.Dispatch(ctx, committed)
		}
	}
	return nil
}

func (a *App) exec(ctx context.Context, tx storage.Tx, mode access, fn opFunc) error {
	sys, err := tx.LoadSystem(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodePreconditionFailed, "contract is not initialized")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load system state")
	}
	if mode == mutate {
		if err := sys.RequireOperational(); err != nil {
			return err
		}
	}
	return fn(ctx, tx, sys)
}

func callerOf(ctx context.Context) (domain.Address, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return caller, dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	return caller, nil
}

// refund returns excess value to the caller. It runs after all state for the
// operation has been written.
func (a *App) refund(ctx context.Context, to domain.Address, amount domain.Amount) error {
	if amount.IsZero() {
		return nil
	}
	if err := a.transferer.Transfer(ctx, to, amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "refund transfer failed")
	}
	return nil
}

// Bootstrap initializes system state with owner and registers the first
// airline. It does nothing when the system is already initialized.
func (a *App) Bootstrap(ctx context.Context, owner, firstAirline domain.Address) error {
	ctx, collector := events.WithCollector(ctx)
	err := a.ledger.RunInTx(ctx, func(tx storage.Tx) error {
		if _, err := tx.LoadSystem(ctx); err == nil {
			return nil
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load system state")
		}
		sys, err := models.NewSystem(owner, requestcontext.Now(ctx))
		if err != nil {
			return err
		}
		if err := tx.SaveSystem(ctx, sys); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save system state")
		}
		return a.airlines.Bootstrap(ctx, tx, firstAirline)
	})
	if err != nil {
		return err
	}
	if a.metrics != nil {
		a.metrics.SetOperational(true)
	}
	if committed := collector.Events(); len(committed) > 0 {
		a.logger.InfoContext(ctx, "system bootstrapped",
			"owner", owner.String(),
			"first_airline", firstAirline.String(),
		)
		if a.dispatcher != nil {
			a.dispatcher.Dispatch(ctx, committed)
		}
	}
	return nil
}

func (a *App) components() Components {
	return Components{
		Airlines:   a.airlines,
		Flights:    a.flights,
		Insurance:  a.insurance,
		Oracles:    a.oracles,
		Transferer: a.transferer,
	}
}
