package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"flightsurety/internal/entropy"
	"flightsurety/internal/events"
	jwttoken "flightsurety/internal/jwt_token"
	"flightsurety/internal/payments"
	"flightsurety/internal/platform/config"
	"flightsurety/internal/platform/httpserver"
	"flightsurety/internal/platform/kafka/producer"
	"flightsurety/internal/platform/logger"
	platformmetrics "flightsurety/internal/platform/metrics"
	"flightsurety/internal/platform/postgres"
	"flightsurety/internal/platform/redis"
	"flightsurety/internal/storage"
	pgledger "flightsurety/internal/storage/postgres"
	"flightsurety/internal/surety"
	suretyhandler "flightsurety/internal/surety/handler"
	suretymetrics "flightsurety/internal/surety/metrics"
	httptransport "flightsurety/internal/transport/http"
)

const (
	shutdownTimeout    = 10 * time.Second
	jwtAudience        = "flightsurety-api"
	kafkaClientID      = "flightsurety-server"
	kafkaProduceLinger = 5 * time.Millisecond
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	var (
		closers []func()
		checks  healthChecks
	)
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	ledger, closeLedger, err := buildLedger(ctx, cfg, log, &checks)
	if err != nil {
		return err
	}
	closers = append(closers, closeLedger)

	nonces, closeNonces, err := buildNonces(ctx, cfg, log, &checks)
	if err != nil {
		return err
	}
	closers = append(closers, closeNonces)

	publisher, closePublisher, err := buildPublisher(ctx, cfg, log, &checks)
	if err != nil {
		return err
	}
	closers = append(closers, closePublisher)
	dispatcher := events.NewAsyncDispatcher(publisher, log, 0)

	components := surety.NewComponents(surety.Settings{
		AirlineFee:      cfg.Fees.AirlineFunding,
		MaxPremium:      cfg.Fees.MaxPremium,
		ReporterFee:     cfg.Fees.ReporterRegister,
		FlightCacheSize: cfg.FlightCacheSize,
		Entropy:         entropy.NewKeccakSource(nonces),
		Transferer:      payments.NewJournal(log),
		Logger:          log,
		WithMetrics:     true,
	})
	app := surety.New(ledger, components,
		surety.WithLogger(log),
		surety.WithMetrics(suretymetrics.New()),
		surety.WithDispatcher(dispatcher),
	)
	if err := app.Bootstrap(ctx, cfg.Owner, cfg.FirstAirline); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	jwt := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, jwtAudience)
	router := httptransport.NewRouter(httptransport.Config{
		AdminToken:     cfg.AdminAPIToken,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
		Metrics:        platformmetrics.New(),
		Health:         checks.Check,
	},
		suretyhandler.New(app, jwttoken.NewJWTServiceAdapter(jwt), log),
		httptransport.NewTokenHandler(jwt, cfg.TokenTTL, log),
	)
	srv := httpserver.New(cfg.Addr, router, cfg.RequestTimeout)

	// The dispatcher outlives the server so events from draining requests
	// are still flushed.
	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	defer stopDispatch()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(dispatchCtx)
	})
	g.Go(func() error {
		log.Info("starting flightsurety", "addr", cfg.Addr, "owner", cfg.Owner.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		defer stopDispatch()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("http server stopped")
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// healthChecks backs /healthz with one probe per configured backing service.
type healthChecks []func(ctx context.Context) error

func (h healthChecks) Check(ctx context.Context) error {
	var errs []error
	for _, check := range h {
		if err := check(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func buildLedger(ctx context.Context, cfg config.Server, log *slog.Logger, checks *healthChecks) (storage.Ledger, func(), error) {
	if cfg.Database.URL == "" {
		log.Info("using in-memory ledger")
		return storage.NewMemoryLedger(), func() {}, nil
	}
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	ledger := pgledger.New(db)
	if err := ledger.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate ledger: %w", err)
	}
	*checks = append(*checks, db.PingContext)
	log.Info("using postgres ledger")
	return ledger, func() { _ = db.Close() }, nil
}

func buildNonces(ctx context.Context, cfg config.Server, log *slog.Logger, checks *healthChecks) (entropy.NonceSource, func(), error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Info("using in-memory entropy nonce")
		return entropy.NewMemoryNonce(), func() {}, nil
	}
	*checks = append(*checks, client.Health)
	log.Info("using redis entropy nonce")
	return entropy.NewRedisNonce(client, entropy.DefaultNonceKey), func() { _ = client.Close() }, nil
}

// buildPublisher publishes to Kafka when brokers are configured, falling back
// to the log publisher when the producer circuit opens.
func buildPublisher(ctx context.Context, cfg config.Server, log *slog.Logger, checks *healthChecks) (events.Publisher, func(), error) {
	logPublisher := events.NewLogPublisher(log)
	if !cfg.Kafka.Enabled() {
		return logPublisher, func() {}, nil
	}
	p, err := producer.New(producer.Config{
		Brokers:  cfg.Kafka.Brokers,
		ClientID: kafkaClientID,
		Linger:   kafkaProduceLinger,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	if err := p.EnsureTopic(ctx, cfg.Kafka.EventsTopic, cfg.Kafka.Partitions, cfg.Kafka.Replicas); err != nil {
		p.Close(ctx)
		return nil, nil, err
	}
	*checks = append(*checks, p.Ping)
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		p.Close(closeCtx)
	}
	return events.NewKafkaPublisher(p, cfg.Kafka.EventsTopic, logPublisher, log), closeFn, nil
}
