//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	airlinemodels "flightsurety/internal/airline/models"
	"flightsurety/internal/entropy"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/internal/payments"
	"flightsurety/internal/storage"
	"flightsurety/internal/storage/postgres"
	"flightsurety/internal/surety"
	"flightsurety/pkg/domain"
	"flightsurety/pkg/platform/sentinel"
	"flightsurety/pkg/testutil"
	"flightsurety/pkg/testutil/containers"
)

var ledgerTables = []string{
	"oracle_responses", "oracle_requests", "oracles",
	"pool", "balances", "claims", "flights",
	"airline_votes", "airlines", "system_state",
}

var (
	owner     = domain.MustAddress("0x00000000000000000000000000000000000000f0")
	airlineA  = domain.MustAddress("0x00000000000000000000000000000000000000a1")
	airlineB  = domain.MustAddress("0x00000000000000000000000000000000000000a2")
	passenger = domain.MustAddress("0x00000000000000000000000000000000000000c1")
)

type LedgerSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	ledger *postgres.Ledger
	ctx    context.Context
	now    time.Time
}

func TestLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.ledger = postgres.New(s.pg.DB)
	s.Require().NoError(s.ledger.Migrate(s.ctx))
}

func (s *LedgerSuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.pg.TruncateTables(s.ctx, ledgerTables...))
}

func (s *LedgerSuite) TestMigrateIsIdempotent() {
	s.NoError(s.ledger.Migrate(s.ctx))
}

func (s *LedgerSuite) TestFailedTransactionLeavesNoTrace() {
	boom := errors.New("boom")
	flight, err := flightmodels.NewFlight(airlineA, "F100", 1767225600, "AMS", "LIS", s.now)
	s.Require().NoError(err)

	err = s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		a, _ := airlinemodels.NewAirline(airlineA, s.now)
		s.Require().NoError(tx.SaveAirline(s.ctx, a))
		s.Require().NoError(tx.CreateFlight(s.ctx, flight))
		s.Require().NoError(tx.SetPool(s.ctx, domain.Ether(10)))
		return boom
	})
	s.Require().ErrorIs(err, boom)

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		_, err := tx.FindAirline(s.ctx, airlineA)
		s.ErrorIs(err, sentinel.ErrNotFound)
		_, err = tx.FindFlight(s.ctx, flight.Key)
		s.ErrorIs(err, sentinel.ErrNotFound)
		pool, err := tx.Pool(s.ctx)
		s.Require().NoError(err)
		s.True(pool.IsZero())
		return nil
	}))
}

func (s *LedgerSuite) TestRecordsRoundTrip() {
	flight, err := flightmodels.NewFlight(airlineA, "F100", 1767225600, "AMS", "LIS", s.now)
	s.Require().NoError(err)
	claim, err := insurancemodels.NewClaim(flight.Key, passenger, domain.Ether(1), domain.Ether(1), s.now)
	s.Require().NoError(err)
	big, err := domain.ParseAmount("115792089237316195423570985008687907853269984665640564039457584007913129639935")
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		a, _ := airlinemodels.NewAirline(airlineA, s.now)
		a.ApplyFunding(domain.Ether(10), s.now)
		s.Require().NoError(tx.SaveAirline(s.ctx, a))
		s.Require().NoError(tx.CreateFlight(s.ctx, flight))
		s.Require().NoError(tx.AppendClaim(s.ctx, claim))
		s.Require().NoError(tx.SetBalance(s.ctx, passenger, big))
		return nil
	}))

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		a, err := tx.FindAirline(s.ctx, airlineA)
		s.Require().NoError(err)
		s.True(a.IsFunded())
		s.Equal(domain.Ether(10), a.Funds)

		f, err := tx.FindFlight(s.ctx, flight.Key)
		s.Require().NoError(err)
		s.Equal("F100", f.Number)
		s.Equal(domain.StatusUnknown, f.Status)

		claims, err := tx.ListClaims(s.ctx, flight.Key)
		s.Require().NoError(err)
		s.Require().Len(claims, 1)
		s.Equal(passenger, claims[0].Passenger)

		bal, err := tx.Balance(s.ctx, passenger)
		s.Require().NoError(err)
		s.Equal(big, bal)
		return nil
	}))
}

func (s *LedgerSuite) TestUniquenessSentinels() {
	o, err := oraclemodels.NewOracle(passenger, [3]domain.Index{1, 2, 3}, domain.Ether(1), s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		s.Require().NoError(tx.AppendVote(s.ctx, airlineB, airlineA))
		s.ErrorIs(tx.AppendVote(s.ctx, airlineB, airlineA), sentinel.ErrAlreadyUsed)
		s.Require().NoError(tx.CreateOracle(s.ctx, o))
		s.ErrorIs(tx.CreateOracle(s.ctx, o), sentinel.ErrAlreadyUsed)

		votes, err := tx.ListVotes(s.ctx, airlineB)
		s.Require().NoError(err)
		s.Equal([]domain.Address{airlineA}, votes)
		return nil
	}))
}

func (s *LedgerSuite) TestRequestResponses() {
	req := oraclemodels.NewRequest(passenger, 7, airlineA, "F100", 1767225600, s.now)
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		s.Require().NoError(tx.CreateRequest(s.ctx, req))
		s.Require().NoError(tx.AppendResponse(s.ctx, req.Key, domain.StatusLateAirline, airlineA))
		s.Require().NoError(tx.AppendResponse(s.ctx, req.Key, domain.StatusLateAirline, airlineB))
		s.Require().NoError(tx.AppendResponse(s.ctx, req.Key, domain.StatusOnTime, owner))
		return nil
	}))

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		found, err := tx.FindRequest(s.ctx, req.Key)
		s.Require().NoError(err)
		s.True(found.Open)
		s.Equal(2, found.Count(domain.StatusLateAirline))
		s.Equal(1, found.Count(domain.StatusOnTime))
		s.True(found.HasReported(airlineB))

		found.ApplyClose(domain.StatusLateAirline, s.now)
		return tx.CloseRequest(s.ctx, found)
	}))

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		found, err := tx.FindRequest(s.ctx, req.Key)
		s.Require().NoError(err)
		s.False(found.Open)
		s.Equal(domain.StatusLateAirline, found.SettledCode)
		return nil
	}))
}

// Concurrent transactions serialize on the ledger lock, so no increment is lost.
func (s *LedgerSuite) TestConcurrentTransactionsSerialize() {
	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
				pool, err := tx.Pool(s.ctx)
				if err != nil {
					return err
				}
				return tx.SetPool(s.ctx, pool.Add(domain.Ether(1)))
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		pool, err := tx.Pool(s.ctx)
		s.Require().NoError(err)
		s.Equal(domain.Ether(workers), pool)
		return nil
	}))
}

// The full insured-delay lifecycle against the PostgreSQL ledger.
func (s *LedgerSuite) TestDelayedFlightLifecycle() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	journal := payments.NewJournal(logger)
	app := surety.New(s.ledger, surety.NewComponents(surety.Settings{
		AirlineFee:  domain.Ether(10),
		MaxPremium:  domain.Ether(1),
		ReporterFee: domain.Ether(1),
		Entropy:     entropy.NewSequence(7, 1, 2),
		Transferer:  journal,
		Logger:      logger,
	}), surety.WithLogger(logger))
	as := func(who domain.Address) context.Context {
		return testutil.CallerContext(s.ctx, who, s.now.Add(6*time.Hour))
	}

	s.Require().NoError(app.Bootstrap(s.ctx, owner, airlineA))
	_, err := app.FundAirline(as(airlineA), domain.Ether(10))
	s.Require().NoError(err)
	flight, err := app.RegisterFlight(as(airlineA), "F100", 1767225600, "AMS", "LIS")
	s.Require().NoError(err)
	_, err = app.PurchaseInsurance(as(passenger), flight.Key, domain.Ether(1))
	s.Require().NoError(err)

	reporters := []domain.Address{
		domain.MustAddress("0x00000000000000000000000000000000000000d1"),
		domain.MustAddress("0x00000000000000000000000000000000000000d2"),
		domain.MustAddress("0x00000000000000000000000000000000000000d3"),
	}
	for _, r := range reporters {
		_, err := app.RegisterReporter(as(r), domain.Ether(1))
		s.Require().NoError(err)
	}
	_, err = app.RequestFlightStatus(as(passenger), airlineA, "F100", 1767225600)
	s.Require().NoError(err)

	report := oraclemodels.Report{Index: 7, Airline: airlineA, Flight: "F100", Timestamp: 1767225600, Status: domain.StatusLateAirline}
	for _, r := range reporters {
		outcome, err := app.SubmitStatusReport(as(r), report)
		s.Require().NoError(err)
		s.True(outcome.Accepted)
	}

	paid, err := app.Withdraw(as(passenger))
	s.Require().NoError(err)
	s.Equal(domain.Ether(1).MulDiv(150, 100), paid)

	pool, err := app.Pool(s.ctx)
	s.Require().NoError(err)
	// airline fee + premium + three reporter fees - payout
	s.Equal(domain.Ether(125).MulDiv(1, 10), pool)
}
