package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	airlinemodels "flightsurety/internal/airline/models"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
)

type MemoryLedgerSuite struct {
	suite.Suite
	ledger *MemoryLedger
	ctx    context.Context
	now    time.Time
}

func TestMemoryLedgerSuite(t *testing.T) {
	suite.Run(t, new(MemoryLedgerSuite))
}

func (s *MemoryLedgerSuite) SetupTest() {
	s.ledger = NewMemoryLedger()
	s.ctx = context.Background()
	s.now = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

var (
	airlineA  = domain.MustAddress("0x00000000000000000000000000000000000000a1")
	airlineB  = domain.MustAddress("0x00000000000000000000000000000000000000a2")
	passenger = domain.MustAddress("0x00000000000000000000000000000000000000c1")
	reporter  = domain.MustAddress("0x00000000000000000000000000000000000000d1")
)

func (s *MemoryLedgerSuite) TestFailedTransactionLeavesNoTrace() {
	boom := errors.New("boom")
	flight, err := flightmodels.NewFlight(airlineA, "F100", 1700000000, "AMS", "JFK", s.now)
	s.Require().NoError(err)

	err = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
		a, _ := airlinemodels.NewAirline(airlineA, s.now)
		s.Require().NoError(tx.SaveAirline(s.ctx, a))
		s.Require().NoError(tx.AppendVote(s.ctx, airlineB, airlineA))
		s.Require().NoError(tx.CreateFlight(s.ctx, flight))
		s.Require().NoError(tx.SetBalance(s.ctx, passenger, domain.Ether(1)))
		s.Require().NoError(tx.SetPool(s.ctx, domain.Ether(10)))
		return boom
	})
	s.Require().ErrorIs(err, boom)

	err = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
		_, err := tx.FindAirline(s.ctx, airlineA)
		s.ErrorIs(err, sentinel.ErrNotFound)
		votes, _ := tx.ListVotes(s.ctx, airlineB)
		s.Empty(votes)
		_, err = tx.FindFlight(s.ctx, flight.Key)
		s.ErrorIs(err, sentinel.ErrNotFound)
		bal, _ := tx.Balance(s.ctx, passenger)
		s.True(bal.IsZero())
		pool, _ := tx.Pool(s.ctx)
		s.True(pool.IsZero())
		return nil
	})
	s.Require().NoError(err)
}

func (s *MemoryLedgerSuite) TestPanicRollsBack() {
	s.Panics(func() {
		_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
			_ = tx.SetPool(s.ctx, domain.Ether(3))
			panic("transfer exploded")
		})
	})
	_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
		pool, _ := tx.Pool(s.ctx)
		s.True(pool.IsZero())
		return nil
	})
}

func (s *MemoryLedgerSuite) TestUniquenessSentinels() {
	s.Run("duplicate vote", func() {
		_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
			s.Require().NoError(tx.AppendVote(s.ctx, airlineB, airlineA))
			s.ErrorIs(tx.AppendVote(s.ctx, airlineB, airlineA), sentinel.ErrAlreadyUsed)
			return nil
		})
	})

	s.Run("duplicate claim", func() {
		key := domain.NewFlightKey(airlineA, "F100", 1700000000)
		claim, err := insurancemodels.NewClaim(key, passenger, domain.Ether(1), domain.Ether(1), s.now)
		s.Require().NoError(err)
		_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
			s.Require().NoError(tx.AppendClaim(s.ctx, claim))
			s.ErrorIs(tx.AppendClaim(s.ctx, claim), sentinel.ErrAlreadyUsed)
			return nil
		})
	})

	s.Run("duplicate reporter", func() {
		o, err := oraclemodels.NewOracle(reporter, [3]domain.Index{1, 2, 3}, domain.Ether(1), s.now)
		s.Require().NoError(err)
		_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
			s.Require().NoError(tx.CreateOracle(s.ctx, o))
			s.ErrorIs(tx.CreateOracle(s.ctx, o), sentinel.ErrAlreadyUsed)
			return nil
		})
	})
}

func (s *MemoryLedgerSuite) TestReturnedRecordsAreCopies() {
	req := oraclemodels.NewRequest(passenger, 7, airlineA, "F100", 1700000000, s.now)
	_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
		s.Require().NoError(tx.CreateRequest(s.ctx, req))
		s.Require().NoError(tx.AppendResponse(s.ctx, req.Key, domain.StatusLateAirline, reporter))

		found, err := tx.FindRequest(s.ctx, req.Key)
		s.Require().NoError(err)
		found.ApplyResponse(airlineB, domain.StatusLateAirline)

		again, err := tx.FindRequest(s.ctx, req.Key)
		s.Require().NoError(err)
		s.Equal(1, again.Count(domain.StatusLateAirline))
		return nil
	})
}

func (s *MemoryLedgerSuite) TestCountAirlines() {
	_ = s.ledger.RunInTx(s.ctx, func(tx Tx) error {
		a, _ := airlinemodels.NewAirline(airlineA, s.now)
		b, _ := airlinemodels.NewAirline(airlineB, s.now)
		b.ApplyFunding(domain.Ether(10), s.now)
		s.Require().NoError(tx.SaveAirline(s.ctx, a))
		s.Require().NoError(tx.SaveAirline(s.ctx, b))

		counts, err := tx.CountAirlines(s.ctx)
		s.Require().NoError(err)
		s.Equal(airlinemodels.Counts{Registered: 2, Funded: 1}, counts)
		return nil
	})
}

func (s *MemoryLedgerSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	err := s.ledger.RunInTx(ctx, func(tx Tx) error { return nil })
	s.Require().Error(err)
}

func (s *MemoryLedgerSuite) TestWaiterGivesUpWhenContextEnds() {
	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.ledger.RunInTx(s.ctx, func(tx Tx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := s.ledger.RunInTx(ctx, func(tx Tx) error {
		s.Fail("must not run while the lock is held")
		return nil
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeTimeout))
	s.Less(time.Since(start), 2*time.Second)

	close(release)
	s.Require().NoError(<-done)
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx Tx) error { return nil }))
}
