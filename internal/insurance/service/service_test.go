package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks AirlineRegistry,FlightRegistry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"flightsurety/internal/events"
	flightmodels "flightsurety/internal/flight/models"
	"flightsurety/internal/insurance/service/mocks"
	"flightsurety/internal/payments"
	paymentmocks "flightsurety/internal/payments/mocks"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/requestcontext"
)

var (
	airlineA   = domain.MustAddress("0x00000000000000000000000000000000000000a1")
	passenger1 = domain.MustAddress("0x00000000000000000000000000000000000000c1")
	passenger2 = domain.MustAddress("0x00000000000000000000000000000000000000c2")
)

type InsuranceServiceSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	airlines   *mocks.MockAirlineRegistry
	flights    *mocks.MockFlightRegistry
	transferer *paymentmocks.MockTransferer
	ledger     *storage.MemoryLedger
	service    *Service
	ctx        context.Context
	flight     *flightmodels.Flight
}

func TestInsuranceServiceSuite(t *testing.T) {
	suite.Run(t, new(InsuranceServiceSuite))
}

func (s *InsuranceServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.airlines = mocks.NewMockAirlineRegistry(s.ctrl)
	s.flights = mocks.NewMockFlightRegistry(s.ctrl)
	s.transferer = paymentmocks.NewMockTransferer(s.ctrl)
	s.ledger = storage.NewMemoryLedger()
	s.service = New(s.airlines, s.flights, s.transferer, domain.Ether(1))
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC))

	var err error
	s.flight, err = flightmodels.NewFlight(airlineA, "F100", 1767225600, "AMS", "LIS", time.Now())
	s.Require().NoError(err)
}

func (s *InsuranceServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *InsuranceServiceSuite) expectInsurableFlight() {
	s.flights.EXPECT().Get(gomock.Any(), gomock.Any(), s.flight.Key).Return(s.flight, nil)
	s.airlines.EXPECT().IsFunded(gomock.Any(), gomock.Any(), airlineA).Return(true, nil)
}

func (s *InsuranceServiceSuite) purchase(passenger domain.Address, premium domain.Amount) error {
	return s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		_, err := s.service.Purchase(s.ctx, tx, s.flight.Key, passenger, premium)
		return err
	})
}

func (s *InsuranceServiceSuite) read(fn func(tx storage.Tx)) {
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		fn(tx)
		return nil
	}))
}

func (s *InsuranceServiceSuite) pool() domain.Amount {
	var pool domain.Amount
	s.read(func(tx storage.Tx) { pool, _ = s.service.Pool(s.ctx, tx) })
	return pool
}

func (s *InsuranceServiceSuite) balance(who domain.Address) domain.Amount {
	var balance domain.Amount
	s.read(func(tx storage.Tx) { balance, _ = s.service.Balance(s.ctx, tx, who) })
	return balance
}

// credit runs a credit pass and returns the total it credited.
func (s *InsuranceServiceSuite) credit() domain.Amount {
	var total domain.Amount
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		summary, err := s.service.Credit(s.ctx, tx, s.flight.Key)
		if err != nil {
			return err
		}
		total = summary.Total
		return nil
	}))
	return total
}

func (s *InsuranceServiceSuite) TestPurchase() {
	s.Run("adds claim and premium to the pool", func() {
		s.expectInsurableFlight()
		s.Require().NoError(s.purchase(passenger1, domain.Ether(1)))
		s.Equal(domain.Ether(1), s.pool())

		s.read(func(tx storage.Tx) {
			claims, err := s.service.Claims(s.ctx, tx, s.flight.Key)
			s.Require().NoError(err)
			s.Require().Len(claims, 1)
			s.Equal(uint64(150), claims[0].PayoutPercentage)
			s.False(claims[0].Credited)
		})
	})

	s.Run("second claim by the same passenger", func() {
		s.expectInsurableFlight()
		err := s.purchase(passenger1, domain.NewAmount(5))
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal(domain.Ether(1), s.pool(), "rolled back premium")
	})

	s.Run("premium above the maximum", func() {
		s.expectInsurableFlight()
		err := s.purchase(passenger2, domain.Ether(2))
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("zero premium", func() {
		s.expectInsurableFlight()
		err := s.purchase(passenger2, domain.Amount{})
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})
}

func (s *InsuranceServiceSuite) TestPurchaseGuards() {
	s.Run("unregistered flight", func() {
		s.flights.EXPECT().Get(gomock.Any(), gomock.Any(), s.flight.Key).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "flight not found"))
		err := s.purchase(passenger1, domain.Ether(1))
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("landed flight", func() {
		landed := *s.flight
		landed.Status = domain.StatusOnTime
		s.flights.EXPECT().Get(gomock.Any(), gomock.Any(), s.flight.Key).Return(&landed, nil)
		err := s.purchase(passenger1, domain.Ether(1))
		s.Equal("flight already landed", dErrors.MessageOf(err))
	})

	s.Run("unfunded airline", func() {
		s.flights.EXPECT().Get(gomock.Any(), gomock.Any(), s.flight.Key).Return(s.flight, nil)
		s.airlines.EXPECT().IsFunded(gomock.Any(), gomock.Any(), airlineA).Return(false, nil)
		err := s.purchase(passenger1, domain.Ether(1))
		s.Equal("airline is not funded", dErrors.MessageOf(err))
	})
}

func (s *InsuranceServiceSuite) TestCreditIsIdempotent() {
	s.expectInsurableFlight()
	s.Require().NoError(s.purchase(passenger1, domain.Ether(1)))
	s.expectInsurableFlight()
	s.Require().NoError(s.purchase(passenger2, domain.NewAmount(3)))

	oneAndAHalf, err := domain.ParseAmount("1500000000000000000")
	s.Require().NoError(err)

	s.Equal(oneAndAHalf.Add(domain.NewAmount(4)), s.credit())
	s.Equal(oneAndAHalf, s.balance(passenger1))
	s.Equal(domain.NewAmount(4), s.balance(passenger2))

	s.True(s.credit().IsZero())
	s.Equal(domain.NewAmount(4), s.balance(passenger2))
}

func (s *InsuranceServiceSuite) TestWithdraw() {
	s.expectInsurableFlight()
	s.Require().NoError(s.purchase(passenger1, domain.Ether(1)))
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		return s.service.Deposit(s.ctx, tx, domain.Ether(10))
	}))
	s.credit()
	payout := domain.Ether(1).MulDiv(150, 100)

	s.Run("transfer failure keeps the balance", func() {
		s.transferer.EXPECT().Transfer(gomock.Any(), passenger1, payout).Return(errors.New("rejected"))
		err := s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
			_, err := s.service.Withdraw(s.ctx, tx, passenger1)
			return err
		})
		s.Require().Error(err)
		s.Equal(payout, s.balance(passenger1))
		s.Equal(domain.Ether(11), s.pool())
	})

	s.Run("pays out and zeroes the balance", func() {
		s.transferer.EXPECT().Transfer(gomock.Any(), passenger1, payout).Return(nil)
		ctx, collector := events.WithCollector(s.ctx)
		var paid domain.Amount
		s.Require().NoError(s.ledger.RunInTx(ctx, func(tx storage.Tx) error {
			var err error
			paid, err = s.service.Withdraw(ctx, tx, passenger1)
			return err
		}))
		s.Equal(payout, paid)
		s.True(s.balance(passenger1).IsZero())
		expectedPool, _ := domain.Ether(11).Sub(payout)
		s.Equal(expectedPool, s.pool())
		s.Len(collector.Events(), 1)
	})

	s.Run("empty balance", func() {
		err := s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
			_, err := s.service.Withdraw(s.ctx, tx, passenger1)
			return err
		})
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})
}

func (s *InsuranceServiceSuite) TestWithdrawNeedsPoolCover() {
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		return tx.SetBalance(s.ctx, passenger1, domain.Ether(2))
	}))
	err := s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		_, err := s.service.Withdraw(s.ctx, tx, passenger1)
		return err
	})
	s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
	s.Equal(domain.Ether(2), s.balance(passenger1))
}

// A transfer that calls back into Withdraw sees a zero balance.
func (s *InsuranceServiceSuite) TestReentrantWithdrawFindsNothing() {
	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		if err := tx.SetBalance(s.ctx, passenger1, domain.Ether(1)); err != nil {
			return err
		}
		return s.service.Deposit(s.ctx, tx, domain.Ether(5))
	}))

	var (
		reentrantErr error
		transfers    int
		current      storage.Tx
	)
	s.service.transferer = payments.TransferFunc(func(ctx context.Context, to domain.Address, _ domain.Amount) error {
		transfers++
		if transfers == 1 {
			_, reentrantErr = s.service.Withdraw(ctx, current, to)
		}
		return nil
	})

	s.Require().NoError(s.ledger.RunInTx(s.ctx, func(tx storage.Tx) error {
		current = tx
		_, err := s.service.Withdraw(s.ctx, tx, passenger1)
		return err
	}))

	s.Equal(1, transfers)
	s.True(dErrors.HasCode(reentrantErr, dErrors.CodePreconditionFailed))
	s.Equal(domain.Ether(4), s.pool())
}
