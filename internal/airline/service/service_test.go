package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"flightsurety/internal/airline/models"
	"flightsurety/internal/events"
	"flightsurety/internal/storage"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/requestcontext"
)

type AirlineServiceSuite struct {
	suite.Suite
	ledger  *storage.MemoryLedger
	service *Service
	ctx     context.Context
	fee     domain.Amount
}

func TestAirlineServiceSuite(t *testing.T) {
	suite.Run(t, new(AirlineServiceSuite))
}

func (s *AirlineServiceSuite) SetupTest() {
	s.ledger = storage.NewMemoryLedger()
	s.fee = domain.Ether(10)
	s.service = New(s.fee)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
}

func addr(n int) domain.Address {
	return domain.MustAddress(fmt.Sprintf("0x%040x", n))
}

func (s *AirlineServiceSuite) inTx(fn func(tx storage.Tx) error) error {
	return s.ledger.RunInTx(s.ctx, fn)
}

func (s *AirlineServiceSuite) admit(candidate, sponsor domain.Address) (*models.AdmissionResult, error) {
	var res *models.AdmissionResult
	err := s.inTx(func(tx storage.Tx) error {
		var err error
		res, err = s.service.Admit(s.ctx, tx, candidate, sponsor)
		return err
	})
	return res, err
}

func (s *AirlineServiceSuite) fund(airline domain.Address, value domain.Amount) (*models.FundingResult, error) {
	var res *models.FundingResult
	err := s.inTx(func(tx storage.Tx) error {
		var err error
		res, err = s.service.Fund(s.ctx, tx, airline, value)
		return err
	})
	return res, err
}

// seed registers airlines 1..n through open admission and funds the first
// funded of them.
func (s *AirlineServiceSuite) seed(n, funded int) {
	s.Require().NoError(s.inTx(func(tx storage.Tx) error {
		return s.service.Bootstrap(s.ctx, tx, addr(1))
	}))
	_, err := s.fund(addr(1), s.fee)
	s.Require().NoError(err)
	for i := 2; i <= n; i++ {
		res, err := s.admit(addr(i), addr(1))
		s.Require().NoError(err)
		s.Require().True(res.Success)
		s.Require().Equal(0, res.Votes)
	}
	for i := 2; i <= funded; i++ {
		_, err := s.fund(addr(i), s.fee)
		s.Require().NoError(err)
	}
}

func (s *AirlineServiceSuite) TestOpenAdmission() {
	s.Require().NoError(s.inTx(func(tx storage.Tx) error {
		return s.service.Bootstrap(s.ctx, tx, addr(1))
	}))
	_, err := s.fund(addr(1), s.fee)
	s.Require().NoError(err)

	for i := 2; i <= 5; i++ {
		res, err := s.admit(addr(i), addr(1))
		s.Require().NoError(err)
		s.Equal(models.AdmissionResult{Success: true, Votes: 0, RegisteredAirlines: i}, *res)
	}
}

func (s *AirlineServiceSuite) TestVotingReachesQuorum() {
	s.seed(5, 3)
	candidate := addr(6)

	res, err := s.admit(candidate, addr(1))
	s.Require().NoError(err)
	s.Equal(models.AdmissionResult{Success: false, Votes: 1, RegisteredAirlines: 5}, *res)

	res, err = s.admit(candidate, addr(2))
	s.Require().NoError(err)
	s.Equal(models.AdmissionResult{Success: false, Votes: 2, RegisteredAirlines: 5}, *res)

	s.Run("duplicate vote is rejected without counting", func() {
		_, err := s.admit(candidate, addr(2))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
		s.Equal("duplicate vote", dErrors.MessageOf(err))

		s.Require().NoError(s.inTx(func(tx storage.Tx) error {
			voters, err := tx.ListVotes(s.ctx, candidate)
			s.Len(voters, 2)
			return err
		}))
	})

	res, err = s.admit(candidate, addr(3))
	s.Require().NoError(err)
	s.Equal(models.AdmissionResult{Success: true, Votes: 3, RegisteredAirlines: 6}, *res)

	s.Require().NoError(s.inTx(func(tx storage.Tx) error {
		voters, err := tx.ListVotes(s.ctx, candidate)
		s.Empty(voters)
		return err
	}))

	_, err = s.admit(candidate, addr(1))
	s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
}

func (s *AirlineServiceSuite) TestQuorumTracksRegisteredCount() {
	for registered := 5; registered <= 8; registered++ {
		s.Run(fmt.Sprintf("%d registered", registered), func() {
			s.SetupTest()
			s.seed(registered, registered)
			candidate := addr(100)
			quorum := models.Quorum(registered)

			for v := 1; v < quorum; v++ {
				res, err := s.admit(candidate, addr(v))
				s.Require().NoError(err)
				s.False(res.Success)
				s.Equal(v, res.Votes)
			}
			res, err := s.admit(candidate, addr(quorum))
			s.Require().NoError(err)
			s.True(res.Success)
			s.Equal(quorum, res.Votes)
			s.Equal(registered+1, res.RegisteredAirlines)
		})
	}
}

func (s *AirlineServiceSuite) TestAdmitRequiresFundedSponsor() {
	s.seed(2, 1)

	_, err := s.admit(addr(3), addr(2))
	s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))

	_, err = s.admit(addr(3), addr(99))
	s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))

	_, err = s.admit(addr(2), addr(1))
	s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	s.Equal("airline is already registered", dErrors.MessageOf(err))
}

func (s *AirlineServiceSuite) TestFund() {
	s.seed(2, 1)

	s.Run("underpayment", func() {
		_, err := s.fund(addr(2), domain.Ether(9))
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
	})

	s.Run("overpayment is split into fee and refund", func() {
		res, err := s.fund(addr(2), domain.Ether(12))
		s.Require().NoError(err)
		s.Equal(s.fee, res.Fee)
		s.Equal(domain.Ether(2), res.Refund)
	})

	s.Run("second funding", func() {
		_, err := s.fund(addr(2), s.fee)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Run("unregistered airline", func() {
		_, err := s.fund(addr(50), s.fee)
		s.True(dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	})

	s.Require().NoError(s.inTx(func(tx storage.Tx) error {
		counts, err := s.service.Counts(s.ctx, tx)
		s.Equal(models.Counts{Registered: 2, Funded: 2}, counts)

		a, _ := s.service.Get(s.ctx, tx, addr(2))
		s.Equal(s.fee, a.Funds)
		s.NotNil(a.FundedAt)
		return err
	}))
}

func (s *AirlineServiceSuite) TestGetUnknownAirline() {
	err := s.inTx(func(tx storage.Tx) error {
		funded, err := s.service.IsFunded(s.ctx, tx, addr(7))
		s.Require().NoError(err)
		s.False(funded)
		_, err = s.service.Get(s.ctx, tx, addr(7))
		return err
	})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *AirlineServiceSuite) TestEmitsEvents() {
	s.seed(5, 2)
	ctx, collector := events.WithCollector(s.ctx)

	s.Require().NoError(s.ledger.RunInTx(ctx, func(tx storage.Tx) error {
		_, err := s.service.Admit(ctx, tx, addr(6), addr(1))
		return err
	}))

	got := collector.Events()
	s.Require().Len(got, 1)
	s.Equal(events.AirlineVoted, got[0].Type)
	s.Equal("1", got[0].Attributes["votes"])
	s.Equal("3", got[0].Attributes["quorum"])
}
