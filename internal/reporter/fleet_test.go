package reporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/internal/reporter/mocks"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks API

var flightAirline = domain.MustAddress("0x00000000000000000000000000000000000000a1")

type FleetSuite struct {
	suite.Suite
	ctrl  *gomock.Controller
	api   *mocks.MockAPI
	fleet *Fleet
}

func TestFleetSuite(t *testing.T) {
	suite.Run(t, new(FleetSuite))
}

func (s *FleetSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.api = mocks.NewMockAPI(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.fleet = NewFleet(s.api, Fixed(domain.StatusLateWeather), 3, domain.Ether(1),
		WithLogger(logger), WithSeed("test"), WithConcurrency(2))
}

func (s *FleetSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FleetSuite) expectEnroll(i int, indices [oraclemodels.IndexCount]domain.Index) {
	addr := AddressAt("test", i)
	token := "token-" + addr.String()
	s.api.EXPECT().IssueToken(gomock.Any(), addr, "reporter").Return(token, nil)
	s.api.EXPECT().RegisterReporter(gomock.Any(), token, domain.Ether(1)).
		Return(&oraclemodels.Registration{Indices: indices, Fee: domain.Ether(1)}, nil)
}

func (s *FleetSuite) TestAddressesAreDeterministic() {
	s.Equal(AddressAt("test", 0), AddressAt("test", 0))
	s.NotEqual(AddressAt("test", 0), AddressAt("test", 1))
	s.NotEqual(AddressAt("test", 0), AddressAt("other", 0))
	s.False(AddressAt("test", 0).IsZero())
}

func (s *FleetSuite) TestSetupRegistersEveryReporter() {
	s.expectEnroll(0, [3]domain.Index{1, 2, 3})
	s.expectEnroll(1, [3]domain.Index{3, 4, 5})
	s.expectEnroll(2, [3]domain.Index{6, 7, 8})

	s.Require().NoError(s.fleet.Setup(context.Background()))

	members := s.fleet.Members()
	s.Require().Len(members, 3)
	s.Equal([3]domain.Index{3, 4, 5}, members[1].Indices)
}

func (s *FleetSuite) TestSetupReusesExistingRegistration() {
	s.fleet = NewFleet(s.api, Fixed(domain.StatusOnTime), 1, domain.Ether(1), WithSeed("test"))
	addr := AddressAt("test", 0)
	s.api.EXPECT().IssueToken(gomock.Any(), addr, "reporter").Return("tok", nil)
	s.api.EXPECT().RegisterReporter(gomock.Any(), "tok", domain.Ether(1)).
		Return(nil, dErrors.New(dErrors.CodePreconditionFailed, "reporter is already registered"))
	s.api.EXPECT().Indices(gomock.Any(), "tok").Return([3]domain.Index{9, 0, 4}, nil)

	s.Require().NoError(s.fleet.Setup(context.Background()))
	s.Equal([3]domain.Index{9, 0, 4}, s.fleet.Members()[0].Indices)
}

func (s *FleetSuite) TestSetupFailsOnOtherErrors() {
	addr := AddressAt("test", 0)
	s.api.EXPECT().IssueToken(gomock.Any(), addr, "reporter").Return("tok", nil)
	s.api.EXPECT().RegisterReporter(gomock.Any(), "tok", domain.Ether(1)).
		Return(nil, dErrors.New(dErrors.CodeInsufficientFunds, "value is below the reporter registration fee"))

	err := s.fleet.Setup(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInsufficientFunds))
	s.Empty(s.fleet.Members())
}

func (s *FleetSuite) TestHandleOnlyUsesIndexHolders() {
	s.expectEnroll(0, [3]domain.Index{1, 2, 3})
	s.expectEnroll(1, [3]domain.Index{3, 4, 5})
	s.expectEnroll(2, [3]domain.Index{6, 7, 8})
	s.Require().NoError(s.fleet.Setup(context.Background()))

	req := StatusRequested{Index: 3, Airline: flightAirline, Flight: "F100", Timestamp: 1767225600}
	want := oraclemodels.Report{
		Index:     3,
		Airline:   flightAirline,
		Flight:    "F100",
		Timestamp: 1767225600,
		Status:    domain.StatusLateWeather,
	}
	s.api.EXPECT().SubmitReport(gomock.Any(), "token-"+AddressAt("test", 0).String(), want).
		Return(oraclemodels.ReportOutcome{Accepted: true, Count: 1}, nil)
	s.api.EXPECT().SubmitReport(gomock.Any(), "token-"+AddressAt("test", 1).String(), want).
		Return(oraclemodels.ReportOutcome{Accepted: true, Count: 2}, nil)

	summary, err := s.fleet.Handle(context.Background(), req)
	s.Require().NoError(err)
	s.Equal(2, summary.Submitted)
	s.Equal(2, summary.Accepted)
	s.False(summary.Settled)
}

func (s *FleetSuite) TestHandleCountsRejectionsAndFailures() {
	s.expectEnroll(0, [3]domain.Index{1, 2, 3})
	s.expectEnroll(1, [3]domain.Index{1, 4, 5})
	s.expectEnroll(2, [3]domain.Index{1, 7, 8})
	s.Require().NoError(s.fleet.Setup(context.Background()))

	s.api.EXPECT().SubmitReport(gomock.Any(), "token-"+AddressAt("test", 0).String(), gomock.Any()).
		Return(oraclemodels.ReportOutcome{Accepted: true, Count: 3, Settled: true, StatusCode: domain.StatusLateWeather}, nil)
	s.api.EXPECT().SubmitReport(gomock.Any(), "token-"+AddressAt("test", 1).String(), gomock.Any()).
		Return(oraclemodels.Rejected(domain.RequestKey{}, oraclemodels.RejectRequestClosed), nil)
	s.api.EXPECT().SubmitReport(gomock.Any(), "token-"+AddressAt("test", 2).String(), gomock.Any()).
		Return(oraclemodels.ReportOutcome{}, errors.New("connection reset"))

	summary, err := s.fleet.Handle(context.Background(), StatusRequested{Index: 1, Airline: flightAirline, Flight: "F100"})
	s.Require().NoError(err)
	s.Equal(3, summary.Submitted)
	s.Equal(1, summary.Accepted)
	s.Equal(1, summary.Rejected[oraclemodels.RejectRequestClosed])
	s.Equal(1, summary.Failed)
	s.True(summary.Settled)
	s.Equal(domain.StatusLateWeather, summary.Code)
}

func (s *FleetSuite) TestHandleRejectsBadIndex() {
	_, err := s.fleet.Handle(context.Background(), StatusRequested{Index: 10})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *FleetSuite) TestHandleWithoutHolders() {
	summary, err := s.fleet.Handle(context.Background(), StatusRequested{Index: 4})
	s.Require().NoError(err)
	s.Zero(summary.Submitted)
}

func (s *FleetSuite) TestHandleWithRandomStrategyUnderConcurrency() {
	const size = 16
	s.fleet = NewFleet(s.api, NewRandom(1), size, domain.Ether(1),
		WithSeed("test"), WithConcurrency(8))
	for i := range size {
		s.expectEnroll(i, [3]domain.Index{7, 1, 2})
	}
	s.Require().NoError(s.fleet.Setup(context.Background()))

	s.api.EXPECT().SubmitReport(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, report oraclemodels.Report) (oraclemodels.ReportOutcome, error) {
			s.True(report.Status.IsKnown())
			s.NotEqual(domain.StatusUnknown, report.Status)
			return oraclemodels.ReportOutcome{Accepted: true}, nil
		}).
		Times(20 * size)

	req := StatusRequested{Index: 7, Airline: flightAirline, Flight: "F100", Timestamp: 1767225600}
	for range 20 {
		summary, err := s.fleet.Handle(context.Background(), req)
		s.Require().NoError(err)
		s.Equal(size, summary.Accepted)
	}
}
