package reporter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"flightsurety/internal/events"
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/internal/platform/kafka/consumer"
	"flightsurety/internal/reporter/mocks"
	"flightsurety/pkg/domain"
)

func statusEvent(attrs map[string]string) events.Event {
	return events.Event{
		ID:         uuid.New(),
		Type:       events.FlightStatusRequested,
		Subject:    "flight",
		Attributes: attrs,
	}
}

func validAttrs() map[string]string {
	return map[string]string{
		"index":     "7",
		"airline":   flightAirline.String(),
		"flight":    "F100",
		"timestamp": "1767225600",
	}
}

func TestParseStatusRequested(t *testing.T) {
	t.Run("valid event", func(t *testing.T) {
		req, err := ParseStatusRequested(statusEvent(validAttrs()))
		require.NoError(t, err)
		assert.Equal(t, StatusRequested{Index: 7, Airline: flightAirline, Flight: "F100", Timestamp: 1767225600}, req)
	})

	for field, value := range map[string]string{
		"index":     "12",
		"airline":   "not-an-address",
		"flight":    "",
		"timestamp": "yesterday",
	} {
		t.Run("bad "+field, func(t *testing.T) {
			attrs := validAttrs()
			attrs[field] = value
			_, err := ParseStatusRequested(statusEvent(attrs))
			assert.Error(t, err)
		})
	}
}

func TestEventHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAPI(ctrl)
	fleet := NewFleet(api, Fixed(domain.StatusOnTime), 1, domain.Ether(1), WithLogger(logger), WithSeed("test"))

	api.EXPECT().IssueToken(gomock.Any(), AddressAt("test", 0), "reporter").Return("tok", nil)
	api.EXPECT().RegisterReporter(gomock.Any(), "tok", domain.Ether(1)).
		Return(&oraclemodels.Registration{Indices: [3]domain.Index{7, 1, 2}}, nil)
	require.NoError(t, fleet.Setup(context.Background()))

	handler := EventHandler(fleet, logger)
	encode := func(e events.Event) *consumer.Message {
		raw, err := json.Marshal(e)
		require.NoError(t, err)
		return &consumer.Message{Topic: "flightsurety.events", Value: raw}
	}

	t.Run("status request reaches index holders", func(t *testing.T) {
		api.EXPECT().SubmitReport(gomock.Any(), "tok", oraclemodels.Report{
			Index:     7,
			Airline:   flightAirline,
			Flight:    "F100",
			Timestamp: 1767225600,
			Status:    domain.StatusOnTime,
		}).Return(oraclemodels.ReportOutcome{Accepted: true, Count: 1}, nil)

		assert.NoError(t, handler.Handle(context.Background(), encode(statusEvent(validAttrs()))))
	})

	t.Run("other event types are ignored", func(t *testing.T) {
		e := statusEvent(validAttrs())
		e.Type = events.AirlineFunded
		assert.NoError(t, handler.Handle(context.Background(), encode(e)))
	})

	t.Run("poison records are skipped", func(t *testing.T) {
		assert.NoError(t, handler.Handle(context.Background(), &consumer.Message{Value: []byte("{not json")}))
		assert.NoError(t, handler.Handle(context.Background(), encode(statusEvent(map[string]string{"index": "x"}))))
	})
}
