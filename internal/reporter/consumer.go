package reporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"flightsurety/internal/events"
	"flightsurety/internal/platform/kafka/consumer"
	"flightsurety/pkg/domain"
)

// EventHandler feeds FlightStatusRequested events from Kafka to the fleet.
// Malformed records and other event types are skipped so they get committed.
func EventHandler(fleet *Fleet, logger *slog.Logger) consumer.Handler {
	return consumer.HandlerFunc(func(ctx context.Context, msg *consumer.Message) error {
		e, err := events.Decode(msg.Value)
		if err != nil {
			logger.WarnContext(ctx, "skipping undecodable record",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
			return nil
		}
		if e.Type != events.FlightStatusRequested {
			return nil
		}
		req, err := ParseStatusRequested(e)
		if err != nil {
			logger.WarnContext(ctx, "skipping malformed status request",
				"event_id", e.ID.String(),
				"error", err,
			)
			return nil
		}
		_, err = fleet.Handle(ctx, req)
		return err
	})
}

// ParseStatusRequested reads the request fields out of event attributes.
func ParseStatusRequested(e events.Event) (StatusRequested, error) {
	var req StatusRequested
	n, err := strconv.Atoi(e.Attributes["index"])
	if err != nil {
		return req, fmt.Errorf("index: %w", err)
	}
	if req.Index, err = domain.ParseIndex(n); err != nil {
		return req, fmt.Errorf("index: %w", err)
	}
	if req.Airline, err = domain.ParseAddress(e.Attributes["airline"]); err != nil {
		return req, fmt.Errorf("airline: %w", err)
	}
	req.Flight = e.Attributes["flight"]
	if req.Flight == "" {
		return req, errors.New("flight is missing")
	}
	if req.Timestamp, err = strconv.ParseInt(e.Attributes["timestamp"], 10, 64); err != nil {
		return req, fmt.Errorf("timestamp: %w", err)
	}
	return req, nil
}
