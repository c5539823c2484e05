package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	flightmodels "flightsurety/internal/flight/models"
	"flightsurety/pkg/domain"
	"flightsurety/pkg/platform/sentinel"
)

func (t *tx) FindFlight(ctx context.Context, key domain.FlightKey) (*flightmodels.Flight, error) {
	var (
		f          flightmodels.Flight
		airline    string
		status     int
		resolvedAt sql.NullTime
	)
	err := t.tx.QueryRowContext(ctx, `
		SELECT airline, number, scheduled_at, departure, arrival, status, registered_at, resolved_at
		FROM flights WHERE key = $1`,
		key.String(),
	).Scan(&airline, &f.Number, &f.ScheduledAt, &f.Departure, &f.Arrival, &status, &f.RegisteredAt, &resolvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find flight: %w", err)
	}
	if f.Airline, err = domain.ParseAddress(airline); err != nil {
		return nil, fmt.Errorf("decode flight airline: %w", err)
	}
	f.Key = key
	f.Status = domain.StatusCode(status)
	f.ResolvedAt = timePtr(resolvedAt)
	return &f, nil
}

func (t *tx) CreateFlight(ctx context.Context, flight *flightmodels.Flight) error {
	res, err := t.tx.ExecContext(ctx, `
		INSERT INTO flights (key, airline, number, scheduled_at, departure, arrival, status, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (key) DO NOTHING`,
		flight.Key.String(), flight.Airline.String(), flight.Number, flight.ScheduledAt,
		flight.Departure, flight.Arrival, int(flight.Status), flight.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("create flight: %w", err)
	}
	return requireInserted(res)
}

func (t *tx) UpdateFlightStatus(ctx context.Context, flight *flightmodels.Flight) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE flights SET status = $2, resolved_at = $3 WHERE key = $1`,
		flight.Key.String(), int(flight.Status), nullTime(flight.ResolvedAt),
	)
	if err != nil {
		return fmt.Errorf("update flight status: %w", err)
	}
	return requireUpdated(res)
}
