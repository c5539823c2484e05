package models

import (
	"strings"
	"time"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

const maxFieldLength = 64

// Flight is a scheduled flight registered by a funded airline.
//
// Invariants:
//   - Key = keccak256(airline ‖ number ‖ scheduled timestamp) and is globally unique
//   - Status starts at StatusUnknown and changes exactly once to a terminal code
//   - Resolved flights are immutable
type Flight struct {
	Key          domain.FlightKey  `json:"key"`
	Airline      domain.Address    `json:"airline"`
	Number       string            `json:"number"`
	ScheduledAt  int64             `json:"scheduled_at"`
	Departure    string            `json:"departure"`
	Arrival      string            `json:"arrival"`
	Status       domain.StatusCode `json:"status"`
	RegisteredAt time.Time         `json:"registered_at"`
	ResolvedAt   *time.Time        `json:"resolved_at,omitempty"`
}

// NewFlight validates the flight identity and route and derives its key.
func NewFlight(airline domain.Address, number string, scheduledAt int64, departure, arrival string, now time.Time) (*Flight, error) {
	number = strings.TrimSpace(number)
	departure = strings.TrimSpace(departure)
	arrival = strings.TrimSpace(arrival)
	if airline.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "airline is required")
	}
	if number == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "flight number is required")
	}
	if departure == "" || arrival == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "departure and arrival are required")
	}
	if len(number) > maxFieldLength || len(departure) > maxFieldLength || len(arrival) > maxFieldLength {
		return nil, dErrors.New(dErrors.CodeValidation, "flight fields must be 64 characters or less")
	}
	if scheduledAt <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "timestamp must be positive")
	}
	return &Flight{
		Key:          domain.NewFlightKey(airline, number, scheduledAt),
		Airline:      airline,
		Number:       number,
		ScheduledAt:  scheduledAt,
		Departure:    departure,
		Arrival:      arrival,
		Status:       domain.StatusUnknown,
		RegisteredAt: now,
	}, nil
}

// IsLanded reports whether the flight already carries a terminal status.
func (f *Flight) IsLanded() bool {
	return f.Status != domain.StatusUnknown
}

// CanResolve is the caller-facing guard for status changes.
func (f *Flight) CanResolve(code domain.StatusCode) error {
	if f.IsLanded() {
		return dErrors.New(dErrors.CodePreconditionFailed, "flight already landed")
	}
	if code == domain.StatusUnknown || !code.IsKnown() {
		return dErrors.New(dErrors.CodePreconditionFailed, "unsupported status code")
	}
	return nil
}

// ApplyResolution writes the terminal status. It reports false, and changes
// nothing, when the flight is already resolved.
func (f *Flight) ApplyResolution(code domain.StatusCode, now time.Time) bool {
	if f.IsLanded() {
		return false
	}
	f.Status = code
	f.ResolvedAt = &now
	return true
}
