package models

import (
	"time"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

// PayoutPercentage is applied to the premium when a claim is credited.
const PayoutPercentage = 150

// Claim is one passenger's insurance on one flight.
//
// Invariants:
//   - At most one claim per (flight, passenger)
//   - Credited flips to true at most once
type Claim struct {
	FlightKey        domain.FlightKey `json:"flight_key"`
	Passenger        domain.Address   `json:"passenger"`
	Premium          domain.Amount    `json:"premium"`
	PayoutPercentage uint64           `json:"payout_percentage"`
	Credited         bool             `json:"credited"`
	PurchasedAt      time.Time        `json:"purchased_at"`
}

// NewClaim validates the premium against the configured maximum.
func NewClaim(key domain.FlightKey, passenger domain.Address, premium, maxPremium domain.Amount, now time.Time) (*Claim, error) {
	if passenger.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "passenger is required")
	}
	if premium.IsZero() {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "premium must be greater than zero")
	}
	if premium.GreaterThan(maxPremium) {
		return nil, dErrors.New(dErrors.CodePreconditionFailed, "premium exceeds the maximum")
	}
	return &Claim{
		FlightKey:        key,
		Passenger:        passenger,
		Premium:          premium,
		PayoutPercentage: PayoutPercentage,
		PurchasedAt:      now,
	}, nil
}

// Payout is premium * percentage / 100.
func (c *Claim) Payout() domain.Amount {
	return c.Premium.MulDiv(c.PayoutPercentage, 100)
}

// CreditSummary reports what a credit pass changed.
type CreditSummary struct {
	FlightKey domain.FlightKey `json:"flight_key"`
	Credited  []Credit         `json:"credited"`
	Total     domain.Amount    `json:"total"`
}

// Credit is a single claim credited during a pass.
type Credit struct {
	Passenger domain.Address `json:"passenger"`
	Amount    domain.Amount  `json:"amount"`
}
