package models

import (
	"time"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

// OpenAdmissionThreshold is the registered-airline count up to which
// admission needs no votes.
const OpenAdmissionThreshold = 4

// RequiredVoteDivisor sets quorum to ceil(registered / divisor).
const RequiredVoteDivisor = 2

// State is an airline's lifecycle position.
type State string

const (
	StateUnregistered State = "unregistered"
	StateRegistered   State = "registered"
	StateFunded       State = "funded"
)

// Airline is the aggregate root for a participating airline.
//
// Invariants:
//   - State only moves forward: unregistered -> registered -> funded
//   - Funds is set once, on funding, to the fee actually retained
//   - Airlines are never deleted
type Airline struct {
	Address      domain.Address `json:"address"`
	State        State          `json:"state"`
	Funds        domain.Amount  `json:"funds"`
	RegisteredAt time.Time      `json:"registered_at"`
	FundedAt     *time.Time     `json:"funded_at,omitempty"`
}

// NewAirline returns a registered airline.
func NewAirline(addr domain.Address, now time.Time) (*Airline, error) {
	if addr.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "airline address cannot be zero")
	}
	return &Airline{
		Address:      addr,
		State:        StateRegistered,
		RegisteredAt: now,
	}, nil
}

// IsRegistered reports whether the airline has been admitted. Funded airlines
// are also registered.
func (a *Airline) IsRegistered() bool {
	return a != nil && (a.State == StateRegistered || a.State == StateFunded)
}

func (a *Airline) IsFunded() bool {
	return a != nil && a.State == StateFunded
}

// CanFund checks the funding transition.
// Use with ApplyFunding so validation happens before any mutation.
func (a *Airline) CanFund(value, fee domain.Amount) error {
	if !a.IsRegistered() {
		return dErrors.New(dErrors.CodePreconditionFailed, "airline is not registered")
	}
	if a.IsFunded() {
		return dErrors.New(dErrors.CodePreconditionFailed, "airline is already funded")
	}
	if value.LessThan(fee) {
		return dErrors.New(dErrors.CodeInsufficientFunds, "value is below the airline funding fee")
	}
	return nil
}

// ApplyFunding marks the airline funded with the retained fee.
// Call CanFund first.
func (a *Airline) ApplyFunding(fee domain.Amount, now time.Time) {
	a.State = StateFunded
	a.Funds = fee
	a.FundedAt = &now
}

// Quorum returns the votes needed to admit a candidate when registered
// airlines are already admitted.
func Quorum(registered int) int {
	return (registered + RequiredVoteDivisor - 1) / RequiredVoteDivisor
}

// NeedsVote reports whether admission requires voting at this registered count.
func NeedsVote(registered int) bool {
	return registered > OpenAdmissionThreshold
}

// AdmissionResult reports progress toward admitting a candidate.
type AdmissionResult struct {
	Success            bool `json:"success"`
	Votes              int  `json:"votes"`
	RegisteredAirlines int  `json:"registered_airlines"`
}

// FundingResult splits the caller's value into the retained fee and the excess.
type FundingResult struct {
	Fee    domain.Amount `json:"fee"`
	Refund domain.Amount `json:"refund"`
}

// Counts are the registry-wide airline counters.
type Counts struct {
	Registered int `json:"registered"`
	Funded     int `json:"funded"`
}
