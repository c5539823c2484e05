package models

import (
	"time"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

// System holds deployment-wide control state.
type System struct {
	Owner       domain.Address `json:"owner"`
	Operational bool           `json:"operational"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewSystem returns an operational system owned by owner.
func NewSystem(owner domain.Address, now time.Time) (*System, error) {
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner address cannot be zero")
	}
	return &System{Owner: owner, Operational: true, UpdatedAt: now}, nil
}

// RequireOwner rejects callers other than the owner.
func (s *System) RequireOwner(caller domain.Address) error {
	if caller != s.Owner {
		return dErrors.New(dErrors.CodeUnauthorized, "caller is not the contract owner")
	}
	return nil
}

// RequireOperational rejects state changes while the kill switch is off.
func (s *System) RequireOperational() error {
	if !s.Operational {
		return dErrors.New(dErrors.CodePreconditionFailed, "contract is currently not operational")
	}
	return nil
}

// ApplyOperational sets the switch and reports whether it changed.
func (s *System) ApplyOperational(on bool, now time.Time) bool {
	if s.Operational == on {
		return false
	}
	s.Operational = on
	s.UpdatedAt = now
	return true
}
