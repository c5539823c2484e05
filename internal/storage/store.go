// Package storage defines the ledger the core runs its operations against.
//
// Every caller-facing operation executes inside Ledger.RunInTx, which gives
// all-or-nothing, serialized execution. Components receive the Tx and address
// state through it; nothing is held in package-level variables.
//
// Stores return sentinel errors (pkg/platform/sentinel); components translate
// them into domain errors.
package storage

import (
	"context"

	airlinemodels "flightsurety/internal/airline/models"
	flightmodels "flightsurety/internal/flight/models"
	insurancemodels "flightsurety/internal/insurance/models"
	oraclemodels "flightsurety/internal/oracle/models"
	suretymodels "flightsurety/internal/surety/models"
	"flightsurety/pkg/domain"
)

// Ledger runs fn as a single atomic, serialized transaction. If fn returns an
// error every mutation made through tx is discarded.
type Ledger interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the state visible to one transaction.
type Tx interface {
	SystemStore
	AirlineStore
	FlightStore
	InsuranceStore
	OracleStore
}

type SystemStore interface {
	// LoadSystem returns sentinel.ErrNotFound before bootstrap.
	LoadSystem(ctx context.Context) (*suretymodels.System, error)
	SaveSystem(ctx context.Context, system *suretymodels.System) error
}

type AirlineStore interface {
	FindAirline(ctx context.Context, addr domain.Address) (*airlinemodels.Airline, error)
	// SaveAirline inserts or replaces the airline.
	SaveAirline(ctx context.Context, airline *airlinemodels.Airline) error
	CountAirlines(ctx context.Context) (airlinemodels.Counts, error)
	// ListVotes returns the voters for candidate in insertion order.
	ListVotes(ctx context.Context, candidate domain.Address) ([]domain.Address, error)
	// AppendVote returns sentinel.ErrAlreadyUsed when voter already voted for candidate.
	AppendVote(ctx context.Context, candidate, voter domain.Address) error
	ClearVotes(ctx context.Context, candidate domain.Address) error
}

type FlightStore interface {
	FindFlight(ctx context.Context, key domain.FlightKey) (*flightmodels.Flight, error)
	// CreateFlight returns sentinel.ErrAlreadyUsed when the key exists.
	CreateFlight(ctx context.Context, flight *flightmodels.Flight) error
	// UpdateFlightStatus persists Status and ResolvedAt.
	UpdateFlightStatus(ctx context.Context, flight *flightmodels.Flight) error
}

type InsuranceStore interface {
	// ListClaims returns the flight's claims in purchase order.
	ListClaims(ctx context.Context, key domain.FlightKey) ([]*insurancemodels.Claim, error)
	// AppendClaim returns sentinel.ErrAlreadyUsed when the passenger already holds a claim on the flight.
	AppendClaim(ctx context.Context, claim *insurancemodels.Claim) error
	MarkClaimCredited(ctx context.Context, key domain.FlightKey, passenger domain.Address) error
	// Balance returns zero for unknown addresses.
	Balance(ctx context.Context, addr domain.Address) (domain.Amount, error)
	SetBalance(ctx context.Context, addr domain.Address, amount domain.Amount) error
	Pool(ctx context.Context) (domain.Amount, error)
	SetPool(ctx context.Context, amount domain.Amount) error
}

type OracleStore interface {
	FindOracle(ctx context.Context, addr domain.Address) (*oraclemodels.Oracle, error)
	// CreateOracle returns sentinel.ErrAlreadyUsed when the reporter is registered.
	CreateOracle(ctx context.Context, oracle *oraclemodels.Oracle) error
	FindRequest(ctx context.Context, key domain.RequestKey) (*oraclemodels.Request, error)
	// CreateRequest returns sentinel.ErrAlreadyUsed when the key exists.
	CreateRequest(ctx context.Context, req *oraclemodels.Request) error
	AppendResponse(ctx context.Context, key domain.RequestKey, code domain.StatusCode, reporter domain.Address) error
	CloseRequest(ctx context.Context, req *oraclemodels.Request) error
}
