package handler

import (
	"strings"

	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

const maxFieldLength = 64

// AdmitAirlineRequest is the body for POST /v1/airlines.
type AdmitAirlineRequest struct {
	Candidate string `json:"candidate"`

	parsedCandidate domain.Address
}

func (r *AdmitAirlineRequest) Normalize() {
	r.Candidate = strings.TrimSpace(r.Candidate)
}

// Validate implements httputil.Validatable.
func (r *AdmitAirlineRequest) Validate() error {
	if r.Candidate == "" {
		return dErrors.New(dErrors.CodeValidation, "candidate is required")
	}
	addr, err := domain.ParseAddress(r.Candidate)
	if err != nil {
		return err
	}
	r.parsedCandidate = addr
	return nil
}

// ValueRequest carries attached value in wei, as a decimal string.
// Used by funding, insurance purchase and reporter registration.
type ValueRequest struct {
	Value string `json:"value"`

	parsedValue domain.Amount
}

func (r *ValueRequest) Normalize() {
	r.Value = strings.TrimSpace(r.Value)
}

func (r *ValueRequest) Validate() error {
	if r.Value == "" {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	v, err := domain.ParseAmount(r.Value)
	if err != nil {
		return err
	}
	r.parsedValue = v
	return nil
}

// RegisterFlightRequest is the body for POST /v1/flights.
type RegisterFlightRequest struct {
	Number    string `json:"number"`
	Timestamp int64  `json:"timestamp"`
	Departure string `json:"departure"`
	Arrival   string `json:"arrival"`
}

func (r *RegisterFlightRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.Departure = strings.ToUpper(strings.TrimSpace(r.Departure))
	r.Arrival = strings.ToUpper(strings.TrimSpace(r.Arrival))
}

func (r *RegisterFlightRequest) Validate() error {
	if len(r.Number) > maxFieldLength || len(r.Departure) > maxFieldLength || len(r.Arrival) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "flight fields must be 64 characters or less")
	}
	if r.Number == "" {
		return dErrors.New(dErrors.CodeValidation, "number is required")
	}
	if r.Timestamp <= 0 {
		return dErrors.New(dErrors.CodeValidation, "timestamp must be positive")
	}
	return nil
}

// StatusRequestRequest is the body for POST /v1/status-requests.
type StatusRequestRequest struct {
	Airline   string `json:"airline"`
	Flight    string `json:"flight"`
	Timestamp int64  `json:"timestamp"`

	parsedAirline domain.Address
}

func (r *StatusRequestRequest) Normalize() {
	r.Airline = strings.TrimSpace(r.Airline)
	r.Flight = strings.TrimSpace(r.Flight)
}

func (r *StatusRequestRequest) Validate() error {
	if r.Airline == "" || r.Flight == "" {
		return dErrors.New(dErrors.CodeValidation, "airline and flight are required")
	}
	if len(r.Flight) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "flight must be 64 characters or less")
	}
	if r.Timestamp <= 0 {
		return dErrors.New(dErrors.CodeValidation, "timestamp must be positive")
	}
	addr, err := domain.ParseAddress(r.Airline)
	if err != nil {
		return err
	}
	r.parsedAirline = addr
	return nil
}

// ReportRequest is the body for POST /v1/reports.
type ReportRequest struct {
	Index     int    `json:"index"`
	Airline   string `json:"airline"`
	Flight    string `json:"flight"`
	Timestamp int64  `json:"timestamp"`
	Status    int    `json:"status"`

	parsed oraclemodels.Report
}

func (r *ReportRequest) Normalize() {
	r.Airline = strings.TrimSpace(r.Airline)
	r.Flight = strings.TrimSpace(r.Flight)
}

// Validate checks shape only. Unsupported status codes are left for the
// oracle to reject as a report outcome.
func (r *ReportRequest) Validate() error {
	if r.Airline == "" || r.Flight == "" {
		return dErrors.New(dErrors.CodeValidation, "airline and flight are required")
	}
	if len(r.Flight) > maxFieldLength {
		return dErrors.New(dErrors.CodeValidation, "flight must be 64 characters or less")
	}
	if r.Status < 0 || r.Status > 255 {
		return dErrors.New(dErrors.CodeValidation, "status out of range")
	}
	idx, err := domain.ParseIndex(r.Index)
	if err != nil {
		return err
	}
	addr, err := domain.ParseAddress(r.Airline)
	if err != nil {
		return err
	}
	r.parsed = oraclemodels.Report{
		Index:     idx,
		Airline:   addr,
		Flight:    r.Flight,
		Timestamp: r.Timestamp,
		Status:    domain.StatusCode(r.Status),
	}
	return nil
}

// OperationalRequest is the body for PUT /v1/operational.
type OperationalRequest struct {
	Operational *bool `json:"operational"`
}

func (r *OperationalRequest) Validate() error {
	if r.Operational == nil {
		return dErrors.New(dErrors.CodeValidation, "operational is required")
	}
	return nil
}
