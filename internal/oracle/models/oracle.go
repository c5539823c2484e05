package models

import (
	"time"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

// MinResponses is the number of matching reports that settles a request.
const MinResponses = 3

// IndexCount is the number of indices assigned to each reporter.
const IndexCount = 3

// Oracle is a registered reporter.
//
// Invariants:
//   - Indices are pairwise distinct and each lies in [0, domain.IndexRange)
//   - Indices never change after registration
type Oracle struct {
	Address      domain.Address           `json:"address"`
	Indices      [IndexCount]domain.Index `json:"indices"`
	Fee          domain.Amount            `json:"fee"`
	RegisteredAt time.Time                `json:"registered_at"`
}

// NewOracle validates the index assignment.
func NewOracle(addr domain.Address, indices [IndexCount]domain.Index, fee domain.Amount, now time.Time) (*Oracle, error) {
	if addr.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "reporter address is required")
	}
	for i, idx := range indices {
		if !idx.Valid() {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporter index out of range")
		}
		for j := 0; j < i; j++ {
			if indices[j] == idx {
				return nil, dErrors.New(dErrors.CodeInvariantViolation, "reporter indices must be distinct")
			}
		}
	}
	return &Oracle{Address: addr, Indices: indices, Fee: fee, RegisteredAt: now}, nil
}

// Holds reports whether idx is one of the reporter's indices.
func (o *Oracle) Holds(idx domain.Index) bool {
	for _, own := range o.Indices {
		if own == idx {
			return true
		}
	}
	return false
}

// Request is a status fetch awaiting reporter consensus.
//
// Invariants:
//   - Responses has one bucket per known status code, addressed by StatusCode.Slot
//   - A reporter appears at most once across all buckets
//   - Once closed, a request never reopens and accepts no further responses
type Request struct {
	Key         domain.RequestKey                       `json:"key"`
	Requester   domain.Address                          `json:"requester"`
	Index       domain.Index                            `json:"index"`
	Airline     domain.Address                          `json:"airline"`
	Flight      string                                  `json:"flight"`
	Timestamp   int64                                   `json:"timestamp"`
	Open        bool                                    `json:"open"`
	Responses   [domain.StatusCodeCount][]domain.Address `json:"responses"`
	SettledCode domain.StatusCode                       `json:"settled_code"`
	OpenedAt    time.Time                               `json:"opened_at"`
	ClosedAt    *time.Time                              `json:"closed_at,omitempty"`
}

// NewRequest opens a request for the given index and flight identity.
func NewRequest(requester domain.Address, index domain.Index, airline domain.Address, flight string, timestamp int64, now time.Time) *Request {
	return &Request{
		Key:       domain.NewRequestKey(index, airline, flight, timestamp),
		Requester: requester,
		Index:     index,
		Airline:   airline,
		Flight:    flight,
		Timestamp: timestamp,
		Open:      true,
		OpenedAt:  now,
	}
}

// HasReported reports whether reporter already appears in any bucket.
func (r *Request) HasReported(reporter domain.Address) bool {
	for _, bucket := range r.Responses {
		for _, addr := range bucket {
			if addr == reporter {
				return true
			}
		}
	}
	return false
}

// Count returns the bucket size for code.
func (r *Request) Count(code domain.StatusCode) int {
	slot := code.Slot()
	if slot < 0 {
		return 0
	}
	return len(r.Responses[slot])
}

// ApplyResponse appends reporter to the code's bucket and returns the new count.
// The caller validates the code and reporter first.
func (r *Request) ApplyResponse(reporter domain.Address, code domain.StatusCode) int {
	slot := code.Slot()
	r.Responses[slot] = append(r.Responses[slot], reporter)
	return len(r.Responses[slot])
}

// ApplyClose settles the request on code.
func (r *Request) ApplyClose(code domain.StatusCode, now time.Time) {
	r.Open = false
	r.SettledCode = code
	r.ClosedAt = &now
}

// Report is a reporter's status assertion.
type Report struct {
	Index     domain.Index      `json:"index"`
	Airline   domain.Address    `json:"airline"`
	Flight    string            `json:"flight"`
	Timestamp int64             `json:"timestamp"`
	Status    domain.StatusCode `json:"status"`
}

// Key derives the request key the report targets.
func (r Report) Key() domain.RequestKey {
	return domain.NewRequestKey(r.Index, r.Airline, r.Flight, r.Timestamp)
}

// RejectReason explains why a report was ignored.
type RejectReason string

const (
	RejectUnknownReporter  RejectReason = "unknown_reporter"
	RejectIndexNotAssigned RejectReason = "index_not_assigned"
	RejectNoRequest        RejectReason = "no_request"
	RejectRequestClosed    RejectReason = "request_closed"
	RejectUnsupportedCode  RejectReason = "unsupported_status_code"
	RejectFlightLanded     RejectReason = "flight_already_landed"
	RejectDuplicateReport  RejectReason = "duplicate_report"
)

// ReportOutcome is the non-fatal result of a report submission.
type ReportOutcome struct {
	Accepted   bool              `json:"accepted"`
	Reason     RejectReason      `json:"reason,omitempty"`
	Count      int               `json:"count"`
	Settled    bool              `json:"settled"`
	StatusCode domain.StatusCode `json:"status_code"`
	Key        domain.RequestKey `json:"key"`
}

// Rejected builds a rejection outcome.
func Rejected(key domain.RequestKey, reason RejectReason) ReportOutcome {
	return ReportOutcome{Key: key, Reason: reason}
}

// StatusRequest identifies an opened request.
type StatusRequest struct {
	Index   domain.Index      `json:"index"`
	Key     domain.RequestKey `json:"key"`
	Created bool              `json:"created"`
}

// Registration is the result of registering a reporter.
type Registration struct {
	Indices [IndexCount]domain.Index `json:"indices"`
	Fee     domain.Amount            `json:"fee"`
	Refund  domain.Amount            `json:"refund"`
}
