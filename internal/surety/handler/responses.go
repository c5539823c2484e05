package handler

import (
	oraclemodels "flightsurety/internal/oracle/models"
	"flightsurety/pkg/domain"
)

// AmountResponse wraps a wei amount.
type AmountResponse struct {
	Amount domain.Amount `json:"amount"`
}

// OperationalResponse reports the kill switch state.
type OperationalResponse struct {
	Operational bool `json:"operational"`
}

// IndicesResponse lists a reporter's assigned indices.
type IndicesResponse struct {
	Indices [oraclemodels.IndexCount]domain.Index `json:"indices"`
}

// RequestResponse describes an oracle request with per-code tallies.
type RequestResponse struct {
	Key         domain.RequestKey `json:"key"`
	Index       domain.Index      `json:"index"`
	Airline     domain.Address    `json:"airline"`
	Flight      string            `json:"flight"`
	Timestamp   int64             `json:"timestamp"`
	Open        bool              `json:"open"`
	Tallies     map[string]int    `json:"tallies"`
	SettledCode domain.StatusCode `json:"settled_code,omitempty"`
}

// FromRequest converts an oracle request for display.
func FromRequest(r *oraclemodels.Request) *RequestResponse {
	tallies := make(map[string]int)
	for slot, reporters := range r.Responses {
		if len(reporters) > 0 {
			tallies[domain.StatusCodeAt(slot).String()] = len(reporters)
		}
	}
	return &RequestResponse{
		Key:         r.Key,
		Index:       r.Index,
		Airline:     r.Airline,
		Flight:      r.Flight,
		Timestamp:   r.Timestamp,
		Open:        r.Open,
		Tallies:     tallies,
		SettledCode: r.SettledCode,
	}
}
