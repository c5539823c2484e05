package domain

import (
	"fmt"

	dErrors "flightsurety/pkg/domain-errors"
)

// StatusCode is a flight outcome reported by reporters.
// Zero means unresolved; every other known code is terminal.
type StatusCode uint8

const (
	StatusUnknown       StatusCode = 0
	StatusOnTime        StatusCode = 10
	StatusLateAirline   StatusCode = 20
	StatusLateWeather   StatusCode = 30
	StatusLateTechnical StatusCode = 40
	StatusLateOther     StatusCode = 50
)

// StatusCodeCount is the size of the known status code enumeration.
const StatusCodeCount = 6

var statusNames = map[StatusCode]string{
	StatusUnknown:       "unknown",
	StatusOnTime:        "on_time",
	StatusLateAirline:   "late_airline",
	StatusLateWeather:   "late_weather",
	StatusLateTechnical: "late_technical",
	StatusLateOther:     "late_other",
}

// ParseStatusCode validates a numeric status code from external input.
//
// Errors: returns CodeInvalidInput for codes outside the enumeration.
func ParseStatusCode(n int) (StatusCode, error) {
	if n < 0 || n > 255 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "status code out of range")
	}
	c := StatusCode(n)
	if !c.IsKnown() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unsupported status code %d", n))
	}
	return c, nil
}

func (c StatusCode) IsKnown() bool {
	_, ok := statusNames[c]
	return ok
}

// Slot maps a known code to its position in a fixed per-code table.
// Unknown codes return -1.
func (c StatusCode) Slot() int {
	if !c.IsKnown() {
		return -1
	}
	return int(c) / 10
}

// StatusCodeAt is the inverse of Slot.
func StatusCodeAt(slot int) StatusCode {
	return StatusCode(slot * 10)
}

func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(c))
}
