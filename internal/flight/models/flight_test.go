package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

var airline = domain.MustAddress("0x00000000000000000000000000000000000000a1")

func TestNewFlight(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	f, err := NewFlight(airline, " F100 ", 1700000000, "AMS", "JFK", now)
	require.NoError(t, err)
	assert.Equal(t, "F100", f.Number)
	assert.Equal(t, domain.NewFlightKey(airline, "F100", 1700000000), f.Key)
	assert.False(t, f.IsLanded())

	_, err = NewFlight(airline, "", 1700000000, "AMS", "JFK", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = NewFlight(airline, "F100", 1700000000, "", "JFK", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	_, err = NewFlight(airline, "F100", 0, "AMS", "JFK", now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestResolutionIsWrittenOnce(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f, err := NewFlight(airline, "F100", 1700000000, "AMS", "JFK", now)
	require.NoError(t, err)

	require.NoError(t, f.CanResolve(domain.StatusLateAirline))
	assert.True(t, f.ApplyResolution(domain.StatusLateAirline, now))

	// data-layer path: silent no-op
	assert.False(t, f.ApplyResolution(domain.StatusOnTime, now))
	assert.Equal(t, domain.StatusLateAirline, f.Status)

	// caller-facing path: rejected
	err = f.CanResolve(domain.StatusOnTime)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))
	assert.Equal(t, domain.StatusLateAirline, f.Status)
}
