package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "flightsurety/pkg/domain-errors"
)

func TestParseAddress(t *testing.T) {
	t.Run("accepts mixed case and normalizes to lowercase", func(t *testing.T) {
		a, err := ParseAddress("0xAbCdEf0000000000000000000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, "0xabcdef0000000000000000000000000000000001", a.String())
	})

	cases := map[string]string{
		"empty":          "",
		"missing prefix": "abcdef0000000000000000000000000000000001",
		"too short":      "0xabcdef",
		"not hex":        "0xzzcdef0000000000000000000000000000000001",
		"zero address":   "0x0000000000000000000000000000000000000000",
	}
	for name, input := range cases {
		t.Run("rejects "+name, func(t *testing.T) {
			_, err := ParseAddress(input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	one := Ether(1)
	assert.Equal(t, "1000000000000000000", one.String())

	t.Run("payout percentage", func(t *testing.T) {
		assert.Equal(t, "1500000000000000000", one.MulDiv(150, 100).String())
	})

	t.Run("sub underflow reports false", func(t *testing.T) {
		_, ok := NewAmount(1).Sub(NewAmount(2))
		assert.False(t, ok)
		diff, ok := NewAmount(5).Sub(NewAmount(2))
		require.True(t, ok)
		assert.Equal(t, 0, diff.Cmp(NewAmount(3)))
	})

	t.Run("parse rejects negatives", func(t *testing.T) {
		_, err := ParseAmount("-1")
		require.Error(t, err)
	})

	t.Run("float approximation", func(t *testing.T) {
		assert.InDelta(t, 1.5e18, one.MulDiv(150, 100).Float64(), 1)
	})

	t.Run("text round trip", func(t *testing.T) {
		var a Amount
		require.NoError(t, a.UnmarshalText([]byte("10000000000000000000")))
		assert.Equal(t, 0, a.Cmp(Ether(10)))
	})
}

func TestStatusCodes(t *testing.T) {
	known := []StatusCode{StatusUnknown, StatusOnTime, StatusLateAirline, StatusLateWeather, StatusLateTechnical, StatusLateOther}
	seen := map[int]bool{}
	for _, c := range known {
		assert.True(t, c.IsKnown())
		slot := c.Slot()
		assert.GreaterOrEqual(t, slot, 0)
		assert.Less(t, slot, StatusCodeCount)
		assert.False(t, seen[slot], "slot reused")
		seen[slot] = true
		assert.Equal(t, c, StatusCodeAt(slot))
	}

	assert.Equal(t, -1, StatusCode(15).Slot())
	_, err := ParseStatusCode(25)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	code, err := ParseStatusCode(20)
	require.NoError(t, err)
	assert.Equal(t, StatusLateAirline, code)
}

func TestKeys(t *testing.T) {
	airline := MustAddress("0x00000000000000000000000000000000000000a1")

	t.Run("keccak of empty input", func(t *testing.T) {
		assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", Keccak256().String())
	})

	t.Run("flight key depends on every component", func(t *testing.T) {
		base := NewFlightKey(airline, "F100", 1700000000)
		assert.Equal(t, base, NewFlightKey(airline, "F100", 1700000000))
		assert.NotEqual(t, base, NewFlightKey(airline, "F101", 1700000000))
		assert.NotEqual(t, base, NewFlightKey(airline, "F100", 1700000001))
		other := MustAddress("0x00000000000000000000000000000000000000a2")
		assert.NotEqual(t, base, NewFlightKey(other, "F100", 1700000000))
	})

	t.Run("request key varies with index", func(t *testing.T) {
		k7 := NewRequestKey(7, airline, "F100", 1700000000)
		k3 := NewRequestKey(3, airline, "F100", 1700000000)
		assert.NotEqual(t, k7, k3)
	})

	t.Run("flight key text round trip", func(t *testing.T) {
		key := NewFlightKey(airline, "F100", 1700000000)
		parsed, err := ParseFlightKey(key.String())
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	})

	t.Run("index bounds", func(t *testing.T) {
		_, err := ParseIndex(10)
		require.Error(t, err)
		idx, err := ParseIndex(9)
		require.NoError(t, err)
		assert.True(t, idx.Valid())
	})
}
