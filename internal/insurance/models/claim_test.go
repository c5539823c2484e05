package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightsurety/pkg/domain"
	dErrors "flightsurety/pkg/domain-errors"
)

func TestNewClaim(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	key := domain.NewFlightKey(domain.MustAddress("0x00000000000000000000000000000000000000a1"), "F100", 1700000000)
	passenger := domain.MustAddress("0x00000000000000000000000000000000000000c1")
	max := domain.Ether(1)

	c, err := NewClaim(key, passenger, domain.Ether(1), max, now)
	require.NoError(t, err)
	assert.Equal(t, uint64(PayoutPercentage), c.PayoutPercentage)
	assert.Equal(t, "1500000000000000000", c.Payout().String())
	assert.False(t, c.Credited)

	_, err = NewClaim(key, passenger, domain.Amount{}, max, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))

	_, err = NewClaim(key, passenger, domain.Ether(1).Add(domain.NewAmount(1)), max, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodePreconditionFailed))
}

func TestPayoutTruncates(t *testing.T) {
	c := &Claim{Premium: domain.NewAmount(3), PayoutPercentage: PayoutPercentage}
	assert.Equal(t, "4", c.Payout().String())
}
