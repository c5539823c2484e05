package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightsurety/pkg/domain"
)

func TestParseStrategy(t *testing.T) {
	t.Run("numeric code is fixed", func(t *testing.T) {
		s, err := ParseStrategy("20", 0)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusLateAirline, s.Choose(StatusRequested{}, domain.Address{}))
	})

	t.Run("unsupported code", func(t *testing.T) {
		_, err := ParseStrategy("25", 0)
		assert.Error(t, err)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := ParseStrategy("20abc", 0)
		assert.Error(t, err)
	})

	t.Run("unknown status is not reportable", func(t *testing.T) {
		_, err := ParseStrategy("0", 0)
		assert.Error(t, err)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParseStrategy("chaos", 0)
		assert.Error(t, err)
	})

	t.Run("random never reports unknown", func(t *testing.T) {
		s, err := ParseStrategy("random", 42)
		require.NoError(t, err)
		for range 200 {
			code := s.Choose(StatusRequested{}, domain.Address{})
			assert.True(t, code.IsKnown())
			assert.NotEqual(t, domain.StatusUnknown, code)
		}
	})

	t.Run("random is reproducible with a seed", func(t *testing.T) {
		a, b := NewRandom(7), NewRandom(7)
		for range 20 {
			assert.Equal(t, a.Choose(StatusRequested{}, domain.Address{}), b.Choose(StatusRequested{}, domain.Address{}))
		}
	})
}
