package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fail(b *Breaker, n int) {
	for range n {
		b.RecordFailure()
	}
}

func succeed(b *Breaker, n int) {
	for range n {
		b.RecordSuccess()
	}
}

func TestNewBreakerIsClosed(t *testing.T) {
	b := New("kafka-events")
	assert.Equal(t, "kafka-events", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
}

func TestBreakerOpening(t *testing.T) {
	t.Run("opens on the threshold failure only", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(2))

		useFallback, change := b.RecordFailure()
		assert.False(t, useFallback)
		assert.Equal(t, StateChange{}, change)

		useFallback, change = b.RecordFailure()
		assert.True(t, useFallback)
		assert.True(t, change.Opened)
		assert.Equal(t, "open", b.State().String())

		useFallback, change = b.RecordFailure()
		assert.True(t, useFallback)
		assert.False(t, change.Opened)
	})

	t.Run("failures must be consecutive", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(3))
		fail(b, 2)
		succeed(b, 1)
		fail(b, 2)
		assert.False(t, b.IsOpen())
		fail(b, 1)
		assert.True(t, b.IsOpen())
	})

	t.Run("non-positive thresholds keep defaults", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(0), WithSuccessThreshold(-1))
		fail(b, defaultFailureThreshold-1)
		assert.False(t, b.IsOpen())
		fail(b, 1)
		assert.True(t, b.IsOpen())
	})
}

func TestBreakerClosing(t *testing.T) {
	t.Run("closes after enough probes succeed", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(1), WithSuccessThreshold(2))
		fail(b, 1)
		require.True(t, b.IsOpen())

		usePrimary, change := b.RecordSuccess()
		assert.False(t, usePrimary)
		assert.False(t, change.Closed)

		usePrimary, change = b.RecordSuccess()
		assert.True(t, usePrimary)
		assert.True(t, change.Closed)
		assert.False(t, b.IsOpen())
	})

	t.Run("a failed probe restarts the count", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(1), WithSuccessThreshold(2))
		fail(b, 1)
		succeed(b, 1)
		fail(b, 1)
		succeed(b, 1)
		assert.True(t, b.IsOpen())
		succeed(b, 1)
		assert.False(t, b.IsOpen())
	})

	t.Run("reset", func(t *testing.T) {
		b := New("publish", WithFailureThreshold(1))
		fail(b, 1)
		b.Reset()
		assert.Equal(t, StateClosed, b.State())
		useFallback, _ := b.RecordFailure()
		assert.True(t, useFallback)
	})
}
