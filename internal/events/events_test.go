package events

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightsurety/pkg/requestcontext"
)

func TestCollectorScopesEventsToContext(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	base := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), fixed), "req-7")

	ctx, c := WithCollector(base)
	Emit(ctx, FlightRegistered, "0xa1", "0xkey", map[string]string{"number": "F100"})
	Emit(base, FlightRegistered, "0xa1", "0xdropped", nil)

	got := c.Events()
	require.Len(t, got, 1)
	assert.Equal(t, FlightRegistered, got[0].Type)
	assert.Equal(t, fixed, got[0].OccurredAt)
	assert.Equal(t, "req-7", got[0].RequestID)
	assert.Equal(t, "F100", got[0].Attributes["number"])

	c.Reset()
	assert.Empty(t, c.Events())
}

func TestBacklogDropsOldest(t *testing.T) {
	b := NewBacklog(2)
	b.PushAll([]Event{{Subject: "1"}, {Subject: "2"}})
	b.PushAll([]Event{{Subject: "3"}})

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, int64(1), b.Dropped())

	batch := b.Take(10)
	require.Len(t, batch, 2)
	assert.Equal(t, "2", batch[0].Subject)
	assert.Equal(t, "3", batch[1].Subject)
	assert.Nil(t, b.Take(1))
}

func TestBacklogDefaultCapacity(t *testing.T) {
	b := NewBacklog(0)
	events := make([]Event, defaultBacklogCapacity+1)
	b.PushAll(events)

	assert.Equal(t, defaultBacklogCapacity, b.Len())
	assert.Equal(t, int64(1), b.Dropped())
}

func TestBacklogWrapsAround(t *testing.T) {
	b := NewBacklog(3)
	b.PushAll([]Event{{Subject: "a"}, {Subject: "b"}})
	require.Len(t, b.Take(1), 1)
	b.PushAll([]Event{{Subject: "c"}, {Subject: "d"}})

	batch := b.Take(2)
	require.Len(t, batch, 2)
	assert.Equal(t, "b", batch[0].Subject)
	assert.Equal(t, "c", batch[1].Subject)
	assert.Equal(t, 1, b.Len())
	assert.Zero(t, b.Dropped())
}

func TestFanoutJoinsErrors(t *testing.T) {
	mem := NewMemoryPublisher()
	f := Fanout{mem, failing{}}
	err := f.Publish(context.Background(), Event{Type: PayoutMade})
	require.Error(t, err)
	assert.Len(t, mem.OfType(PayoutMade), 1)
}

func TestAsyncDispatcherFlushesOnShutdown(t *testing.T) {
	mem := NewMemoryPublisher()
	d := NewAsyncDispatcher(mem, discardLogger(), 16)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()

	d.Dispatch(context.Background(), []Event{{Type: AirlineFunded}, {Type: PayoutMade}})
	cancel()
	<-done

	assert.Len(t, mem.Events(), 2)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type failing struct{}

func (failing) Publish(context.Context, Event) error { return assert.AnError }
