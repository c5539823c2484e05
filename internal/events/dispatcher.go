package events

import (
	"context"
	"log/slog"
	"time"
)

// Dispatcher hands committed events to a Publisher.
type Dispatcher interface {
	Dispatch(ctx context.Context, events []Event)
}

// SyncDispatcher publishes inline. Failures are logged, never returned: the
// operation that produced the events has already committed.
type SyncDispatcher struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewSyncDispatcher(publisher Publisher, logger *slog.Logger) *SyncDispatcher {
	return &SyncDispatcher{publisher: publisher, logger: logger}
}

func (d *SyncDispatcher) Dispatch(ctx context.Context, events []Event) {
	for _, e := range events {
		if err := d.publisher.Publish(ctx, e); err != nil {
			d.logger.WarnContext(ctx, "failed to publish event",
				"event", string(e.Type),
				"event_id", e.ID.String(),
				"error", err,
			)
		}
	}
}

// AsyncDispatcher buffers events and publishes them from a background worker,
// keeping slow sinks off the request path.
type AsyncDispatcher struct {
	backlog   *Backlog
	publisher Publisher
	logger    *slog.Logger
	batch     int
	interval  time.Duration
	wake      chan struct{}
}

// NewAsyncDispatcher creates a dispatcher; call Run to start draining.
func NewAsyncDispatcher(publisher Publisher, logger *slog.Logger, capacity int) *AsyncDispatcher {
	return &AsyncDispatcher{
		backlog:   NewBacklog(capacity),
		publisher: publisher,
		logger:    logger,
		batch:     100,
		interval:  250 * time.Millisecond,
		wake:      make(chan struct{}, 1),
	}
}

func (d *AsyncDispatcher) Dispatch(_ context.Context, events []Event) {
	d.backlog.PushAll(events)
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Run drains the backlog until ctx is cancelled, then flushes what is left.
func (d *AsyncDispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			d.drain(context.WithoutCancel(ctx))
			return nil
		case <-ticker.C:
		case <-d.wake:
		}
		d.drain(ctx)
	}
}

func (d *AsyncDispatcher) drain(ctx context.Context) {
	for {
		batch := d.backlog.Take(d.batch)
		if len(batch) == 0 {
			return
		}
		for _, e := range batch {
			if err := d.publisher.Publish(ctx, e); err != nil {
				d.logger.WarnContext(ctx, "failed to publish event",
					"event", string(e.Type),
					"event_id", e.ID.String(),
					"error", err,
				)
			}
		}
	}
}

// Dropped reports events lost to backlog overflow.
func (d *AsyncDispatcher) Dropped() int64 {
	return d.backlog.Dropped()
}
