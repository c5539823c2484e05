package events

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// Publisher delivers events to observers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// LogPublisher writes events as structured log entries.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	attrs := []any{
		"event", string(e.Type),
		"log_type", "audit",
		"event_id", e.ID.String(),
		"subject", e.Subject,
		"request_id", e.RequestID,
	}
	if e.Actor != "" {
		attrs = append(attrs, "actor", e.Actor)
	}
	for k, v := range e.Attributes {
		attrs = append(attrs, k, v)
	}
	p.logger.InfoContext(ctx, string(e.Type), attrs...)
	return nil
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MemoryPublisher keeps published events in memory.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

// Events returns everything published so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// OfType filters published events by type.
func (p *MemoryPublisher) OfType(typ Type) []Event {
	var out []Event
	for _, e := range p.Events() {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
