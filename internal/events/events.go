// Package events defines the notifications emitted for external observers.
//
// Components record events into a collector bound to the operation's context.
// The surety app publishes the collected events only after the ledger
// transaction commits; a rolled-back operation emits nothing. The core never
// consumes events as inputs.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"flightsurety/pkg/requestcontext"
)

// Type names a domain event.
type Type string

const (
	AirlineVoted          Type = "airline_voted"
	AirlineAdmitted       Type = "airline_admitted"
	AirlineFunded         Type = "airline_funded"
	FlightRegistered      Type = "flight_registered"
	FlightStatusRequested Type = "flight_status_requested"
	FlightStatusResolved  Type = "flight_status_resolved"
	ReporterRegistered    Type = "reporter_registered"
	StatusReported        Type = "status_reported"
	PassengerInsured      Type = "passenger_insured"
	InsureeCredited       Type = "insuree_credited"
	PayoutMade            Type = "payout_made"
	OperationalChanged    Type = "operational_changed"
)

// Event is a transport-agnostic notification.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       Type              `json:"type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Actor      string            `json:"actor,omitempty"`
	Subject    string            `json:"subject"`
	RequestID  string            `json:"request_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// New stamps an event with an id, the request time and the request id.
func New(ctx context.Context, typ Type, actor, subject string, attrs map[string]string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		OccurredAt: requestcontext.Now(ctx),
		Actor:      actor,
		Subject:    subject,
		RequestID:  requestcontext.RequestID(ctx),
		Attributes: attrs,
	}
}

// Collector buffers events recorded during one operation.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

type collectorKey struct{}

// WithCollector binds a fresh collector to ctx.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

// Record appends e to the collector bound to ctx. Without a collector the
// event is dropped.
func Record(ctx context.Context, e Event) {
	c, ok := ctx.Value(collectorKey{}).(*Collector)
	if !ok {
		return
	}
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

// Emit is New followed by Record.
func Emit(ctx context.Context, typ Type, actor, subject string, attrs map[string]string) {
	Record(ctx, New(ctx, typ, actor, subject, attrs))
}

// Events returns the recorded events in order.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset discards recorded events.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.events = nil
	c.mu.Unlock()
}
