package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"flightsurety/pkg/platform/circuit"
)

// RecordProducer is the slice of the Kafka producer the publisher needs.
type RecordProducer interface {
	ProduceSync(ctx context.Context, topic string, key, value []byte) error
}

// KafkaPublisher writes events as JSON records keyed by subject so every
// event about one flight or airline lands on the same partition.
//
// While the breaker is open, events go to the fallback publisher instead; a
// probe is still attempted on every publish so the breaker can close again.
type KafkaPublisher struct {
	producer RecordProducer
	topic    string
	breaker  *circuit.Breaker
	fallback Publisher
	logger   *slog.Logger
}

func NewKafkaPublisher(producer RecordProducer, topic string, fallback Publisher, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		breaker:  circuit.New("kafka-events"),
		fallback: fallback,
		logger:   logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.producer.ProduceSync(ctx, p.topic, []byte(e.Subject), payload); err != nil {
		useFallback, change := p.breaker.RecordFailure()
		if change.Opened {
			p.logger.WarnContext(ctx, "event publisher circuit opened", "breaker", p.breaker.Name(), "error", err)
		}
		if useFallback && p.fallback != nil {
			return p.fallback.Publish(ctx, e)
		}
		return err
	}

	if _, change := p.breaker.RecordSuccess(); change.Closed {
		p.logger.InfoContext(ctx, "event publisher circuit closed", "breaker", p.breaker.Name())
	}
	return nil
}

// Decode parses a record value produced by KafkaPublisher.
func Decode(value []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(value, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}
