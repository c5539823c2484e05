package consumer

import (
	"context"
	"log/slog"
	"maps"
	"slices"
)

// Router is a Handler that picks a handler by record topic. Records on
// topics with no handler go to the fallback, or are logged and committed.
type Router struct {
	routes   map[string]Handler
	fallback Handler
	logger   *slog.Logger
}

// NewRouter creates a router. fallback may be nil.
func NewRouter(logger *slog.Logger, fallback Handler) *Router {
	return &Router{
		routes:   make(map[string]Handler),
		fallback: fallback,
		logger:   logger,
	}
}

// Register routes topic to handler, replacing any earlier registration.
func (r *Router) Register(topic string, handler Handler) {
	r.routes[topic] = handler
}

// Topics lists the registered topics in sorted order, for Config.Topics.
func (r *Router) Topics() []string {
	return slices.Sorted(maps.Keys(r.routes))
}

func (r *Router) Handle(ctx context.Context, msg *Message) error {
	if h, ok := r.routes[msg.Topic]; ok {
		return h.Handle(ctx, msg)
	}
	if r.fallback != nil {
		return r.fallback.Handle(ctx, msg)
	}
	r.logger.WarnContext(ctx, "no handler for topic, committing",
		"topic", msg.Topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
	)
	return nil
}
