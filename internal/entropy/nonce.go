package entropy

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	dErrors "flightsurety/pkg/domain-errors"
	"flightsurety/pkg/platform/sentinel"
)

// NonceSource hands out strictly increasing nonces.
type NonceSource interface {
	Next(ctx context.Context) (uint64, error)
}

// MemoryNonce is a process-local counter.
type MemoryNonce struct {
	n atomic.Uint64
}

func NewMemoryNonce() *MemoryNonce {
	return &MemoryNonce{}
}

func (m *MemoryNonce) Next(_ context.Context) (uint64, error) {
	return m.n.Add(1), nil
}

// DefaultNonceKey is the Redis key used when none is configured.
const DefaultNonceKey = "flightsurety:entropy:nonce"

// RedisNonce shares one counter between server replicas via INCR.
type RedisNonce struct {
	client redis.Cmdable
	key    string
}

func NewRedisNonce(client redis.Cmdable, key string) *RedisNonce {
	if key == "" {
		key = DefaultNonceKey
	}
	return &RedisNonce{client: client, key: key}
}

func (r *RedisNonce) Next(ctx context.Context) (uint64, error) {
	n, err := r.client.Incr(ctx, r.key).Uint64()
	if err != nil {
		return 0, dErrors.Wrap(fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err), dErrors.CodeInternal, "failed to advance entropy nonce")
	}
	return n, nil
}
