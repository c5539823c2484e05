//go:build integration

package entropy_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"flightsurety/internal/entropy"
	"flightsurety/internal/platform/config"
	platformredis "flightsurety/internal/platform/redis"
	"flightsurety/pkg/testutil/containers"
)

type RedisNonceSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	nonce *entropy.RedisNonce
}

func TestRedisNonceSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisNonceSuite))
}

func (s *RedisNonceSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.nonce = entropy.NewRedisNonce(s.redis.Client, "")
}

func (s *RedisNonceSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// Replicas sharing one Redis never observe the same nonce.
func (s *RedisNonceSuite) TestConcurrentNoncesAreUnique() {
	ctx := context.Background()
	const goroutines = 50

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = make(map[uint64]bool)
	)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := s.nonce.Next(ctx)
			s.NoError(err)
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(seen, goroutines)
}

func (s *RedisNonceSuite) TestSharedCounterAcrossInstances() {
	ctx := context.Background()
	other := entropy.NewRedisNonce(s.redis.Client, entropy.DefaultNonceKey)

	a, err := s.nonce.Next(ctx)
	s.Require().NoError(err)
	b, err := other.Next(ctx)
	s.Require().NoError(err)
	s.Equal(a+1, b)
}

// The server's configured client sees the same counter as the test client.
func (s *RedisNonceSuite) TestConfiguredClient() {
	ctx := context.Background()
	client, err := platformredis.New(ctx, config.RedisConfig{URL: s.redis.URL, PoolSize: 2})
	s.Require().NoError(err)
	defer client.Close()
	s.NoError(client.Health(ctx))

	a, err := s.nonce.Next(ctx)
	s.Require().NoError(err)
	b, err := entropy.NewRedisNonce(client, entropy.DefaultNonceKey).Next(ctx)
	s.Require().NoError(err)
	s.Equal(a+1, b)
}
