package circuitbreaker

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/ports"
)

// GuardedCache decorates a Cache with a circuit breaker. A flapping Redis
// must not drag every request into its connect timeout; once the breaker
// opens, reads report misses and writes become no-ops until Redis recovers.
type GuardedCache struct {
	inner   ports.Cache
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewGuardedCache(inner ports.Cache, log *zap.Logger) ports.Cache {
	settings := gobreaker.Settings{
		Name:        "cache",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Cache circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &GuardedCache{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		log:     log,
	}
}

func (c *GuardedCache) Get(ctx context.Context, key string) (string, error) {
	value, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Get(ctx, key)
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (c *GuardedCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.inner.Set(ctx, key, value, expiration)
	})
	return err
}

func (c *GuardedCache) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.inner.Delete(ctx, key)
	})
	return err
}

func (c *GuardedCache) DeletePattern(ctx context.Context, pattern string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.inner.DeletePattern(ctx, pattern)
	})
	return err
}

func (c *GuardedCache) Ping() error {
	return c.inner.Ping()
}

func (c *GuardedCache) Close() error {
	return c.inner.Close()
}
