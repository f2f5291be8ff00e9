package cache

import (
	"errors"
	"time"
)

// Cache is the read-through cache the services use: redis behind a circuit
// breaker. Every method degrades to an error the caller can ignore; a cache
// outage never fails a request.
type Cache struct {
	redis   *RedisCache
	breaker *CircuitBreaker
}

func New(redisCache *RedisCache) *Cache {
	return &Cache{
		redis:   redisCache,
		breaker: NewCircuitBreaker(5, 30*time.Second),
	}
}

func (c *Cache) Get(key string, dest interface{}) error {
	var miss bool
	err := c.breaker.Execute(func() error {
		err := c.redis.Get(key, dest)
		if errors.Is(err, ErrCacheMiss) {
			// A miss is a healthy answer, not a redis failure.
			miss = true
			return nil
		}
		return err
	})
	if err != nil {
		return err
	}
	if miss {
		return ErrCacheMiss
	}
	return nil
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	return c.breaker.Execute(func() error {
		return c.redis.Set(key, value, ttl)
	})
}

func (c *Cache) Delete(keys ...string) error {
	return c.breaker.Execute(func() error {
		return c.redis.Delete(keys...)
	})
}

func (c *Cache) DeletePattern(pattern string) error {
	return c.breaker.Execute(func() error {
		return c.redis.DeletePattern(pattern)
	})
}
