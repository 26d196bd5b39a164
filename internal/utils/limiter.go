package utils

import (
	"context" // Context for Redis operations
	"time"    // Lockout window

	"github.com/redis/go-redis/v9" // Redis client
)

// RedisLimiter counts failed logins per email in an expiring counter and locks further attempts once the limit is hit
type RedisLimiter struct {
	rdb         *redis.Client // Redis client
	maxAttempts int           // Failures allowed inside the window
	window      time.Duration // Counter lifetime, started by the first failure
}

// NewRedisLimiter creates a Redis backed login limiter
func NewRedisLimiter(rdb *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, maxAttempts: maxAttempts, window: window}
}

// limiterKey returns the Redis key holding the failure count for an email
func limiterKey(email string) string {
	return "login:failures:" + email
}

// Allowed reports whether another login attempt may be made for email
func (l *RedisLimiter) Allowed(ctx context.Context, email string) (bool, error) {
	n, err := l.rdb.Get(ctx, limiterKey(email)).Int() // Current failure count
	if err == redis.Nil {
		return true, nil // No failures recorded
	} else if err != nil {
		return false, err // Other Redis error
	}
	return n < l.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the window on the first failure
func (l *RedisLimiter) RecordFailure(ctx context.Context, email string) error {
	key := limiterKey(email)
	n, err := l.rdb.Incr(ctx, key).Result() // Count this failure
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, l.window).Err() // First failure opens the window
	}
	return nil
}

// Reset clears the failure counter after a successful login
func (l *RedisLimiter) Reset(ctx context.Context, email string) error {
	return l.rdb.Del(ctx, limiterKey(email)).Err() // Delete key from Redis
}
