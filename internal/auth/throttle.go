package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultMaxLoginFailures = 5

// failureCounter is the part of the Redis client the throttle uses.
type failureCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// LoginThrottle counts failed logins per email and locks the email once
// maxFailures land inside one window. The window starts at the first failure.
// A nil Redis client disables it.
type LoginThrottle struct {
	rdb         failureCounter
	window      time.Duration
	maxFailures int64
}

func NewLoginThrottle(rdb *redis.Client, window time.Duration, maxFailures int) *LoginThrottle {
	// keep a nil client from becoming a non-nil interface
	if rdb == nil {
		return newLoginThrottle(nil, window, maxFailures)
	}
	return newLoginThrottle(rdb, window, maxFailures)
}

func newLoginThrottle(rdb failureCounter, window time.Duration, maxFailures int) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxLoginFailures
	}
	return &LoginThrottle{rdb: rdb, window: window, maxFailures: int64(maxFailures)}
}

func throttleKey(email string) string {
	return fmt.Sprintf("rate_limit:login:%s", strings.ToLower(email))
}

func (t *LoginThrottle) disabled() bool {
	return t == nil || t.rdb == nil || t.window <= 0
}

// Locked reports whether the email has used up its failures and how long the
// lockout has left.
func (t *LoginThrottle) Locked(ctx context.Context, email string) (bool, time.Duration, error) {
	if t.disabled() {
		return false, 0, nil
	}

	key := throttleKey(email)
	n, err := t.rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to check login throttle in redis: %w", err)
	}
	if n < t.maxFailures {
		return false, 0, nil
	}

	ttl, err := t.rdb.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check login throttle in redis: %w", err)
	}
	return ttl > 0, ttl, nil
}

func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if t.disabled() {
		return nil
	}

	key := throttleKey(email)
	n, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to record login failure in redis: %w", err)
	}
	if n == 1 {
		if err := t.rdb.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("failed to set login throttle window in redis: %w", err)
		}
	}
	return nil
}

func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if t == nil || t.rdb == nil {
		return nil
	}
	return t.rdb.Del(ctx, throttleKey(email)).Err()
}
