package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	throttleWindow     = 15 * time.Minute
	defaultMaxFailures = 5
)

// LoginThrottle counts failed login attempts per account in Redis and blocks
// further attempts once the window limit is reached.
// Key format: login_failures:<login>
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// If maxFailures <= 0, defaultMaxFailures is used.
func NewLoginThrottle(client *redis.Client, maxFailures int64) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	return &LoginThrottle{client: client, maxFailures: maxFailures}
}

// Blocked reports whether the account has exhausted its attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, login string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(login)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure bumps the failure counter, starting the expiry window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, login string) error {
	key := t.key(login)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, throttleWindow).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, login string) error {
	return t.client.Del(ctx, t.key(login)).Err()
}

func (t *LoginThrottle) key(login string) string {
	return fmt.Sprintf("login_failures:%s", login)
}
