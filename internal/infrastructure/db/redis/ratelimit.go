package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

const (
	defaultMaxAttempts = 10
	defaultWindow      = time.Minute
)

// LoginLimiter throttles login attempts per username, backed by Redis.
// Key format: login_attempts:<username>
//
// The limiter fails open: if Redis is unreachable the attempt is allowed, so
// an observability outage does not lock every account out.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginLimiter creates a LoginLimiter. Non-positive maxAttempts or window
// fall back to 10 attempts per minute.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow records one attempt and returns domain.ErrTooManyAttempts once the
// account exceeded its budget inside the current window.
func (l *LoginLimiter) Allow(ctx context.Context, username string) error {
	key := l.key(username)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return nil
	}
	if count == 1 {
		_ = l.client.Expire(ctx, key, l.window).Err()
	}
	if count > int64(l.maxAttempts) {
		return domain.ErrTooManyAttempts
	}
	return nil
}

func (l *LoginLimiter) key(username string) string {
	return fmt.Sprintf("login_attempts:%s", username)
}
