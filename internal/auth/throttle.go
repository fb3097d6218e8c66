package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const throttlePrefix = "login_fail:"

// RedisThrottle counts failed logins per email in Redis.
type RedisThrottle struct {
	rdb         *redis.Client
	maxFailures int
	window      time.Duration
}

func NewRedisThrottle(rdb *redis.Client, maxFailures int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{rdb: rdb, maxFailures: maxFailures, window: window}
}

// Blocked reports whether email has reached the failure limit.
func (t *RedisThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := t.rdb.Get(ctx, throttlePrefix+email).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= t.maxFailures, nil
}

// Fail records one failed attempt. The window starts at the first failure.
func (t *RedisThrottle) Fail(ctx context.Context, email string) error {
	key := throttlePrefix + email
	n, err := t.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return t.rdb.Expire(ctx, key, t.window).Err()
	}
	return nil
}

// Reset clears the counter after a successful login.
func (t *RedisThrottle) Reset(ctx context.Context, email string) error {
	return t.rdb.Del(ctx, throttlePrefix+email).Err()
}
