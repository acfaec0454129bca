package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript trims the window and records the event only when it fits.
// It returns {allowed, remaining, oldest score in the window}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local max = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)

if count < max then
	redis.call('ZADD', key, now, ARGV[4])
	redis.call('PEXPIRE', key, ARGV[5])
	return {1, max - count - 1, now}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
return {0, 0, tonumber(oldest[2])}
`)

// SlidingWindowLimiter is a sliding window rate limiter on Redis sorted sets.
// Denied events are not recorded, so a client regains capacity as its
// accepted events age out of the window.
type SlidingWindowLimiter struct {
	client *redis.Client
	prefix string
}

// NewSlidingWindowLimiter creates a limiter whose keys are prefixed with prefix.
func NewSlidingWindowLimiter(client *redis.Client, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{client: client, prefix: prefix}
}

// Allow records one event for key if fewer than max were accepted in the last window.
// reset is when the next event will be accepted.
func (l *SlidingWindowLimiter) Allow(
	ctx context.Context,
	key string,
	window time.Duration,
	max int,
) (allowed bool, remaining int, reset time.Time, err error) {
	if l.client == nil || max <= 0 || window <= 0 {
		return true, max, time.Now().Add(window), nil
	}

	now := time.Now()
	member := fmt.Sprintf("%s:%s", key, uuid.NewString())

	res, err := slidingWindowScript.Run(ctx, l.client, []string{l.prefix + key},
		now.UnixMicro(),
		window.Microseconds(),
		max,
		member,
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return false, 0, now.Add(window), fmt.Errorf("rate limit check failed: %w", err)
	}
	if len(res) != 3 {
		return false, 0, now.Add(window), fmt.Errorf("rate limit check returned %d values", len(res))
	}

	reset = time.UnixMicro(res[2]).Add(window)
	return res[0] == 1, int(res[1]), reset, nil
}
