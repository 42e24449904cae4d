package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces token bucket state in Redis.
const KeyPrefix = "ratelimit:tb:"

// Token bucket state is a hash {last_refill, tokens}, refilled lazily on each call.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= requested then
	tokens = tokens - requested
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, ttl)
return allowed
`)

// Config holds configuration for the limiter.
type Config struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// Limiter is a Redis-backed token bucket shared by every transport.
type Limiter struct {
	client redis.Scripter
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a new Limiter. A nil client disables limiting.
func New(client redis.Scripter, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Enabled reports whether requests are actually limited.
func (l *Limiter) Enabled() bool {
	return l != nil && l.config.Enabled && l.client != nil
}

// Key builds the bucket key for a caller of an endpoint.
func Key(endpoint, client string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefix, endpoint, client)
}

// Allow consumes one token from the bucket identified by key.
// Redis failures are logged and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if !l.Enabled() {
		return true
	}

	// Keep the bucket around long enough to refill completely.
	ttl := int64(float64(l.config.BurstCapacity)/l.config.RequestsPerSecond) + 1
	if ttl < 60 {
		ttl = 60
	}

	now := float64(l.now().UnixNano()) / float64(time.Second)

	allowed, err := tokenBucket.Run(ctx, l.client, []string{key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
		1,
		ttl,
	).Int64()
	if err != nil {
		l.log.Warn("rate limiter redis error, allowing request",
			zap.String("key", key),
			zap.Error(err),
		)
		return true
	}

	if allowed == 0 {
		l.log.Warn("rate limit exceeded",
			zap.String("key", key),
			zap.Float64("requests_per_second", l.config.RequestsPerSecond),
			zap.Int("burst_capacity", l.config.BurstCapacity),
		)
		return false
	}

	return true
}
