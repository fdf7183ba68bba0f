package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobs-backend/internal/delivery/http/response"
	"go-jobs-backend/pkg/apperror"
	"go-jobs-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis errors
	FailClosed bool
}

// AuthRateLimitConfig returns strict config for signup/login
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:auth:",
		FailClosed: false,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns [count, ttl].
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is configured and in
// process memory otherwise.
type RateLimiter struct {
	client goredis.UniversalClient
	secLog *security.SecurityLogger

	store     sync.Map
	sweepMu   sync.Mutex
	nextSweep time.Time
}

func NewRateLimiter(client goredis.UniversalClient, secLog *security.SecurityLogger) *RateLimiter {
	if secLog == nil {
		secLog = security.NopSecurityLogger()
	}
	return &RateLimiter{client: client, secLog: secLog}
}

// Middleware returns a handler enforcing config.
func (rl *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var (
			count   int
			resetAt time.Time
			err     error
		)
		if rl.client != nil {
			count, resetAt, err = rl.checkRedis(c.Request.Context(), fullKey, config)
			if err != nil {
				if config.FailClosed {
					_ = c.Error(apperror.New(http.StatusServiceUnavailable, "service temporarily unavailable", err))
					c.Abort()
					return
				}
				count, resetAt = rl.checkInMemory(fullKey, config, now)
			}
		} else {
			count, resetAt = rl.checkInMemory(fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			rl.secLog.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), c.GetString(response.RequestIDKey), c.FullPath())

			_ = c.Error(apperror.TooManyRequests("rate limit exceeded, try again later"))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func (rl *RateLimiter) checkRedis(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := rl.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

func (rl *RateLimiter) checkInMemory(key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	rl.sweep(now)

	entryI, _ := rl.store.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(config.Window)})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}

// sweep drops expired in-memory entries at most once every five minutes.
func (rl *RateLimiter) sweep(now time.Time) {
	rl.sweepMu.Lock()
	if now.Before(rl.nextSweep) {
		rl.sweepMu.Unlock()
		return
	}
	rl.nextSweep = now.Add(5 * time.Minute)
	rl.sweepMu.Unlock()

	rl.store.Range(func(key, value interface{}) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		expired := now.After(entry.resetAt)
		entry.mu.Unlock()
		if expired {
			rl.store.Delete(key)
		}
		return true
	})
}
