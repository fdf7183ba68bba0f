package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // Maximum failed attempts before block (default: 5)
	AttemptWindow time.Duration // Time window for tracking attempts (default: 15min)
	BlockDuration time.Duration // How long to block after max attempts (default: 15min)
	UseIPTracking bool          // Also track by IP address (default: true)
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
		UseIPTracking: true,
	}
}

// LoginTracker tracks failed login attempts and enforces temporary blocks.
// A nil Redis client disables tracking: nothing is blocked and nothing recorded.
type LoginTracker struct {
	client goredis.UniversalClient
	config LoginTrackerConfig
	logger *SecurityLogger
}

func NewLoginTracker(client goredis.UniversalClient, config LoginTrackerConfig, logger *SecurityLogger) *LoginTracker {
	if logger == nil {
		logger = NopSecurityLogger()
	}
	return &LoginTracker{
		client: client,
		config: config,
		logger: logger,
	}
}

// Redis key patterns
const (
	failLoginUserPrefix    = "fail:login:user:"
	failLoginIPPrefix      = "fail:login:ip:"
	blockedLoginUserPrefix = "blocked:login:user:"
	blockedLoginIPPrefix   = "blocked:login:ip:"
)

// KEYS[1] = counter key, ARGV[1] = TTL in seconds. Returns the count after increment.
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

// Enabled reports whether a Redis backend is attached.
func (lt *LoginTracker) Enabled() bool {
	return lt != nil && lt.client != nil
}

// IsBlocked checks if the given username or IP is currently blocked
func (lt *LoginTracker) IsBlocked(ctx context.Context, username, ip string) (bool, error) {
	if !lt.Enabled() {
		return false, nil
	}

	exists, err := lt.client.Exists(ctx, blockedLoginUserPrefix+normalize(username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check user block: %w", err)
	}
	if exists > 0 {
		return true, nil
	}

	if lt.config.UseIPTracking && ip != "" {
		exists, err := lt.client.Exists(ctx, blockedLoginIPPrefix+ip).Result()
		if err != nil {
			return false, fmt.Errorf("failed to check IP block: %w", err)
		}
		if exists > 0 {
			return true, nil
		}
	}

	return false, nil
}

// RecordFailedAttempt records a failed login attempt.
// Returns (blocked, currentAttempts, error).
func (lt *LoginTracker) RecordFailedAttempt(ctx context.Context, username, ip, userAgent, requestID string) (bool, int, error) {
	lt.logger.LogLoginFailed(ctx, username, ip, userAgent, requestID, "invalid_credentials")

	if !lt.Enabled() {
		return false, 0, nil
	}

	ttlSeconds := int(lt.config.AttemptWindow.Seconds())

	userCount, err := lt.atomicIncrement(ctx, failLoginUserPrefix+normalize(username), ttlSeconds)
	if err != nil {
		return false, 0, fmt.Errorf("failed to increment user counter: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_, _ = lt.atomicIncrement(ctx, failLoginIPPrefix+ip, ttlSeconds) // Best effort
	}

	if userCount >= lt.config.MaxAttempts {
		if err := lt.createBlock(ctx, username, ip, requestID); err != nil {
			return true, userCount, fmt.Errorf("failed to create block: %w", err)
		}
		return true, userCount, nil
	}

	return false, userCount, nil
}

func (lt *LoginTracker) atomicIncrement(ctx context.Context, key string, ttlSeconds int) (int, error) {
	result, err := lt.client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

func (lt *LoginTracker) createBlock(ctx context.Context, username, ip, requestID string) error {
	blockTTL := lt.config.BlockDuration

	if err := lt.client.Set(ctx, blockedLoginUserPrefix+normalize(username), "1", blockTTL).Err(); err != nil {
		return fmt.Errorf("failed to set user block: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		if err := lt.client.Set(ctx, blockedLoginIPPrefix+ip, "1", blockTTL).Err(); err != nil {
			// user is already blocked
			lt.logger.zapLogger.Warn("failed to set IP block", zap.Error(err))
		}
	}

	lt.logger.LogBlockCreated(ctx, "username", username, ip, requestID, int(blockTTL.Minutes()))
	return nil
}

// ClearAttempts clears failed login attempts on successful login
func (lt *LoginTracker) ClearAttempts(ctx context.Context, username, ip string) error {
	if !lt.Enabled() {
		return nil
	}

	if err := lt.client.Del(ctx, failLoginUserPrefix+normalize(username)).Err(); err != nil {
		return fmt.Errorf("failed to clear user attempts: %w", err)
	}

	if lt.config.UseIPTracking && ip != "" {
		_ = lt.client.Del(ctx, failLoginIPPrefix+ip).Err() // Best effort
	}

	return nil
}

// GetRemainingAttempts returns how many attempts remain before a block
func (lt *LoginTracker) GetRemainingAttempts(ctx context.Context, username string) (int, error) {
	if !lt.Enabled() {
		return lt.config.MaxAttempts, nil
	}

	count, err := lt.client.Get(ctx, failLoginUserPrefix+normalize(username)).Int()
	if errors.Is(err, goredis.Nil) {
		return lt.config.MaxAttempts, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get attempt count: %w", err)
	}

	remaining := lt.config.MaxAttempts - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
