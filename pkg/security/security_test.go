package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMaskUsername(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskUsername("john@example.com"))
	assert.Equal(t, "***@example.com", MaskUsername("j@example.com"))
	assert.Equal(t, "j***e", MaskUsername("johndoe"))
	assert.Equal(t, "***", MaskUsername("jd"))
}

func TestSecurityLoggerLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := NewSecurityLogger(zap.New(core), "go-jobs-backend", "test")

	sl.LogLoginSuccess(context.Background(), "john@example.com", "10.0.0.1", "curl", "req-1")
	sl.LogLoginBlocked(context.Background(), "john@example.com", "10.0.0.1", "curl", "req-2")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "login_success", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
}

func TestLoginTrackerWithoutRedisFailsOpen(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	lt := NewLoginTracker(nil, DefaultLoginTrackerConfig(), NewSecurityLogger(zap.New(core), "svc", "test"))
	ctx := context.Background()

	assert.False(t, lt.Enabled())

	blocked, err := lt.IsBlocked(ctx, "john", "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, blocked)

	for i := 0; i < 10; i++ {
		blocked, count, err := lt.RecordFailedAttempt(ctx, "john", "10.0.0.1", "curl", "req")
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Zero(t, count)
	}
	// failures are still logged
	assert.Equal(t, 10, logs.FilterMessage("login_failed").Len())

	remaining, err := lt.GetRemainingAttempts(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, 5, remaining)
	assert.NoError(t, lt.ClearAttempts(ctx, "john", "10.0.0.1"))
}
