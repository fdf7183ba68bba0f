package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventSignup             EventType = "signup"
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventBlockCreated       EventType = "block_created"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "username", "ip", "user_id"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewZapLogger builds the production zap config shared by the security and access logs.
func NewZapLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		// Fallback to a basic logger if config fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func NewSecurityLogger(zapLogger *zap.Logger, serviceName, environment string) *SecurityLogger {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	return &SecurityLogger{
		zapLogger:   zapLogger.Named("security"),
		serviceName: serviceName,
		environment: environment,
	}
}

// NopSecurityLogger discards every event. Used in tests.
func NopSecurityLogger() *SecurityLogger {
	return NewSecurityLogger(zap.NewNop(), "test", "test")
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment

	level := zapcore.WarnLevel
	switch event.Event {
	case EventLoginSuccess, EventSignup:
		level = zapcore.InfoLevel
	case EventLoginFailed, EventRateLimitTriggered, EventUnauthorizedAccess:
		level = zapcore.WarnLevel
	case EventLoginBlocked, EventBlockCreated:
		level = zapcore.ErrorLevel
	}
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// LogSignup logs a new account registration
func (sl *SecurityLogger) LogSignup(ctx context.Context, username, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventSignup,
		SubjectType:  "username",
		SubjectValue: MaskUsername(username),
		RequestID:    requestID,
	})
}

// LogLoginSuccess logs a successful login
func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, username, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "username",
		SubjectValue: MaskUsername(username),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
	})
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, username, ip, userAgent, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "username",
		SubjectValue: MaskUsername(username),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogLoginBlocked logs when a login is blocked due to too many attempts
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, username, ip, userAgent, requestID string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "username",
		SubjectValue: MaskUsername(username),
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"reason": "too_many_failed_attempts"},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogUnauthorizedAccess logs a rejected token on a protected route
func (sl *SecurityLogger) LogUnauthorizedAccess(ctx context.Context, ip, requestID, endpoint, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:       EventUnauthorizedAccess,
		SubjectType: "ip",
		IP:          ip,
		RequestID:   requestID,
		Details:     map[string]interface{}{"endpoint": endpoint, "reason": reason},
	})
}

// LogBlockCreated logs when a block is created
func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, subjectType, subjectValue, ip, requestID string, durationMinutes int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  subjectType,
		SubjectValue: maskValue(subjectType, subjectValue),
		IP:           ip,
		RequestID:    requestID,
		Details:      map[string]interface{}{"duration_minutes": durationMinutes},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskUsername masks a username for logging ("j***@example.com", "j***e")
func MaskUsername(username string) string {
	if len(username) < 3 {
		return "***"
	}
	if at := strings.IndexByte(username, '@'); at >= 0 {
		if at <= 1 {
			return "***" + username[at:]
		}
		return username[:1] + "***" + username[at:]
	}
	return username[:1] + "***" + username[len(username)-1:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func maskValue(subjectType, value string) string {
	switch subjectType {
	case "username":
		return MaskUsername(value)
	case "ip":
		return value
	default:
		return HashValue(value)
	}
}
