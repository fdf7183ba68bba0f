package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	Environment string
	LogLevel    string
	// Token signing
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration
	// Password hashing
	BcryptCost int
	// Comma separated list, "*" allows any origin
	CORSAllowedOrigins []string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds  int
	RateLimitAuthThreshold  int
	FailedLoginBlockMinutes int
	FailedLoginMaxAttempts  int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		Environment: environmentFromGinMode(getEnv("GIN_MODE", "")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JWTSecret:   getEnv("JWT_SECRET", getEnv("SECRET", "")),
		JWTIssuer:   getEnv("JWT_ISSUER", "go-jobs-backend"),
		JWTTTL:      getEnvDuration("JWT_TTL", 72*time.Hour),
		BcryptCost:  getEnvInt("BCRYPT_COST", 10),
		// Sanitize: drop trailing slashes so "https://a.com/" matches the Origin header
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisURL:           getEnv("REDIS_URL", ""),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:  getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitAuthThreshold:  getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 20), // 20 signup/login calls per window
		FailedLoginBlockMinutes: getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:  getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Tokens cannot be issued or verified.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback and login lockout is disabled.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func environmentFromGinMode(mode string) string {
	if mode == "release" {
		return "production"
	}
	return "development"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("72h") or a plain number of seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
