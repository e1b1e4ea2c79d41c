// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// ClientServiceConfig provides settings for the outbound client-service lookup.
type ClientServiceConfig interface {
	GetClientServiceURL() string
	GetClientServiceTimeout() time.Duration
}

// BreakerConfig provides circuit breaker tuning for the client-service call.
type BreakerConfig interface {
	GetBreakerWindowSize() int
	GetBreakerMinCalls() int
	GetBreakerFailureRate() float64
	GetBreakerCooldown() time.Duration
	GetBreakerHalfOpenMax() int
}

// WorkerConfig provides settings for the movement-stream worker.
type WorkerConfig interface {
	GetRedisURL() string
	GetQueueName() string
	GetWorkerConcurrency() int
}

// =============================================================================
// Config
// =============================================================================

// Config holds all application settings loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	CORSAllowAll   bool
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	ClientServiceURL     string
	ClientServiceTimeout time.Duration

	BreakerWindowSize  int
	BreakerMinCalls    int
	BreakerFailureRate float64
	BreakerCooldown    time.Duration
	BreakerHalfOpenMax int

	RedisURL          string
	QueueName         string
	WorkerConcurrency int
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		ClientServiceURL:     getEnv("CLIENT_SERVICE_URL", "http://localhost:8081"),
		ClientServiceTimeout: getEnvDuration("CLIENT_SERVICE_TIMEOUT", 5*time.Second),

		BreakerWindowSize:  getEnvInt("BREAKER_WINDOW_SIZE", 10),
		BreakerMinCalls:    getEnvInt("BREAKER_MIN_CALLS", 5),
		BreakerFailureRate: getEnvFloat("BREAKER_FAILURE_RATE", 0.5),
		BreakerCooldown:    getEnvDuration("BREAKER_COOLDOWN", 30*time.Second),
		BreakerHalfOpenMax: getEnvInt("BREAKER_HALF_OPEN_MAX", 2),

		RedisURL:          getEnv("REDIS_URL", ""),
		QueueName:         getEnv("QUEUE_NAME", "movements"),
		WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 10),
	}

	return cfg, nil
}

// Interface implementations

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

func (c *Config) GetClientServiceURL() string            { return c.ClientServiceURL }
func (c *Config) GetClientServiceTimeout() time.Duration { return c.ClientServiceTimeout }

func (c *Config) GetBreakerWindowSize() int           { return c.BreakerWindowSize }
func (c *Config) GetBreakerMinCalls() int             { return c.BreakerMinCalls }
func (c *Config) GetBreakerFailureRate() float64      { return c.BreakerFailureRate }
func (c *Config) GetBreakerCooldown() time.Duration   { return c.BreakerCooldown }
func (c *Config) GetBreakerHalfOpenMax() int          { return c.BreakerHalfOpenMax }

func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetQueueName() string      { return c.QueueName }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }

// Helpers

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
