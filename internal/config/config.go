package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// BackendBaseURL is the clinical REST backend every synchronizer talks to.
	BackendBaseURL string
	RequestTimeout time.Duration

	// Redis backs the durable session token store. When RedisAddr is empty
	// the console falls back to an in-memory store (dev/test only).
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// SessionTokenKey is the well-known key the bearer token is stored under.
	SessionTokenKey string

	// StrictAppointmentFlow switches the appointment status machine from the
	// permissive transition table to the forward-only one.
	StrictAppointmentFlow bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		BackendBaseURL:        getEnv("BACKEND_BASE_URL", "http://127.0.0.1:5000"),
		RequestTimeout:        getEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisTLS:              getEnvAsBool("REDIS_TLS", false),
		SessionTokenKey:       getEnv("SESSION_TOKEN_KEY", "session:token"),
		StrictAppointmentFlow: getEnvAsBool("STRICT_APPOINTMENT_FLOW", false),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
