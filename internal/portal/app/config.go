package app

import (
	"os"
	"strconv"
	"time"

	"github.com/stadspark/dvsportal/pkg/jwtx"
)

type Config struct {
	Issuer     string        // Issuer claim for session tokens
	SessionTTL time.Duration // Session token lifetime (default: jwtx.DefaultSessionTTL)

	DatabaseFile string // Path to SQLite database file (default: ./portal.db)

	// Seed account. The portal has no signup, so a fresh database gets one
	// account with a permit and media at boot. A blank password means the
	// server generates one and logs it once.
	SeedIdentifier string
	SeedPassword   string
	SeedZonalCode  string
	SeedMediaCode  string
	SeedBalance    float64
	SeedUnitPrice  float64

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Lapsed-reservation sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		Issuer:     getEnvOrDefault("PORTAL_ISSUER", "dvsportal-sim"),
		SessionTTL: getEnvDurationOrDefault("PORTAL_SESSION_TTL", jwtx.DefaultSessionTTL),

		DatabaseFile: getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),

		SeedIdentifier: getEnvOrDefault("PORTAL_SEED_IDENTIFIER", "12345"),
		SeedPassword:   os.Getenv("PORTAL_SEED_PASSWORD"), // Optional: generated when unset
		SeedZonalCode:  getEnvOrDefault("PORTAL_SEED_ZONAL_CODE", "Centrum-1"),
		SeedMediaCode:  getEnvOrDefault("PORTAL_SEED_MEDIA_CODE", "100001"),
		SeedBalance:    getEnvFloatOrDefault("PORTAL_SEED_BALANCE", 250),
		SeedUnitPrice:  getEnvFloatOrDefault("PORTAL_SEED_UNIT_PRICE", 0.1),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
