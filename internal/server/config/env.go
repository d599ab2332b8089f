package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file in the working directory is loaded first; variables already set
// in the process environment win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.EndpointAddrHTTP = getEnv("ADDRESS", config.EndpointAddrHTTP)
	config.DatabaseDSN = getEnv("DATABASE_DSN", config.DatabaseDSN)
	config.SecretKey = getEnv("JWT_SECRET", config.SecretKey)
	config.TokenValidityDuration = getEnvAsDuration("TOKEN_VALIDITY_DURATION", config.TokenValidityDuration)
	config.RequestTimeout = getEnvAsDuration("REQUEST_TIMEOUT", config.RequestTimeout)
	config.CORSAllowedOrigins = getEnv("CORS_ALLOWED_ORIGINS", config.CORSAllowedOrigins)
	config.GinMode = getEnv("GIN_MODE", config.GinMode)
}

// getEnv returns the value of the environment variable or the fallback when
// it is unset or empty.
func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

// getEnvAsDuration parses the variable with time.ParseDuration ("24h",
// "90s"). Unparsable values fall back silently.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return fallback
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallback
	}
	return value
}
