package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Physiotattva scheduling API
	PhysiotattvaBaseURL string
	PhysiotattvaUserID  string
	UpstreamTimeout     time.Duration

	// Defensive fallback when the agent passes a placeholder instead of a
	// real phone number.
	FallbackPhoneNumber string

	// Booking defaults applied when neither the function call nor the last
	// slot query supplies a value.
	DefaultConsultationType string
	DefaultCampus           string
	DefaultSpeciality       string
	DefaultPaymentMode      string
	DefaultWeekSelection    string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		PhysiotattvaBaseURL: getEnv("PHYSIOTATTVA_BASE_URL", "https://api-dev.physiotattva247.com"),
		PhysiotattvaUserID:  getEnv("PHYSIOTATTVA_USER_ID", "1"),
		UpstreamTimeout:     getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),

		FallbackPhoneNumber: getEnv("FALLBACK_PHONE_NUMBER", "9873219957"),

		DefaultConsultationType: getEnv("DEFAULT_CONSULTATION_TYPE", "Online"),
		DefaultCampus:           getEnv("DEFAULT_CAMPUS", "Indiranagar"),
		DefaultSpeciality:       getEnv("DEFAULT_SPECIALITY", "Physiotherapist"),
		DefaultPaymentMode:      getEnv("DEFAULT_PAYMENT_MODE", "pay now"),
		DefaultWeekSelection:    getEnv("DEFAULT_WEEK_SELECTION", "this week"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", nil),
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
