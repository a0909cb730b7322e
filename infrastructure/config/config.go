package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// BaseURL is the externally visible site origin used to derive
	// published form URLs
	BaseURL string

	// Storage
	DatabasePath string

	// Session cookie signing. The session only encodes a boolean
	// "authenticated" flag; this is UI gating, not a security boundary.
	SessionSecret string
	SessionIssuer string

	// Field suggestion service
	SuggestionAPIKey string
	SuggestionModel  string

	// Image analysis relay
	AnalyzeUpstreamURL string
	RelayAddress       string

	// Logging and features
	LogLevel   string
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		DatabasePath:  getEnv("DATABASE_PATH", "data/formforge.db"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionIssuer: getEnv("SESSION_ISSUER", "formforge-backend"),

		SuggestionAPIKey: getEnv("GEMINI_API_KEY", ""),
		SuggestionModel:  getEnv("SUGGESTION_MODEL", ""),

		AnalyzeUpstreamURL: getEnv("ANALYZE_UPSTREAM_URL", "http://localhost:5000/analyze"),
		RelayAddress:       getEnv("RELAY_ADDRESS", ":8081"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL cannot be empty")
	}
	return nil
}

// IsDevelopment reports whether the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
