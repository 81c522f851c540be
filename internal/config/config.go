package config

import (
	"os"
	"strconv"

	"gowrangle/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Server   ServerConfig
	Pipeline PipelineConfig
}

// DatabaseConfig holds database connection settings. URL may be empty,
// in which case mappings are kept in memory only.
type DatabaseConfig struct {
	URL string
}

// AIConfig holds LLM abbreviation settings
type AIConfig struct {
	OpenAIKey   string
	OpenAIModel string
	BaseURL     string
	MaxTokens   int
	Temperature float64
	TimeoutMS   int
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// PipelineConfig holds header wrangling settings
type PipelineConfig struct {
	BatchSize            int
	MaxConcurrentBatches int
	NumericRatio         float64
	EmptyRatio           float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		AI: AIConfig{
			OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
			OpenAIModel: getEnvOrDefault("LLM_MODEL", "gpt-4.1-mini"),
			BaseURL:     getEnvOrDefault("LLM_BASE_URL", ""),
			MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 3000),
			Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.2),
			TimeoutMS:   getEnvIntOrDefault("LLM_TIMEOUT_MS", 180000),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Pipeline: PipelineConfig{
			BatchSize:            getEnvIntOrDefault("ABBREV_BATCH_SIZE", 25),
			MaxConcurrentBatches: getEnvIntOrDefault("ABBREV_MAX_CONCURRENT", 1),
			NumericRatio:         getEnvFloatOrDefault("HEADER_NUMERIC_RATIO", 0.3),
			EmptyRatio:           getEnvFloatOrDefault("HEADER_EMPTY_RATIO", 0.5),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Pipeline.BatchSize <= 0 {
		return errors.ConfigInvalid("ABBREV_BATCH_SIZE must be positive")
	}
	if config.Pipeline.NumericRatio < 0 || config.Pipeline.NumericRatio > 1 {
		return errors.ConfigInvalid("HEADER_NUMERIC_RATIO must be in [0, 1]")
	}
	if config.Pipeline.EmptyRatio < 0 || config.Pipeline.EmptyRatio > 1 {
		return errors.ConfigInvalid("HEADER_EMPTY_RATIO must be in [0, 1]")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
