package config

import (
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"

	"statkit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Generator GeneratorConfig
	Inference InferenceConfig
	Log       LogConfig
}

// GeneratorConfig holds dataset generation settings
type GeneratorConfig struct {
	Samples    int
	Seed       int64
	OutputPath string
}

// InferenceConfig holds confidence and significance levels
type InferenceConfig struct {
	Confidence float64
	Alpha      float64
}

// LogConfig holds logging settings
type LogConfig struct {
	Level zapcore.Level
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	logConfig, err := loadLogConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load log configuration")
	}

	config := &Config{
		Generator: *loadGeneratorConfig(),
		Inference: *loadInferenceConfig(),
		Log:       *logConfig,
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Samples:    getEnvIntOrDefault("STATKIT_SAMPLES", 4000),
		Seed:       getEnvInt64OrDefault("STATKIT_SEED", 42),
		OutputPath: getEnvOrDefault("STATKIT_OUTPUT", ""),
	}
}

func loadInferenceConfig() *InferenceConfig {
	return &InferenceConfig{
		Confidence: getEnvFloatOrDefault("STATKIT_CONFIDENCE", 0.95),
		Alpha:      getEnvFloatOrDefault("STATKIT_ALPHA", 0.05),
	}
}

func loadLogConfig() (*LogConfig, error) {
	level, err := zapcore.ParseLevel(getEnvOrDefault("STATKIT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, errors.ConfigInvalid("STATKIT_LOG_LEVEL must be one of debug, info, warn, error")
	}
	return &LogConfig{Level: level}, nil
}

func validateConfig(config *Config) error {
	if config.Generator.Samples < 1 {
		return errors.ConfigInvalid("STATKIT_SAMPLES must be positive")
	}
	if !(config.Inference.Confidence > 0 && config.Inference.Confidence < 1) {
		return errors.ConfigInvalid("STATKIT_CONFIDENCE must be in (0, 1)")
	}
	if !(config.Inference.Alpha > 0 && config.Inference.Alpha < 1) {
		return errors.ConfigInvalid("STATKIT_ALPHA must be in (0, 1)")
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

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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
