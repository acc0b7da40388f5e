package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables honored by the library. MaxAttemptsEnv overrides the
// attempt budget of every strategy variant; RetryModeEnv selects the variant
// used by the default strategy.
const (
	RetryModeEnv   = "RETRYKIT_RETRY_MODE"
	MaxAttemptsEnv = "RETRYKIT_MAX_ATTEMPTS"
)

// Config holds all configuration options for the retry library
type Config struct {
	// Retry strategy configuration
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Client-side rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// RetryConfig holds retry strategy configuration
type RetryConfig struct {
	Mode         string        `yaml:"mode" json:"mode"`
	MaxAttempts  int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay    time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay     time.Duration `yaml:"max_delay" json:"max_delay"`
	Multiplier   float64       `yaml:"multiplier" json:"multiplier"`
	JitterFactor float64       `yaml:"jitter_factor" json:"jitter_factor"`
}

// RateLimitConfig holds configuration for the adaptive client-side limiter
// and the retry token quota
type RateLimitConfig struct {
	TokenBucketSize int     `yaml:"token_bucket_size" json:"token_bucket_size"`
	RetryCost       float64 `yaml:"retry_cost" json:"retry_cost"`
	MinFillRate     float64 `yaml:"min_fill_rate" json:"min_fill_rate"`
	SmoothingFactor float64 `yaml:"smoothing_factor" json:"smoothing_factor"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Retry: RetryConfig{
			Mode:         "standard",
			MaxAttempts:  3,
			BaseDelay:    100 * time.Millisecond,
			MaxDelay:     20 * time.Second,
			Multiplier:   2.0,
			JitterFactor: 1.0,
		},
		RateLimit: RateLimitConfig{
			TokenBucketSize: 500,
			RetryCost:       5,
			MinFillRate:     0.5,
			SmoothingFactor: 0.8,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if mode := os.Getenv(RetryModeEnv); mode != "" {
		c.Retry.Mode = strings.ToLower(mode)
	}
	if attempts := os.Getenv(MaxAttemptsEnv); attempts != "" {
		val, err := strconv.Atoi(attempts)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", MaxAttemptsEnv, attempts, err)
		}
		if val > 0 {
			c.Retry.MaxAttempts = val
		}
	}
	if bucket := os.Getenv("RETRYKIT_TOKEN_BUCKET_SIZE"); bucket != "" {
		if val, err := strconv.Atoi(bucket); err == nil && val > 0 {
			c.RateLimit.TokenBucketSize = val
		}
	}
	if logLevel := os.Getenv("RETRYKIT_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".retrykit.yaml",
		".retrykit.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "retrykit", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "retrykit", "config.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	validModes := map[string]bool{
		"standard": true, "adaptive": true, "adaptive_v2": true, "legacy": true,
	}
	if !validModes[strings.ToLower(c.Retry.Mode)] {
		errs = append(errs, errors.New("invalid retry mode"))
	}
	if c.Retry.MaxAttempts <= 0 {
		errs = append(errs, errors.New("max attempts must be positive"))
	}
	if c.Retry.BaseDelay <= 0 {
		errs = append(errs, errors.New("base delay must be positive"))
	}
	if c.Retry.MaxDelay < c.Retry.BaseDelay {
		errs = append(errs, errors.New("max delay must not be below base delay"))
	}
	if c.Retry.JitterFactor < 0 || c.Retry.JitterFactor > 1 {
		errs = append(errs, errors.New("jitter factor must be between 0 and 1"))
	}

	if c.RateLimit.TokenBucketSize <= 0 {
		errs = append(errs, errors.New("token bucket size must be positive"))
	}
	if c.RateLimit.RetryCost < 0 {
		errs = append(errs, errors.New("retry cost cannot be negative"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Environment variables > .env file > Config file > Defaults
func Load(configPath string) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".retrykit.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// MaxAttemptsOverride returns the process-wide max attempts override, if one
// is present in the environment. Absence is the normal path and not an error.
func MaxAttemptsOverride() (int, bool) {
	raw := os.Getenv(MaxAttemptsEnv)
	if raw == "" {
		return 0, false
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// RetryModeSetting returns the retry mode requested through the environment,
// or the empty string when none is set
func RetryModeSetting() string {
	return strings.ToLower(os.Getenv(RetryModeEnv))
}
