// Copyright 2025 Farmer Super App Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	// ErrMissingRequiredField is returned when a required configuration field is missing
	ErrMissingRequiredField = errors.New("missing required configuration field")
	// ErrInvalidConfigValue is returned when a configuration value is invalid
	ErrInvalidConfigValue = errors.New("invalid configuration value")
)

// Config represents the complete application configuration
type Config struct {
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Weather    WeatherConfig    `mapstructure:"weather"`
	Market     MarketConfig     `mapstructure:"market"`
	Generation GenerationConfig `mapstructure:"generation"`
	UserDB     UserDBConfig     `mapstructure:"userdb"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// OpenAIConfig contains OpenAI API configuration
type OpenAIConfig struct {
	APIKey      string   `mapstructure:"apikey"`
	Models      []string `mapstructure:"models"`
	MaxTokens   int      `mapstructure:"max_tokens"`
	Temperature float64  `mapstructure:"temperature"`
}

// WeatherConfig contains OpenWeatherMap configuration
type WeatherConfig struct {
	APIKey  string `mapstructure:"apikey"`
	BaseURL string `mapstructure:"base_url"`
}

// MarketConfig contains data.gov.in mandi price configuration
type MarketConfig struct {
	APIKey  string `mapstructure:"apikey"`
	BaseURL string `mapstructure:"base_url"`
}

// GenerationConfig tunes model fallback and response caching
type GenerationConfig struct {
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	BaseDelaySeconds  int           `mapstructure:"base_delay_seconds"`
	StepDelaySeconds  int           `mapstructure:"step_delay_seconds"`
	RateLimitWaitSecs int           `mapstructure:"rate_limit_wait_seconds"`
	MaxJitterSeconds  int           `mapstructure:"max_jitter_seconds"`
}

// UserDBConfig contains farmer profile storage configuration
type UserDBConfig struct {
	StorageType string `mapstructure:"storage_type"`
	FilePath    string `mapstructure:"file_path"`
	DBPath      string `mapstructure:"db_path"`
}

// ChatConfig bounds the in-memory conversation history
type ChatConfig struct {
	MaxConversations int           `mapstructure:"max_conversations"`
	TTL              time.Duration `mapstructure:"ttl"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed for field '%s': %s", e.Field, e.Message)
}

// LoadOptions contains options for configuration loading
type LoadOptions struct {
	ConfigPath       string
	EnableHotReload  bool
	Environment      string
	ValidateRequired bool
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over config file values
func Load(configPath string) (*Config, error) {
	return LoadWithOptions(LoadOptions{
		ConfigPath:       configPath,
		EnableHotReload:  false,
		Environment:      getEnvironment(),
		ValidateRequired: true,
	})
}

// LoadWithOptions loads configuration with additional options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Set configuration file path
	if err := setConfigFile(v, opts.ConfigPath); err != nil {
		return nil, fmt.Errorf("failed to set config file: %w", err)
	}

	// Enable environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("FARMER_APP")

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found is not an error if env vars are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set explicit environment variable mappings
	setEnvironmentMappings(v)

	// Unmarshal configuration
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if opts.ValidateRequired {
		if err := validateConfig(&config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// OpenAI defaults
	v.SetDefault("openai.models", []string{"gpt-4o-mini", "gpt-4o", "gpt-3.5-turbo"})
	v.SetDefault("openai.max_tokens", 1024)
	v.SetDefault("openai.temperature", 0.3)

	// Weather defaults
	v.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5/weather")

	// Market defaults
	v.SetDefault("market.base_url", "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070")

	// Generation defaults
	v.SetDefault("generation.cache_ttl", time.Hour)
	v.SetDefault("generation.base_delay_seconds", 1)
	v.SetDefault("generation.step_delay_seconds", 2)
	v.SetDefault("generation.rate_limit_wait_seconds", 5)
	v.SetDefault("generation.max_jitter_seconds", 1)

	// User storage defaults
	v.SetDefault("userdb.storage_type", "file")
	v.SetDefault("userdb.file_path", "./data/user_db.json")
	v.SetDefault("userdb.db_path", "./data/users.db")

	// Chat defaults
	v.SetDefault("chat.max_conversations", 1000)
	v.SetDefault("chat.ttl", 24*time.Hour)

	// Server defaults
	v.SetDefault("server.port", 8080)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// setConfigFile sets the configuration file path with fallback logic
func setConfigFile(v *viper.Viper, configPath string) error {
	// Check for CONFIG_PATH environment variable
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return fmt.Errorf("config file specified by CONFIG_PATH does not exist: %s", envPath)
		}
		v.SetConfigFile(envPath)
		return nil
	}

	// Use provided config path
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("config file does not exist: %s", configPath)
		}
		v.SetConfigFile(configPath)
		return nil
	}

	// Default fallback locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Check if config file exists in any of the paths
	configExists := false
	for _, path := range []string{"./configs/config.yaml", "./config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			configExists = true
			break
		}
	}

	if !configExists {
		return fmt.Errorf("no config file found in default locations (./configs/config.yaml, ./config.yaml)")
	}

	return nil
}

// setEnvironmentMappings sets explicit environment variable mappings
func setEnvironmentMappings(v *viper.Viper) {
	// Map common environment variables
	envMappings := map[string]string{
		"OPENAI_API_KEY":      "openai.apikey",
		"OPENWEATHER_API_KEY": "weather.apikey",
		"DATA_GOV_KEY":        "market.apikey",
		"USER_DB_PATH":        "userdb.file_path",
		"LOG_LEVEL":           "logging.level",
		"LOG_FORMAT":          "logging.format",
		"LOG_OUTPUT":          "logging.output",
	}

	for envVar, configKey := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			v.Set(configKey, value)
		}
	}
}

// validateConfig validates the configuration for required fields and valid values
func validateConfig(config *Config) error {
	var errors []ValidationError

	// Weather and market keys are optional: missing keys degrade to
	// simulated data. The OpenAI key is required for generation.
	if config.OpenAI.APIKey == "" {
		errors = append(errors, ValidationError{
			Field:   "openai.apikey",
			Message: "OpenAI API key is required. Set via config file or OPENAI_API_KEY environment variable",
		})
	}

	if len(config.OpenAI.Models) == 0 {
		errors = append(errors, ValidationError{
			Field:   "openai.models",
			Message: "at least one model must be configured",
		})
	}

	if config.OpenAI.MaxTokens <= 0 {
		errors = append(errors, ValidationError{
			Field:   "openai.max_tokens",
			Message: "max_tokens must be greater than 0",
		})
	}

	if config.OpenAI.Temperature < 0 || config.OpenAI.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "openai.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if config.Generation.CacheTTL < 0 {
		errors = append(errors, ValidationError{
			Field:   "generation.cache_ttl",
			Message: "cache_ttl must be greater than or equal to 0",
		})
	}

	if config.Chat.MaxConversations <= 0 {
		errors = append(errors, ValidationError{
			Field:   "chat.max_conversations",
			Message: "max_conversations must be greater than 0",
		})
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: "port must be between 1 and 65535",
		})
	}

	// Validate enum values
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, config.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("log level must be one of: %s", strings.Join(validLogLevels, ", ")),
		})
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, config.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("log format must be one of: %s", strings.Join(validLogFormats, ", ")),
		})
	}

	validStorageTypes := []string{"file", "sqlite"}
	if !contains(validStorageTypes, config.UserDB.StorageType) {
		errors = append(errors, ValidationError{
			Field:   "userdb.storage_type",
			Message: fmt.Sprintf("storage type must be one of: %s", strings.Join(validStorageTypes, ", ")),
		})
	}

	// Validate directory existence for file paths
	if config.UserDB.StorageType == "sqlite" && config.UserDB.DBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "userdb.db_path",
			Message: "user database path is required for sqlite storage",
		})
	}
	if config.UserDB.StorageType == "file" && config.UserDB.FilePath == "" {
		errors = append(errors, ValidationError{
			Field:   "userdb.file_path",
			Message: "user store file path is required for file storage",
		})
	}

	// Return all validation errors
	if len(errors) > 0 {
		var errorMessages []string
		for _, err := range errors {
			errorMessages = append(errorMessages, err.Error())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errorMessages, "\n"))
	}

	return nil
}

// MaskSensitiveValues returns a copy of the config with sensitive values masked
func (c *Config) MaskSensitiveValues() *Config {
	masked := *c

	// Mask sensitive fields
	if masked.OpenAI.APIKey != "" {
		masked.OpenAI.APIKey = maskValue(masked.OpenAI.APIKey)
	}
	if masked.Weather.APIKey != "" {
		masked.Weather.APIKey = maskValue(masked.Weather.APIKey)
	}
	if masked.Market.APIKey != "" {
		masked.Market.APIKey = maskValue(masked.Market.APIKey)
	}

	return &masked
}

// maskValue masks sensitive values, showing only the first 8 characters
func maskValue(value string) string {
	if len(value) <= 8 {
		return strings.Repeat("*", len(value))
	}
	return value[:8] + strings.Repeat("*", len(value)-8)
}

// contains checks if a slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// getEnvironment returns the current environment (development, production, etc.)
func getEnvironment() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "development"
}

// WatchConfig enables configuration hot-reloading for development
func WatchConfig(configPath string, callback func(*Config)) error {
	v := viper.New()

	// Set up configuration
	if err := setConfigFile(v, configPath); err != nil {
		return err
	}

	// Enable watching
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Printf("Config file changed: %s\n", e.Name)

		// Reload configuration
		config, err := LoadWithOptions(LoadOptions{
			ConfigPath:       configPath,
			EnableHotReload:  true,
			Environment:      getEnvironment(),
			ValidateRequired: true,
		})
		if err != nil {
			fmt.Printf("Failed to reload config: %v\n", err)
			return
		}

		// Call callback with new config
		callback(config)
	})

	return nil
}
