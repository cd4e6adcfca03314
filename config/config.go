package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string]string{
	"fyle.base_url":      "FYLE_BASE_URL",
	"fyle.client_id":     "FYLE_CLIENT_ID",
	"fyle.client_secret": "FYLE_CLIENT_SECRET",
	"fyle.refresh_token": "FYLE_REFRESH_TOKEN",
	"http.timeout":       "FYLE_HTTP_TIMEOUT",
	"http.user_agent":    "FYLE_USER_AGENT",
	"logging.level":      "FYLE_LOG_LEVEL",
	"logging.format":     "FYLE_LOG_FORMAT",
}

// Load loads the configuration from file and environment.
//
// A .env file in the working directory is read first, if present. When
// configPath is empty a missing config file is not an error, so the CLI can
// run from environment variables alone.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".fylectl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/fylectl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Fyle defaults
	v.SetDefault("fyle.base_url", "https://app.fylehq.com")

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Fyle.BaseURL == "" {
		return fmt.Errorf("fyle.base_url is required")
	}

	if cfg.Fyle.ClientID == "" {
		return fmt.Errorf("fyle.client_id is required")
	}

	if cfg.Fyle.ClientSecret == "" || cfg.Fyle.ClientSecret == "your-client-secret-here" {
		return fmt.Errorf("fyle.client_secret must be set to a valid client secret")
	}

	if cfg.Fyle.RefreshToken == "" {
		return fmt.Errorf("fyle.refresh_token is required")
	}

	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", cfg.HTTP.Timeout)
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
