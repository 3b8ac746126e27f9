// Package config provides configuration management for TIA.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the application configuration resolved from the
// environment. The profile file it points to carries the bookkeeping
// configuration itself.
type Config struct {
	// Root is the parent directory of the storage tree (TIA_ROOT). Empty
	// means the per-company default under $HOME/.tia.
	Root string
	// ProfilePath is the profile YAML file (TIA_PROFILE, default
	// <Root>/profile.yaml when Root is set).
	ProfilePath string
	// DBPath overrides the bookkeeping database location (TIA_DB_PATH).
	DBPath string
	// Year overrides the bookkeeping year (TIA_YEAR).
	Year int
	// Debug enables debug logging (DEBUG=true).
	Debug bool
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom .env
// path may be given.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	year, err := parseIntEnv("TIA_YEAR", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid TIA_YEAR: %w", err)
	}

	config := &Config{
		Root:        os.Getenv("TIA_ROOT"),
		ProfilePath: os.Getenv("TIA_PROFILE"),
		DBPath:      os.Getenv("TIA_DB_PATH"),
		Year:        year,
		Debug:       os.Getenv("DEBUG") == "true",
	}

	if config.ProfilePath == "" && config.Root != "" {
		config.ProfilePath = config.Root + "/profile.yaml"
	}

	return config, nil
}

// Validate checks that the named fields are set. Known names are "root",
// "profile" and "db".
func (c *Config) Validate(required ...string) error {
	var missing []string
	for _, name := range required {
		var value string
		switch name {
		case "root":
			value = c.Root
		case "profile":
			value = c.ProfilePath
		case "db":
			value = c.DBPath
		}
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}
	return nil
}

// parseIntEnv parses an int from an environment variable. Returns
// defaultValue if the variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}
