/*
Package configs loads the server configuration from environment variables.

Every setting has a development default; production deployments must provide
SESSION_SECRET explicitly.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"chatroom/internal/pkg/randx"
)

const (
	// EnvDevelopment is the default environment name.
	EnvDevelopment = "development"

	defaultPort          = 8080
	defaultSessionSecret = "your_default_insecure_secret_key_change_me"
	defaultRoom          = "0"
)

// AppConfig contains all configuration parameters required for the application to run.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string
	SessionSecret  string

	// Chat Settings
	DefaultRoom string
}

// IsDevelopment reports whether the server runs in the development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = EnvDevelopment
	}

	cfg.Port = defaultPort
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
		}
		cfg.Port = port
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (%d-%d)", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	cfg.AllowedOrigins = []string{}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required in %s environment", cfg.Environment)
		}
		cfg.SessionSecret = defaultSessionSecret
	}

	// --- Chat Settings ---
	cfg.DefaultRoom = os.Getenv("DEFAULT_ROOM")
	if cfg.DefaultRoom == "" {
		cfg.DefaultRoom = defaultRoom
	}
	if !randx.IsValidRoomID(cfg.DefaultRoom) {
		return nil, fmt.Errorf("invalid DEFAULT_ROOM %q: expected 1-%d characters of [0-9A-Za-z_-]", cfg.DefaultRoom, randx.MaxRoomIDLength)
	}

	return cfg, nil
}
