package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the runtime settings read from the environment
type Config struct {
	Port     string
	Env      string
	LogLevel string
	MountID  string
	Title    string
}

// LoadDotenv loads .env files into the process environment. It reports
// false when none was found; system environment is used as is then.
func LoadDotenv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load reads the configuration from environment variables
func Load() (Config, error) {
	cfg := Config{
		Port:     getEnv("PORT", "8080"),
		Env:      strings.ToLower(getEnv("APP_ENV", EnvProduction)),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MountID:  getEnv("MOUNT_ID", "root"),
		Title:    getEnv("APP_TITLE", "Vibecode SPA"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field
func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: PORT %q is not a valid port", ErrInvalidConfig, c.Port)
	}

	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("%w: APP_ENV %q must be %s or %s", ErrInvalidConfig, c.Env, EnvDevelopment, EnvProduction)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: LOG_LEVEL %q must be debug, info, warn or error", ErrInvalidConfig, c.LogLevel)
	}

	return nil
}

// IsDev reports whether development aids such as strict mode are enabled
func (c Config) IsDev() bool {
	return c.Env == EnvDevelopment
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
