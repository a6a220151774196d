package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// DefaultEnvFile is loaded (if present) before the environment is parsed.
const DefaultEnvFile = ".env"

type Config struct {
	Mode Mode `env:"INSIGHTS_ENV" envDefault:"production"`

	Host string `env:"INSIGHTS_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"INSIGHTS_PORT" envDefault:"5000"`

	// APIKey is the Gemini credential, kept exactly as set. Empty means demo mode.
	APIKey    string `env:"GOOGLE_AI_API_KEY"`
	ModelName string `env:"INSIGHTS_MODEL_NAME" envDefault:"gemini-1.5-flash"`

	// GeminiBaseURL overrides the Gemini endpoint, e.g. for an egress proxy.
	GeminiBaseURL string `env:"INSIGHTS_GEMINI_BASE_URL"`

	Log Log
}

type Log struct {
	Format     string `env:"INSIGHTS_LOG_FORMAT" envDefault:"JSON"` // JSON | TEXT
	File       string `env:"INSIGHTS_LOG_FILE"`
	MaxSize    int    `env:"INSIGHTS_LOG_MAX_SIZE" envDefault:"100"` // megabytes
	MaxBackups int    `env:"INSIGHTS_LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAge     int    `env:"INSIGHTS_LOG_MAX_AGE" envDefault:"28"` // days
}

// Load reads DefaultEnvFile (if any) and then the process environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom is like Load but reads the given dotenv file. Variables already
// set in the environment win over the file.
func LoadFrom(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	switch Mode(strings.ToLower(string(cfg.Mode))) {
	case ModeDevelopment, "dev", "debug":
		cfg.Mode = ModeDevelopment
	default:
		cfg.Mode = ModeProduction
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("INSIGHTS_PORT out of range: %d", cfg.Port)
	}

	return cfg, nil
}

// CredentialPresent reports whether an API key was supplied at startup.
func (c *Config) CredentialPresent() bool {
	return c.APIKey != ""
}

func (c *Config) Debug() bool {
	return c.Mode == ModeDevelopment
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
