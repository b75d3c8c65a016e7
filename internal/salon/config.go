package salon

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for talking to the salon backend.
type Config struct {
	BaseURL           string  `toml:"base_url"`
	Token             string  `toml:"token"`
	TimeoutMs         int     `toml:"timeout_ms"`
	MaxRetries        int     `toml:"max_retries"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	LogCalls          bool    `toml:"log_calls"`
	LogFile           string  `toml:"log_file"`
	Timezone          string  `toml:"timezone"`
}

// DefaultConfig returns a Config pointing at a backend on localhost.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:3001",
		TimeoutMs:         8000,
		MaxRetries:        1,
		RequestsPerSecond: 5,
		Burst:             10,
	}
}

// DefaultConfigPath returns ~/.chairside/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".chairside", "config.toml"), nil
}

// LoadConfig layers configuration: defaults, then a .env file in the working
// directory, then the TOML file at path (or CHAIRSIDE_CONFIG, or the default
// path), then CHAIRSIDE_* environment variables. A missing file is only an
// error when the path was given explicitly.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		if v := os.Getenv("CHAIRSIDE_CONFIG"); v != "" {
			path, explicit = v, true
		}
	}
	if path == "" {
		if p, err := DefaultConfigPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return cfg, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("CHAIRSIDE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("CHAIRSIDE_TOKEN"); v != "" {
		c.Token = v
	}
	if v := os.Getenv("CHAIRSIDE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutMs = n
		}
	}
	if v := os.Getenv("CHAIRSIDE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("CHAIRSIDE_REQUESTS_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("CHAIRSIDE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Burst = n
		}
	}
	if v := os.Getenv("CHAIRSIDE_LOG_CALLS"); v != "" {
		c.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CHAIRSIDE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("CHAIRSIDE_TIMEZONE"); v != "" {
		c.Timezone = v
	}
}

// Validate checks that the base URL is absolute and limits are sane.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive, got %d", c.TimeoutMs)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative, got %d", c.MaxRetries)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// Location resolves Timezone, defaulting to the local zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
