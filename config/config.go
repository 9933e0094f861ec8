package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DSNEnvVar overrides database.dsn when set.
const DSNEnvVar = "GREENPOINTS_DSN"

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
	CookieSecure    bool    `yaml:"cookie_secure"`

	CacheTTL time.Duration `yaml:"-"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // sqlite or postgres
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// SessionConfig controls the identity cookie and server-side session lifetime.
type SessionConfig struct {
	CookieName           string `yaml:"cookie_name"`
	TTLHours             int    `yaml:"ttl_hours"`
	SweepIntervalMinutes int    `yaml:"sweep_interval_minutes"`

	TTL           time.Duration `yaml:"-"`
	SweepInterval time.Duration `yaml:"-"`
}

// SeedConfig controls the startup catalog seed.
type SeedConfig struct {
	Enabled     bool   `yaml:"enabled"`
	CatalogPath string `yaml:"catalog_path"` // empty means the embedded catalog
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Seed: SeedConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := Config{Seed: SeedConfig{Enabled: true}}
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// ApplyEnv overrides values that may come from the environment.
func (c *Config) ApplyEnv() {
	if dsn := os.Getenv(DSNEnvVar); dsn != "" {
		c.Database.DSN = dsn
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8000
	}
	if c.Server.CacheTTLSeconds <= 0 {
		c.Server.CacheTTLSeconds = 30
	}
	c.Server.CacheTTL = time.Duration(c.Server.CacheTTLSeconds) * time.Second
	if c.Server.RateLimitPerSec > 0 && c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = 5
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite" {
		c.Database.DSN = "greenpoints.db"
	}
	// sqlite allows one writer; a larger pool deadlocks concurrent write transactions.
	if c.Database.Driver == "sqlite" {
		if c.Database.MaxOpenConns <= 0 {
			c.Database.MaxOpenConns = 1
		}
		if c.Database.MaxIdleConns <= 0 {
			c.Database.MaxIdleConns = 1
		}
	}
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = "warn"
	}

	if c.Session.CookieName == "" {
		c.Session.CookieName = "session"
	}
	if c.Session.TTLHours <= 0 {
		c.Session.TTLHours = 168
	}
	c.Session.TTL = time.Duration(c.Session.TTLHours) * time.Hour
	if c.Session.SweepIntervalMinutes <= 0 {
		c.Session.SweepIntervalMinutes = 30
	}
	c.Session.SweepInterval = time.Duration(c.Session.SweepIntervalMinutes) * time.Minute
}
