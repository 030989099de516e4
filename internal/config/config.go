// Package config loads the root service configuration from config.toml, an
// optional environment overlay, and COUNTERSIGN_* environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmallard/countersign/internal/ledger"
	"github.com/jmallard/countersign/internal/signature"
	"github.com/jmallard/countersign/pkg/database"
	"github.com/jmallard/countersign/pkg/locks"
	"github.com/jmallard/countersign/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvCountersignEnv             = "COUNTERSIGN_ENV"
	EnvCountersignShutdownTimeout = "COUNTERSIGN_SHUTDOWN_TIMEOUT"
	EnvCountersignVersion         = "COUNTERSIGN_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "COUNTERSIGN_DB_HOST",
	Port:            "COUNTERSIGN_DB_PORT",
	Name:            "COUNTERSIGN_DB_NAME",
	User:            "COUNTERSIGN_DB_USER",
	Password:        "COUNTERSIGN_DB_PASSWORD",
	SSLMode:         "COUNTERSIGN_DB_SSL_MODE",
	MaxOpenConns:    "COUNTERSIGN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "COUNTERSIGN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "COUNTERSIGN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "COUNTERSIGN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "COUNTERSIGN_STORAGE_CONTAINER_NAME",
	ConnectionString: "COUNTERSIGN_STORAGE_CONNECTION_STRING",
}

var ledgerEnv = &ledger.Env{
	Endpoint:     "COUNTERSIGN_LEDGER_ENDPOINT",
	Timeout:      "COUNTERSIGN_LEDGER_TIMEOUT",
	MaxAttempts:  "COUNTERSIGN_LEDGER_MAX_ATTEMPTS",
	RetryBackoff: "COUNTERSIGN_LEDGER_RETRY_BACKOFF",
}

var locksEnv = &locks.Env{
	Backend:   "COUNTERSIGN_LOCKS_BACKEND",
	RedisAddr: "COUNTERSIGN_LOCKS_REDIS_ADDR",
}

var signatureEnv = &signature.Env{
	Method:        "COUNTERSIGN_SIGNATURE_METHOD",
	OIDCIssuerURL: "COUNTERSIGN_SIGNATURE_OIDC_ISSUER_URL",
	OIDCClientID:  "COUNTERSIGN_SIGNATURE_OIDC_CLIENT_ID",
}

// Config is the root configuration for the Countersign service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Storage         storage.Config   `toml:"storage"`
	Ledger          ledger.Config    `toml:"ledger"`
	Locks           locks.Config     `toml:"locks"`
	Signature       signature.Config `toml:"signature"`
	API             APIConfig        `toml:"api"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the COUNTERSIGN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvCountersignEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Ledger.Merge(&overlay.Ledger)
	c.Locks.Merge(&overlay.Locks)
	c.Signature.Merge(&overlay.Signature)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Ledger.Finalize(ledgerEnv); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if err := c.Locks.Finalize(locksEnv); err != nil {
		return fmt.Errorf("locks: %w", err)
	}
	if err := c.Signature.Finalize(signatureEnv); err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvCountersignShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvCountersignVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvCountersignEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
