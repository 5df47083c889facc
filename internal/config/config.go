// Package config loads the run configuration of the synthaser CLI and server.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "synthaser.toml"

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the full run configuration. Empty rule and catalog paths select
// the built-in defaults.
type Config struct {
	Rules   string       `toml:"rules"`
	Catalog string       `toml:"catalog"`
	Workers int          `toml:"workers"`
	Log     LogConfig    `toml:"log"`
	Store   StoreConfig  `toml:"store"`
	Server  ServerConfig `toml:"server"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type StoreConfig struct {
	Backend string      `toml:"backend"`
	Path    string      `toml:"path"`
	Redis   RedisConfig `toml:"redis"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
	TTL      string `toml:"ttl"`
}

type ServerConfig struct {
	Addr  string `toml:"addr"`
	Watch bool   `toml:"watch"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Workers: runtime.GOMAXPROCS(0),
		Log:     LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Backend: BackendMemory,
			Redis:   RedisConfig{Addr: "localhost:6379", Prefix: "synthaser:result:"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path tries DefaultFile and
// silently falls back to the defaults when it does not exist; an explicit
// path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Decode reads TOML from r into cfg. Unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var sme *toml.StrictMissingError
		if errors.As(err, &sme) {
			return fmt.Errorf("unknown config keys:\n%s", sme.String())
		}
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges and the store backend.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if _, err := c.RedisTTL(); err != nil {
		return err
	}
	return nil
}

// RedisTTL parses the configured result expiry. Empty means no expiry.
func (c Config) RedisTTL() (time.Duration, error) {
	if c.Store.Redis.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Store.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("redis ttl must not be negative")
	}
	return d, nil
}
