// Package config loads the daemon's runtime settings: where the backing
// store lives, how the server listens, and which collection schemas it
// serves. Settings load from a YAML file and can be overridden by
// environment variables, the way cmd/node and cmd/coordinator layer env vars
// over flags, generalized here to a typed struct instead of ad hoc
// getenv/mustGetenv calls scattered through main.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// StoreKind selects which store.Store implementation a Config wires up.
type StoreKind string

const (
	StoreRedis  StoreKind = "redis"
	StoreMemory StoreKind = "memory"
)

// Config is the daemon's top-level configuration.
type Config struct {
	Listen          string    `yaml:"listen"`
	Store           StoreKind `yaml:"store"`
	RedisAddr       string    `yaml:"redis_addr"`
	LogLevel        string    `yaml:"log_level"`
	CollectionsFile string    `yaml:"collections_file"`
	HealthInterval  string    `yaml:"health_interval"`
}

// Defaults returns the configuration a bare `redsearchd serve` starts with
// when no file or env var overrides anything.
func Defaults() Config {
	return Config{
		Listen:         ":8090",
		Store:          StoreMemory,
		RedisAddr:      "127.0.0.1:6379",
		LogLevel:       "info",
		HealthInterval: "5s",
	}
}

// Load reads path as YAML over Defaults(), then applies environment
// variable overrides. path may be empty, in which case only the
// environment is applied over the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays REDSEARCH_* environment variables on top of cfg,
// mirroring the node/coordinator binaries' getenv fallback convention: a set
// and non-empty variable wins, an unset or empty one leaves cfg untouched.
func applyEnv(cfg *Config) {
	cfg.Listen = getenv("REDSEARCH_LISTEN", cfg.Listen)
	cfg.RedisAddr = getenv("REDSEARCH_REDIS_ADDR", cfg.RedisAddr)
	cfg.LogLevel = getenv("REDSEARCH_LOG_LEVEL", cfg.LogLevel)
	cfg.CollectionsFile = getenv("REDSEARCH_COLLECTIONS_FILE", cfg.CollectionsFile)
	cfg.HealthInterval = getenv("REDSEARCH_HEALTH_INTERVAL", cfg.HealthInterval)
	if v := os.Getenv("REDSEARCH_STORE"); v != "" {
		cfg.Store = StoreKind(v)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
