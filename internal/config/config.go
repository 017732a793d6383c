package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Dir returns the per-user config directory for prtrack.
func Dir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "prtrack")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "prtrack")
}

// Default returns the built-in configuration with env overrides applied.
// Used when no config file exists yet.
func Default() *Config {
	cfg := &Config{
		Server: ServerConfig{TimeoutSeconds: 30},
		Log:    LogConfig{File: filepath.Join(Dir(), "prtrack.log"), Level: "info"},
	}
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix PRTRACK_ and underscore-separated paths:
//
//	PRTRACK_SERVER_URL, PRTRACK_SERVER_TIMEOUT,
//	PRTRACK_LOG_FILE, PRTRACK_LOG_LEVEL
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRTRACK_SERVER_URL"); v != "" {
		cfg.Server.URL = v
	}
	if v := os.Getenv("PRTRACK_SERVER_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Server.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("PRTRACK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("PRTRACK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks that the config is usable. Exported because main
// re-validates after applying flag overrides.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.url %q is not a valid URL", c.Server.URL)
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be positive")
	}
	return nil
}
