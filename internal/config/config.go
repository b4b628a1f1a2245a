// Package config loads settings for the command line and the playground.
//
// Precedence, lowest first: built-in defaults, the YAML file, TREELOX_*
// environment variables, command line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Prompt is the REPL prompt.
	Prompt string `yaml:"prompt"`
	// HistoryFile keeps REPL history between sessions; empty disables it.
	HistoryFile string `yaml:"history_file"`
	// Addr is the playground listen address.
	Addr string `yaml:"addr"`
	// RunTimeout bounds a single playground run.
	RunTimeout time.Duration `yaml:"run_timeout"`
	// MaxSourceBytes caps the playground request source size.
	MaxSourceBytes int `yaml:"max_source_bytes"`
}

func Default() Config {
	return Config{
		Prompt:         "> ",
		Addr:           "127.0.0.1:8080",
		RunTimeout:     5 * time.Second,
		MaxSourceBytes: 64 * 1024,
	}
}

// Load returns the defaults overlaid with the YAML file at path (if path is not
// empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("TREELOX_PROMPT"); ok {
		c.Prompt = v
	}
	if v, ok := lookup("TREELOX_HISTORY"); ok {
		c.HistoryFile = v
	}
	if v, ok := lookup("TREELOX_ADDR"); ok && v != "" {
		c.Addr = v
	}
	if v, ok := lookup("TREELOX_RUN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TREELOX_RUN_TIMEOUT: %w", err)
		}
		c.RunTimeout = d
	}
	if v, ok := lookup("TREELOX_MAX_SOURCE_BYTES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TREELOX_MAX_SOURCE_BYTES: %w", err)
		}
		c.MaxSourceBytes = n
	}

	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("run_timeout must be positive, got %s", c.RunTimeout))
	}
	if c.MaxSourceBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_source_bytes must be positive, got %d", c.MaxSourceBytes))
	}
	return errors.Join(errs...)
}
