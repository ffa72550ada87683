// Package config loads server configuration from an optional YAML file,
// TEMPORA_-prefixed environment variables, and command-line flags, in
// that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds everything the server needs to start.
type Config struct {
	Listen   string         `koanf:"listen"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Timezone TimezoneConfig `koanf:"timezone"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type TimezoneConfig struct {
	// Offset is the default timezone offset in minutes east of UTC, used
	// when a request carries no X-TZ-Offset header.
	Offset int `koanf:"offset"`
}

// Load parses flags from args (excluding the program name) and merges the
// config file, environment, and flags.
func Load(args []string) (*Config, error) {
	f := pflag.NewFlagSet("tempora", pflag.ContinueOnError)
	f.String("config", "", "path to a YAML config file")
	f.String("listen", ":8080", "address to serve the API on")
	f.String("database.path", "tempora.db", "path to the SQLite database file")
	f.String("log.level", "info", "log level (debug, info, warn, error)")
	f.Int("timezone.offset", 0, "default timezone offset in minutes east of UTC")
	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("TEMPORA_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "TEMPORA_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadOrExit loads config from os.Args and exits with a message on error.
func LoadOrExit() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return cfg
}
