// SPDX-License-Identifier: MIT

// Package config handles annealer service and CLI configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/boltzmann/builder"
)

// ErrInvalidConfig is returned by Validate, wrapped with the offending field.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the root configuration structure.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Anneal AnnealConfig `yaml:"anneal"`
	Limits LimitsConfig `yaml:"limits"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP service settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// AnnealConfig holds the default run parameters. Requests may override T,
// the charges and the seed.
type AnnealConfig struct {
	Temperature     float64  `yaml:"temperature"`
	HCharge         float64  `yaml:"h_charge"`
	BCharge         float64  `yaml:"b_charge"`
	StopTemperature float64  `yaml:"stop_temperature"`
	Seed            int64    `yaml:"seed"` // 0 = random
	Labels          []string `yaml:"labels"`
}

// LimitsConfig bounds what one request may ask for.
type LimitsConfig struct {
	MaxCities      int     `yaml:"max_cities"`
	MemoryFraction float64 `yaml:"memory_fraction"`
	MaxBodyBytes   int64   `yaml:"max_body_bytes"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// DefaultMaxCities caps the instance size. Its network holds (64·65)² weights.
const DefaultMaxCities = 64

// defaultLabels names the cities A..Z, AA, AB, ... up to DefaultMaxCities.
func defaultLabels() []string {
	l, _ := builder.Labels(DefaultMaxCities, builder.WithExcelColumnIDs())

	return l
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "localhost:5000",
			CORSOrigins:     []string{"*"},
			ReadTimeout:     15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Anneal: AnnealConfig{
			Temperature:     5000,
			HCharge:         0.5,
			BCharge:         -0.2,
			StopTemperature: 1,
			Labels:          defaultLabels(),
		},
		Limits: LimitsConfig{
			MaxCities:      DefaultMaxCities,
			MemoryFraction: 0.5,
			MaxBodyBytes:   1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load overlays the YAML file at path on Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns Default if path is empty
// or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return invalid("server.addr", "empty")
	case !finite(c.Anneal.Temperature) || !finite(c.Anneal.StopTemperature):
		return invalid("anneal.temperature", "not a finite number")
	case c.Anneal.Temperature <= c.Anneal.StopTemperature:
		return invalid("anneal.temperature", "must exceed stop_temperature")
	case !finite(c.Anneal.HCharge) || !finite(c.Anneal.BCharge):
		return invalid("anneal.h_charge/b_charge", "not a finite number")
	case c.Limits.MaxCities < 2:
		return invalid("limits.max_cities", "below 2")
	case len(c.Anneal.Labels) < c.Limits.MaxCities:
		return invalid("anneal.labels", fmt.Sprintf("%d labels for up to %d cities", len(c.Anneal.Labels), c.Limits.MaxCities))
	case !(c.Limits.MemoryFraction > 0 && c.Limits.MemoryFraction <= 1):
		return invalid("limits.memory_fraction", "outside (0, 1]")
	case c.Limits.MaxBodyBytes <= 0:
		return invalid("limits.max_body_bytes", "not positive")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if f := strings.ToLower(c.Log.Format); f != "text" && f != "json" {
		return invalid("log.format", c.Log.Format)
	}

	return nil
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return 0, invalid("log.level", name)
	}

	return l, nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, field, reason)
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
