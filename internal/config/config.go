// Package config loads the optional YAML settings file. The file is only
// ever read; a missing file means defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"menumeters/internal/models"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "MENUMETERS_CONFIG"

// MinTick is the shortest base tick the enabled intervals may reduce to.
const MinTick = 100 * time.Millisecond

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string         `yaml:"log_level"`
	WindowSize int            `yaml:"window_size"`
	Intervals  Intervals      `yaml:"intervals"`
	Console    ConsoleConfig  `yaml:"console"`
	Server     ServerConfig   `yaml:"server"`
	Exporter   ExporterConfig `yaml:"exporter"`
}

// Intervals is how often each meter is sampled. Zero disables a meter.
type Intervals struct {
	CPU     time.Duration `yaml:"cpu"`
	Memory  time.Duration `yaml:"memory"`
	Network time.Duration `yaml:"network"`
	Disk    time.Duration `yaml:"disk"`
}

type ConsoleConfig struct {
	Enabled bool `yaml:"enabled"`
}

type ServerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Addr        string        `yaml:"addr"`
	Secret      string        `yaml:"secret"`
	TokenExpiry time.Duration `yaml:"token_expiry"`
}

type ExporterConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		WindowSize: 48,
		Intervals: Intervals{
			CPU:     time.Second,
			Memory:  3 * time.Second,
			Network: 2 * time.Second,
			Disk:    2 * time.Second,
		},
		Console: ConsoleConfig{Enabled: true},
		Server: ServerConfig{
			Addr:        "localhost:8080",
			TokenExpiry: 24 * time.Hour,
		},
	}
}

// Path returns the config file location: $MENUMETERS_CONFIG, else
// menumeters/config.yaml under the user config directory.
func Path() (string, error) {
	if p := os.Getenv(EnvPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "menumeters", "config.yaml"), nil
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: window_size must be positive, got %d", ErrInvalidConfig, c.WindowSize)
	}
	var tick time.Duration
	for category, d := range c.IntervalMap() {
		if d < 0 {
			return fmt.Errorf("%w: interval for %s must not be negative", ErrInvalidConfig, category)
		}
		if d > 0 {
			tick = gcd(tick, d)
		}
	}
	if tick == 0 {
		return fmt.Errorf("%w: every meter is disabled", ErrInvalidConfig)
	}
	if tick < MinTick {
		return fmt.Errorf("%w: intervals share a %s tick, below the %s minimum", ErrInvalidConfig, tick, MinTick)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required when the server is enabled", ErrInvalidConfig)
	}
	if c.Exporter.Enabled && !c.Server.Enabled {
		return fmt.Errorf("%w: exporter needs the server enabled", ErrInvalidConfig)
	}
	return nil
}

func gcd(a, b time.Duration) time.Duration {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// IntervalMap returns the intervals keyed by category.
func (c *Config) IntervalMap() map[models.Category]time.Duration {
	return map[models.Category]time.Duration{
		models.CategoryCPU:     c.Intervals.CPU,
		models.CategoryMemory:  c.Intervals.Memory,
		models.CategoryNetwork: c.Intervals.Network,
		models.CategoryDisk:    c.Intervals.Disk,
	}
}

// Level parses LogLevel.
func (c *Config) Level() (zap.AtomicLevel, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return zap.AtomicLevel{}, fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}
	return zap.NewAtomicLevelAt(lvl), nil
}
