package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Stress  StressConfig  `yaml:"stress"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// HistoryConfig bounds the in-memory sample history.
type HistoryConfig struct {
	MaxPoints int `yaml:"max_points"`
}

// StressConfig bounds what the stress endpoints will accept, so a
// stray request cannot ask one process to allocate the whole machine.
type StressConfig struct {
	MaxFragmentCount  int `yaml:"max_fragment_count"`
	MaxFragmentSizeKB int `yaml:"max_fragment_size_kb"`
	MinUsageMB        int `yaml:"min_usage_mb"`
	MaxUsageMB        int `yaml:"max_usage_mb"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		History: HistoryConfig{
			MaxPoints: 100,
		},
		Stress: StressConfig{
			MaxFragmentCount:  1000,
			MaxFragmentSizeKB: 256,
			MinUsageMB:        10,
			MaxUsageMB:        500,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path or a
// missing file yields the defaults, so running without a config file
// is the normal case rather than an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges a config file could have broken.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.History.MaxPoints < 1 {
		return fmt.Errorf("history max_points must be positive, got %d", c.History.MaxPoints)
	}
	if c.Stress.MaxFragmentCount < 1 || c.Stress.MaxFragmentSizeKB < 1 {
		return fmt.Errorf("stress fragment limits must be positive")
	}
	if c.Stress.MinUsageMB < 1 || c.Stress.MaxUsageMB < c.Stress.MinUsageMB {
		return fmt.Errorf("stress usage bounds invalid: min %d, max %d",
			c.Stress.MinUsageMB, c.Stress.MaxUsageMB)
	}
	return nil
}

// Addr returns the host:port the server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
