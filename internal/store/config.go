package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr                string `yaml:"addr"`
		ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
		WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
		IdleTimeoutSeconds  int    `yaml:"idle_timeout_seconds"`
	} `yaml:"server"`
	Analysis struct {
		WindowMinutes int `yaml:"window_minutes"`
		MaxRows       int `yaml:"max_rows"`
	} `yaml:"analysis"`
	Results struct {
		Enabled bool   `yaml:"enabled"`
		DSN     string `yaml:"dsn"`
	} `yaml:"results"`
}

func (c *Config) Validate() error {
	if c.Analysis.WindowMinutes != 15 && c.Analysis.WindowMinutes != 30 {
		return fmt.Errorf("analysis.window_minutes must be 15 or 30, got %d", c.Analysis.WindowMinutes)
	}
	if c.Analysis.MaxRows <= 0 {
		return fmt.Errorf("analysis.max_rows must be positive, got %d", c.Analysis.MaxRows)
	}
	if c.Results.Enabled && c.Results.DSN == "" {
		return fmt.Errorf("results.dsn must be set when results.enabled is true")
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 5
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = 60
	}
	if c.Analysis.WindowMinutes == 0 {
		c.Analysis.WindowMinutes = 15
	}
	if c.Analysis.MaxRows == 0 {
		c.Analysis.MaxRows = 250000
	}
}
