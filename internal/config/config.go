// Package config provides configuration management for archcanvas.
//
// The config file describes how the host runs (listen address, timeouts,
// zoom pivot policy, export settings) and where the static diagram lives.
// The diagram itself is a separate file read by package loader.
//
// Config file locations (priority order):
//  1. $ARCHCANVAS_CONFIG
//  2. ./archcanvas.yaml
//  3. $XDG_CONFIG_HOME/archcanvas/config.yaml
//  4. ~/.config/archcanvas/config.yaml
//  5. /etc/archcanvas/config.yaml
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"archcanvas/internal/canvas"
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, path, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(10 * time.Second)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(30 * time.Second)
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = Duration(60 * time.Second)
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if c.Canvas.ZoomPivot == "" {
		c.Canvas.ZoomPivot = string(canvas.PivotOrigin)
	}
	if c.Events.KeepAlive == 0 {
		c.Events.KeepAlive = Duration(30 * time.Second)
	}
	if c.Events.BufferSize == 0 {
		c.Events.BufferSize = 64
	}
	if c.Snapshot.Padding == 0 {
		c.Snapshot.Padding = 40
	}
	if c.Snapshot.FontSize == 0 {
		c.Snapshot.FontSize = 16
	}
}

// Validate checks the configuration for values the host cannot run with
func (c *Config) Validate() error {
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}
	if _, err := canvas.ParsePivotPolicy(c.Canvas.ZoomPivot); err != nil {
		return fmt.Errorf("canvas config: %w", err)
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("events buffer size must be at least 1")
	}
	if c.Snapshot.Padding < 0 {
		return fmt.Errorf("snapshot padding cannot be negative")
	}
	if c.Snapshot.FontSize <= 0 {
		return fmt.Errorf("snapshot font size must be positive")
	}
	return nil
}

// PivotPolicy returns the parsed zoom pivot policy
func (c *Config) PivotPolicy() canvas.PivotPolicy {
	p, _ := canvas.ParsePivotPolicy(c.Canvas.ZoomPivot)
	return p
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	diagram := c.Diagram.Path
	if diagram == "" {
		diagram = "(built-in sample)"
	}
	return fmt.Sprintf("Addr: %s, Diagram: %s, Zoom pivot: %s",
		c.Server.Addr, diagram, c.Canvas.ZoomPivot)
}
