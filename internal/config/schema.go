package config

import (
	"time"
)

// Config is the root configuration structure
type Config struct {
	Version  int            `yaml:"version"`
	Server   ServerConfig   `yaml:"server"`
	Diagram  DiagramConfig  `yaml:"diagram"`
	Canvas   CanvasConfig   `yaml:"canvas"`
	Events   EventsConfig   `yaml:"events"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr            string   `yaml:"addr"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	IdleTimeout     Duration `yaml:"idle_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
}

// DiagramConfig points at the static card and connection list.
// An empty path selects the built-in sample diagram.
type DiagramConfig struct {
	Path  string `yaml:"path,omitempty"`
	Watch bool   `yaml:"watch,omitempty"` // reload when the file changes
}

// CanvasConfig holds interaction engine settings
type CanvasConfig struct {
	ZoomPivot string `yaml:"zoom_pivot"` // origin or pointer
}

// EventsConfig holds live-update fan-out settings
type EventsConfig struct {
	KeepAlive  Duration `yaml:"keep_alive"`
	BufferSize int      `yaml:"buffer_size"`
}

// SnapshotConfig holds PNG export settings
type SnapshotConfig struct {
	Padding  int     `yaml:"padding"`
	FontSize float64 `yaml:"font_size"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
