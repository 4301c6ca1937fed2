// Package config provides YAML/TOML configuration loading for the pong
// front-ends: which playfield to simulate and how the harness around the
// engine behaves.
package config

// Config is the complete front-end configuration.
type Config struct {
	Preset   string         `yaml:"preset" toml:"preset"`
	Engine   EngineConfig   `yaml:"engine" toml:"engine"`
	Display  DisplayConfig  `yaml:"display" toml:"display"`
	Controls ControlsConfig `yaml:"controls" toml:"controls"`
	Storage  StorageConfig  `yaml:"storage" toml:"storage"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// Extent is a pair of half-extents in world units.
type Extent struct {
	X int64 `yaml:"x" toml:"x"`
	Y int64 `yaml:"y" toml:"y"`
}

// EngineConfig overrides the preset geometry. Zero fields keep the preset's value.
type EngineConfig struct {
	Area     Extent `yaml:"area" toml:"area"`
	Paddle   Extent `yaml:"paddle" toml:"paddle"`
	BallSize int64  `yaml:"ball_size" toml:"ball_size"`
}

// DisplayConfig controls the terminal front-end.
type DisplayConfig struct {
	FPS      int  `yaml:"fps" toml:"fps"`             // Frames (and Time actions) per second
	ShowHelp bool `yaml:"show_help" toml:"show_help"` // Show key help under the field
}

// ControlsConfig tunes input handling.
type ControlsConfig struct {
	// HoldMillis is how long a paddle keeps moving after a key press.
	// Terminals report presses but not releases.
	HoldMillis int `yaml:"hold_millis" toml:"hold_millis"`
}

// StorageConfig locates the match history database.
type StorageConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// MetricsConfig controls the Prometheus endpoint of the SSH server.
type MetricsConfig struct {
	Address string `yaml:"address" toml:"address"` // Empty disables the endpoint
}

// LoggingConfig selects the log level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
}
