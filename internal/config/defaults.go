package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-pong/internal/registry"
)

//go:embed defaults/pong.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Preset: registry.DefaultPreset,
		Display: DisplayConfig{
			FPS:      60,
			ShowHelp: true,
		},
		Controls: ControlsConfig{
			HoldMillis: 150,
		},
		Storage: StorageConfig{
			Path: "~/.pong/matches.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
