package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/engine"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// Load loads the configuration.
// Search order: customPath -> ~/.pong/config.{yaml,toml} -> ./configs/pong.{yaml,toml} -> embedded default.
// Only an explicit customPath that cannot be read or parsed is an error.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := decode(path, data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".pong", "config.yaml"),
			filepath.Join(home, ".pong", "config.toml"),
		)
	}
	return append(paths,
		filepath.Join("configs", "pong.yaml"),
		filepath.Join("configs", "pong.toml"),
	)
}

// decode parses data as TOML for .toml files and YAML otherwise.
func decode(path string, data []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Resolve returns the engine geometry: the named preset with any non-zero
// engine overrides applied. The result is validated.
func (c Config) Resolve() (engine.Config, error) {
	id := c.Preset
	if id == "" {
		id = registry.DefaultPreset
	}
	preset, err := registry.Lookup(id)
	if err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}

	geom := preset.Engine
	if c.Engine.Area.X != 0 {
		geom.Area.X = c.Engine.Area.X
	}
	if c.Engine.Area.Y != 0 {
		geom.Area.Y = c.Engine.Area.Y
	}
	if c.Engine.Paddle.X != 0 {
		geom.Paddle.X = c.Engine.Paddle.X
	}
	if c.Engine.Paddle.Y != 0 {
		geom.Paddle.Y = c.Engine.Paddle.Y
	}
	if c.Engine.BallSize != 0 {
		geom.BallSize = c.Engine.BallSize
	}

	if err := Validate(geom); err != nil {
		return engine.Config{}, err
	}
	return geom, nil
}

// Validate checks that the geometry describes a playable field.
func Validate(g engine.Config) error {
	var errs []error
	if g.Area.X <= 0 || g.Area.Y <= 0 {
		errs = append(errs, fmt.Errorf("area must be positive, got %dx%d", g.Area.X, g.Area.Y))
	}
	if g.Paddle.X <= 0 || g.Paddle.Y <= 0 {
		errs = append(errs, fmt.Errorf("paddle must be positive, got %dx%d", g.Paddle.X, g.Paddle.Y))
	}
	if g.BallSize <= 0 {
		errs = append(errs, fmt.Errorf("ball_size must be positive, got %d", g.BallSize))
	}
	if g.Paddle.X >= g.Area.X {
		errs = append(errs, fmt.Errorf("paddle.x %d must be smaller than area.x %d", g.Paddle.X, g.Area.X))
	}
	if g.Paddle.Y >= g.Area.Y {
		errs = append(errs, fmt.Errorf("paddle.y %d must be smaller than area.y %d", g.Paddle.Y, g.Area.Y))
	}
	if g.BallSize >= g.Area.Y {
		errs = append(errs, fmt.Errorf("ball_size %d must be smaller than area.y %d", g.BallSize, g.Area.Y))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid geometry: %w", errors.Join(errs...))
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
