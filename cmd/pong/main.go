// pong is a terminal Pong built on a deterministic simulation engine.
//
// Usage:
//
//	pong list                - List playfield presets
//	pong play                - Play a local two-player match
//	pong serve               - Start SSH server for remote play
//	pong sim <script>        - Run a scripted match headless
//	pong history             - Browse finished matches
//
// Global flags:
//
//	--config <path>    - Config file (default: search ~/.pong, ./configs)
//	--preset <id>      - Playfield preset (default: from config)
//	--db <path>        - Match history database
//	--log-level <lvl>  - debug, info, warn or error
//	--fps <rate>       - Frames per second
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagPreset   string
	flagDBPath   string
	flagLogLevel string
	flagFPS      int
)

var (
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong in your terminal",
	Long: `Pong is a two-player terminal game driven by a deterministic
simulation engine. Matches can be played locally, served over SSH,
or scripted and recorded headless.

Available commands:
  list     - Show playfield presets
  play     - Play a local two-player match
  serve    - Start SSH server for remote play
  sim      - Run a scripted match and record its events
  history  - Browse finished matches

Examples:
  pong list
  pong play --preset wide
  pong serve --ssh :2222 --metrics :9090
  pong sim rally.yaml --out events.csv
  pong history --plain`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Playfield preset (see 'pong list')")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frames per second")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the configuration, applies flag overrides and builds the
// process logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("preset") {
		cfg.Preset = flagPreset
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flags.Changed("fps") {
		cfg.Display.FPS = flagFPS
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})
	if cfg.Logging.Level != "" {
		level, err := log.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logger.SetLevel(level)
	}
	return nil
}

// resolvePreset returns the configured preset with engine overrides applied.
func resolvePreset() (registry.Preset, error) {
	geom, err := cfg.Resolve()
	if err != nil {
		return registry.Preset{}, err
	}
	id := cfg.Preset
	if id == "" {
		id = registry.DefaultPreset
	}
	preset, err := registry.Lookup(id)
	if err != nil {
		return registry.Preset{}, err
	}
	preset.Engine = geom
	return preset, nil
}

// openStore opens the history database. Failure is logged and play goes on
// without history.
func openStore() *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open match history", "path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

func holdDuration() time.Duration {
	return time.Duration(cfg.Controls.HoldMillis) * time.Millisecond
}
