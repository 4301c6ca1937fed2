package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local two-player match",
	Long: `Start a match for two players sharing one keyboard.

Controls:
  A/W, Z/S   - Left paddle up, down
  Up, Down   - Right paddle up, down
  Space      - Serve
  R          - Reset the ball
  ?          - Toggle help
  Q/Esc      - Quit (the result is saved to the history)

Examples:
  pong play
  pong play --preset wide
  pong play --config ./my-pong.toml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := resolvePreset()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Preset:   preset,
		FPS:      cfg.Display.FPS,
		Hold:     holdDuration(),
		ShowHelp: cfg.Display.ShowHelp,
		Width:    width,
		Height:   height,
		Store:    store,
		Logger:   logger,
	}

	logger.Debug("starting match", "preset", preset.ID, "fps", opts.FPS)
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("running match: %w", err)
	}
	return nil
}
