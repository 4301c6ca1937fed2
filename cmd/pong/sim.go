package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/engine"
	"github.com/vovakirdan/tui-pong/internal/replay"
)

var flagSimOut string

var simCmd = &cobra.Command{
	Use:   "sim <script>",
	Short: "Run a scripted match headless",
	Long: `Run a YAML script of actions against a fresh engine, print a rally
summary and optionally record every event as CSV.

Script format:
  preset: standard          # optional, --preset wins
  steps:
    - op: initialize
    - op: start
    - op: move
      player: left          # left | right
      direction: up         # up | down | neutral
    - op: advance
      dt: 500000            # microseconds after the current clock
    - op: time
      t: 2000000            # absolute clock
    - op: reset
      seed: 3

Examples:
  pong sim rally.yaml
  pong sim rally.yaml --out events.csv
  pong sim rally.yaml --out -`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVarP(&flagSimOut, "out", "o", "", "Write the event log as CSV to this file ('-' for stdout)")
}

func runSim(cmd *cobra.Command, args []string) error {
	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}
	if script.Preset != "" && !cmd.Flags().Changed("preset") {
		cfg.Preset = script.Preset
	}

	preset, err := resolvePreset()
	if err != nil {
		return err
	}

	e := engine.New(preset.Engine)
	rec := replay.NewRecorder(e)
	if err := replay.Run(e, script, rec, nil); err != nil {
		return err
	}
	logger.Debug("script finished", "steps", len(script.Steps), "events", len(rec.Records()))

	switch flagSimOut {
	case "":
	case "-":
		if err := rec.WriteCSV(os.Stdout); err != nil {
			return err
		}
		return nil
	default:
		if err := rec.WriteFile(flagSimOut); err != nil {
			return err
		}
		logger.Info("event log written", "path", flagSimOut, "events", len(rec.Records()))
	}

	sum := replay.Summarize(rec.Records())
	snap := e.Snapshot()
	fmt.Printf("Preset:   %s\n", preset.ID)
	fmt.Printf("Clock:    %d us (%s)\n", snap.Clock, snap.State)
	fmt.Printf("Score:    %d - %d\n", snap.LeftScore, snap.RightScore)
	fmt.Printf("Events:   %d\n", sum.Events)
	fmt.Printf("Rallies:  %d\n", sum.Rallies)
	if sum.Rallies > 0 {
		fmt.Printf("Length:   %.1f ticks mean, %.1f stddev\n", sum.MeanTicks, sum.StdDevTicks)
	}
	fmt.Printf("Hash:     %016x\n", snap.Hash())
	return nil
}
