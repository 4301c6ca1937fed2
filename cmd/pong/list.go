package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all playfield presets",
	Long:  `Shows every registered playfield preset and its geometry in world units.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	presets := registry.List()

	if len(presets) == 0 {
		fmt.Println("No presets available.")
		return
	}

	fmt.Println("Available presets:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, p := range presets {
		if len(p.ID) > maxIDLen {
			maxIDLen = len(p.ID)
		}
	}

	fmt.Printf("  %-*s  %-16s  %-14s  %-6s  %s\n", maxIDLen, "ID", "Area", "Paddle", "Ball", "Title")
	fmt.Printf("  %-*s  %-16s  %-14s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----", "-----")

	for _, p := range presets {
		g := p.Engine
		fmt.Printf("  %-*s  %-16s  %-14s  %-6d  %s\n", maxIDLen, p.ID,
			fmt.Sprintf("%dx%d", g.Area.X, g.Area.Y),
			fmt.Sprintf("%dx%d", g.Paddle.X, g.Paddle.Y),
			g.BallSize, p.Title)
	}

	fmt.Println()
	fmt.Printf("Run 'pong play --preset <id>' to play. The default is %q.\n", registry.DefaultPreset)
}
