package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished matches",
	Long: `Show matches recorded by 'pong play' and 'pong serve'.

Without --plain an interactive browser opens; x deletes the highlighted
match. With --plain the most recent matches are printed as a table.

Examples:
  pong history
  pong history --plain --limit 20
  pong history --db ./matches.db`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a table instead of the interactive browser")
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to print with --plain")
}

func runHistory(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening match history: %w", err)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, width, height)
	}

	if flagLimit <= 0 {
		return errors.New("--limit must be positive")
	}
	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		return err
	}
	totals, err := store.Totals()
	if err != nil {
		return err
	}

	fmt.Printf("Match history - %d matches, goals %d (left) / %d (right)\n\n",
		totals.Matches, totals.LeftGoals, totals.RightGoals)

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to record the first one!")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Preset", "Player", "Score", "Rallies", "Length")
	for _, m := range matches {
		t.Row(tui.MatchRow(m)...)
	}
	fmt.Println(t)
	return nil
}
