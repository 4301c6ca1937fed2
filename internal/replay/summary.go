package replay

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Summary describes the rallies found in a recording.
type Summary struct {
	Events     int
	Rallies    int
	LeftGoals  int
	RightGoals int
	// MeanTicks and StdDevTicks describe rally length. StdDevTicks is the
	// sample deviation and is zero with fewer than two rallies.
	MeanTicks   float64
	StdDevTicks float64
	Lengths     []float64
}

// Summarize scans records for rallies. A rally runs from a round_start to
// the next goal; a reset in between abandons it.
func Summarize(records []Record) Summary {
	var (
		s       Summary
		open    bool
		started uint64
	)
	s.Events = len(records)

	for _, r := range records {
		switch r.Kind {
		case "round_start":
			if !open {
				open = true
				started = r.Clock
			}
		case "reset":
			open = false
		case "goal":
			switch r.Player {
			case engine.Left.String():
				s.LeftGoals++
			case engine.Right.String():
				s.RightGoals++
			}
			if open {
				s.Lengths = append(s.Lengths, float64((r.Clock-started)/engine.FrameTime))
				open = false
			}
		}
	}

	s.Rallies = len(s.Lengths)
	switch s.Rallies {
	case 0:
	case 1:
		s.MeanTicks = s.Lengths[0]
	default:
		s.MeanTicks, s.StdDevTicks = stat.MeanStdDev(s.Lengths, nil)
	}
	return s
}
