package tui

import (
	"time"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// holds emulates key releases. Terminals only report presses (and
// auto-repeat), so a press keeps its paddle moving for a fixed window and
// the paddle stops once no press has refreshed it.
type holds struct {
	window time.Duration
	dir    [2]engine.Direction
	until  [2]time.Time
}

func newHolds(window time.Duration) holds {
	return holds{window: window}
}

// press records a press at now. It reports whether the paddle's direction
// changed and a Move action is due.
func (h *holds) press(p engine.Player, d engine.Direction, now time.Time) bool {
	i := index(p)
	h.until[i] = now.Add(h.window)
	if h.dir[i] == d {
		return false
	}
	h.dir[i] = d
	return true
}

// expire returns the players whose hold lapsed by now; they are back to
// Neutral.
func (h *holds) expire(now time.Time) []engine.Player {
	var lapsed []engine.Player
	for _, p := range []engine.Player{engine.Left, engine.Right} {
		i := index(p)
		if h.dir[i] == engine.Neutral || now.Before(h.until[i]) {
			continue
		}
		h.dir[i] = engine.Neutral
		lapsed = append(lapsed, p)
	}
	return lapsed
}

// clear drops every hold without reporting it.
func (h *holds) clear() {
	h.dir = [2]engine.Direction{}
	h.until = [2]time.Time{}
}

func (h *holds) direction(p engine.Player) engine.Direction {
	return h.dir[index(p)]
}

func index(p engine.Player) int {
	if p == engine.Right {
		return 1
	}
	return 0
}
