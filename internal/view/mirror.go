// Package view keeps a front-end's picture of a match. It is built purely
// from engine events, never from engine internals, and knows how to map
// world coordinates onto a terminal grid.
package view

import (
	"sort"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

// Phase is what the front-end shows between and during rallies.
type Phase int

const (
	PhaseWaiting Phase = iota // Created or reset, waiting for a serve
	PhasePlaying              // Ball in play
	PhaseScored               // A goal ended the rally
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseScored:
		return "scored"
	default:
		return "unknown"
	}
}

// Sprite is the last known position of an entity.
type Sprite struct {
	ID   engine.ID
	Kind engine.EntityKind
	X, Y int64
}

// Mirror is a replica of the match assembled from events.
type Mirror struct {
	sprites    map[engine.ID]Sprite
	leftScore  uint32
	rightScore uint32
	phase      Phase
	rallies    int
	goals      []engine.GoalEvent
}

// NewMirror returns an empty mirror.
func NewMirror() *Mirror {
	return &Mirror{
		sprites: make(map[engine.ID]Sprite),
	}
}

// FromSnapshot builds a mirror for a front-end attaching to a running engine.
func FromSnapshot(s engine.Snapshot) *Mirror {
	m := NewMirror()
	for _, ent := range s.Entities() {
		m.sprites[ent.ID] = Sprite{ID: ent.ID, Kind: ent.Kind, X: ent.Position.X, Y: ent.Position.Y}
	}
	m.leftScore = s.LeftScore
	m.rightScore = s.RightScore
	if s.State == engine.StateRunning {
		m.phase = PhasePlaying
	}
	return m
}

// Apply folds one event into the mirror. It has the signature of an
// engine.Sink so it can be passed to the engine directly.
func (m *Mirror) Apply(ev engine.Event) {
	switch ev := ev.(type) {
	case engine.CreateEvent:
		m.sprites[ev.ID] = Sprite{ID: ev.ID, Kind: ev.Entity, X: ev.X, Y: ev.Y}
	case engine.DestroyEvent:
		delete(m.sprites, ev.ID)
	case engine.MoveEvent:
		// Moves for entities we never saw created are dropped.
		if s, ok := m.sprites[ev.ID]; ok {
			s.X, s.Y = ev.X, ev.Y
			m.sprites[ev.ID] = s
		}
	case engine.GoalEvent:
		if ev.Player == engine.Left {
			m.leftScore = ev.Score
		} else {
			m.rightScore = ev.Score
		}
		m.goals = append(m.goals, ev)
		m.phase = PhaseScored
	case engine.ResetEvent:
		m.phase = PhaseWaiting
	case engine.RoundStartEvent:
		if m.phase != PhasePlaying {
			m.rallies++
		}
		m.phase = PhasePlaying
	}
}

// Sprites returns every known sprite ordered by id.
func (m *Mirror) Sprites() []Sprite {
	out := make([]Sprite, 0, len(m.sprites))
	for _, s := range m.sprites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Sprite returns the sprite with the given id.
func (m *Mirror) Sprite(id engine.ID) (Sprite, bool) {
	s, ok := m.sprites[id]
	return s, ok
}

// Score returns the last score reported for p.
func (m *Mirror) Score(p engine.Player) uint32 {
	if p == engine.Left {
		return m.leftScore
	}
	return m.rightScore
}

// Phase returns the current phase.
func (m *Mirror) Phase() Phase {
	return m.phase
}

// Rallies returns how many rallies have been started.
func (m *Mirror) Rallies() int {
	return m.rallies
}

// Goals returns every goal seen, oldest first.
func (m *Mirror) Goals() []engine.GoalEvent {
	return append([]engine.GoalEvent(nil), m.goals...)
}
