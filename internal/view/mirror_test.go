package view

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/engine"
)

func standardConfig() engine.Config {
	return engine.Config{
		Area:     engine.V(500000, 500000),
		Paddle:   engine.V(5000, 31250),
		BallSize: 5000,
	}
}

func TestMirrorFollowsEngine(t *testing.T) {
	e := engine.New(standardConfig())
	m := NewMirror()

	if err := e.Initialize(m.Apply); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if len(m.Sprites()) != 3 {
		t.Fatalf("expected 3 sprites, got %d", len(m.Sprites()))
	}
	if m.Phase() != PhaseWaiting {
		t.Errorf("phase = %s, expected waiting", m.Phase())
	}

	if err := e.Start(m.Apply); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := e.Time(10_000, m.Apply); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	ball, ok := m.Sprite(engine.BallID)
	if !ok {
		t.Fatal("ball sprite missing")
	}
	if ball.X != 2400 || ball.Y != 2400 {
		t.Errorf("ball at (%d, %d), expected (2400, 2400)", ball.X, ball.Y)
	}
	if m.Phase() != PhasePlaying || m.Rallies() != 1 {
		t.Errorf("phase = %s rallies = %d, expected playing/1", m.Phase(), m.Rallies())
	}

	// Play until the ball leaves on the right.
	if err := e.Time(3_000_000, m.Apply); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if m.Score(engine.Left) != 1 || m.Score(engine.Right) != 0 {
		t.Errorf("scores = %d-%d, expected 1-0", m.Score(engine.Left), m.Score(engine.Right))
	}
	if m.Phase() != PhaseScored {
		t.Errorf("phase = %s, expected scored", m.Phase())
	}
	if goals := m.Goals(); len(goals) != 1 || goals[0].Player != engine.Left {
		t.Errorf("goals = %#v", goals)
	}

	snap := e.Snapshot()
	attached := FromSnapshot(snap)
	for _, s := range m.Sprites() {
		got, ok := attached.Sprite(s.ID)
		if !ok || got != s {
			t.Errorf("attached sprite %d = %+v, expected %+v", s.ID, got, s)
		}
	}
	if attached.Score(engine.Left) != 1 {
		t.Errorf("attached left score = %d, expected 1", attached.Score(engine.Left))
	}
}

func TestMirrorDestroyAndOrphanMoves(t *testing.T) {
	m := NewMirror()
	m.Apply(engine.CreateEvent{ID: 7, Entity: engine.KindBall, X: 1, Y: 2})
	m.Apply(engine.MoveEvent{ID: 8, X: 5, Y: 5})
	if len(m.Sprites()) != 1 {
		t.Fatalf("move for unknown id must not create a sprite")
	}

	m.Apply(engine.DestroyEvent{ID: 7})
	if _, ok := m.Sprite(7); ok {
		t.Error("sprite should be gone after Destroy")
	}
}

func TestMirrorResetKeepsScores(t *testing.T) {
	m := NewMirror()
	m.Apply(engine.GoalEvent{Player: engine.Right, Score: 3})
	m.Apply(engine.ResetEvent{})

	if m.Score(engine.Right) != 3 {
		t.Errorf("reset must not clear the displayed score, got %d", m.Score(engine.Right))
	}
	if m.Phase() != PhaseWaiting {
		t.Errorf("phase = %s, expected waiting", m.Phase())
	}
}

func TestViewportCell(t *testing.T) {
	vp := Viewport{Area: engine.V(500000, 500000), Cols: 101, Rows: 51}

	tests := []struct {
		name     string
		x, y     int64
		col, row int
	}{
		{"centre", 0, 0, 50, 25},
		{"top-left", -500000, 500000, 0, 0},
		{"bottom-right", 500000, -500000, 100, 50},
		{"clamped outside", 900000, -900000, 100, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := vp.Cell(tc.x, tc.y)
			if col != tc.col || row != tc.row {
				t.Errorf("Cell(%d, %d) = (%d, %d), expected (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
			}
		})
	}
}

func TestViewportSpan(t *testing.T) {
	vp := Viewport{Area: engine.V(400000, 240000), Cols: 80, Rows: 24}

	w, h := vp.Span(8000, 30000)
	if w != 1 || h != 3 {
		t.Errorf("Span(paddle) = (%d, %d), expected (1, 3)", w, h)
	}
	if w, h := vp.Span(1, 1); w != 1 || h != 1 {
		t.Errorf("Span() minimum = (%d, %d), expected (1, 1)", w, h)
	}
}

func TestRelative(t *testing.T) {
	x, y := Relative(engine.V(600000, 400000), -300000, 400000)
	if x != -0.5 || y != 1 {
		t.Errorf("Relative() = (%v, %v), expected (-0.5, 1)", x, y)
	}
}

func TestDraw(t *testing.T) {
	e := engine.New(standardConfig())
	m := NewMirror()
	if err := e.Initialize(m.Apply); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	c := NewCanvas(41, 21)
	m.Draw(c, e.Config())

	// The field is the 20 rows below the score row; y=0 lands on field row 9.
	if got := c.Get(20, 1+9); got.Rune != BallRune || got.Color != ColorBall {
		t.Errorf("centre cell = %+v, expected ball", got)
	}
	if got := c.Get(0, 1+9); got.Rune != PaddleRune {
		t.Errorf("left paddle cell = %+v, expected paddle", got)
	}
	if got := c.Get(39, 1+9); got.Rune != PaddleRune {
		t.Errorf("right paddle cell = %+v, expected paddle", got)
	}
	if !strings.Contains(c.String(), "SPACE to serve") {
		t.Error("waiting banner missing")
	}
	if first := strings.Split(c.String(), "\n")[0]; !strings.Contains(first, "0") {
		t.Errorf("score row = %q, expected scores", first)
	}
}
