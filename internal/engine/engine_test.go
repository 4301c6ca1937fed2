package engine

import (
	"errors"
	"testing"
)

// standardConfig is the geometry used throughout these tests.
func standardConfig() Config {
	return Config{
		Area:     V(500000, 500000),
		Paddle:   V(5000, 31250),
		BallSize: 5000,
	}
}

func newRunning(t *testing.T) *Engine {
	t.Helper()
	e := New(standardConfig())
	if err := e.Initialize(nil); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return e
}

func TestActionsBeforeInitialize(t *testing.T) {
	actions := []Action{
		StartAction{},
		ResetAction{Seed: 4},
		TimeAction{T: 5000},
		MoveAction{Player: Left, Direction: Up},
	}

	for _, a := range actions {
		t.Run(a.Name(), func(t *testing.T) {
			e := New(standardConfig())
			var events []Event
			err := e.Process(a, Collect(&events))

			if !errors.Is(err, ErrNotInitialized) {
				t.Fatalf("Process(%s) error = %v, expected ErrNotInitialized", a.Name(), err)
			}
			var actionErr *ActionError
			if !errors.As(err, &actionErr) || actionErr.Action != a.Name() {
				t.Errorf("expected *ActionError for %q, got %#v", a.Name(), err)
			}
			if len(events) != 0 {
				t.Errorf("expected no events, got %d", len(events))
			}
			if e.State() != StateUninitialized {
				t.Errorf("state = %s, expected uninitialized", e.State())
			}
		})
	}
}

func TestInitialize(t *testing.T) {
	e := New(standardConfig())

	for round := 0; round < 2; round++ {
		var events []Event
		if err := e.Initialize(Collect(&events)); err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}

		expected := []Event{
			CreateEvent{ID: LeftPaddleID, Entity: KindLeftPaddle, X: -495000, Y: 0},
			CreateEvent{ID: RightPaddleID, Entity: KindRightPaddle, X: 495000, Y: 0},
			CreateEvent{ID: BallID, Entity: KindBall, X: 0, Y: 0},
		}
		if len(events) != len(expected) {
			t.Fatalf("round %d: got %d events, expected %d", round, len(events), len(expected))
		}
		for i := range expected {
			if events[i] != expected[i] {
				t.Errorf("round %d: event %d = %#v, expected %#v", round, i, events[i], expected[i])
			}
		}
		if e.State() != StateReady {
			t.Errorf("state = %s, expected ready", e.State())
		}
	}
}

func TestStartEmitsRoundStartEveryTime(t *testing.T) {
	e := New(standardConfig())
	if err := e.Initialize(nil); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		var events []Event
		if err := e.Start(Collect(&events)); err != nil {
			t.Fatalf("Start() failed: %v", err)
		}
		if len(events) != 1 || events[0] != (RoundStartEvent{}) {
			t.Errorf("Start() #%d events = %#v, expected one RoundStart", i, events)
		}
		if e.State() != StateRunning {
			t.Errorf("state = %s, expected running", e.State())
		}
	}
}

func TestFirstTick(t *testing.T) {
	e := newRunning(t)

	var events []Event
	if err := e.Time(1000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	expected := []Event{
		MoveEvent{ID: LeftPaddleID, X: -495000, Y: 0},
		MoveEvent{ID: RightPaddleID, X: 495000, Y: 0},
		MoveEvent{ID: BallID, X: 240, Y: 240},
	}
	if len(events) != len(expected) {
		t.Fatalf("got %d events, expected %d", len(events), len(expected))
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %#v, expected %#v", i, events[i], expected[i])
		}
	}
	if e.Clock() != 1000 {
		t.Errorf("Clock() = %d, expected 1000", e.Clock())
	}
}

func TestTimeWhileReadyOnlyStoresClock(t *testing.T) {
	e := New(standardConfig())
	if err := e.Initialize(nil); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}

	var events []Event
	if err := e.Time(5000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events while ready, got %d", len(events))
	}
	if e.Clock() != 5000 {
		t.Errorf("Clock() = %d, expected 5000", e.Clock())
	}

	// The stored clock is the base for the next running call.
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := e.Time(5999, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no tick for a sub-frame delta, got %d events", len(events))
	}
	if e.Clock() != 5999 {
		t.Errorf("Clock() = %d, expected snap to 5999", e.Clock())
	}

	if err := e.Time(7000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("expected one tick (3 events), got %d", len(events))
	}
}

func TestTimeRunsOneTickPerFrame(t *testing.T) {
	e := newRunning(t)

	var events []Event
	if err := e.Time(3500, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 9 {
		t.Fatalf("expected 3 ticks (9 events), got %d", len(events))
	}
	if last := events[8]; last != (MoveEvent{ID: BallID, X: 720, Y: 720}) {
		t.Errorf("final ball move = %#v, expected (720, 720)", last)
	}
	if e.Clock() != 3500 {
		t.Errorf("Clock() = %d, expected 3500", e.Clock())
	}
}

func TestTimeBackwardsIsIgnored(t *testing.T) {
	e := newRunning(t)
	if err := e.Time(10000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	before := e.Snapshot()

	var events []Event
	if err := e.Time(4000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}
	if after := e.Snapshot(); after != before {
		t.Errorf("snapshot changed: %+v -> %+v", before, after)
	}
}

func TestMoveSetsPaddleVelocity(t *testing.T) {
	e := newRunning(t)

	if err := e.Move(Left, Up); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if v := e.Snapshot().Left.Velocity.Y; v != PaddleSpeed {
		t.Errorf("left velocity = %d, expected %d", v, PaddleSpeed)
	}

	if err := e.Time(1000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if y := e.Snapshot().Left.Position.Y; y != 300 {
		t.Errorf("left y = %d, expected 300", y)
	}

	if err := e.Move(Left, Down); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := e.Time(2000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if y := e.Snapshot().Left.Position.Y; y != 0 {
		t.Errorf("left y = %d, expected 0", y)
	}

	if err := e.Move(Left, Neutral); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := e.Time(5000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if y := e.Snapshot().Left.Position.Y; y != 0 {
		t.Errorf("left y = %d, expected 0 after neutral", y)
	}
}

func TestPaddlesStayInsideField(t *testing.T) {
	e := newRunning(t)
	lo, hi := e.Config().PaddleRange()

	if err := e.Move(Left, Up); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := e.Move(Right, Down); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	outOfRange := 0
	check := func(ev Event) {
		m, ok := ev.(MoveEvent)
		if !ok || m.ID == BallID {
			return
		}
		if m.Y < lo || m.Y > hi {
			outOfRange++
		}
	}

	// 1700 ticks is long enough to pin both paddles and short enough that
	// the ball has not reached either goal.
	if err := e.Time(1_700_000, check); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if outOfRange != 0 {
		t.Errorf("%d paddle moves left the field", outOfRange)
	}

	snap := e.Snapshot()
	if snap.Left.Position.Y != hi {
		t.Errorf("left y = %d, expected pinned at %d", snap.Left.Position.Y, hi)
	}
	if snap.Right.Position.Y != lo {
		t.Errorf("right y = %d, expected pinned at %d", snap.Right.Position.Y, lo)
	}
	if snap.State != StateRunning {
		t.Errorf("state = %s, expected running", snap.State)
	}
}

func TestReset(t *testing.T) {
	e := newRunning(t)
	if err := e.Move(Left, Up); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}
	if err := e.Time(50_000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	var events []Event
	if err := e.Reset(0, Collect(&events)); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	expected := []Event{
		MoveEvent{ID: LeftPaddleID, X: -495000, Y: 0},
		MoveEvent{ID: RightPaddleID, X: 495000, Y: 0},
		MoveEvent{ID: BallID, X: 0, Y: 0},
		ResetEvent{},
	}
	if len(events) != len(expected) {
		t.Fatalf("got %d events, expected %d", len(events), len(expected))
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %#v, expected %#v", i, events[i], expected[i])
		}
	}

	snap := e.Snapshot()
	if snap.State != StateReady {
		t.Errorf("state = %s, expected ready", snap.State)
	}
	if snap.Ball.Velocity.X != -300 {
		t.Errorf("ball vx = %d, expected -300", snap.Ball.Velocity.X)
	}
	// Paddle velocity survives a reset; only positions are recentred.
	if snap.Left.Velocity.Y != PaddleSpeed {
		t.Errorf("left vy = %d, expected %d", snap.Left.Velocity.Y, PaddleSpeed)
	}
}

func TestServeVelocity(t *testing.T) {
	tests := []struct {
		seed     int64
		expected int64
	}{
		{0, -300},
		{1, 0},
		{2, -300},
		{3, 0},
		{-1, -600}, // truncated remainder: -1 % 2 == -1
		{-2, -300},
		{-7, -600},
	}

	for _, tc := range tests {
		if got := ServeVelocity(tc.seed); got != tc.expected {
			t.Errorf("ServeVelocity(%d) = %d, expected %d", tc.seed, got, tc.expected)
		}

		e := New(standardConfig())
		if err := e.Initialize(nil); err != nil {
			t.Fatalf("Initialize() failed: %v", err)
		}
		if err := e.Reset(tc.seed, nil); err != nil {
			t.Fatalf("Reset(%d) failed: %v", tc.seed, err)
		}
		if vx := e.Snapshot().Ball.Velocity.X; vx != tc.expected {
			t.Errorf("Reset(%d): ball vx = %d, expected %d", tc.seed, vx, tc.expected)
		}
	}
}

func TestRightScoresOnLeftGoalLine(t *testing.T) {
	e := New(standardConfig())
	if err := e.Initialize(nil); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	// Serve left at 300/tick; the ball passes the left paddle well above it
	// and crosses -505000 on tick 1684.
	if err := e.Reset(0, nil); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	var goals []GoalEvent
	countGoals := func(ev Event) {
		if g, ok := ev.(GoalEvent); ok {
			goals = append(goals, g)
		}
	}

	if err := e.Time(1_683_000, countGoals); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(goals) != 0 {
		t.Fatalf("goal scored too early: %#v", goals)
	}

	var events []Event
	if err := e.Time(1_684_000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	expected := []Event{
		GoalEvent{Player: Right, Score: 1},
		MoveEvent{ID: LeftPaddleID, X: -495000, Y: 0},
		MoveEvent{ID: RightPaddleID, X: 495000, Y: 0},
		MoveEvent{ID: BallID, X: 0, Y: 0},
	}
	if len(events) != len(expected) {
		t.Fatalf("got %d events, expected %d: %#v", len(events), len(expected), events)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("event %d = %#v, expected %#v", i, events[i], expected[i])
		}
	}
	if e.State() != StateReady {
		t.Errorf("state = %s, expected ready", e.State())
	}
	if e.Score(Right) != 1 || e.Score(Left) != 0 {
		t.Errorf("scores = %d-%d, expected 0-1", e.Score(Left), e.Score(Right))
	}
}

func TestLeftScoresAndTickingContinues(t *testing.T) {
	e := newRunning(t)

	var events []Event
	if err := e.Time(3_000_000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	// The ball crosses 505000 on tick 2105. The call still runs all 3000
	// ticks; the ball restarts from the origin with its old velocity.
	if len(events) != 3000*3+1 {
		t.Fatalf("got %d events, expected %d", len(events), 3000*3+1)
	}
	goal, ok := events[2104*3].(GoalEvent)
	if !ok || goal != (GoalEvent{Player: Left, Score: 1}) {
		t.Errorf("expected Goal{left, 1} on tick 2105, got %#v", events[2104*3])
	}
	if ball := events[len(events)-1]; ball != (MoveEvent{ID: BallID, X: 214800, Y: -214800}) {
		t.Errorf("last ball move = %#v, expected (214800, -214800)", ball)
	}
	if e.Clock() != 3_000_000 {
		t.Errorf("Clock() = %d, expected 3000000", e.Clock())
	}
	if e.State() != StateReady {
		t.Errorf("state = %s, expected ready", e.State())
	}

	events = events[:0]
	if err := e.Time(4_000_000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events while ready, got %d", len(events))
	}

	// Scores accumulate across rallies and survive Reset.
	if err := e.Start(nil); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if err := e.Time(4_000_000+2105*1000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if e.Score(Left) != 2 {
		t.Errorf("left score = %d, expected 2", e.Score(Left))
	}
	if err := e.Reset(2, nil); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if e.Score(Left) != 2 {
		t.Errorf("left score after reset = %d, expected 2", e.Score(Left))
	}
}

func TestTimeKeepsTickingAfterGoal(t *testing.T) {
	e := newRunning(t)
	e.ball.position = V(505000, 0)
	e.ball.velocity = V(240, 0)

	var events []Event
	if err := e.Time(5000, Collect(&events)); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}

	if len(events) != 1+5*3 {
		t.Fatalf("got %d events, expected %d: %#v", len(events), 1+5*3, events)
	}
	if events[0] != (GoalEvent{Player: Left, Score: 1}) {
		t.Errorf("event 0 = %#v, expected Goal{left, 1}", events[0])
	}
	var balls []Event
	for _, ev := range events {
		if mv, ok := ev.(MoveEvent); ok && mv.ID == BallID {
			balls = append(balls, mv)
		}
	}
	expected := []Event{
		MoveEvent{ID: BallID, X: 0, Y: 0},
		MoveEvent{ID: BallID, X: 240, Y: 0},
		MoveEvent{ID: BallID, X: 480, Y: 0},
		MoveEvent{ID: BallID, X: 720, Y: 0},
		MoveEvent{ID: BallID, X: 960, Y: 0},
	}
	for i := range expected {
		if balls[i] != expected[i] {
			t.Errorf("ball move %d = %#v, expected %#v", i, balls[i], expected[i])
		}
	}
	if e.State() != StateReady {
		t.Errorf("state = %s, expected ready", e.State())
	}
	if e.Clock() != 5000 {
		t.Errorf("Clock() = %d, expected 5000", e.Clock())
	}
}

func TestBallBouncesOffRaisedPaddle(t *testing.T) {
	e := newRunning(t)
	if err := e.Move(Right, Up); err != nil {
		t.Fatalf("Move() failed: %v", err)
	}

	// By tick 2021 the right paddle is pinned at 468750 and the ball
	// reaches (485040, 485040), inside the collision box.
	if err := e.Time(2_020_000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	if vx := e.Snapshot().Ball.Velocity.X; vx != 240 {
		t.Fatalf("ball vx = %d before contact, expected 240", vx)
	}

	if err := e.Time(2_021_000, nil); err != nil {
		t.Fatalf("Time() failed: %v", err)
	}
	snap := e.Snapshot()
	if snap.Ball.Position != V(485040, 485040) {
		t.Errorf("ball position = %+v, expected (485040, 485040)", snap.Ball.Position)
	}
	if snap.Ball.Velocity.X != -240 {
		t.Errorf("ball vx = %d after contact, expected -240", snap.Ball.Velocity.X)
	}
}

func TestDeterminism(t *testing.T) {
	script := []Action{
		InitializeAction{},
		ResetAction{Seed: 4},
		StartAction{},
		MoveAction{Player: Left, Direction: Up},
		TimeAction{T: 250_000},
		MoveAction{Player: Right, Direction: Down},
		TimeAction{T: 900_500},
		MoveAction{Player: Left, Direction: Neutral},
		TimeAction{T: 2_500_000},
		StartAction{},
		TimeAction{T: 4_000_000},
	}

	run := func() (Snapshot, int) {
		e := New(standardConfig())
		count := 0
		for _, a := range script {
			if err := e.Process(a, func(Event) { count++ }); err != nil {
				t.Fatalf("Process(%s) failed: %v", a.Name(), err)
			}
		}
		return e.Snapshot(), count
	}

	snap1, n1 := run()
	snap2, n2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if n1 != n2 {
		t.Errorf("Determinism failed: event counts differ. Run1=%d, Run2=%d", n1, n2)
	}
}

func TestTeeFansOut(t *testing.T) {
	var a, b []Event
	sink := Tee(Collect(&a), nil, Collect(&b))
	sink(ResetEvent{})
	sink(RoundStartEvent{})

	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("expected both sinks to get 2 events, got %d and %d", len(a), len(b))
	}
	if a[1] != (RoundStartEvent{}) || b[0] != (ResetEvent{}) {
		t.Errorf("events delivered out of order: %#v %#v", a, b)
	}
}
