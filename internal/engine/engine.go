package engine

import "fmt"

// Simulation constants, in world units and clock units.
const (
	// FrameTime is the clock span of one physics tick.
	FrameTime uint64 = 1000
	// PaddleSpeed is the vertical paddle speed per tick while moving.
	PaddleSpeed int64 = 300
	// ServeSpeed scales the serve direction chosen by Reset.
	ServeSpeed int64 = 300
)

// InitialBallVelocity is the ball velocity set at construction.
var InitialBallVelocity = Vec{X: 240, Y: 240}

type paddle struct {
	id       ID
	score    uint32
	position Vec
	velocity Vec
}

type ball struct {
	id       ID
	position Vec
	velocity Vec
}

// Engine is a single Pong match. It is not safe for concurrent use; the
// owner serialises calls.
type Engine struct {
	cfg   Config
	state State
	clock uint64
	left  paddle
	right paddle
	ball  ball
}

// New returns an uninitialized engine for cfg. The entities already sit at
// their starting positions; Initialize announces them.
func New(cfg Config) *Engine {
	return &Engine{
		cfg:   cfg,
		state: StateUninitialized,
		left: paddle{
			id:       LeftPaddleID,
			position: V(cfg.Paddle.X-cfg.Area.X, 0),
		},
		right: paddle{
			id:       RightPaddleID,
			position: V(cfg.Area.X-cfg.Paddle.X, 0),
		},
		ball: ball{
			id:       BallID,
			velocity: InitialBallVelocity,
		},
	}
}

// Process applies a to the engine, passing produced events to emit in order.
func (e *Engine) Process(a Action, emit Sink) error {
	if emit == nil {
		emit = Discard
	}

	switch a := a.(type) {
	case InitializeAction:
		e.initialize(emit)
		return nil
	case StartAction:
		return e.start(emit)
	case ResetAction:
		return e.reset(a.Seed, emit)
	case TimeAction:
		return e.advance(a.T, emit)
	case MoveAction:
		return e.move(a.Player, a.Direction)
	default:
		return fmt.Errorf("pong: unsupported action %T", a)
	}
}

// Initialize is shorthand for Process(InitializeAction{}, emit).
func (e *Engine) Initialize(emit Sink) error {
	return e.Process(InitializeAction{}, emit)
}

// Start is shorthand for Process(StartAction{}, emit).
func (e *Engine) Start(emit Sink) error {
	return e.Process(StartAction{}, emit)
}

// Reset is shorthand for Process(ResetAction{Seed: seed}, emit).
func (e *Engine) Reset(seed int64, emit Sink) error {
	return e.Process(ResetAction{Seed: seed}, emit)
}

// Time is shorthand for Process(TimeAction{T: t}, emit).
func (e *Engine) Time(t uint64, emit Sink) error {
	return e.Process(TimeAction{T: t}, emit)
}

// Move is shorthand for Process(MoveAction{...}, nil). Move emits nothing.
func (e *Engine) Move(p Player, d Direction) error {
	return e.Process(MoveAction{Player: p, Direction: d}, nil)
}

// Config returns the geometry the engine was built with.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Clock returns the simulation clock in microseconds.
func (e *Engine) Clock() uint64 {
	return e.clock
}

// Score returns the goals credited to p since construction.
func (e *Engine) Score(p Player) uint32 {
	return e.player(p).score
}

func (e *Engine) requireInitialized(action string) error {
	if e.state == StateUninitialized {
		return &ActionError{Action: action, Err: ErrNotInitialized}
	}
	return nil
}

func (e *Engine) player(p Player) *paddle {
	if p == Right {
		return &e.right
	}
	return &e.left
}

// initialize may be repeated; it re-announces the entities where they are.
func (e *Engine) initialize(emit Sink) {
	emit(CreateEvent{ID: e.left.id, Entity: KindLeftPaddle, X: e.left.position.X, Y: e.left.position.Y})
	emit(CreateEvent{ID: e.right.id, Entity: KindRightPaddle, X: e.right.position.X, Y: e.right.position.Y})
	emit(CreateEvent{ID: e.ball.id, Entity: KindBall, X: e.ball.position.X, Y: e.ball.position.Y})
	e.state = StateReady
}

func (e *Engine) start(emit Sink) error {
	if err := e.requireInitialized("start"); err != nil {
		return err
	}
	e.state = StateRunning
	emit(RoundStartEvent{})
	return nil
}

func (e *Engine) reset(seed int64, emit Sink) error {
	if err := e.requireInitialized("reset"); err != nil {
		return err
	}

	e.left.position.Y = 0
	e.right.position.Y = 0
	e.ball.position = Vec{}
	e.ball.velocity.X = ServeVelocity(seed)
	e.state = StateReady

	emit(MoveEvent{ID: e.left.id, X: e.left.position.X, Y: 0})
	emit(MoveEvent{ID: e.right.id, X: e.right.position.X, Y: 0})
	emit(MoveEvent{ID: e.ball.id, X: 0, Y: 0})
	emit(ResetEvent{})
	return nil
}

// ServeVelocity is the ball x-velocity a reset with seed produces:
// ((seed % 2) - 1) * ServeSpeed with Go's truncated remainder. Even seeds
// give -300, positive odd seeds 0 and negative odd seeds -600.
func ServeVelocity(seed int64) int64 {
	return ((seed % 2) - 1) * ServeSpeed
}

// advance moves the clock to t. If the engine is running when the call
// starts, it executes one tick per elapsed FrameTime, including ticks after a
// goal. A t behind the clock is ignored.
func (e *Engine) advance(t uint64, emit Sink) error {
	if err := e.requireInitialized("time"); err != nil {
		return err
	}
	if t < e.clock {
		return nil
	}

	if e.state == StateRunning {
		for t-e.clock >= FrameTime {
			e.clock += FrameTime
			e.tick(emit)
		}
	}
	e.clock = t
	return nil
}

func (e *Engine) move(p Player, d Direction) error {
	if err := e.requireInitialized("move"); err != nil {
		return err
	}

	var vy int64
	switch d {
	case Up:
		vy = PaddleSpeed
	case Down:
		vy = -PaddleSpeed
	case Neutral:
		vy = 0
	}
	e.player(p).velocity.Y = vy
	return nil
}
