// Package engine implements the deterministic Pong simulation.
//
// The engine is a state machine driven by Actions. Every call reports what
// changed through Events handed to a caller-supplied Sink, in the order they
// were produced. It performs no I/O, keeps no clock of its own and never
// blocks, so any front-end (terminal, SSH session, headless script) can drive
// it by mapping input to Actions and Events to output.
//
// All distances are fixed-point integers ("world units") so that a given
// sequence of Actions always yields the same sequence of Events.
package engine

// Vec is an integer 2D vector in world units.
type Vec struct {
	X, Y int64
}

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y int64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Abs returns the component-wise absolute value.
func (v Vec) Abs() Vec {
	return Vec{X: abs(v.X), Y: abs(v.Y)}
}

// Config is the immutable playfield geometry.
// Area and Paddle are half-extents; BallSize is the ball's half-size.
type Config struct {
	Area     Vec
	Paddle   Vec
	BallSize int64
}

// PaddleRange returns the inclusive bounds of a paddle's y coordinate.
func (c Config) PaddleRange() (lo, hi int64) {
	return c.Paddle.Y - c.Area.Y, c.Area.Y - c.Paddle.Y
}

// GoalLine returns the distance from the centre the ball must exceed to score.
func (c Config) GoalLine() int64 {
	return c.Area.X + c.BallSize
}

// State is the engine lifecycle state.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Player identifies a side of the field.
type Player int

const (
	Left Player = iota
	Right
)

func (p Player) String() string {
	switch p {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Direction is the vertical intent of a paddle.
type Direction int

const (
	Neutral Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Neutral:
		return "neutral"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// EntityKind tells front-ends what an entity is so they can draw it.
type EntityKind int

const (
	KindLeftPaddle EntityKind = iota
	KindRightPaddle
	KindBall
)

func (k EntityKind) String() string {
	switch k {
	case KindLeftPaddle:
		return "left_paddle"
	case KindRightPaddle:
		return "right_paddle"
	case KindBall:
		return "ball"
	default:
		return "unknown"
	}
}

// ID identifies an entity for its whole lifetime.
type ID uint64

// Entity ids are fixed: entities are created once and never destroyed.
const (
	LeftPaddleID  ID = 0
	RightPaddleID ID = 1
	BallID        ID = 2
)
