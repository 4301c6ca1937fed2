package engine

// Action is an input to the engine. The set of actions is closed; use a type
// switch over the concrete types below.
type Action interface {
	action()
	// Name is a short lowercase label used in errors, logs and metrics.
	Name() string
}

// InitializeAction creates the paddles and the ball.
type InitializeAction struct{}

// StartAction puts the ball in play.
type StartAction struct{}

// ResetAction recentres every entity. Seed parity picks the serve direction.
type ResetAction struct {
	Seed int64
}

// TimeAction advances the simulation clock to T microseconds.
type TimeAction struct {
	T uint64
}

// MoveAction sets a paddle's vertical direction from the next tick on.
type MoveAction struct {
	Player    Player
	Direction Direction
}

func (InitializeAction) action() {}
func (StartAction) action()      {}
func (ResetAction) action()      {}
func (TimeAction) action()       {}
func (MoveAction) action()       {}

func (InitializeAction) Name() string { return "initialize" }
func (StartAction) Name() string      { return "start" }
func (ResetAction) Name() string      { return "reset" }
func (TimeAction) Name() string       { return "time" }
func (MoveAction) Name() string       { return "move" }
