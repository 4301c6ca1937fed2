package engine

// Event is an output of the engine. The set of events is closed; use a type
// switch over the concrete types below.
type Event interface {
	event()
	// Kind is a short lowercase label used in logs, metrics and recordings.
	Kind() string
}

// CreateEvent announces a new entity at its starting position.
type CreateEvent struct {
	ID     ID
	Entity EntityKind
	X, Y   int64
}

// DestroyEvent removes an entity. Part of the protocol; the current rules
// never destroy anything.
type DestroyEvent struct {
	ID ID
}

// MoveEvent reports an entity's position at the end of a tick.
type MoveEvent struct {
	ID   ID
	X, Y int64
}

// GoalEvent reports that Player scored and their new total.
type GoalEvent struct {
	Player Player
	Score  uint32
}

// ResetEvent follows the Move events emitted by a reset.
type ResetEvent struct{}

// RoundStartEvent is emitted whenever the ball is put in play.
type RoundStartEvent struct{}

func (CreateEvent) event()     {}
func (DestroyEvent) event()    {}
func (MoveEvent) event()       {}
func (GoalEvent) event()       {}
func (ResetEvent) event()      {}
func (RoundStartEvent) event() {}

func (CreateEvent) Kind() string     { return "create" }
func (DestroyEvent) Kind() string    { return "destroy" }
func (MoveEvent) Kind() string       { return "move" }
func (GoalEvent) Kind() string       { return "goal" }
func (ResetEvent) Kind() string      { return "reset" }
func (RoundStartEvent) Kind() string { return "round_start" }
