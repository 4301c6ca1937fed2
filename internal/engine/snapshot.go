package engine

// EntityState is the observable state of one entity.
type EntityState struct {
	ID       ID
	Kind     EntityKind
	Position Vec
	Velocity Vec
}

// Snapshot is a copy of the engine's observable state. Front-ends that
// attach mid-match use it to seed their view; tests use Hash for
// determinism checks.
type Snapshot struct {
	State      State
	Clock      uint64
	LeftScore  uint32
	RightScore uint32
	Left       EntityState
	Right      EntityState
	Ball       EntityState
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:      e.state,
		Clock:      e.clock,
		LeftScore:  e.left.score,
		RightScore: e.right.score,
		Left:       EntityState{ID: e.left.id, Kind: KindLeftPaddle, Position: e.left.position, Velocity: e.left.velocity},
		Right:      EntityState{ID: e.right.id, Kind: KindRightPaddle, Position: e.right.position, Velocity: e.right.velocity},
		Ball:       EntityState{ID: e.ball.id, Kind: KindBall, Position: e.ball.position, Velocity: e.ball.velocity},
	}
}

// Entities returns the three entities in id order.
func (s Snapshot) Entities() []EntityState {
	return []EntityState{s.Left, s.Right, s.Ball}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (s Snapshot) Hash() uint64 {
	h := uint64(s.State)
	h = h*31 + s.Clock
	h = h*31 + uint64(s.LeftScore)
	h = h*31 + uint64(s.RightScore)
	for _, ent := range s.Entities() {
		h = h*31 + uint64(ent.ID)
		h = h*31 + uint64(ent.Position.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(ent.Position.Y) //#nosec G115 -- hash computation
		h = h*31 + uint64(ent.Velocity.X) //#nosec G115 -- hash computation
		h = h*31 + uint64(ent.Velocity.Y) //#nosec G115 -- hash computation
	}
	return h
}
