package engine

// tick runs one fixed step:
//  1. integrate paddles and clamp them to the field
//  2. integrate the ball
//  3. score and recentre if the ball crossed a goal line
//  4. otherwise reflect off the walls and bounce off the approached paddle
//  5. report every entity's position
//
// On a goal tick the Goal event precedes the three Move events, so the ball
// Move reports the origin.
func (e *Engine) tick(emit Sink) {
	lo, hi := e.cfg.PaddleRange()
	for _, p := range []*paddle{&e.left, &e.right} {
		p.position = p.position.Add(p.velocity)
		p.position.Y = clamp(p.position.Y, lo, hi)
	}

	e.ball.position = e.ball.position.Add(e.ball.velocity)

	if scorer, ok := e.goal(); ok {
		e.ball.position = Vec{}
		p := e.player(scorer)
		p.score++
		e.state = StateReady
		emit(GoalEvent{Player: scorer, Score: p.score})
	} else {
		y := reflect(e.ball.position.Y, -e.cfg.Area.Y, e.cfg.Area.Y)
		if y != e.ball.position.Y {
			e.ball.velocity.Y = -e.ball.velocity.Y
		}
		e.ball.position.Y = y

		if e.hitsPaddle() {
			e.ball.velocity.X = -e.ball.velocity.X
		}
	}

	emit(MoveEvent{ID: e.left.id, X: e.left.position.X, Y: e.left.position.Y})
	emit(MoveEvent{ID: e.right.id, X: e.right.position.X, Y: e.right.position.Y})
	emit(MoveEvent{ID: e.ball.id, X: e.ball.position.X, Y: e.ball.position.Y})
}

// goal reports which player, if any, scores with the ball where it is now.
// A ball past the right goal line is a point for Left and vice versa.
func (e *Engine) goal() (Player, bool) {
	line := e.cfg.GoalLine()
	switch {
	case e.ball.position.X > line:
		return Left, true
	case e.ball.position.X < -line:
		return Right, true
	default:
		return Left, false
	}
}

// hitsPaddle tests the ball against the paddle it is travelling towards.
// Boxes that only touch do not collide.
func (e *Engine) hitsPaddle() bool {
	target := e.right.position
	if e.ball.velocity.X < 0 {
		target = e.left.position
	}
	d := e.ball.position.Sub(target).Abs()
	return d.X < e.cfg.Paddle.X+e.cfg.BallSize &&
		d.Y < e.cfg.Paddle.Y+e.cfg.BallSize
}

func clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// reflect mirrors x back inside [lo, hi] if it overshoots either bound.
func reflect(x, lo, hi int64) int64 {
	if x < lo {
		return lo - (x - lo)
	}
	if x > hi {
		return hi - (x - hi)
	}
	return x
}

func abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
