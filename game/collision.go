package game

import "github.com/lguibr/fuzzpong/utils"

// CollidesSideWall reports whether the ball passed the left or right wall.
func (ball *Ball) CollidesSideWall(board Board) bool {
	return ball.X < 0 || ball.X > board.Width-ball.Radius
}

// OutOfBounds reports whether the ball left through the top or bottom.
func (ball *Ball) OutOfBounds(board Board) bool {
	return ball.Y < 0 || ball.Y > board.Height-ball.Radius
}

// Intersects reports whether the ball's bounding box overlaps the racket.
func (ball *Ball) Intersects(r *Racket) bool {
	return utils.Overlaps(ball.X, ball.Y, ball.Radius, ball.Radius, r.X, r.Y, r.Width, r.Height)
}

// EdgeHit reports whether the ball lies within the racket's outer quarter on
// either side.
func (ball *Ball) EdgeHit(r *Racket) bool {
	quarter := r.Width / 4
	return ball.X+ball.Radius < r.X+quarter || ball.X > r.X+r.Width-quarter
}

// CollideRackets bounces the ball off the first racket it overlaps, unless a
// hit was registered less than the debounce window ago.
func (ball *Ball) CollideRackets(tick int, rackets []*Racket) []Event {
	var events []Event
	for _, r := range rackets {
		if r == nil || !ball.Intersects(r) {
			continue
		}
		if !ball.LastCollision.Begin(tick) {
			continue
		}
		if ball.EdgeHit(r) {
			ball.PowerBounce()
			events = append(events, Event{Kind: EventPowerBounce, Tick: tick, Racket: r.Index})
		} else {
			ball.BounceY()
			events = append(events, Event{Kind: EventBounce, Tick: tick, Racket: r.Index})
		}
	}
	return events
}
