// File: game/collision_tracker.go
package game

// CollisionDebounce remembers the tick of the last registered racket hit.
// A new hit registers only once Window ticks have passed since it. The
// window counts ticks, not wall time.
type CollisionDebounce struct {
	Window int
	last   int
	seen   bool
}

// Ready reports whether a hit at tick would register.
func (d *CollisionDebounce) Ready(tick int) bool {
	return !d.seen || tick-d.last >= d.Window
}

// Begin registers a hit at tick and returns true, or returns false while
// the previous hit is still inside the window.
func (d *CollisionDebounce) Begin(tick int) bool {
	if !d.Ready(tick) {
		return false
	}
	d.last = tick
	d.seen = true
	return true
}

// Last returns the tick of the last registered hit and whether there was one.
func (d *CollisionDebounce) Last() (int, bool) {
	return d.last, d.seen
}
