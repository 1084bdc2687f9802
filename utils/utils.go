package utils

// Clamp bounds x to [low, high].
func Clamp(x, low, high int) int {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}

// AddCapped adds delta to a colour channel without going past 255.
func AddCapped(channel, delta int) int {
	return Clamp(channel+delta, 0, 255)
}

// Overlaps reports whether two axis aligned rectangles share any area.
// Touching edges do not count.
func Overlaps(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && ax+aw > bx && ay < by+bh && ay+ah > by
}
