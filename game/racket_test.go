package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lguibr/fuzzpong/utils"
)

func TestRacket_Move(t *testing.T) {
	testCases := []struct {
		name      string
		x         int
		target    float64
		wantDelta int
		wantX     int
	}{
		{"within max speed", 100, 95, -5, 95},
		{"clamped right", 100, 150, 10, 110},
		{"clamped left", 100, 0, -10, 90},
		{"reaches left edge", 5, 0, -5, 0},
		{"would cross left edge", 3, -100, 0, 3},
		{"reaches right edge", 715, 720, 5, 720},
		{"would cross right edge", 715, 800, 0, 715},
		{"half rounds to even down", 100, 100.5, 0, 100},
		{"half rounds to even up", 100, 101.5, 2, 102},
		{"no move", 100, 100, 0, 100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRacket(PlayerIndex, tc.x, 380, utils.DefaultConfig())

			delta := r.Move(tc.target, 800)

			assert.Equal(t, tc.wantDelta, delta)
			assert.Equal(t, tc.wantX, r.X)
			assert.GreaterOrEqual(t, r.X, 0)
			assert.LessOrEqual(t, r.X+r.Width, 800)
		})
	}
}

func TestRacket_Center(t *testing.T) {
	r := NewRacket(OpponentIndex, 400, 0, utils.DefaultConfig())
	assert.Equal(t, 440, r.CenterX())
	assert.Equal(t, 10, r.CenterY())
}
