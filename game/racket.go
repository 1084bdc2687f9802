// File: game/racket.go
package game

import (
	"math"

	"github.com/lguibr/fuzzpong/utils"
)

type Racket struct {
	Index    int    `json:"index"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MaxSpeed int    `json:"maxSpeed"`
	Color    [3]int `json:"color"`
}

func NewRacket(index, x, y int, cfg utils.Config) *Racket {
	return &Racket{
		Index:    index,
		X:        x,
		Y:        y,
		Width:    cfg.PaddleWidth,
		Height:   cfg.PaddleHeight,
		MaxSpeed: cfg.PaddleMaxSpeed,
		Color:    cfg.PaddleColor,
	}
}

func (r *Racket) CenterX() int { return r.X + r.Width/2 }
func (r *Racket) CenterY() int { return r.Y + r.Height/2 }

// Move steps the racket towards targetX by at most MaxSpeed. A step that
// would leave the board is dropped entirely, the racket does not snap to
// the edge. It returns the applied displacement.
func (r *Racket) Move(targetX float64, boardWidth int) int {
	delta := int(math.RoundToEven(targetX - float64(r.X)))
	delta = utils.Clamp(delta, -r.MaxSpeed, r.MaxSpeed)
	if r.X+delta < 0 || r.X+r.Width+delta > boardWidth {
		delta = 0
	}
	r.X += delta
	return delta
}
