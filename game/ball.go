// File: game/ball.go
package game

import (
	"math"

	"github.com/lguibr/fuzzpong/utils"
)

// Board is the playing field. Its size is fixed for a session.
type Board struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Ball struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Vx         float64 `json:"vx"`
	Vy         float64 `json:"vy"`
	Radius     int     `json:"radius"` // edge of the ball's square bounding box
	Color      [3]int  `json:"color"`
	StartX     int     `json:"-"`
	StartY     int     `json:"-"`
	StartSpeed float64 `json:"-"`
	StartColor [3]int  `json:"-"`

	PowerFactor   float64           `json:"-"`
	ColorStep     int               `json:"-"`
	LastCollision CollisionDebounce `json:"-"`
}

func NewBall(x, y int, cfg utils.Config) *Ball {
	return &Ball{
		X:             x,
		Y:             y,
		Vx:            cfg.BallSpeed,
		Vy:            cfg.BallSpeed,
		Radius:        cfg.BallRadius,
		Color:         cfg.BallColor,
		StartX:        x,
		StartY:        y,
		StartSpeed:    cfg.BallSpeed,
		StartColor:    cfg.BallColor,
		PowerFactor:   cfg.PowerBounceFactor,
		ColorStep:     cfg.PowerBounceColorStep,
		LastCollision: CollisionDebounce{Window: cfg.CollisionDebounceTicks},
	}
}

func (ball *Ball) CenterX() int { return ball.X + ball.Radius/2 }
func (ball *Ball) CenterY() int { return ball.Y + ball.Radius/2 }

func (ball *Ball) BounceX() { ball.Vx = -ball.Vx }
func (ball *Ball) BounceY() { ball.Vy = -ball.Vy }

// PowerBounce speeds the ball up, shifts its colour and bounces it
// vertically.
func (ball *Ball) PowerBounce() {
	ball.Color[1] = utils.AddCapped(ball.Color[1], ball.ColorStep)
	ball.Vx *= ball.PowerFactor
	ball.Vy *= ball.PowerFactor
	ball.BounceY()
}

// Reset puts the ball back at its start with start speed and colour. The
// vertical bounce makes the direction after a reset deterministic.
func (ball *Ball) Reset() {
	ball.X = ball.StartX
	ball.Y = ball.StartY
	ball.Vx = ball.StartSpeed
	ball.Vy = ball.StartSpeed
	ball.Color = ball.StartColor
	ball.BounceY()
}

// Speed is the magnitude of the velocity vector.
func (ball *Ball) Speed() float64 {
	return math.Hypot(ball.Vx, ball.Vy)
}

// Move advances the ball one tick and resolves wall and racket collisions.
// Position moves by the velocity rounded half to even.
func (ball *Ball) Move(board Board, tick int, rackets ...*Racket) []Event {
	var events []Event

	ball.X += int(math.RoundToEven(ball.Vx))
	ball.Y += int(math.RoundToEven(ball.Vy))

	// No position correction: the ball may sit past the wall for a tick.
	if ball.CollidesSideWall(board) {
		ball.BounceX()
		events = append(events, Event{Kind: EventWallBounce, Tick: tick, Racket: -1})
	}

	if ball.OutOfBounds(board) {
		ball.Reset()
		events = append(events, Event{Kind: EventReset, Tick: tick, Racket: -1})
	}

	return append(events, ball.CollideRackets(tick, rackets)...)
}
