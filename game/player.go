// File: game/player.go
package game

import (
	"fmt"
	"io"
	"log"
)

// Agent decides a racket move once per tick from the offset between the
// racket centre and the ball centre.
type Agent interface {
	Act(xDiff, yDiff int)
}

// ManualMover is implemented by agents that follow keyboard input.
type ManualMover interface {
	MoveManual(x int)
}

// NaiveOpponent chases the ball's centre with the racket's left edge.
type NaiveOpponent struct {
	racket *Racket
	ball   *Ball
	board  Board
}

func NewNaiveOpponent(racket *Racket, ball *Ball, board Board) *NaiveOpponent {
	return &NaiveOpponent{racket: racket, ball: ball, board: board}
}

func (o *NaiveOpponent) Act(xDiff, yDiff int) {
	o.racket.Move(float64(o.ball.CenterX()), o.board.Width)
}

// HumanPlayer ignores observations and moves only on keyboard input.
type HumanPlayer struct {
	racket *Racket
	board  Board
}

func NewHumanPlayer(racket *Racket, board Board) *HumanPlayer {
	return &HumanPlayer{racket: racket, board: board}
}

func (h *HumanPlayer) Act(xDiff, yDiff int) {}

func (h *HumanPlayer) MoveManual(x int) {
	h.racket.Move(float64(x), h.board.Width)
}

// NewAgent builds the agent named kind ("naive", "human" or "fuzzy") for racket.
func NewAgent(kind string, racket *Racket, ball *Ball, board Board, controller *RacketController) (Agent, error) {
	switch kind {
	case "naive":
		return NewNaiveOpponent(racket, ball, board), nil
	case "human":
		return NewHumanPlayer(racket, board), nil
	case "fuzzy":
		if controller == nil {
			return nil, fmt.Errorf("fuzzy agent for racket %d: nil controller", racket.Index)
		}
		return NewFuzzyPlayer(racket, board, controller), nil
	}
	return nil, fmt.Errorf("unknown agent kind %q", kind)
}

func discardLogger(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}
	return log.New(io.Discard, "", 0)
}
