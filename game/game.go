// File: game/game.go
package game

import (
	"fmt"
	"log"

	"github.com/lguibr/fuzzpong/utils"
)

// Racket slots.
const (
	OpponentIndex = 0 // top
	PlayerIndex   = 1 // bottom
)

// KeyState is the keyboard snapshot handed to the session once per tick.
type KeyState struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

// Frame is a read-only copy of the session after a tick, for renderers.
type Frame struct {
	Tick    int       `json:"tick"`
	Board   Board     `json:"board"`
	Ball    Ball      `json:"ball"`
	Rackets [2]Racket `json:"rackets"`
	Events  []Event   `json:"events,omitempty"`
}

// Session owns the game state of one match. It is not safe for concurrent
// use: a single goroutine (the SessionActor) calls Step.
type Session struct {
	cfg     utils.Config
	logger  *log.Logger
	board   Board
	ball    *Ball
	rackets [2]*Racket
	agents  [2]Agent

	tick     int
	keys     KeyState
	keysTick int
	last     Frame
}

// NewSession lays out the board: ball in the middle,
// opponent racket on the top edge, player racket on the bottom edge.
func NewSession(cfg utils.Config, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger = discardLogger(logger)

	board := Board{Width: cfg.BoardWidth, Height: cfg.BoardHeight}
	ball := NewBall(board.Width/2, board.Height/2, cfg)
	rackets := [2]*Racket{
		NewRacket(OpponentIndex, board.Width/2, 0, cfg),
		NewRacket(PlayerIndex, board.Width/2, board.Height-cfg.PaddleHeight, cfg),
	}

	var controller *RacketController
	if cfg.OpponentAgent == "fuzzy" || cfg.PlayerAgent == "fuzzy" {
		engine, err := NewRacketEngine()
		if err != nil {
			return nil, err
		}
		controller, err = NewRacketController(engine, cfg.InferenceCacheSize, logger)
		if err != nil {
			return nil, fmt.Errorf("racket controller: %w", err)
		}
	}

	var agents [2]Agent
	for i, kind := range []string{cfg.OpponentAgent, cfg.PlayerAgent} {
		agent, err := NewAgent(kind, rackets[i], ball, board, controller)
		if err != nil {
			return nil, err
		}
		agents[i] = agent
	}

	s := &Session{
		cfg:     cfg,
		logger:  logger,
		board:   board,
		ball:    ball,
		rackets: rackets,
		agents:  agents,
	}
	s.last = s.snapshot(nil)
	return s, nil
}

func (s *Session) Board() Board         { return s.board }
func (s *Session) Ball() *Ball          { return s.ball }
func (s *Session) Racket(i int) *Racket { return s.rackets[i] }
func (s *Session) Agent(i int) Agent    { return s.agents[i] }
func (s *Session) Tick() int            { return s.tick }
func (s *Session) LastFrame() Frame     { return s.last }

// SetKeys stores the latest keyboard snapshot. It stays active for
// KeyHoldTicks ticks, or until replaced when KeyHoldTicks is 0.
func (s *Session) SetKeys(keys KeyState) {
	s.keys = keys
	s.keysTick = s.tick
}

func (s *Session) activeKeys() KeyState {
	if s.cfg.KeyHoldTicks > 0 && s.tick-s.keysTick >= s.cfg.KeyHoldTicks {
		return KeyState{}
	}
	return s.keys
}

// Observe returns (racket centre - ball centre) on both axes for racket i.
func (s *Session) Observe(i int) (xDiff, yDiff int) {
	r := s.rackets[i]
	return r.CenterX() - s.ball.CenterX(), r.CenterY() - s.ball.CenterY()
}

// Step runs one tick: keyboard input, ball physics, then both agents.
func (s *Session) Step() Frame {
	keys := s.activeKeys()
	if manual, ok := s.agents[PlayerIndex].(ManualMover); ok {
		if keys.Left {
			manual.MoveManual(0)
		} else if keys.Right {
			manual.MoveManual(s.board.Width)
		}
	}

	events := s.ball.Move(s.board, s.tick, s.rackets[PlayerIndex], s.rackets[OpponentIndex])
	for _, ev := range events {
		s.logEvent(ev)
	}

	for i, agent := range s.agents {
		xDiff, yDiff := s.Observe(i)
		agent.Act(xDiff, yDiff)
	}

	s.last = s.snapshot(events)
	s.tick++
	return s.last
}

func (s *Session) snapshot(events []Event) Frame {
	return Frame{
		Tick:    s.tick,
		Board:   s.board,
		Ball:    *s.ball,
		Rackets: [2]Racket{*s.rackets[0], *s.rackets[1]},
		Events:  events,
	}
}

func (s *Session) logEvent(ev Event) {
	switch ev.Kind {
	case EventPowerBounce:
		s.logger.Printf("[SESSION] tick %d: power bounce on racket %d, velocity (%.2f, %.2f)", ev.Tick, ev.Racket, s.ball.Vx, s.ball.Vy)
	case EventBounce:
		s.logger.Printf("[SESSION] tick %d: bounce on racket %d", ev.Tick, ev.Racket)
	case EventReset:
		s.logger.Printf("[SESSION] tick %d: ball out, reset", ev.Tick)
	}
}
