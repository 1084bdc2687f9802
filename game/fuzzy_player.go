package game

import (
	"errors"
	"log"

	lru "github.com/hashicorp/golang-lru"

	"github.com/lguibr/fuzzpong/fuzzy"
)

// RacketController turns an observation into a racket velocity through the
// fuzzy engine. Results are memoized: inference is a pure function of the
// observation.
type RacketController struct {
	engine *fuzzy.Engine
	cache  *lru.Cache
	logger *log.Logger
}

type observation struct {
	x, y float64
}

// NewRacketController wraps engine. cacheSize 0 disables memoization.
func NewRacketController(engine *fuzzy.Engine, cacheSize int, logger *log.Logger) (*RacketController, error) {
	c := &RacketController{engine: engine, logger: discardLogger(logger)}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Decide returns the racket velocity for the observation. An empty output
// set is logged and read as 0.
func (c *RacketController) Decide(xDiff, yDiff float64) float64 {
	key := observation{xDiff, yDiff}
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			return v.(float64)
		}
	}

	velocity, err := c.engine.Infer(fuzzy.Inputs{XDiff: xDiff, YDiff: yDiff})
	if err != nil {
		if !errors.Is(err, fuzzy.ErrDegenerateInference) {
			c.logger.Printf("[FUZZY] inference failed for (%v, %v): %v", xDiff, yDiff, err)
		} else {
			c.logger.Printf("[FUZZY] no rule fired for (%v, %v), holding still", xDiff, yDiff)
		}
		velocity = 0
	}

	if c.cache != nil {
		c.cache.Add(key, velocity)
	}
	return velocity
}

// FuzzyPlayer moves its racket by the controller's velocity each tick.
type FuzzyPlayer struct {
	racket     *Racket
	board      Board
	controller *RacketController
}

func NewFuzzyPlayer(racket *Racket, board Board, controller *RacketController) *FuzzyPlayer {
	return &FuzzyPlayer{racket: racket, board: board, controller: controller}
}

func (p *FuzzyPlayer) Act(xDiff, yDiff int) {
	velocity := p.controller.Decide(float64(xDiff), float64(yDiff))
	p.racket.Move(float64(p.racket.X)+velocity, p.board.Width)
}
