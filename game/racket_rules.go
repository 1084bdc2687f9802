package game

import (
	"fmt"

	"github.com/lguibr/fuzzpong/fuzzy"
)

// Linguistic variable names of the racket controller.
const (
	XDiff    = "x_diff"
	YDiff    = "y_diff"
	Velocity = "velocity"
)

// Horizontal breakpoints: the "near" band spans 30px either side of the
// racket centre; far_* saturate at the universe edges.
const (
	xEdge       = 400
	xMiddleEdge = 30
)

func mustTriangle(a, b, c float64) fuzzy.Triangle {
	t, err := fuzzy.NewTriangle(a, b, c)
	if err != nil {
		panic(err)
	}
	return t
}

// NewRacketVariables returns the x_diff and y_diff inputs and the velocity
// output of the racket controller.
func NewRacketVariables() (x, y, velocity *fuzzy.Variable, err error) {
	x, err = fuzzy.NewVariable(XDiff, fuzzy.Universe{Min: -xEdge, Max: xEdge, Step: 1},
		fuzzy.Set{Term: "far_left", Membership: mustTriangle(-xEdge, -xEdge, -xMiddleEdge+10)},
		fuzzy.Set{Term: "left", Membership: mustTriangle(-xMiddleEdge, -xMiddleEdge/2, 0)},
		fuzzy.Set{Term: "center", Membership: mustTriangle(-xMiddleEdge/2, 0, xMiddleEdge/2)},
		fuzzy.Set{Term: "right", Membership: mustTriangle(0, xMiddleEdge/2, xMiddleEdge)},
		fuzzy.Set{Term: "far_right", Membership: mustTriangle(xMiddleEdge-10, xEdge, xEdge)},
	)
	if err != nil {
		return nil, nil, nil, err
	}

	y, err = fuzzy.NewVariable(YDiff, fuzzy.Universe{Min: -200, Max: 200, Step: 1},
		fuzzy.Set{Term: "above", Membership: mustTriangle(-200, -100, 0)},
		fuzzy.Set{Term: "center", Membership: mustTriangle(-100, 0, 100)},
		fuzzy.Set{Term: "below", Membership: mustTriangle(0, 100, 200)},
	)
	if err != nil {
		return nil, nil, nil, err
	}

	velocity, err = fuzzy.NewVariable(Velocity, fuzzy.Universe{Min: -10, Max: 10, Step: 1},
		fuzzy.Set{Term: "fast_left", Membership: mustTriangle(-10, -10, -10)},
		fuzzy.Set{Term: "slow_left", Membership: mustTriangle(-9, -9, -3)},
		fuzzy.Set{Term: "stop", Membership: mustTriangle(-3, 0, 3)},
		fuzzy.Set{Term: "slow_right", Membership: mustTriangle(3, 9, 9)},
		fuzzy.Set{Term: "fast_right", Membership: mustTriangle(10, 10, 10)},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return x, y, velocity, nil
}

// RacketRules is the controller's rule base. The first two rules push for a
// fast correction while the ball is not below the racket; they win over the
// horizontal-only rules purely through max aggregation.
func RacketRules() []fuzzy.Rule {
	notBelow := func() *fuzzy.Expr {
		return fuzzy.Or(fuzzy.Is(YDiff, "above"), fuzzy.Is(YDiff, "center"))
	}
	v := func(term string) fuzzy.Term { return fuzzy.Term{Variable: Velocity, Name: term} }

	return []fuzzy.Rule{
		fuzzy.NewRule(fuzzy.And(fuzzy.Is(XDiff, "left"), notBelow()), v("fast_right")),
		fuzzy.NewRule(fuzzy.And(fuzzy.Is(XDiff, "right"), notBelow()), v("fast_left")),
		fuzzy.NewRule(fuzzy.Is(XDiff, "far_left"), v("fast_right")),
		fuzzy.NewRule(fuzzy.Is(XDiff, "left"), v("slow_right")),
		fuzzy.NewRule(fuzzy.Is(XDiff, "center"), v("stop")),
		fuzzy.NewRule(fuzzy.Is(XDiff, "right"), v("slow_left")),
		fuzzy.NewRule(fuzzy.Is(XDiff, "far_right"), v("fast_left")),
	}
}

// NewRacketEngine builds the inference engine driving a fuzzy racket.
func NewRacketEngine() (*fuzzy.Engine, error) {
	x, y, velocity, err := NewRacketVariables()
	if err != nil {
		return nil, fmt.Errorf("racket variables: %w", err)
	}
	engine, err := fuzzy.NewEngine([]*fuzzy.Variable{x, y}, velocity, RacketRules())
	if err != nil {
		return nil, fmt.Errorf("racket engine: %w", err)
	}
	return engine, nil
}
