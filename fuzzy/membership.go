// Package fuzzy implements a small Mamdani inference engine: linguistic
// variables partitioned into triangular fuzzy sets, rules over those sets,
// max aggregation and centroid defuzzification.
package fuzzy

import (
	"errors"
	"fmt"
)

var ErrInvalidTriangle = errors.New("fuzzy: triangle breakpoints must satisfy a <= b <= c")

// Membership maps a crisp value to a degree in [0, 1].
type Membership interface {
	Degree(x float64) float64
}

// Triangle is a triangular membership function with breakpoints A <= B <= C.
// A == B or B == C give a shoulder; A == B == C is a single point.
type Triangle struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

func NewTriangle(a, b, c float64) (Triangle, error) {
	if a > b || b > c {
		return Triangle{}, fmt.Errorf("%w: got (%g, %g, %g)", ErrInvalidTriangle, a, b, c)
	}
	return Triangle{A: a, B: b, C: c}, nil
}

// Degree is 1 at B, rises linearly on (A, B), falls linearly on (B, C) and
// is 0 everywhere else.
func (t Triangle) Degree(x float64) float64 {
	switch {
	case x == t.B:
		return 1
	case t.A < x && x < t.B:
		return (x - t.A) / (t.B - t.A)
	case t.B < x && x < t.C:
		return (t.C - x) / (t.C - t.B)
	}
	return 0
}

func (t Triangle) String() string {
	return fmt.Sprintf("trimf(%g, %g, %g)", t.A, t.B, t.C)
}
