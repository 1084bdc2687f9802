package fuzzy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDuplicateTerm   = errors.New("fuzzy: duplicate term")
	ErrInvalidUniverse = errors.New("fuzzy: invalid universe")
)

// Universe is a bounded numeric range sampled every Step.
type Universe struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

func (u Universe) validate() error {
	if !(u.Min < u.Max) || !(u.Step > 0) || u.Step > u.Max-u.Min {
		return fmt.Errorf("%w: [%g, %g] step %g", ErrInvalidUniverse, u.Min, u.Max, u.Step)
	}
	return nil
}

// Clamp saturates x to [Min, Max].
func (u Universe) Clamp(x float64) float64 {
	return math.Max(u.Min, math.Min(u.Max, x))
}

// Points returns the sampling grid, both bounds included.
func (u Universe) Points() []float64 {
	n := int(math.Round((u.Max-u.Min)/u.Step)) + 1
	return floats.Span(make([]float64, n), u.Min, u.Max)
}

// Set names one fuzzy set of a variable.
type Set struct {
	Term       string
	Membership Membership
}

// Variable is a linguistic variable. It is immutable once built.
type Variable struct {
	name     string
	universe Universe
	terms    []string
	sets     map[string]Membership
}

func NewVariable(name string, universe Universe, sets ...Set) (*Variable, error) {
	if err := universe.validate(); err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	v := &Variable{
		name:     name,
		universe: universe,
		terms:    make([]string, 0, len(sets)),
		sets:     make(map[string]Membership, len(sets)),
	}
	for _, s := range sets {
		if _, exists := v.sets[s.Term]; exists {
			return nil, fmt.Errorf("variable %q: %w %q", name, ErrDuplicateTerm, s.Term)
		}
		v.terms = append(v.terms, s.Term)
		v.sets[s.Term] = s.Membership
	}
	return v, nil
}

func (v *Variable) Name() string       { return v.name }
func (v *Variable) Universe() Universe { return v.universe }

func (v *Variable) HasTerm(term string) bool {
	_, ok := v.sets[term]
	return ok
}

// Terms returns the term names in declaration order.
func (v *Variable) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Membership returns the function for term, or nil.
func (v *Variable) Membership(term string) Membership {
	return v.sets[term]
}

// Fuzzify clamps x to the universe and returns its degree in every term.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	x = v.universe.Clamp(x)
	degrees := make(map[string]float64, len(v.terms))
	for _, t := range v.terms {
		degrees[t] = v.sets[t].Degree(x)
	}
	return degrees
}

// Sample evaluates term over the universe grid.
func (v *Variable) Sample(term string) []float64 {
	points := v.universe.Points()
	mf := v.sets[term]
	out := make([]float64, len(points))
	if mf == nil {
		return out
	}
	for i, u := range points {
		out[i] = mf.Degree(u)
	}
	return out
}
