package fuzzy

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrDegenerateInference = errors.New("fuzzy: aggregate output set is empty")
	ErrUnknownVariable     = errors.New("fuzzy: unknown variable")
	ErrUnknownTerm         = errors.New("fuzzy: unknown term")
	ErrMalformedRule       = errors.New("fuzzy: malformed rule")
)

// Inputs carries one crisp observation per input variable.
type Inputs map[string]float64

// Engine runs Mamdani inference for a fixed set of inputs, one output and a
// rule base. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	inputs []*Variable
	output *Variable
	rules  []Rule
	grid   []float64
	shapes map[string][]float64
}

func NewEngine(inputs []*Variable, output *Variable, rules []Rule) (*Engine, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: nil output variable", ErrUnknownVariable)
	}
	byName := make(map[string]*Variable, len(inputs))
	for _, v := range inputs {
		if v.Name() == output.Name() {
			return nil, fmt.Errorf("%w: %q is both input and output", ErrUnknownVariable, v.Name())
		}
		byName[v.Name()] = v
	}
	for i, r := range rules {
		if err := validateExpr(r.Antecedent, byName); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		if r.Consequent.Variable != output.Name() {
			return nil, fmt.Errorf("rule %d: %w: consequent %q is not the output", i+1, ErrUnknownVariable, r.Consequent.Variable)
		}
		if !output.HasTerm(r.Consequent.Name) {
			return nil, fmt.Errorf("rule %d: %w: %s", i+1, ErrUnknownTerm, r.Consequent)
		}
	}

	shapes := make(map[string][]float64, len(output.terms))
	for _, t := range output.terms {
		shapes[t] = output.Sample(t)
	}
	return &Engine{
		inputs: inputs,
		output: output,
		rules:  append([]Rule(nil), rules...),
		grid:   output.Universe().Points(),
		shapes: shapes,
	}, nil
}

func validateExpr(e *Expr, inputs map[string]*Variable) error {
	if e == nil {
		return fmt.Errorf("%w: nil expression", ErrMalformedRule)
	}
	switch e.Op {
	case OpIs:
		v, ok := inputs[e.Term.Variable]
		if !ok {
			return fmt.Errorf("%w: antecedent %q is not an input", ErrUnknownVariable, e.Term.Variable)
		}
		if !v.HasTerm(e.Term.Name) {
			return fmt.Errorf("%w: %s", ErrUnknownTerm, e.Term)
		}
		return nil
	case OpAnd, OpOr:
		if err := validateExpr(e.Left, inputs); err != nil {
			return err
		}
		return validateExpr(e.Right, inputs)
	}
	return fmt.Errorf("%w: unknown operator %v", ErrMalformedRule, e.Op)
}

func (e *Engine) Rules() []Rule       { return append([]Rule(nil), e.rules...) }
func (e *Engine) Output() *Variable   { return e.output }
func (e *Engine) Inputs() []*Variable { return append([]*Variable(nil), e.inputs...) }

// Fuzzify computes the degree of every input in every one of its terms.
// Missing inputs are read as 0, out of range inputs saturate at the bounds.
func (e *Engine) Fuzzify(in Inputs) Degrees {
	d := make(Degrees, len(e.inputs))
	for _, v := range e.inputs {
		d[v.Name()] = v.Fuzzify(in[v.Name()])
	}
	return d
}

// Evaluate fires every rule and returns, per output term, the maximum
// strength of the rules that conclude it. Terms no rule targets map to 0.
func (e *Engine) Evaluate(d Degrees) map[string]float64 {
	strengths := make(map[string]float64, len(e.output.terms))
	for _, t := range e.output.terms {
		strengths[t] = 0
	}
	for _, r := range e.rules {
		s := r.Antecedent.Strength(d)
		strengths[r.Consequent.Name] = math.Max(strengths[r.Consequent.Name], s)
	}
	return strengths
}

// Aggregate clips each output set at its firing strength and returns their
// pointwise maximum sampled over the output grid.
func (e *Engine) Aggregate(strengths map[string]float64) []float64 {
	agg := make([]float64, len(e.grid))
	for _, t := range e.output.terms {
		s := strengths[t]
		if s <= 0 {
			continue
		}
		for i, mu := range e.shapes[t] {
			agg[i] = math.Max(agg[i], math.Min(mu, s))
		}
	}
	return agg
}

// Defuzzify returns the centroid of agg over the output grid. An all-zero
// set yields 0 and ErrDegenerateInference.
func (e *Engine) Defuzzify(agg []float64) (float64, error) {
	area := floats.Sum(agg)
	if area == 0 {
		return 0, ErrDegenerateInference
	}
	return floats.Dot(e.grid, agg) / area, nil
}

// Infer runs the whole pipeline for one observation.
func (e *Engine) Infer(in Inputs) (float64, error) {
	return e.Defuzzify(e.Aggregate(e.Evaluate(e.Fuzzify(in))))
}
