package fuzzy

import (
	"fmt"
	"math"
	"strings"
)

// Op tags the kind of an Expr node.
type Op int

const (
	OpIs Op = iota
	OpAnd
	OpOr
)

func (o Op) String() string {
	switch o {
	case OpIs:
		return "IS"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Term references one fuzzy set of one variable.
type Term struct {
	Variable string `json:"variable"`
	Name     string `json:"term"`
}

func (t Term) String() string {
	return t.Variable + "[" + t.Name + "]"
}

// Expr is a rule antecedent: a leaf (OpIs) or a binary AND/OR node.
type Expr struct {
	Op    Op
	Term  Term
	Left  *Expr
	Right *Expr
}

func Is(variable, term string) *Expr {
	return &Expr{Op: OpIs, Term: Term{Variable: variable, Name: term}}
}

func And(left, right *Expr) *Expr {
	return &Expr{Op: OpAnd, Left: left, Right: right}
}

func Or(left, right *Expr) *Expr {
	return &Expr{Op: OpOr, Left: left, Right: right}
}

// Degrees holds fuzzified inputs: variable -> term -> degree.
type Degrees map[string]map[string]float64

// Strength evaluates the expression. AND is min, OR is max; both operands
// are always evaluated.
func (e *Expr) Strength(d Degrees) float64 {
	switch e.Op {
	case OpIs:
		return d[e.Term.Variable][e.Term.Name]
	case OpAnd:
		l, r := e.Left.Strength(d), e.Right.Strength(d)
		return math.Min(l, r)
	case OpOr:
		l, r := e.Left.Strength(d), e.Right.Strength(d)
		return math.Max(l, r)
	}
	return 0
}

// Leaves returns every term referenced by the expression, left to right.
func (e *Expr) Leaves() []Term {
	if e == nil {
		return nil
	}
	if e.Op == OpIs {
		return []Term{e.Term}
	}
	return append(e.Left.Leaves(), e.Right.Leaves()...)
}

func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b)
	return b.String()
}

func (e *Expr) write(b *strings.Builder) {
	if e.Op == OpIs {
		b.WriteString(e.Term.String())
		return
	}
	b.WriteByte('(')
	e.Left.write(b)
	b.WriteString(" " + e.Op.String() + " ")
	e.Right.write(b)
	b.WriteByte(')')
}

// Rule activates Consequent with the strength of Antecedent.
type Rule struct {
	Antecedent *Expr
	Consequent Term
}

func NewRule(antecedent *Expr, consequent Term) Rule {
	return Rule{Antecedent: antecedent, Consequent: consequent}
}

func (r Rule) String() string {
	return "IF " + r.Antecedent.String() + " THEN " + r.Consequent.String()
}
