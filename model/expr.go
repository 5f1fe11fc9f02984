package model

import (
	"fmt"
	"strings"
)

// Coef is one coeff·variable entry of a linear expression.
type Coef struct {
	Coeff float64
	Var   *Variable
}

// LinearExpr is a linear expression Σ cᵢ·xᵢ + constant. Entries keep their
// insertion order; the same variable may appear more than once.
type LinearExpr struct {
	Coeffs   []Coef
	Constant float64
}

// Expr builds a linear expression from alternating coefficients and
// variables, e.g. Expr(1, x, -2, y).
func Expr(args ...any) LinearExpr {
	if len(args)%2 != 0 {
		panic("model.Expr: arguments must be (coeff, variable) pairs")
	}
	var e LinearExpr
	for i := 0; i < len(args); i += 2 {
		c, ok := toFloat(args[i])
		if !ok {
			panic(fmt.Sprintf("model.Expr: argument %d is not a coefficient", i))
		}
		v, ok := args[i+1].(*Variable)
		if !ok {
			panic(fmt.Sprintf("model.Expr: argument %d is not a *Variable", i+1))
		}
		e.Add(c, v)
	}
	return e
}

func toFloat(v any) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case float32:
		return float64(c), true
	case int:
		return float64(c), true
	case int64:
		return float64(c), true
	}
	return 0, false
}

// Add appends c·v to the expression and returns the expression for chaining.
func (e *LinearExpr) Add(c float64, v *Variable) *LinearExpr {
	e.Coeffs = append(e.Coeffs, Coef{Coeff: c, Var: v})
	return e
}

// AddConstant adds c to the constant offset.
func (e *LinearExpr) AddConstant(c float64) *LinearExpr {
	e.Constant += c
	return e
}

// Clone returns a deep copy of the expression. Variable references are
// shared; use cloneMapped during model cloning to re-point them.
func (e LinearExpr) Clone() LinearExpr {
	out := LinearExpr{Constant: e.Constant}
	out.Coeffs = append([]Coef(nil), e.Coeffs...)
	return out
}

func (e LinearExpr) cloneMapped(vm map[*Variable]*Variable) LinearExpr {
	out := LinearExpr{
		Coeffs:   make([]Coef, len(e.Coeffs)),
		Constant: e.Constant,
	}
	for i, c := range e.Coeffs {
		out.Coeffs[i] = Coef{Coeff: c.Coeff, Var: vm[c.Var]}
	}
	return out
}

// References reports whether the expression mentions v.
func (e LinearExpr) References(v *Variable) bool {
	for _, c := range e.Coeffs {
		if c.Var == v {
			return true
		}
	}
	return false
}

func (e LinearExpr) String() string {
	var sb strings.Builder
	for i, c := range e.Coeffs {
		if i > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%g*%s", c.Coeff, c.Var.Name)
	}
	if e.Constant != 0 || len(e.Coeffs) == 0 {
		if len(e.Coeffs) > 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%g", e.Constant)
	}
	return sb.String()
}

// Sense is the comparison sense of a constraint.
type Sense uint8

const (
	LE Sense = iota // ≤
	GE              // ≥
	EQ              // =
)

func (s Sense) String() string {
	switch s {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	}
	return "?"
}

// ObjectiveSense is the optimization direction.
type ObjectiveSense uint8

const (
	Minimize ObjectiveSense = iota
	Maximize
)

func (s ObjectiveSense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Objective is the model objective: a direction and a linear expression.
// Nonlinear terms take part through their result variables.
type Objective struct {
	Sense ObjectiveSense
	Expr  LinearExpr
}
