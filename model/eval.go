package model

import "math"

// Point assigns a value to each variable of interest.
type Point map[*Variable]float64

// Eval evaluates the expression at the given point. Unassigned variables
// count as zero.
func (e LinearExpr) Eval(pt Point) float64 {
	v := e.Constant
	for _, c := range e.Coeffs {
		v += c.Coeff * pt[c.Var]
	}
	return v
}

// Satisfied reports whether the constraint holds at the given point within
// tolerance tol.
func (c *Constraint) Satisfied(pt Point, tol float64) bool {
	lhs := c.Expr.Eval(pt)
	switch c.Sense {
	case LE:
		return lhs <= c.RHS+tol
	case GE:
		return lhs >= c.RHS-tol
	case EQ:
		return math.Abs(lhs-c.RHS) <= tol
	}
	return false
}

// Tight reports whether the constraint holds with equality at the given
// point within tolerance tol.
func (c *Constraint) Tight(pt Point, tol float64) bool {
	return math.Abs(c.Expr.Eval(pt)-c.RHS) <= tol
}
