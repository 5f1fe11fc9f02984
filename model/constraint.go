package model

import "fmt"

// Constraint is a linear constraint expr ⋈ rhs.
type Constraint struct {
	origin string

	Name  string
	Expr  LinearExpr
	Sense Sense
	RHS   float64
}

// Origin returns the name of the nonlinear term the constraint implements,
// or "" for user-declared constraints.
func (c *Constraint) Origin() string { return c.origin }

// IsAuxiliary reports whether the constraint was introduced by linearization.
func (c *Constraint) IsAuxiliary() bool { return c.origin != "" }

func (c *Constraint) String() string {
	return fmt.Sprintf("%s: %s %s %g", c.Name, c.Expr.String(), c.Sense, c.RHS)
}

// SOSType is the type of a special ordered set.
type SOSType uint8

const (
	SOS1 SOSType = 1
	SOS2 SOSType = 2
)

// SOS is a special ordered set constraint: for SOS1 at most one member is
// nonzero, for SOS2 at most two adjacent members (in weight order) are.
// Solvers without native SOS support cannot consume models carrying these.
type SOS struct {
	origin string

	Type    SOSType
	Vars    []*Variable
	Weights []float64
}

// Origin returns the name of the nonlinear term the set implements, or ""
// if user-declared.
func (s *SOS) Origin() string { return s.origin }
