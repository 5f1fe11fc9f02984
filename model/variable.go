package model

import "math"

// VarType is the domain of a decision variable.
type VarType uint8

const (
	Continuous VarType = iota
	Integer
	Binary
)

func (t VarType) String() string {
	switch t {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	}
	return "unknown"
}

// Variable is a decision variable owned by a Model. Nonlinear terms hold weak
// references to variables; ownership stays with the model that declared them.
type Variable struct {
	id     int
	origin string // name of the originating term for auxiliary variables

	Name string
	Type VarType
	LB   float64
	UB   float64
}

// ID returns the declaration index of the variable in its model.
func (v *Variable) ID() int { return v.id }

// Origin returns the name of the nonlinear term the variable implements, or
// "" for user-declared variables.
func (v *Variable) Origin() string { return v.origin }

// IsAuxiliary reports whether the variable was introduced for a nonlinear
// term rather than declared by the user.
func (v *Variable) IsAuxiliary() bool { return v.origin != "" }

// SetBounds sets the lower and upper bound of the variable.
func (v *Variable) SetBounds(lb, ub float64) {
	v.LB = lb
	v.UB = ub
}

// HasFiniteBounds reports whether both bounds are finite. Big-M and McCormick
// encodings require this.
func (v *Variable) HasFiniteBounds() bool {
	return !math.IsInf(v.LB, 0) && !math.IsInf(v.UB, 0)
}
