// Package solver describes the solver-adapter boundary of kantor: solver
// identifiers and the capability descriptors the linearization engine
// consults when deciding which constructs need rewriting.
package solver

// ID identifies a supported target solver.
type ID uint8

const (
	UNKNOWN ID = iota
	CBC
	GLPK
	HiGHS
	SCIP
	CPLEX
	Gurobi
)

func (id ID) String() string {
	switch id {
	case CBC:
		return "cbc"
	case GLPK:
		return "glpk"
	case HiGHS:
		return "highs"
	case SCIP:
		return "scip"
	case CPLEX:
		return "cplex"
	case Gurobi:
		return "gurobi"
	}
	return "unknown"
}

// Capability returns the feature profile of the solver. Profiles are
// conservative: a feature is listed only when every supported version of the
// solver accepts the construct through its standard model interface.
func (id ID) Capability() Capability {
	switch id {
	case CBC:
		return NewCapability(FeatSOS1, FeatSOS2)
	case GLPK:
		return NewCapability()
	case HiGHS:
		return NewCapability(Quadratic)
	case SCIP:
		return NewCapability(Quadratic, FeatSOS1, FeatSOS2, IndicatorConstraints)
	case CPLEX:
		return NewCapability(Quadratic, FeatSOS1, FeatSOS2, IndicatorConstraints, PiecewiseLinear)
	case Gurobi:
		return NewCapability(Quadratic, FeatSOS1, FeatSOS2, IndicatorConstraints, PiecewiseLinear)
	}
	return NewCapability()
}
