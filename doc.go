// Package kantor provides a modeling toolkit for mathematical optimization
// with automatic linearization of nonlinear constructs.
//
// Users declare nonlinear relationships (products of variables, absolute
// values, min/max, conditional constraints, piecewise-linear functions) on a
// model, and the linearize package rewrites them into linear or
// mixed-integer-linear formulations that conventional solvers consume:
//   - exact encodings for discrete cases (AND logic, Big-M)
//   - provably valid convex relaxations for continuous cases (McCormick)
//   - SOS2 or incremental formulations for piecewise-linear approximation
//
// kantor does not solve models; it produces models a solver adapter can hand
// to any of the solvers listed by Solvers().
package kantor

import (
	"github.com/blang/semver/v4"

	"github.com/kantor-opt/kantor/solver"
)

var Version = semver.MustParse("0.4.1")

// Solvers returns the solver IDs kantor ships capability profiles for.
func Solvers() []solver.ID {
	return []solver.ID{
		solver.CBC,
		solver.GLPK,
		solver.HiGHS,
		solver.SCIP,
		solver.CPLEX,
		solver.Gurobi,
	}
}
