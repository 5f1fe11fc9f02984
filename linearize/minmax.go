package linearize

import (
	"fmt"
	"math"

	"github.com/kantor-opt/kantor/model"
)

// linearizeMinMax encodes z = min(cᵢxᵢ) or z = max(cᵢxᵢ) with one constraint
// per operand:
//
//	min: z ≤ cᵢ·xᵢ for every i
//	max: z ≥ cᵢ·xᵢ for every i
//
// For min the constraints bound z from above only, so z equals the minimum
// just when the objective pushes z up against them; for max the dual holds.
// A mismatched objective direction yields an unbounded or incorrect model
// without detection; this is a documented precondition of the builder.
func (e *emitter) linearizeMinMax(t *model.MinMax) error {
	if len(t.Vars) != len(t.Coeffs) {
		return &DimensionError{Term: t.Name(), Vars: len(t.Vars), Coeffs: len(t.Coeffs)}
	}
	if len(t.Vars) == 0 {
		return &ConfigError{Term: t.Name(), Reason: "operand list is empty"}
	}
	e.debug(t, t.Op.String())

	// z inherits the one-sided bound the operand intervals imply
	lb, ub := math.Inf(-1), math.Inf(1)
	switch t.Op {
	case model.Min:
		for i, v := range t.Vars {
			ub = math.Min(ub, varInterval(v).scale(t.Coeffs[i]).hi)
		}
	case model.Max:
		for i, v := range t.Vars {
			lb = math.Max(lb, varInterval(v).scale(t.Coeffs[i]).lo)
		}
	}
	z := e.claimResult(t, lb, ub)

	sense := model.LE
	if t.Op == model.Max {
		sense = model.GE
	}
	for i, v := range t.Vars {
		e.addCon(t, fmt.Sprintf("%s%d", t.Op, i), model.Expr(1, z, -t.Coeffs[i], v), sense, 0)
	}
	return nil
}
