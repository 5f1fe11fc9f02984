package linearize

import (
	"math"

	"github.com/kantor-opt/kantor/model"
)

// interval is a closed interval with possibly infinite endpoints.
type interval struct {
	lo, hi float64
}

func varInterval(v *model.Variable) interval {
	return interval{v.LB, v.UB}
}

func (iv interval) finite() bool {
	return !math.IsInf(iv.lo, 0) && !math.IsInf(iv.hi, 0)
}

// scale returns the interval of c·x for x in iv.
func (iv interval) scale(c float64) interval {
	a, b := c*iv.lo, c*iv.hi
	if a > b {
		a, b = b, a
	}
	return interval{a, b}
}

// mul returns the interval of x·y for x in iv, y in other.
func (iv interval) mul(other interval) interval {
	ps := [4]float64{iv.lo * other.lo, iv.lo * other.hi, iv.hi * other.lo, iv.hi * other.hi}
	out := interval{ps[0], ps[0]}
	for _, p := range ps[1:] {
		out.lo = math.Min(out.lo, p)
		out.hi = math.Max(out.hi, p)
	}
	return out
}

// exprInterval returns the interval of a linear expression over the operand
// bounds.
func exprInterval(e model.LinearExpr) interval {
	out := interval{e.Constant, e.Constant}
	for _, c := range e.Coeffs {
		iv := varInterval(c.Var).scale(c.Coeff)
		out.lo += iv.lo
		out.hi += iv.hi
	}
	return out
}

// tightenVarBounds rounds integer bounds inward. Called on output-model
// variables only; the input model is never touched.
func tightenVarBounds(v *model.Variable) {
	if v.Type == model.Continuous {
		return
	}
	if !math.IsInf(v.LB, 0) {
		v.LB = math.Ceil(v.LB)
	}
	if !math.IsInf(v.UB, 0) {
		v.UB = math.Floor(v.UB)
	}
}
