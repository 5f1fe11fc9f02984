package linearize

import (
	"math"

	"github.com/kantor-opt/kantor/model"
)

// linearizeBilinear rewrites z = x·y. The encoding depends on the operand
// type pair:
//
//   - binary × binary: exact AND logic, 3 constraints
//   - binary × continuous/integer: exact Big-M over the non-binary operand's
//     finite bounds, 4 constraints
//   - anything else: McCormick envelope, a valid convex relaxation over the
//     operand box, tight at its vertices, 4 constraints
func (e *emitter) linearizeBilinear(t *model.Bilinear) error {
	x, y := t.X, t.Y
	switch {
	case x.Type == model.Binary && y.Type == model.Binary:
		return e.bilinearAnd(t)
	case x.Type == model.Binary:
		return e.bilinearBigM(t, x, y)
	case y.Type == model.Binary:
		return e.bilinearBigM(t, y, x)
	default:
		return e.bilinearMcCormick(t)
	}
}

// bilinearAnd encodes z = x·y for binary x, y:
//
//	z ≤ x, z ≤ y, z ≥ x + y − 1
func (e *emitter) bilinearAnd(t *model.Bilinear) error {
	e.debug(t, "and")
	z := e.claimResult(t, 0, 1)
	e.addCon(t, "and1", model.Expr(1, z, -1, t.X), model.LE, 0)
	e.addCon(t, "and2", model.Expr(1, z, -1, t.Y), model.LE, 0)
	e.addCon(t, "and3", model.Expr(1, z, -1, t.X, -1, t.Y), model.GE, -1)
	return nil
}

// bilinearBigM encodes z = b·y for binary b and bounded y ∈ [L, U]:
//
//	z ≤ U·b, z ≥ L·b, z ≤ y − L·(1−b), z ≥ y − U·(1−b)
//
// Exact, not a relaxation, but requires finite L and U.
func (e *emitter) bilinearBigM(t *model.Bilinear, b, y *model.Variable) error {
	if !y.HasFiniteBounds() {
		return boundsError(t, y, "big-M product")
	}
	e.debug(t, "bigM")
	l, u := y.LB, y.UB
	z := e.claimResult(t, math.Min(0, l), math.Max(0, u))
	e.addCon(t, "bm1", model.Expr(1, z, -u, b), model.LE, 0)
	e.addCon(t, "bm2", model.Expr(1, z, -l, b), model.GE, 0)
	e.addCon(t, "bm3", model.Expr(1, z, -1, y, -l, b), model.LE, -l)
	e.addCon(t, "bm4", model.Expr(1, z, -1, y, -u, b), model.GE, -u)
	return nil
}

// bilinearMcCormick encodes the convex/concave hull of z = x·y over the box
// [xL, xU] × [yL, yU]:
//
//	z ≥ xL·y + yL·x − xL·yL
//	z ≥ xU·y + yU·x − xU·yU
//	z ≤ xL·y + yU·x − xL·yU
//	z ≤ xU·y + yL·x − xU·yL
//
// A relaxation, exact only at the box vertices. Both operands must carry
// finite bounds; missing bounds are an error, never silently defaulted.
func (e *emitter) bilinearMcCormick(t *model.Bilinear) error {
	x, y := t.X, t.Y
	if e.cfg.TightenBounds {
		tightenVarBounds(x)
		tightenVarBounds(y)
	}
	if !x.HasFiniteBounds() {
		return boundsError(t, x, "McCormick")
	}
	if !y.HasFiniteBounds() {
		return boundsError(t, y, "McCormick")
	}
	e.debug(t, "mccormick")

	xl, xu, yl, yu := x.LB, x.UB, y.LB, y.UB
	zb := varInterval(x).mul(varInterval(y))
	z := e.claimResult(t, zb.lo, zb.hi)

	e.addCon(t, "mc1", model.Expr(1, z, -xl, y, -yl, x), model.GE, -xl*yl)
	e.addCon(t, "mc2", model.Expr(1, z, -xu, y, -yu, x), model.GE, -xu*yu)
	e.addCon(t, "mc3", model.Expr(1, z, -xl, y, -yu, x), model.LE, -xl*yu)
	e.addCon(t, "mc4", model.Expr(1, z, -xu, y, -yl, x), model.LE, -xu*yl)
	return nil
}
