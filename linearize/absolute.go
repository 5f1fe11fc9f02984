package linearize

import (
	"math"

	"github.com/kantor-opt/kantor/model"
)

// linearizeAbsolute encodes z = |x|:
//
//	z ≥ x, z ≥ −x
//
// The encoding constrains z from below only; it equals |x| exactly when z is
// subsequently minimized. That precondition is documented on the builder and
// flagged here with a warning when the objective provably violates it.
func (e *emitter) linearizeAbsolute(t *model.Absolute) error {
	e.debug(t, "absolute")
	x := t.X
	ub := math.Inf(1)
	if x.HasFiniteBounds() {
		ub = math.Max(math.Abs(x.LB), math.Abs(x.UB))
	}
	z := e.claimResult(t, 0, ub)

	if !objectivePushesDown(e.m, z) {
		e.log.Warn().Str("term", t.Name()).
			Msg("absolute value result is not provably minimized; encoding only bounds |x| from below")
	}

	e.addCon(t, "abs1", model.Expr(1, z, -1, x), model.GE, 0)
	e.addCon(t, "abs2", model.Expr(1, z, 1, x), model.GE, 0)
	return nil
}
