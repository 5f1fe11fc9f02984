package linearize

import (
	"fmt"
	"math"

	"github.com/kantor-opt/kantor/model"
)

// linearizeIndicator rewrites "if b = activeValue then expr ⋈ rhs" into Big-M
// constraints. For activeValue = true and sense ≤:
//
//	expr ≤ rhs + M·(1−b)
//
// At b = 1 the original constraint binds; at b = 0 it is vacuous for any M at
// least as large as the expression's slack. Equality senses emit both the ≤
// and ≥ rewrites.
//
// M comes from the configuration. With AutoBigM it is instead computed from
// the expression's variable bounds, and a missing bound is an explicit error
// rather than a silently unsound constant.
func (e *emitter) linearizeIndicator(t *model.Indicator) error {
	if t.Binary.Type != model.Binary {
		return &ConfigError{
			Term:   t.Name(),
			Reason: fmt.Sprintf("indicator variable %s is %s, want binary", t.Binary.Name, t.Binary.Type),
		}
	}
	e.debug(t, "bigM")

	iv := exprInterval(t.Expr)
	mLE, mGE, err := e.bigMFor(t, iv)
	if err != nil {
		return err
	}

	// with s = +1 for activeValue=true the relaxation multiplier is (1−b),
	// with s = −1 it is b itself
	if t.Sense == model.LE || t.Sense == model.EQ {
		expr := t.Expr.Clone()
		rhs := t.RHS
		if t.ActiveValue {
			expr.Add(mLE, t.Binary)
			rhs += mLE
		} else {
			expr.Add(-mLE, t.Binary)
		}
		e.addCon(t, "le", expr, model.LE, rhs)
	}
	if t.Sense == model.GE || t.Sense == model.EQ {
		expr := t.Expr.Clone()
		rhs := t.RHS
		if t.ActiveValue {
			expr.Add(-mGE, t.Binary)
			rhs -= mGE
		} else {
			expr.Add(mGE, t.Binary)
		}
		e.addCon(t, "ge", expr, model.GE, rhs)
	}
	return nil
}

// bigMFor returns the relaxation constants for the ≤ and ≥ rewrites of the
// term. Under AutoBigM they are the exact slacks exprUB−rhs and rhs−exprLB;
// otherwise both are the configured constant. A negative exact slack means
// the constraint can never bind and zero suffices.
func (e *emitter) bigMFor(t *model.Indicator, iv interval) (mLE, mGE float64, err error) {
	if !e.cfg.AutoBigM {
		return e.cfg.BigM, e.cfg.BigM, nil
	}
	needLE := t.Sense == model.LE || t.Sense == model.EQ
	needGE := t.Sense == model.GE || t.Sense == model.EQ
	if needLE {
		if math.IsInf(iv.hi, 0) {
			return 0, 0, &ConfigError{
				Term:   t.Name(),
				Reason: "auto big-M needs a finite upper bound on every variable of the conditional expression",
			}
		}
		mLE = math.Max(0, iv.hi-t.RHS)
	}
	if needGE {
		if math.IsInf(iv.lo, 0) {
			return 0, 0, &ConfigError{
				Term:   t.Name(),
				Reason: "auto big-M needs a finite lower bound on every variable of the conditional expression",
			}
		}
		mGE = math.Max(0, t.RHS-iv.lo)
	}
	return mLE, mGE, nil
}
