// Package linearize implements the automatic linearization engine: it scans
// a model for nonlinear terms, decides per term whether the target solver
// covers the construct natively, and rewrites the rest into exact or relaxed
// linear encodings.
//
// A run is a pure, synchronous, single-pass transformation. The input model
// is never mutated: either a complete new model and a fresh statistics record
// are returned, or an error and no model at all.
package linearize

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kantor-opt/kantor/logger"
	"github.com/kantor-opt/kantor/model"
	"github.com/kantor-opt/kantor/solver"
)

// NeedsLinearization reports whether any term of the model requires
// rewriting for a solver with the given capability.
func NeedsLinearization(m *model.Model, cap solver.Capability) bool {
	for _, t := range m.Terms() {
		if !coveredNatively(t, cap) {
			return true
		}
	}
	return false
}

// coveredNatively reports whether the solver consumes the construct without
// rewriting: quadratic support covers products of two continuous variables,
// indicator support covers conditional constraints, and a piecewise-linear
// primitive covers piecewise terms. Absolute and MinMax always need
// rewriting.
func coveredNatively(t model.Term, cap solver.Capability) bool {
	switch t := t.(type) {
	case *model.Bilinear:
		return t.X.Type == model.Continuous && t.Y.Type == model.Continuous &&
			cap.Supports(solver.Quadratic)
	case *model.Absolute:
		return false
	case *model.MinMax:
		return false
	case *model.Indicator:
		return cap.Supports(solver.IndicatorConstraints)
	case *model.Piecewise:
		return cap.Supports(solver.PiecewiseLinear)
	}
	panic(fmt.Sprintf("linearize: unknown term kind %T", t))
}

// Linearize rewrites every term the solver does not cover natively and
// returns a new model plus run statistics. The input model is left intact;
// repeated and concurrent calls against the same input are safe.
//
// Terms are processed in declaration order. A term whose result variable
// occurs in neither the objective nor any constraint is dropped without
// emitting an encoding: it cannot affect any feasible solution.
func Linearize(m *model.Model, cap solver.Capability, opts ...Option) (*model.Model, *Stats, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		if err := o(&cfg); err != nil {
			return nil, nil, fmt.Errorf("apply option: %w", err)
		}
	}

	log := logger.Logger().With().Str("model", m.Name).Logger()
	log.Info().
		Int("nbTerms", len(m.Terms())).
		Int("nbVariables", len(m.Variables())).
		Int("nbConstraints", len(m.Constraints())).
		Str("capability", cap.String()).
		Msg("linearizing model")

	out := m.Clone()
	stats := newStats()
	e := &emitter{m: out, cap: cap, cfg: cfg, stats: stats, log: log}

	referenced := referencedResults(out)

	var kept []model.Term
	for _, t := range out.Terms() {
		if z := t.Result(); z != nil && !referenced[z] {
			log.Debug().Str("term", t.Name()).Msg("dropping unreferenced term")
			continue
		}
		if coveredNatively(t, cap) {
			stats.Passthrough++
			if cfg.Verbose {
				log.Debug().Str("term", t.Name()).Str("kind", t.Kind().String()).Msg("covered natively, passing through")
			}
			kept = append(kept, t)
			continue
		}
		if err := e.dispatch(t); err != nil {
			log.Err(err).Str("term", t.Name()).Msg("linearization failed")
			return nil, nil, err
		}
		stats.Terms[t.Kind()]++
	}
	out.SetTerms(kept)

	warnCapabilityLimits(log, out, cap)

	log.Info().
		Int("linearized", stats.TotalLinearized()).
		Int("passthrough", stats.Passthrough).
		Int("auxVariables", stats.AuxVariables).
		Int("auxConstraints", stats.AuxConstraints).
		Int("sosSets", stats.SOSSets).
		Msg("linearization done")

	return out, stats, nil
}

// referencedResults collects the term result variables that occur in the
// objective or any constraint, scanning the objective first and then the
// constraints in declaration order.
func referencedResults(m *model.Model) map[*model.Variable]bool {
	results := make(map[*model.Variable]bool)
	for _, t := range m.Terms() {
		if z := t.Result(); z != nil {
			results[z] = false
		}
	}
	markVar := func(v *model.Variable) {
		if _, ok := results[v]; ok {
			results[v] = true
		}
	}
	markExpr := func(e model.LinearExpr) {
		for _, c := range e.Coeffs {
			markVar(c.Var)
		}
	}
	markExpr(m.Objective().Expr)
	for _, c := range m.Constraints() {
		markExpr(c.Expr)
	}
	// terms may also feed other terms (e.g. an absolute value of a product)
	for _, t := range m.Terms() {
		switch t := t.(type) {
		case *model.Bilinear:
			markVar(t.X)
			markVar(t.Y)
		case *model.Absolute:
			markVar(t.X)
		case *model.MinMax:
			for _, v := range t.Vars {
				markVar(v)
			}
		case *model.Indicator:
			markExpr(t.Expr)
		case *model.Piecewise:
			markVar(t.X)
		}
	}
	return results
}

// warnCapabilityLimits logs when the assembled model exceeds the solver's
// declared size limits. Exceeding a limit is not an encoding error, so the
// run still succeeds.
func warnCapabilityLimits(log zerolog.Logger, m *model.Model, cap solver.Capability) {
	if max := cap.MaxVariables(); max > 0 && uint(len(m.Variables())) > max {
		log.Warn().Int("nbVariables", len(m.Variables())).Uint("limit", max).Msg("model exceeds solver variable limit")
	}
	if max := cap.MaxConstraints(); max > 0 && uint(len(m.Constraints())) > max {
		log.Warn().Int("nbConstraints", len(m.Constraints())).Uint("limit", max).Msg("model exceeds solver constraint limit")
	}
}

// objectivePushesDown reports whether the objective provably pushes z
// downwards: z appears with positive coefficients under minimization, or
// negative ones under maximization. Absolute and MinMax(min) encodings are
// only exact in that case.
func objectivePushesDown(m *model.Model, z *model.Variable) bool {
	obj := m.Objective()
	seen := false
	for _, c := range obj.Expr.Coeffs {
		if c.Var != z {
			continue
		}
		seen = true
		down := (obj.Sense == model.Minimize) == (c.Coeff > 0)
		if !down {
			return false
		}
	}
	return seen
}

// emitter accumulates auxiliary variables and constraints into the output
// model, tagging each with the originating term.
type emitter struct {
	m     *model.Model
	cap   solver.Capability
	cfg   Config
	stats *Stats
	log   zerolog.Logger
}

func (e *emitter) dispatch(t model.Term) error {
	switch t := t.(type) {
	case *model.Bilinear:
		return e.linearizeBilinear(t)
	case *model.Absolute:
		return e.linearizeAbsolute(t)
	case *model.MinMax:
		return e.linearizeMinMax(t)
	case *model.Indicator:
		return e.linearizeIndicator(t)
	case *model.Piecewise:
		return e.linearizePiecewise(t)
	}
	panic(fmt.Sprintf("linearize: unknown term kind %T", t))
}

// claimResult counts the term's pre-declared result variable as an auxiliary
// of this run and applies the bounds the encoding establishes.
func (e *emitter) claimResult(t model.Term, lb, ub float64) *model.Variable {
	z := t.Result()
	z.SetBounds(lb, ub)
	e.stats.AuxVariables++
	return z
}

func (e *emitter) newVar(t model.Term, suffix string, vt model.VarType, lb, ub float64) *model.Variable {
	v := e.m.AddAuxiliaryVariable(t.Name(), t.Name()+"_"+suffix, vt, lb, ub)
	e.stats.AuxVariables++
	return v
}

func (e *emitter) addCon(t model.Term, suffix string, expr model.LinearExpr, sense model.Sense, rhs float64) {
	e.m.AddAuxiliaryConstraint(t.Name(), t.Name()+"_"+suffix, expr, sense, rhs)
	e.stats.AuxConstraints++
}

func (e *emitter) addSOS2(t model.Term, vars []*model.Variable, weights []float64) {
	e.m.AddAuxiliarySOS(t.Name(), model.SOS2, vars, weights)
	e.stats.SOSSets++
}

func (e *emitter) debug(t model.Term, encoding string) {
	if e.cfg.Verbose {
		e.log.Debug().Str("term", t.Name()).Str("encoding", encoding).Msg("linearizing term")
	}
}
