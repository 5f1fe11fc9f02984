package linearize

import (
	"fmt"
	"math"

	"github.com/kantor-opt/kantor/model"
	"github.com/kantor-opt/kantor/solver"
)

// linearizePiecewise approximates z = f(x) over [XMin, XMax] by linear
// interpolation between n+1 breakpoints, encoded with the formulation the
// term hint, configuration and solver capability select:
//
//   - SOS2: convex-combination weights λ₀..λₙ with Σλ = 1, x = Σλᵢxᵢ,
//     z = Σλᵢf(xᵢ), restricted by a special-ordered-set-2 constraint.
//     Fewest auxiliary variables, but needs native SOS2 support.
//   - Incremental: one binary selector and one unit delta per segment;
//     works on any MILP solver at the cost of more variables.
//   - Logarithmic: declared but intentionally unimplemented; requesting it
//     fails explicitly instead of silently falling back.
func (e *emitter) linearizePiecewise(t *model.Piecewise) error {
	if math.IsInf(t.XMin, 0) || math.IsInf(t.XMax, 0) || t.XMin >= t.XMax {
		return &ConfigError{
			Term:   t.Name(),
			Reason: fmt.Sprintf("domain [%g, %g] must be finite and non-empty", t.XMin, t.XMax),
		}
	}
	if t.F == nil {
		return &ConfigError{Term: t.Name(), Reason: "no function reference"}
	}

	n := t.Segments
	if n <= 0 {
		n = e.cfg.PWLSegments
	}

	method, err := e.selectPWLMethod(t)
	if err != nil {
		return err
	}

	xs, err := e.pwlBreakpoints(t, n)
	if err != nil {
		return err
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y := t.F(x)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return &ConfigError{Term: t.Name(), Reason: fmt.Sprintf("function is not finite at breakpoint x=%g", x)}
		}
		ys[i] = y
	}

	switch method {
	case model.PWLSOS2:
		e.piecewiseSOS2(t, xs, ys)
	case model.PWLIncremental:
		e.piecewiseIncremental(t, xs, ys)
	default:
		panic(fmt.Sprintf("linearize: unexpected piecewise method %s", method))
	}
	return nil
}

// selectPWLMethod resolves the formulation: an explicit term hint wins, then
// the configured default, then automatic selection, which takes SOS2 when
// the solver supports it and the configuration prefers it.
func (e *emitter) selectPWLMethod(t *model.Piecewise) (model.PWLMethod, error) {
	method := t.Method
	if method == model.PWLAuto {
		method = e.cfg.PWLMethod
	}
	switch method {
	case model.PWLAuto:
		if e.cap.Supports(solver.FeatSOS2) && e.cfg.PreferSOS2 {
			return model.PWLSOS2, nil
		}
		return model.PWLIncremental, nil
	case model.PWLSOS2:
		if !e.cap.Supports(solver.FeatSOS2) {
			return 0, &ConfigError{Term: t.Name(), Reason: "sos2 formulation requested but the solver lacks native SOS2 support"}
		}
		return model.PWLSOS2, nil
	case model.PWLIncremental:
		return model.PWLIncremental, nil
	case model.PWLLogarithmic:
		return 0, &UnsupportedMethodError{Term: t.Name(), Method: method}
	}
	return 0, &ConfigError{Term: t.Name(), Reason: fmt.Sprintf("unknown piecewise-linear method %d", method)}
}

func (e *emitter) pwlBreakpoints(t *model.Piecewise, n int) ([]float64, error) {
	adaptive := t.Adaptive || e.cfg.AdaptiveBreakpoints
	var (
		xs  []float64
		err error
	)
	if adaptive {
		xs, err = GenerateAdaptiveBreakpoints(t.F, t.XMin, t.XMax, n)
	} else {
		xs, err = GenerateBreakpoints(t.XMin, t.XMax, n)
	}
	if err != nil {
		return nil, &ConfigError{Term: t.Name(), Reason: err.Error()}
	}
	return xs, nil
}

// piecewiseSOS2 emits the convex-combination formulation:
//
//	Σλᵢ = 1, x = Σλᵢxᵢ, z = Σλᵢyᵢ, SOS2(λ)
func (e *emitter) piecewiseSOS2(t *model.Piecewise, xs, ys []float64) {
	e.debug(t, "sos2")
	z := e.claimResult(t, minOf(ys), maxOf(ys))

	lambda := make([]*model.Variable, len(xs))
	for i := range xs {
		lambda[i] = e.newVar(t, fmt.Sprintf("lam%d", i), model.Continuous, 0, 1)
	}

	var sum, xLink, zLink model.LinearExpr
	for i, l := range lambda {
		sum.Add(1, l)
		xLink.Add(xs[i], l)
		zLink.Add(ys[i], l)
	}
	xLink.Add(-1, t.X)
	zLink.Add(-1, z)

	e.addCon(t, "convex", sum, model.EQ, 1)
	e.addCon(t, "xlink", xLink, model.EQ, 0)
	e.addCon(t, "zlink", zLink, model.EQ, 0)
	e.addSOS2(t, lambda, append([]float64(nil), xs...))
}

// piecewiseIncremental emits the segment-selection formulation: binary sⱼ
// picks the active segment, unit delta δⱼ ∈ [0, sⱼ] moves inside it,
//
//	Σsⱼ = 1
//	x = Σ xⱼ₋₁·sⱼ + (xⱼ−xⱼ₋₁)·δⱼ
//	z = Σ yⱼ₋₁·sⱼ + (yⱼ−yⱼ₋₁)·δⱼ
func (e *emitter) piecewiseIncremental(t *model.Piecewise, xs, ys []float64) {
	e.debug(t, "incremental")
	n := len(xs) - 1
	z := e.claimResult(t, minOf(ys), maxOf(ys))

	sel := make([]*model.Variable, n)
	del := make([]*model.Variable, n)
	for j := 0; j < n; j++ {
		sel[j] = e.newVar(t, fmt.Sprintf("seg%d", j), model.Binary, 0, 1)
		del[j] = e.newVar(t, fmt.Sprintf("del%d", j), model.Continuous, 0, 1)
	}

	var one, xLink, zLink model.LinearExpr
	for j := 0; j < n; j++ {
		one.Add(1, sel[j])
		xLink.Add(xs[j], sel[j])
		xLink.Add(xs[j+1]-xs[j], del[j])
		zLink.Add(ys[j], sel[j])
		zLink.Add(ys[j+1]-ys[j], del[j])

		bound := model.Expr(1, del[j], -1, sel[j])
		e.addCon(t, fmt.Sprintf("fill%d", j), bound, model.LE, 0)
	}
	xLink.Add(-1, t.X)
	zLink.Add(-1, z)

	e.addCon(t, "onehot", one, model.EQ, 1)
	e.addCon(t, "xlink", xLink, model.EQ, 0)
	e.addCon(t, "zlink", zLink, model.EQ, 0)
}

func minOf(vs []float64) float64 {
	out := vs[0]
	for _, v := range vs[1:] {
		out = math.Min(out, v)
	}
	return out
}

func maxOf(vs []float64) float64 {
	out := vs[0]
	for _, v := range vs[1:] {
		out = math.Max(out, v)
	}
	return out
}
