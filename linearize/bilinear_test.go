package linearize

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantor-opt/kantor/model"
	"github.com/kantor-opt/kantor/solver"
)

func buildBilinear(t *testing.T, declare func(m *model.Model) *model.Variable, opts ...Option) (*model.Model, *Stats) {
	t.Helper()
	m := model.New("bilinear")
	z := declare(m)
	m.SetObjective(model.Minimize, model.Expr(1, z))
	out, stats, err := Linearize(m, solver.GLPK.Capability(), opts...)
	require.NoError(t, err)
	return out, stats
}

func TestBinaryTimesBinaryAnd(t *testing.T) {
	out, stats := buildBilinear(t, func(m *model.Model) *model.Variable {
		x := m.AddBinary("x")
		y := m.AddBinary("y")
		return m.AddBilinear(x, y, 1)
	})

	assert.Equal(t, 1, stats.Terms[model.KindBilinear])
	assert.Equal(t, 1, stats.AuxVariables)
	assert.Equal(t, 3, stats.AuxConstraints)
	assert.Empty(t, out.Terms())

	x := varByName(t, out, "x")
	y := varByName(t, out, "y")
	z := varByName(t, out, "bilinear0_z")
	assert.Equal(t, 0.0, z.LB)
	assert.Equal(t, 1.0, z.UB)

	// z equals x·y under every feasible binary assignment
	for _, xv := range []float64{0, 1} {
		for _, yv := range []float64{0, 1} {
			want := xv * yv
			assert.True(t, allSatisfied(out, model.Point{x: xv, y: yv, z: want}),
				"z=%g should be feasible at x=%g y=%g", want, xv, yv)
			for _, wrong := range []float64{want - 0.5, want + 0.5} {
				if wrong < 0 || wrong > 1 {
					continue
				}
				assert.False(t, allSatisfied(out, model.Point{x: xv, y: yv, z: wrong}),
					"z=%g should be infeasible at x=%g y=%g", wrong, xv, yv)
			}
		}
	}
}

func TestBinaryTimesContinuousBigM(t *testing.T) {
	out, stats := buildBilinear(t, func(m *model.Model) *model.Variable {
		b := m.AddBinary("b")
		y := m.AddContinuous("y", -5, 10)
		return m.AddBilinear(b, y, 1)
	})

	assert.Equal(t, 1, stats.AuxVariables)
	assert.Equal(t, 4, stats.AuxConstraints)

	b := varByName(t, out, "b")
	y := varByName(t, out, "y")
	z := varByName(t, out, "bilinear0_z")
	assert.Equal(t, -5.0, z.LB)
	assert.Equal(t, 10.0, z.UB)

	// b=0 forces z=0 regardless of y
	for _, yv := range []float64{-5, 0, 3, 10} {
		assert.True(t, allSatisfied(out, model.Point{b: 0, y: yv, z: 0}))
		assert.False(t, allSatisfied(out, model.Point{b: 0, y: yv, z: 0.5}))
		assert.False(t, allSatisfied(out, model.Point{b: 0, y: yv, z: -0.5}))
	}
	// b=1 forces z=y
	for _, yv := range []float64{-5, 0, 7, 10} {
		assert.True(t, allSatisfied(out, model.Point{b: 1, y: yv, z: yv}))
		assert.False(t, allSatisfied(out, model.Point{b: 1, y: yv, z: yv + 1}))
	}
}

func TestBinaryTimesContinuousRequiresBounds(t *testing.T) {
	m := model.New("bilinear")
	b := m.AddBinary("b")
	y := m.AddVariable("y", model.Continuous) // unbounded
	z := m.AddBilinear(b, y, 1)
	m.SetObjective(model.Minimize, model.Expr(1, z))

	out, stats, err := Linearize(m, solver.GLPK.Capability())
	assert.Nil(t, out)
	assert.Nil(t, stats)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Reason, "y")
}

func TestMcCormickIsValidRelaxation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	properties.Property("z=x·y satisfies the envelope inside the box", prop.ForAll(
		func(xl, xw, yl, yw, fx, fy float64) bool {
			xu, yu := xl+xw, yl+yw
			m := model.New("mc")
			x := m.AddContinuous("x", xl, xu)
			y := m.AddContinuous("y", yl, yu)
			z := m.AddBilinear(x, y, 1)
			m.SetObjective(model.Minimize, model.Expr(1, z))
			out, _, err := Linearize(m, solver.GLPK.Capability())
			if err != nil {
				return false
			}
			xv := xl + fx*(xu-xl)
			yv := yl + fy*(yu-yl)
			ox := varByName(t, out, "x")
			oy := varByName(t, out, "y")
			oz := varByName(t, out, "bilinear0_z")
			for _, c := range auxCons(out) {
				if !c.Satisfied(model.Point{ox: xv, oy: yv, oz: xv * yv}, 1e-6) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(-50, 50),
		gen.Float64Range(0.1, 100),
		gen.Float64Range(-50, 50),
		gen.Float64Range(0.1, 100),
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestMcCormickExactAtBoxCorners(t *testing.T) {
	out, stats := buildBilinear(t, func(m *model.Model) *model.Variable {
		x := m.AddContinuous("x", 2, 6)
		y := m.AddContinuous("y", -3, 5)
		return m.AddBilinear(x, y, 1)
	})
	assert.Equal(t, 4, stats.AuxConstraints)

	x := varByName(t, out, "x")
	y := varByName(t, out, "y")
	z := varByName(t, out, "bilinear0_z")

	for _, xv := range []float64{2, 6} {
		for _, yv := range []float64{-3, 5} {
			pt := model.Point{x: xv, y: yv, z: xv * yv}
			assert.True(t, allSatisfied(out, pt), "corner (%g, %g)", xv, yv)
			assert.True(t, anyTight(out, pt), "corner (%g, %g) should be tight", xv, yv)
		}
	}
	// strictly inside the box the envelope is a relaxation: z may deviate
	// from x·y without violating it
	inside := model.Point{x: 4, y: 1, z: 4*1 + 2}
	assert.True(t, allSatisfied(out, inside))
}

func TestMcCormickRequiresFiniteBounds(t *testing.T) {
	m := model.New("mc")
	x := m.AddContinuous("x", 0, 1)
	y := m.AddVariable("y", model.Continuous)
	y.SetBounds(0, math.Inf(1)) // finite lower, infinite upper
	z := m.AddBilinear(x, y, 1)
	m.SetObjective(model.Minimize, model.Expr(1, z))

	_, _, err := Linearize(m, solver.GLPK.Capability())
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "bilinear0", cerr.Term)
	assert.Contains(t, cerr.Error(), "McCormick")
}

func TestMcCormickBoundTightening(t *testing.T) {
	out, _ := buildBilinear(t, func(m *model.Model) *model.Variable {
		n := m.AddInteger("n", 0.5, 3.7)
		y := m.AddContinuous("y", 0, 2)
		return m.AddBilinear(n, y, 1)
	}, WithBoundTightening())

	n := varByName(t, out, "n")
	assert.Equal(t, 1.0, n.LB)
	assert.Equal(t, 3.0, n.UB)

	z := varByName(t, out, "bilinear0_z")
	assert.Equal(t, 0.0, z.LB)
	assert.Equal(t, 6.0, z.UB)
}

// end-to-end example from the engine contract: price ∈ [10, 100],
// quantity ∈ [0, 1000], one product term.
func TestMcCormickPricingExample(t *testing.T) {
	m := model.New("pricing")
	price := m.AddContinuous("price", 10, 100)
	qty := m.AddContinuous("quantity", 0, 1000)
	rev := m.AddBilinear(price, qty, 1.0)
	m.SetObjective(model.Maximize, model.Expr(1, rev))

	out, stats, err := Linearize(m, solver.CBC.Capability())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.AuxVariables)
	assert.Equal(t, 4, stats.AuxConstraints)

	p := varByName(t, out, "price")
	q := varByName(t, out, "quantity")
	z := varByName(t, out, "bilinear0_z")
	for _, corner := range []struct{ pv, qv float64 }{{10, 0}, {100, 1000}} {
		pt := model.Point{p: corner.pv, q: corner.qv, z: corner.pv * corner.qv}
		assert.True(t, allSatisfied(out, pt))
		assert.True(t, anyTight(out, pt))
	}
}
