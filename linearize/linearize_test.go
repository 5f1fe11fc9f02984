package linearize

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantor-opt/kantor/model"
	"github.com/kantor-opt/kantor/solver"
)

func TestNeedsLinearization(t *testing.T) {
	build := func() (*model.Model, *model.Variable) {
		m := model.New("needs")
		x := m.AddContinuous("x", 0, 1)
		return m, x
	}

	t.Run("linear model", func(t *testing.T) {
		m, x := build()
		m.SetObjective(model.Minimize, model.Expr(1, x))
		assert.False(t, NeedsLinearization(m, solver.GLPK.Capability()))
	})

	t.Run("continuous product", func(t *testing.T) {
		m, x := build()
		y := m.AddContinuous("y", 0, 1)
		z := m.AddBilinear(x, y, 1)
		m.SetObjective(model.Minimize, model.Expr(1, z))
		assert.True(t, NeedsLinearization(m, solver.GLPK.Capability()))
		assert.False(t, NeedsLinearization(m, solver.Gurobi.Capability()))
	})

	t.Run("binary product needs rewriting even with quadratic support", func(t *testing.T) {
		m, x := build()
		b := m.AddBinary("b")
		z := m.AddBilinear(x, b, 1)
		m.SetObjective(model.Minimize, model.Expr(1, z))
		assert.True(t, NeedsLinearization(m, solver.Gurobi.Capability()))
	})

	t.Run("absolute always needs rewriting", func(t *testing.T) {
		m, x := build()
		z := m.AddAbsolute(x, 1)
		m.SetObjective(model.Minimize, model.Expr(1, z))
		assert.True(t, NeedsLinearization(m, solver.Gurobi.Capability()))
	})

	t.Run("indicator", func(t *testing.T) {
		m, x := build()
		b := m.AddBinary("b")
		m.AddIndicator(b, true, model.Expr(1, x), model.LE, 0.5)
		m.SetObjective(model.Minimize, model.Expr(1, x))
		assert.True(t, NeedsLinearization(m, solver.GLPK.Capability()))
		assert.False(t, NeedsLinearization(m, solver.SCIP.Capability()))
	})
}

func TestLinearizeLeavesInputIntact(t *testing.T) {
	m := model.New("intact")
	x := m.AddContinuous("x", 0, 10)
	y := m.AddContinuous("y", 0, 10)
	z := m.AddBilinear(x, y, 1)
	m.AddConstraint("cap", model.Expr(1, x, 1, y), model.LE, 12)
	m.SetObjective(model.Maximize, model.Expr(1, z))

	nbVars, nbCons, nbTerms := len(m.Variables()), len(m.Constraints()), len(m.Terms())

	out, _, err := Linearize(m, solver.GLPK.Capability())
	require.NoError(t, err)

	assert.Equal(t, nbVars, len(m.Variables()))
	assert.Equal(t, nbCons, len(m.Constraints()))
	assert.Equal(t, nbTerms, len(m.Terms()))
	// the input's result variable keeps its declared bounds
	assert.True(t, math.IsInf(z.LB, -1))
	assert.True(t, math.IsInf(z.UB, 1))

	// all output variables are fresh copies
	inVars := make(map[*model.Variable]bool, nbVars)
	for _, v := range m.Variables() {
		inVars[v] = true
	}
	for _, v := range out.Variables() {
		assert.False(t, inVars[v], "output shares variable %s with input", v.Name)
	}
}

func TestLinearizeIdempotent(t *testing.T) {
	m := model.New("twice")
	x := m.AddContinuous("x", 0, 10)
	y := m.AddContinuous("y", 0, 10)
	z := m.AddBilinear(x, y, 1)
	m.SetObjective(model.Maximize, model.Expr(1, z))

	out, stats, err := Linearize(m, solver.GLPK.Capability())
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalLinearized())
	require.False(t, NeedsLinearization(out, solver.GLPK.Capability()))

	again, stats2, err := Linearize(out, solver.GLPK.Capability())
	require.NoError(t, err)
	assert.Zero(t, stats2.TotalLinearized())
	assert.Zero(t, stats2.Passthrough)
	assert.Zero(t, stats2.AuxVariables)
	assert.Zero(t, stats2.AuxConstraints)

	// both are linear, so the deterministic wire form decides structural
	// equality
	var w1, w2 bytes.Buffer
	_, err = out.WriteTo(&w1)
	require.NoError(t, err)
	_, err = again.WriteTo(&w2)
	require.NoError(t, err)
	assert.Equal(t, w1.Bytes(), w2.Bytes())
}

func TestLinearizeAllOrNothing(t *testing.T) {
	m := model.New("mixed")
	x := m.AddContinuous("x", 0, 1)
	y := m.AddContinuous("y", 0, 1)
	good := m.AddBilinear(x, y, 1)
	// unbounded operand makes the second product impossible to envelope
	free := m.AddContinuous("free", 0, math.Inf(1))
	bad := m.AddBilinear(x, free, 1)
	m.SetObjective(model.Minimize, model.Expr(1, good, 1, bad))

	nbVars, nbCons := len(m.Variables()), len(m.Constraints())

	out, stats, err := Linearize(m, solver.GLPK.Capability())
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Nil(t, out)
	assert.Nil(t, stats)
	// the failed run left no trace on the input
	assert.Equal(t, nbVars, len(m.Variables()))
	assert.Equal(t, nbCons, len(m.Constraints()))
}

func TestLinearizeDropsUnreferencedTerm(t *testing.T) {
	m := model.New("drop")
	x := m.AddContinuous("x", 0, 1)
	y := m.AddContinuous("y", 0, 1)
	m.AddBilinear(x, y, 1) // result never used
	m.SetObjective(model.Minimize, model.Expr(1, x))

	out, stats, err := Linearize(m, solver.GLPK.Capability())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLinearized())
	assert.Zero(t, stats.AuxConstraints)
	assert.Empty(t, out.Terms())
}

func TestLinearizeKeepsTermFeedingAnotherTerm(t *testing.T) {
	m := model.New("chain")
	x := m.AddContinuous("x", -1, 1)
	y := m.AddContinuous("y", -1, 1)
	prod := m.AddBilinear(x, y, 1)
	dist := m.AddAbsolute(prod, 1)
	m.SetObjective(model.Minimize, model.Expr(1, dist))

	_, stats, err := Linearize(m, solver.GLPK.Capability())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Terms[model.KindBilinear])
	assert.Equal(t, 1, stats.Terms[model.KindAbsolute])
}

func TestLinearizeIndicatorAlwaysKept(t *testing.T) {
	// indicators have no result variable, so reference pruning never
	// applies to them
	m := model.New("ind")
	x := m.AddContinuous("x", 0, 100)
	b := m.AddBinary("b")
	m.AddIndicator(b, true, model.Expr(1, x), model.LE, 10)
	m.SetObjective(model.Minimize, model.Expr(1, x))

	_, stats, err := Linearize(m, solver.GLPK.Capability())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Terms[model.KindIndicator])
}

func TestLinearizeOptionError(t *testing.T) {
	m := model.New("opts")
	x := m.AddContinuous("x", 0, 1)
	m.SetObjective(model.Minimize, model.Expr(1, x))

	_, _, err := Linearize(m, solver.GLPK.Capability(), WithBigM(-5))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply option")
}

func TestLinearizeMixedTermsEndToEnd(t *testing.T) {
	m := model.New("portfolio")
	alloc := m.AddContinuous("alloc", 0, 100)
	active := m.AddBinary("active")
	risk := m.AddContinuous("risk", -50, 50)

	exposure := m.AddBilinear(alloc, active, 1)
	penalty := m.AddAbsolute(risk, 2)
	m.AddIndicator(active, false, model.Expr(1, alloc), model.LE, 0)
	m.AddConstraint("budget", model.Expr(1, alloc), model.LE, 80)
	m.SetObjective(model.Minimize, model.Expr(-1, exposure, 1, penalty))

	out, stats, err := Linearize(m, solver.CBC.Capability())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalLinearized())
	assert.Empty(t, out.Terms())
	assert.False(t, NeedsLinearization(out, solver.CBC.Capability()))

	// a consistent assignment satisfies every rewritten constraint
	pt := model.Point{
		varByName(t, out, "alloc"):       60,
		varByName(t, out, "active"):      1,
		varByName(t, out, "risk"):        -10,
		varByName(t, out, "bilinear0_z"): 60,
		varByName(t, out, "absolute0_z"): 10,
	}
	assert.True(t, allSatisfied(out, pt))

	// switching the binary off without zeroing the allocation violates
	// the rewritten indicator
	pt[varByName(t, out, "active")] = 0
	pt[varByName(t, out, "bilinear0_z")] = 0
	assert.False(t, allSatisfied(out, pt))
}
