package model

// TermKind identifies the variant of a nonlinear Term.
type TermKind uint8

const (
	KindBilinear TermKind = iota
	KindAbsolute
	KindMinMax
	KindIndicator
	KindPiecewise
)

func (k TermKind) String() string {
	switch k {
	case KindBilinear:
		return "bilinear"
	case KindAbsolute:
		return "absolute"
	case KindMinMax:
		return "minmax"
	case KindIndicator:
		return "indicator"
	case KindPiecewise:
		return "piecewise"
	}
	return "unknown"
}

// Term is a nonlinear construct declared on a model. It is a sealed tagged
// union: the concrete variants are Bilinear, Absolute, MinMax, Indicator and
// Piecewise, and dispatchers switch exhaustively on them.
//
// A Term is immutable once declared. It holds weak references to its operand
// variables (the model owns them) and, for all variants but Indicator, owns a
// result variable standing for the term's value in linear expressions.
type Term interface {
	Kind() TermKind

	// Name is the unique identity of the term within its model. Auxiliary
	// variables and constraints produced by linearization carry it as origin.
	Name() string

	// Result returns the variable standing for the term's value, or nil for
	// variants without one (Indicator).
	Result() *Variable

	cloneMapped(vm map[*Variable]*Variable) Term
	isTerm()
}

// Bilinear is a product term coeff·x·y. Its result variable stands for x·y;
// the coefficient is applied where the term is embedded.
//
// If either operand is continuous, both operands must carry finite bounds
// before linearization.
type Bilinear struct {
	name   string
	result *Variable

	X     *Variable
	Y     *Variable
	Coeff float64
}

func (t *Bilinear) Kind() TermKind    { return KindBilinear }
func (t *Bilinear) Name() string      { return t.name }
func (t *Bilinear) Result() *Variable { return t.result }
func (t *Bilinear) isTerm()           {}

func (t *Bilinear) cloneMapped(vm map[*Variable]*Variable) Term {
	return &Bilinear{name: t.name, result: vm[t.result], X: vm[t.X], Y: vm[t.Y], Coeff: t.Coeff}
}

// Absolute is an absolute-value term coeff·|x|.
//
// The generated encoding z ≥ x, z ≥ −x is only correct when the result
// variable is subsequently minimized; this precondition is documented, not
// mechanically enforced.
type Absolute struct {
	name   string
	result *Variable

	X     *Variable
	Coeff float64
}

func (t *Absolute) Kind() TermKind    { return KindAbsolute }
func (t *Absolute) Name() string      { return t.name }
func (t *Absolute) Result() *Variable { return t.result }
func (t *Absolute) isTerm()           {}

func (t *Absolute) cloneMapped(vm map[*Variable]*Variable) Term {
	return &Absolute{name: t.name, result: vm[t.result], X: vm[t.X], Coeff: t.Coeff}
}

// MinMaxOp selects between min and max.
type MinMaxOp uint8

const (
	Min MinMaxOp = iota
	Max
)

func (op MinMaxOp) String() string {
	if op == Max {
		return "max"
	}
	return "min"
}

// MinMax is min(c₁x₁, ..., cₙxₙ) or max(c₁x₁, ..., cₙxₙ). Vars and Coeffs
// must have the same length (checked at linearization time).
//
// The generated encoding is only correct when the result variable is
// minimized (for Min) or maximized (for Max) in the objective; a mismatched
// objective sense yields an unbounded or incorrect model without detection.
type MinMax struct {
	name   string
	result *Variable

	Op     MinMaxOp
	Vars   []*Variable
	Coeffs []float64
}

func (t *MinMax) Kind() TermKind    { return KindMinMax }
func (t *MinMax) Name() string      { return t.name }
func (t *MinMax) Result() *Variable { return t.result }
func (t *MinMax) isTerm()           {}

func (t *MinMax) cloneMapped(vm map[*Variable]*Variable) Term {
	vars := make([]*Variable, len(t.Vars))
	for i, v := range t.Vars {
		vars[i] = vm[v]
	}
	return &MinMax{
		name:   t.name,
		result: vm[t.result],
		Op:     t.Op,
		Vars:   vars,
		Coeffs: append([]float64(nil), t.Coeffs...),
	}
}

// Indicator is a conditional constraint "if binary = ActiveValue then
// expr ⋈ rhs". It has no result variable; linearization rewrites it into
// Big-M constraints (or passes it through to solvers with native indicator
// support).
type Indicator struct {
	name string

	Binary      *Variable
	ActiveValue bool
	Expr        LinearExpr
	Sense       Sense
	RHS         float64
}

func (t *Indicator) Kind() TermKind    { return KindIndicator }
func (t *Indicator) Name() string      { return t.name }
func (t *Indicator) Result() *Variable { return nil }
func (t *Indicator) isTerm()           {}

func (t *Indicator) cloneMapped(vm map[*Variable]*Variable) Term {
	return &Indicator{
		name:        t.name,
		Binary:      vm[t.Binary],
		ActiveValue: t.ActiveValue,
		Expr:        t.Expr.cloneMapped(vm),
		Sense:       t.Sense,
		RHS:         t.RHS,
	}
}

// PWLMethod is a piecewise-linear formulation hint.
type PWLMethod uint8

const (
	PWLAuto PWLMethod = iota
	PWLSOS2
	PWLIncremental
	PWLLogarithmic // declared but not implemented
)

func (m PWLMethod) String() string {
	switch m {
	case PWLAuto:
		return "auto"
	case PWLSOS2:
		return "sos2"
	case PWLIncremental:
		return "incremental"
	case PWLLogarithmic:
		return "logarithmic"
	}
	return "unknown"
}

// PiecewiseOptions tunes a piecewise-linear term declaration. The zero value
// defers every choice to the linearization configuration.
type PiecewiseOptions struct {
	// Segments is the requested segment count; 0 uses the configured default.
	Segments int
	// Adaptive requests curvature-adaptive breakpoint placement.
	Adaptive bool
	// Method is the formulation hint; PWLAuto lets configuration and solver
	// capability decide.
	Method PWLMethod
}

// Piecewise approximates y = f(x) over the finite domain [XMin, XMax] by a
// piecewise-linear interpolation with Segments pieces.
type Piecewise struct {
	name   string
	result *Variable

	X        *Variable
	F        func(float64) float64
	XMin     float64
	XMax     float64
	Segments int
	Adaptive bool
	Method   PWLMethod
}

func (t *Piecewise) Kind() TermKind    { return KindPiecewise }
func (t *Piecewise) Name() string      { return t.name }
func (t *Piecewise) Result() *Variable { return t.result }
func (t *Piecewise) isTerm()           {}

func (t *Piecewise) cloneMapped(vm map[*Variable]*Variable) Term {
	return &Piecewise{
		name:     t.name,
		result:   vm[t.result],
		X:        vm[t.X],
		F:        t.F,
		XMin:     t.XMin,
		XMax:     t.XMax,
		Segments: t.Segments,
		Adaptive: t.Adaptive,
		Method:   t.Method,
	}
}
