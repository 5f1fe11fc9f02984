// Package model implements the declarative model-builder surface of kantor:
// decision variables, linear expressions and constraints, an objective, and
// the tagged-union nonlinear terms the linearize package rewrites.
package model

import (
	"fmt"
	"math"
)

// Model is a mathematical optimization model under construction. Variables,
// constraints and nonlinear terms keep their declaration order.
//
// A model is not safe for concurrent mutation; once built it may be shared
// freely across concurrent linearization runs, which never mutate it.
type Model struct {
	Name string

	vars      []*Variable
	cons      []*Constraint
	sos       []*SOS
	terms     []Term
	objective Objective
}

// New returns an empty model.
func New(name string) *Model {
	return &Model{Name: name}
}

// AddVariable declares a decision variable. Binary variables get bounds
// [0, 1]; integer and continuous variables start unbounded.
func (m *Model) AddVariable(name string, t VarType) *Variable {
	lb, ub := math.Inf(-1), math.Inf(1)
	if t == Binary {
		lb, ub = 0, 1
	}
	v := &Variable{id: len(m.vars), Name: name, Type: t, LB: lb, UB: ub}
	m.vars = append(m.vars, v)
	return v
}

// AddContinuous declares a continuous variable with the given bounds.
func (m *Model) AddContinuous(name string, lb, ub float64) *Variable {
	v := m.AddVariable(name, Continuous)
	v.SetBounds(lb, ub)
	return v
}

// AddBinary declares a binary variable.
func (m *Model) AddBinary(name string) *Variable {
	return m.AddVariable(name, Binary)
}

// AddInteger declares an integer variable with the given bounds.
func (m *Model) AddInteger(name string, lb, ub float64) *Variable {
	v := m.AddVariable(name, Integer)
	v.SetBounds(lb, ub)
	return v
}

// AddAuxiliaryVariable declares a variable tagged with the nonlinear term it
// implements. Used by the linearization engine on its output model.
func (m *Model) AddAuxiliaryVariable(origin, name string, t VarType, lb, ub float64) *Variable {
	v := m.AddVariable(name, t)
	v.SetBounds(lb, ub)
	v.origin = origin
	return v
}

// AddConstraint declares the linear constraint expr ⋈ rhs.
func (m *Model) AddConstraint(name string, expr LinearExpr, sense Sense, rhs float64) *Constraint {
	c := &Constraint{Name: name, Expr: expr, Sense: sense, RHS: rhs}
	m.cons = append(m.cons, c)
	return c
}

// AddAuxiliaryConstraint declares a constraint tagged with the nonlinear term
// it implements. Used by the linearization engine on its output model.
func (m *Model) AddAuxiliaryConstraint(origin, name string, expr LinearExpr, sense Sense, rhs float64) *Constraint {
	c := m.AddConstraint(name, expr, sense, rhs)
	c.origin = origin
	return c
}

// AddSOS declares a special ordered set over the given variables and weights.
func (m *Model) AddSOS(t SOSType, vars []*Variable, weights []float64) *SOS {
	s := &SOS{Type: t, Vars: vars, Weights: weights}
	m.sos = append(m.sos, s)
	return s
}

// AddAuxiliarySOS declares a special ordered set tagged with the nonlinear
// term it implements.
func (m *Model) AddAuxiliarySOS(origin string, t SOSType, vars []*Variable, weights []float64) *SOS {
	s := m.AddSOS(t, vars, weights)
	s.origin = origin
	return s
}

// SetObjective sets the optimization direction and linear objective.
// Nonlinear terms contribute through their result variables.
func (m *Model) SetObjective(sense ObjectiveSense, expr LinearExpr) {
	m.objective = Objective{Sense: sense, Expr: expr}
}

// Objective returns the current objective.
func (m *Model) Objective() Objective { return m.objective }

// Variables returns the declared variables in declaration order. The slice
// is owned by the model and must not be mutated.
func (m *Model) Variables() []*Variable { return m.vars }

// Constraints returns the declared constraints in declaration order. The
// slice is owned by the model and must not be mutated.
func (m *Model) Constraints() []*Constraint { return m.cons }

// SOSConstraints returns the declared special ordered sets.
func (m *Model) SOSConstraints() []*SOS { return m.sos }

// Terms returns the declared nonlinear terms in declaration order. The slice
// is owned by the model and must not be mutated.
func (m *Model) Terms() []Term { return m.terms }

// SetTerms replaces the model's nonlinear term list. It exists for the
// linearization engine, which drops rewritten terms from its output model
// while keeping the ones a solver covers natively.
func (m *Model) SetTerms(terms []Term) { m.terms = terms }

func (m *Model) termName(kind TermKind) string {
	return fmt.Sprintf("%s%d", kind, len(m.terms))
}

// AddBilinear declares the product term coeff·x·y and returns its result
// variable, which stands for x·y in expressions.
func (m *Model) AddBilinear(x, y *Variable, coeff float64) *Variable {
	name := m.termName(KindBilinear)
	z := m.AddAuxiliaryVariable(name, name+"_z", Continuous, math.Inf(-1), math.Inf(1))
	m.terms = append(m.terms, &Bilinear{name: name, result: z, X: x, Y: y, Coeff: coeff})
	return z
}

// AddAbsolute declares the term coeff·|x| and returns its result variable.
//
// The linearized encoding is only correct when the result variable is
// subsequently minimized; see Absolute.
func (m *Model) AddAbsolute(x *Variable, coeff float64) *Variable {
	name := m.termName(KindAbsolute)
	z := m.AddAuxiliaryVariable(name, name+"_z", Continuous, 0, math.Inf(1))
	m.terms = append(m.terms, &Absolute{name: name, result: z, X: x, Coeff: coeff})
	return z
}

// AddMinMax declares min or max over cᵢ·xᵢ and returns its result variable.
// Vars and coeffs must have the same length; the mismatch is reported at
// linearization time.
//
// The linearized encoding is only correct when the result variable is
// minimized (Min) or maximized (Max) in the objective; see MinMax.
func (m *Model) AddMinMax(op MinMaxOp, vars []*Variable, coeffs []float64) *Variable {
	name := m.termName(KindMinMax)
	z := m.AddAuxiliaryVariable(name, name+"_z", Continuous, math.Inf(-1), math.Inf(1))
	m.terms = append(m.terms, &MinMax{name: name, result: z, Op: op, Vars: vars, Coeffs: coeffs})
	return z
}

// AddIndicator declares the conditional constraint "if b = activeValue then
// expr ⋈ rhs" and returns the term.
func (m *Model) AddIndicator(b *Variable, activeValue bool, expr LinearExpr, sense Sense, rhs float64) Term {
	name := m.termName(KindIndicator)
	t := &Indicator{name: name, Binary: b, ActiveValue: activeValue, Expr: expr, Sense: sense, RHS: rhs}
	m.terms = append(m.terms, t)
	return t
}

// AddPiecewise declares the approximation y ≈ f(x) over [xmin, xmax] and
// returns its result variable y.
func (m *Model) AddPiecewise(x *Variable, f func(float64) float64, xmin, xmax float64, opts PiecewiseOptions) *Variable {
	name := m.termName(KindPiecewise)
	z := m.AddAuxiliaryVariable(name, name+"_y", Continuous, math.Inf(-1), math.Inf(1))
	m.terms = append(m.terms, &Piecewise{
		name:     name,
		result:   z,
		X:        x,
		F:        f,
		XMin:     xmin,
		XMax:     xmax,
		Segments: opts.Segments,
		Adaptive: opts.Adaptive,
		Method:   opts.Method,
	})
	return z
}

// Clone returns a deep copy of the model. Variables are re-allocated;
// expressions, constraints and terms are re-pointed onto the copies. The
// receiver is left untouched.
func (m *Model) Clone() *Model {
	out := &Model{Name: m.Name}
	vm := make(map[*Variable]*Variable, len(m.vars))
	out.vars = make([]*Variable, len(m.vars))
	for i, v := range m.vars {
		nv := *v
		out.vars[i] = &nv
		vm[v] = &nv
	}
	out.cons = make([]*Constraint, len(m.cons))
	for i, c := range m.cons {
		out.cons[i] = &Constraint{
			origin: c.origin,
			Name:   c.Name,
			Expr:   c.Expr.cloneMapped(vm),
			Sense:  c.Sense,
			RHS:    c.RHS,
		}
	}
	out.sos = make([]*SOS, len(m.sos))
	for i, s := range m.sos {
		vars := make([]*Variable, len(s.Vars))
		for j, v := range s.Vars {
			vars[j] = vm[v]
		}
		out.sos[i] = &SOS{
			origin:  s.origin,
			Type:    s.Type,
			Vars:    vars,
			Weights: append([]float64(nil), s.Weights...),
		}
	}
	out.terms = make([]Term, len(m.terms))
	for i, t := range m.terms {
		out.terms[i] = t.cloneMapped(vm)
	}
	out.objective = Objective{
		Sense: m.objective.Sense,
		Expr:  m.objective.Expr.cloneMapped(vm),
	}
	return out
}
