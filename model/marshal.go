package model

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// ErrNonlinearModel is returned when serializing a model that still carries
// nonlinear terms. The wire form exists to hand a solver adapter a finished
// (linearized) model; a piecewise function reference has no faithful
// encoding.
var ErrNonlinearModel = errors.New("model contains nonlinear terms; linearize before serializing")

// serializedModel is the CBOR wire form. Variable references become
// declaration indices.
type serializedModel struct {
	Name string
	Vars []serializedVar
	Cons []serializedCon
	SOS  []serializedSOS
	Obj  serializedObj
}

type serializedVar struct {
	Name   string
	Type   uint8
	LB     float64
	UB     float64
	Origin string `cbor:",omitempty"`
}

type serializedCoef struct {
	C float64
	V int
}

type serializedExpr struct {
	Coeffs   []serializedCoef
	Constant float64
}

type serializedCon struct {
	Name   string
	Expr   serializedExpr
	Sense  uint8
	RHS    float64
	Origin string `cbor:",omitempty"`
}

type serializedSOS struct {
	Type    uint8
	Vars    []int
	Weights []float64
	Origin  string `cbor:",omitempty"`
}

type serializedObj struct {
	Sense uint8
	Expr  serializedExpr
}

func (m *Model) serialize() (*serializedModel, error) {
	if len(m.terms) > 0 {
		return nil, ErrNonlinearModel
	}
	s := &serializedModel{Name: m.Name}
	s.Vars = make([]serializedVar, len(m.vars))
	for i, v := range m.vars {
		s.Vars[i] = serializedVar{Name: v.Name, Type: uint8(v.Type), LB: v.LB, UB: v.UB, Origin: v.origin}
	}
	sExpr := func(e LinearExpr) serializedExpr {
		out := serializedExpr{Constant: e.Constant, Coeffs: make([]serializedCoef, len(e.Coeffs))}
		for i, c := range e.Coeffs {
			out.Coeffs[i] = serializedCoef{C: c.Coeff, V: c.Var.id}
		}
		return out
	}
	s.Cons = make([]serializedCon, len(m.cons))
	for i, c := range m.cons {
		s.Cons[i] = serializedCon{Name: c.Name, Expr: sExpr(c.Expr), Sense: uint8(c.Sense), RHS: c.RHS, Origin: c.origin}
	}
	s.SOS = make([]serializedSOS, len(m.sos))
	for i, set := range m.sos {
		ids := make([]int, len(set.Vars))
		for j, v := range set.Vars {
			ids[j] = v.id
		}
		s.SOS[i] = serializedSOS{Type: uint8(set.Type), Vars: ids, Weights: set.Weights, Origin: set.origin}
	}
	s.Obj = serializedObj{Sense: uint8(m.objective.Sense), Expr: sExpr(m.objective.Expr)}
	return s, nil
}

func (s *serializedModel) restore() (*Model, error) {
	m := New(s.Name)
	for _, v := range s.Vars {
		nv := m.AddVariable(v.Name, VarType(v.Type))
		nv.SetBounds(v.LB, v.UB)
		nv.origin = v.Origin
	}
	rExpr := func(e serializedExpr) (LinearExpr, error) {
		out := LinearExpr{Constant: e.Constant}
		for _, c := range e.Coeffs {
			if c.V < 0 || c.V >= len(m.vars) {
				return LinearExpr{}, fmt.Errorf("expression references unknown variable %d", c.V)
			}
			out.Add(c.C, m.vars[c.V])
		}
		return out, nil
	}
	for _, c := range s.Cons {
		expr, err := rExpr(c.Expr)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", c.Name, err)
		}
		nc := m.AddConstraint(c.Name, expr, Sense(c.Sense), c.RHS)
		nc.origin = c.Origin
	}
	for i, set := range s.SOS {
		vars := make([]*Variable, len(set.Vars))
		for j, id := range set.Vars {
			if id < 0 || id >= len(m.vars) {
				return nil, fmt.Errorf("sos set %d references unknown variable %d", i, id)
			}
			vars[j] = m.vars[id]
		}
		ns := m.AddSOS(SOSType(set.Type), vars, set.Weights)
		ns.origin = set.Origin
	}
	obj, err := rExpr(s.Obj.Expr)
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}
	m.SetObjective(ObjectiveSense(s.Obj.Sense), obj)
	return m, nil
}

// WriteTo serializes the model to w in deterministic CBOR. It fails with
// ErrNonlinearModel if the model still carries nonlinear terms.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	s, err := m.serialize()
	if err != nil {
		return 0, err
	}
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return 0, err
	}
	data, err := enc.Marshal(s)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom deserializes a model previously written with WriteTo.
func (m *Model) ReadFrom(r io.Reader) (int64, error) {
	dm, err := cbor.DecOptions{
		MaxArrayElements: 2147483647,
		MaxMapPairs:      2147483647,
	}.DecMode()
	if err != nil {
		return 0, err
	}
	counter := &countingReader{r: r}
	var s serializedModel
	if err := dm.NewDecoder(counter).Decode(&s); err != nil {
		return counter.n, err
	}
	restored, err := s.restore()
	if err != nil {
		return counter.n, err
	}
	*m = *restored
	return counter.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
