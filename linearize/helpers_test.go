package linearize

import (
	"testing"

	"github.com/kantor-opt/kantor/model"
)

const testTol = 1e-9

func varByName(t *testing.T, m *model.Model, name string) *model.Variable {
	t.Helper()
	for _, v := range m.Variables() {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("variable %s not found", name)
	return nil
}

func auxCons(m *model.Model) []*model.Constraint {
	var out []*model.Constraint
	for _, c := range m.Constraints() {
		if c.IsAuxiliary() {
			out = append(out, c)
		}
	}
	return out
}

// allSatisfied reports whether every auxiliary constraint holds at the point,
// honoring variable bounds of assigned variables.
func allSatisfied(m *model.Model, pt model.Point) bool {
	for v, x := range pt {
		if x < v.LB-testTol || x > v.UB+testTol {
			return false
		}
	}
	for _, c := range auxCons(m) {
		if !c.Satisfied(pt, testTol) {
			return false
		}
	}
	return true
}

// anyTight reports whether at least one auxiliary constraint is tight at the
// point.
func anyTight(m *model.Model, pt model.Point) bool {
	for _, c := range auxCons(m) {
		if c.Tight(pt, testTol) {
			return true
		}
	}
	return false
}
