package linearize

import (
	"fmt"
	"strings"

	"github.com/kantor-opt/kantor/model"
)

// Stats counts what a single linearization run produced. A fresh record is
// created per run and never shared across runs.
type Stats struct {
	// Terms counts linearized terms per kind.
	Terms map[model.TermKind]int

	// Passthrough counts terms left untouched because the solver covers
	// them natively.
	Passthrough int

	// AuxVariables is the total number of auxiliary variables in the output
	// model, result variables of linearized terms included.
	AuxVariables int

	// AuxConstraints is the total number of auxiliary constraints.
	AuxConstraints int

	// SOSSets is the number of special ordered sets emitted.
	SOSSets int
}

func newStats() *Stats {
	return &Stats{Terms: make(map[model.TermKind]int)}
}

// TotalLinearized returns the number of terms rewritten during the run.
func (s *Stats) TotalLinearized() int {
	n := 0
	for _, c := range s.Terms {
		n += c
	}
	return n
}

func (s *Stats) String() string {
	var kinds []string
	for k := model.KindBilinear; k <= model.KindPiecewise; k++ {
		if c := s.Terms[k]; c > 0 {
			kinds = append(kinds, fmt.Sprintf("%s=%d", k, c))
		}
	}
	return fmt.Sprintf("linearized %d terms (%s), %d passthrough, +%d vars, +%d constraints, +%d sos",
		s.TotalLinearized(), strings.Join(kinds, " "), s.Passthrough, s.AuxVariables, s.AuxConstraints, s.SOSSets)
}
