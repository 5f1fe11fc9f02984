package linearize

import (
	"fmt"

	"github.com/kantor-opt/kantor/model"
)

// ConfigError reports a term whose declaration or configuration cannot be
// linearized: a formulation invalid for the term kind, or required bounds
// that are missing or infinite.
type ConfigError struct {
	Term   string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s term: %s", e.Term, e.Reason)
}

// UnsupportedMethodError reports an explicitly requested formulation that is
// declared but not implemented.
type UnsupportedMethodError struct {
	Term   string
	Method model.PWLMethod
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("%s term: %s formulation is not implemented", e.Term, e.Method)
}

// DimensionError reports a MinMax term whose operand and coefficient lists
// have different lengths.
type DimensionError struct {
	Term   string
	Vars   int
	Coeffs int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s term: %d operands but %d coefficients", e.Term, e.Vars, e.Coeffs)
}

func boundsError(term model.Term, v *model.Variable, requiredBy string) error {
	return &ConfigError{
		Term:   term.Name(),
		Reason: fmt.Sprintf("operand %s lacks finite bounds required by the %s encoding", v.Name, requiredBy),
	}
}
