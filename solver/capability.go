package solver

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Feature is a construct a solver may understand natively, without
// linearization.
type Feature uint

const (
	// Quadratic covers products of two continuous variables in the model
	// (convex quadratic terms).
	Quadratic Feature = iota
	// FeatSOS1 is native special-ordered-set type 1 support.
	FeatSOS1
	// FeatSOS2 is native special-ordered-set type 2 support; required for
	// the SOS2 piecewise-linear formulation.
	FeatSOS2
	// IndicatorConstraints is native "if b then expr ⋈ rhs" support.
	IndicatorConstraints
	// PiecewiseLinear is a native piecewise-linear primitive.
	PiecewiseLinear

	numFeatures
)

func (f Feature) String() string {
	switch f {
	case Quadratic:
		return "quadratic"
	case FeatSOS1:
		return "sos1"
	case FeatSOS2:
		return "sos2"
	case IndicatorConstraints:
		return "indicator"
	case PiecewiseLinear:
		return "piecewise"
	}
	return "unknown"
}

// Capability describes what a target solver natively supports. It is
// constructed once per solver adapter and never mutated afterwards, so it may
// be shared freely across concurrent linearization runs.
type Capability struct {
	features *bitset.BitSet
	maxVars  uint
	maxCons  uint
}

// NewCapability returns a capability supporting the given features, with no
// size limits.
func NewCapability(features ...Feature) Capability {
	return NewCapabilityWithLimits(0, 0, features...)
}

// NewCapabilityWithLimits returns a capability supporting the given features
// and enforcing the given variable/constraint counts; 0 means unlimited.
func NewCapabilityWithLimits(maxVars, maxCons uint, features ...Feature) Capability {
	b := bitset.New(uint(numFeatures))
	for _, f := range features {
		b.Set(uint(f))
	}
	return Capability{features: b, maxVars: maxVars, maxCons: maxCons}
}

// Supports reports whether the solver natively supports f.
func (c Capability) Supports(f Feature) bool {
	return c.features != nil && c.features.Test(uint(f))
}

// MaxVariables returns the solver's variable count limit; 0 means unlimited.
func (c Capability) MaxVariables() uint { return c.maxVars }

// MaxConstraints returns the solver's constraint count limit; 0 means
// unlimited.
func (c Capability) MaxConstraints() uint { return c.maxCons }

// Features lists the supported features in declaration order.
func (c Capability) Features() []Feature {
	var out []Feature
	for f := Feature(0); f < numFeatures; f++ {
		if c.Supports(f) {
			out = append(out, f)
		}
	}
	return out
}

func (c Capability) String() string {
	fs := c.Features()
	if len(fs) == 0 {
		return "milp"
	}
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return "milp+" + strings.Join(names, "+")
}
