package linearize

import (
	"fmt"

	"github.com/kantor-opt/kantor/model"
)

// Config is the flat, read-only record of tunables governing method choice
// and numeric thresholds. It is threaded explicitly into every linearizer
// call; there is no ambient mutable state.
type Config struct {
	// Tolerance is the numeric tolerance used when classifying bounds and
	// checking degenerate intervals.
	Tolerance float64

	// BigM is the constant used by Big-M encodings when AutoBigM is off or
	// operand bounds are unavailable.
	BigM float64

	// AutoBigM computes Big-M values analytically from operand bounds and
	// fails with a ConfigError when a needed bound is infinite, instead of
	// silently using the configured constant.
	AutoBigM bool

	// PWLSegments is the default piecewise-linear segment count for terms
	// that do not request one.
	PWLSegments int

	// PWLMethod is the default piecewise-linear formulation for terms that
	// do not carry a hint.
	PWLMethod model.PWLMethod

	// AdaptiveBreakpoints enables curvature-adaptive breakpoint placement
	// for all piecewise terms, not only those that request it.
	AdaptiveBreakpoints bool

	// TightenBounds propagates and tightens operand bounds before building
	// McCormick envelopes (integer bounds rounded inward, result bounds set
	// from corner products).
	TightenBounds bool

	// PreferSOS2 biases automatic piecewise-linear method selection towards
	// the SOS2 formulation whenever the solver supports it.
	PreferSOS2 bool

	// BinaryExpansionBits is the bit-width recognized for binary-expansion
	// encodings of bounded integer operands. No current formulation
	// consumes it; products involving integer operands use the McCormick
	// envelope.
	BinaryExpansionBits int

	// Verbose enables per-term debug logging of encoding decisions.
	Verbose bool
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		Tolerance:           1e-6,
		BigM:                1e6,
		PWLSegments:         10,
		PWLMethod:           model.PWLAuto,
		PreferSOS2:          true,
		BinaryExpansionBits: 8,
	}
}

// Option alters the linearization configuration. See the functions returning
// instances of this type for available options.
type Option func(*Config) error

// WithTolerance sets the numeric tolerance.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) error {
		if tol <= 0 {
			return fmt.Errorf("tolerance must be positive, got %g", tol)
		}
		cfg.Tolerance = tol
		return nil
	}
}

// WithBigM sets the Big-M constant used when bounds cannot supply one.
// Choosing M too small relative to operand ranges silently produces an
// incorrect feasible region; see WithAutoBigM for the strict alternative.
func WithBigM(m float64) Option {
	return func(cfg *Config) error {
		if m <= 0 {
			return fmt.Errorf("big-M must be positive, got %g", m)
		}
		cfg.BigM = m
		return nil
	}
}

// WithAutoBigM computes Big-M values from operand bounds and errors out when
// a needed bound is missing, converting the too-small-M silent-correctness
// risk into either a correct encoding or an explicit failure.
func WithAutoBigM() Option {
	return func(cfg *Config) error {
		cfg.AutoBigM = true
		return nil
	}
}

// WithPWLSegments sets the default piecewise-linear segment count.
func WithPWLSegments(n int) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("segment count must be at least 1, got %d", n)
		}
		cfg.PWLSegments = n
		return nil
	}
}

// WithPWLMethod sets the default piecewise-linear formulation.
func WithPWLMethod(m model.PWLMethod) Option {
	return func(cfg *Config) error {
		switch m {
		case model.PWLAuto, model.PWLSOS2, model.PWLIncremental, model.PWLLogarithmic:
			cfg.PWLMethod = m
			return nil
		}
		return fmt.Errorf("unknown piecewise-linear method %d", m)
	}
}

// WithAdaptiveBreakpoints enables curvature-adaptive breakpoint placement
// for every piecewise term.
func WithAdaptiveBreakpoints() Option {
	return func(cfg *Config) error {
		cfg.AdaptiveBreakpoints = true
		return nil
	}
}

// WithBoundTightening propagates and tightens operand bounds before building
// McCormick envelopes. Tighter bounds strictly dominate looser ones.
func WithBoundTightening() Option {
	return func(cfg *Config) error {
		cfg.TightenBounds = true
		return nil
	}
}

// WithPreferSOS2 sets the automatic piecewise-linear method bias. When
// prefer is false, automatic selection uses the incremental formulation even
// on solvers with native SOS2 support.
func WithPreferSOS2(prefer bool) Option {
	return func(cfg *Config) error {
		cfg.PreferSOS2 = prefer
		return nil
	}
}

// WithBinaryExpansionBits sets the recognized binary-expansion bit-width.
func WithBinaryExpansionBits(bits int) Option {
	return func(cfg *Config) error {
		if bits < 1 || bits > 30 {
			return fmt.Errorf("binary expansion bit-width must be in [1, 30], got %d", bits)
		}
		cfg.BinaryExpansionBits = bits
		return nil
	}
}

// WithVerboseLogging enables per-term debug logging.
func WithVerboseLogging() Option {
	return func(cfg *Config) error {
		cfg.Verbose = true
		return nil
	}
}
