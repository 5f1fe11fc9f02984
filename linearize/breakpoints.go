package linearize

import (
	"fmt"
	"math"
)

// GenerateBreakpoints returns n+1 equally spaced, strictly increasing sample
// points spanning [xmin, xmax], both endpoints included.
func GenerateBreakpoints(xmin, xmax float64, n int) ([]float64, error) {
	if err := checkDomain(xmin, xmax, n); err != nil {
		return nil, err
	}
	pts := make([]float64, n+1)
	h := (xmax - xmin) / float64(n)
	for i := range pts {
		pts[i] = xmin + float64(i)*h
	}
	pts[n] = xmax
	return pts, nil
}

// GenerateAdaptiveBreakpoints returns n+1 strictly increasing sample points
// spanning [xmin, xmax], distributed proportionally to the local curvature
// of f: flat regions get few points, sharply curved regions get many.
//
// The function is sampled densely (10n intervals), curvature is estimated
// from discrete second differences, and breakpoints are placed at equal
// quantiles of the accumulated curvature mass. A uniform floor on the mass
// keeps the points strictly increasing even where f is affine.
func GenerateAdaptiveBreakpoints(f func(float64) float64, xmin, xmax float64, n int) ([]float64, error) {
	if err := checkDomain(xmin, xmax, n); err != nil {
		return nil, err
	}
	if n == 1 {
		return []float64{xmin, xmax}, nil
	}

	m := 10 * n
	h := (xmax - xmin) / float64(m)
	ys := make([]float64, m+1)
	for i := range ys {
		y := f(xmin + float64(i)*h)
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("function is not finite at x=%g", xmin+float64(i)*h)
		}
		ys[i] = y
	}

	// curvature estimate per dense sample; second differences below float
	// noise level count as zero so affine stretches stay exactly uniform
	scale := 1.0
	for _, y := range ys {
		scale = math.Max(scale, math.Abs(y))
	}
	noise := 1e-9 * scale / (h * h)
	curv := make([]float64, m+1)
	total := 0.0
	for i := 1; i < m; i++ {
		c := math.Abs(ys[i-1]-2*ys[i]+ys[i+1]) / (h * h)
		if c <= noise {
			c = 0
		}
		curv[i] = c
		total += c
	}
	curv[0], curv[m] = curv[1], curv[m-1]
	total += curv[0] + curv[m]

	// uniform floor so affine stretches still accumulate mass
	floor := total / float64(m) * 0.1
	if total == 0 {
		floor = 1
	}

	// curvature mass accumulated per dense interval (trapezoid weights)
	mass := make([]float64, m+1)
	for i := 1; i <= m; i++ {
		w := (curv[i-1]+curv[i])/2 + floor
		mass[i] = mass[i-1] + w*h
	}

	// invert the mass distribution at n+1 equal quantiles
	pts := make([]float64, n+1)
	pts[0], pts[n] = xmin, xmax
	j := 1
	for k := 1; k < n; k++ {
		target := mass[m] * float64(k) / float64(n)
		for j < m && mass[j] < target {
			j++
		}
		// linear interpolation inside dense interval [j-1, j]
		span := mass[j] - mass[j-1]
		frac := 0.0
		if span > 0 {
			frac = (target - mass[j-1]) / span
		}
		pts[k] = xmin + (float64(j-1)+frac)*h
	}

	// strictly increasing despite floating point: nudge degenerate gaps
	minGap := (xmax - xmin) * 1e-12
	for k := 1; k <= n; k++ {
		if pts[k] <= pts[k-1] {
			pts[k] = pts[k-1] + minGap
		}
	}
	pts[n] = xmax
	return pts, nil
}

func checkDomain(xmin, xmax float64, n int) error {
	if n < 1 {
		return fmt.Errorf("segment count must be at least 1, got %d", n)
	}
	if math.IsInf(xmin, 0) || math.IsInf(xmax, 0) || math.IsNaN(xmin) || math.IsNaN(xmax) {
		return fmt.Errorf("domain [%g, %g] must be finite", xmin, xmax)
	}
	if xmin >= xmax {
		return fmt.Errorf("domain [%g, %g] is empty", xmin, xmax)
	}
	return nil
}
