// Package splinebasis builds the 5×N cubic-spline basis coefficient
// matrix of spec.md §4.10's final step: τ(p) expressed as a continuous
// cubic spline (continuous first derivative, natural second-derivative
// boundary condition) over a branch's decimated ray-parameter grid.
package splinebasis

import (
	"github.com/cpmech/gosl/la"

	"github.com/dpedroso/tautable/errs"
)

// Row indices of the basis matrix: knot ray parameter, τ at the knot, the
// spline's first derivative (dτ/dp) at the knot, its second derivative
// (curvature), and the forward knot spacing Δp (0 at the last knot).
const (
	RowP = iota
	RowTau
	RowSlope
	RowCurvature
	RowSpacing
	NumRows
)

// Build returns the 5×N basis matrix for a branch's (p, τ) grid. p must
// be strictly monotonic (ascending or descending); N = len(p) must be at
// least 2.
func Build(p, tau []float64) ([][]float64, error) {
	n := len(p)
	if n != len(tau) {
		return nil, errs.New(errs.BadTauInterval, "splinebasis: p and tau length mismatch (%d vs %d)", n, len(tau))
	}
	if n < 2 {
		return nil, errs.New(errs.BadTauInterval, "splinebasis: need at least two knots, got %d", n)
	}

	curvature := naturalSecondDerivative(p, tau)
	slope := firstDerivative(p, tau, curvature)

	mat := la.MatAlloc(NumRows, n)
	for k := 0; k < n; k++ {
		mat[RowP][k] = p[k]
		mat[RowTau][k] = tau[k]
		mat[RowSlope][k] = slope[k]
		mat[RowCurvature][k] = curvature[k]
		if k < n-1 {
			mat[RowSpacing][k] = p[k+1] - p[k]
		}
	}
	return mat, nil
}

// naturalSecondDerivative returns the natural cubic spline's second
// derivative at every knot (zero at both ends, per spec.md §4.10 "the
// second derivative matches endpoints" — the natural boundary condition).
func naturalSecondDerivative(x, y []float64) []float64 {
	n := len(x)
	y2 := make([]float64, n)
	if n < 3 {
		return y2
	}
	u := make([]float64, n)
	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		pfac := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / pfac
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / pfac
	}
	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return y2
}

// firstDerivative estimates dτ/dp at each knot from the same piecewise
// cubic whose curvature is y2, so the spline's first derivative stays
// continuous across knots (spec.md §4.10).
func firstDerivative(x, y, y2 []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var h float64
		var lo, hi int
		if i < n-1 {
			lo, hi = i, i+1
		} else {
			lo, hi = i-1, i
		}
		h = x[hi] - x[lo]
		if h == 0 {
			continue
		}
		base := (y[hi] - y[lo]) / h
		curveTerm := h * (2*y2[lo] + y2[hi]) / 6
		if i == n-1 {
			curveTerm = h * (y2[lo] + 2*y2[hi]) / 6
			out[i] = base + curveTerm
			continue
		}
		out[i] = base - curveTerm
	}
	return out
}
