// Package rootfind implements the Pegasus root finder (spec.md §4.5,
// §4.6, §9): a regula-falsi variant chosen over a pure derivative-based
// method because dX/dp is singular at shell tops, so a derivative solver
// cannot be relied on to bracket a caustic or a target-range crossing. The
// finder is a shared, reentrant numerical utility with no hidden state
// between calls (spec.md §9 Design Notes).
package rootfind

import "math"

// Func is the scalar function a Pegasus search looks for a root of.
type Func func(x float64) float64

// Result carries the outcome of a bracketed search.
type Result struct {
	Root       float64
	Iterations int
	Converged  bool
}

// Solve brackets a root of f in [a, b] using the Pegasus variant of
// regula falsi, bounded by maxIter iterations and converging when the
// bracket width or |f(root)| falls below tol.
//
// If f(a) and f(b) do not have opposite signs, the bracket is invalid and
// Solve returns a NaN root with Converged == false: per spec.md §9, a
// bracketing failure returns a sentinel rather than panicking, except
// where the caller knows the bracket must exist by invariant, in which
// case the caller treats a NaN result as fatal itself.
func Solve(f Func, a, b, tol float64, maxIter int) Result {
	fa, fb := f(a), f(b)
	if fa == 0 {
		return Result{Root: a, Converged: true}
	}
	if fb == 0 {
		return Result{Root: b, Converged: true}
	}
	if sameSign(fa, fb) {
		return Result{Root: math.NaN(), Converged: false}
	}

	for iter := 1; iter <= maxIter; iter++ {
		c := b - fb*(b-a)/(fb-fa)
		fc := f(c)

		if fc == 0 || math.Abs(b-a) < tol {
			return Result{Root: c, Iterations: iter, Converged: true}
		}

		if sameSign(fc, fb) {
			// retained endpoint's function value is dampened (the
			// Pegasus update) rather than kept at full weight, which is
			// what makes this converge super-linearly unlike plain
			// regula falsi.
			fa = fa * fb / (fb + fc)
		} else {
			a, fa = b, fb
		}
		b, fb = c, fc

		if math.Abs(fb) < tol {
			return Result{Root: b, Iterations: iter, Converged: true}
		}
	}
	return Result{Root: b, Iterations: maxIter, Converged: false}
}

func sameSign(x, y float64) bool {
	return (x > 0 && y > 0) || (x < 0 && y < 0)
}
