// Package decimate implements the two decimation modes of spec.md §4.9
// and the union keep-mask they both contribute to.
package decimate

import "math"

// KeepMask is a boolean survival flag per ray-parameter index on the
// master grid. Union merges one branch's mask into another: a sample
// survives if any branch wants it.
type KeepMask []bool

// Union sets dst[i] = dst[i] || src[i] for every index, growing dst if
// necessary.
func Union(dst, src KeepMask) KeepMask {
	if len(dst) < len(src) {
		grown := make(KeepMask, len(src))
		copy(grown, dst)
		dst = grown
	}
	for i, v := range src {
		if v {
			dst[i] = true
		}
	}
	return dst
}

// doVar returns the variance of (|ΔX_kept| − target) across consecutive
// kept samples of x, the objective the slow decimator minimises (spec.md
// §4.9, referenced directly by Testable Property S6).
func doVar(x []float64, keep KeepMask, target float64) float64 {
	var kept []float64
	for i, k := range keep {
		if k {
			kept = append(kept, x[i])
		}
	}
	if len(kept) < 2 {
		return 0
	}
	diffs := make([]float64, len(kept)-1)
	for i := 1; i < len(kept); i++ {
		diffs[i-1] = math.Abs(kept[i]-kept[i-1]) - target
	}
	var sum, sumSq float64
	for _, d := range diffs {
		sum += d
		sumSq += d * d
	}
	mean := sum / float64(len(diffs))
	return sumSq/float64(len(diffs)) - mean*mean
}

func keptCount(keep KeepMask) int {
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	return n
}

// Slow runs the variance-minimizing decimator of spec.md §4.9: a greedy
// first pass that keeps samples roughly target apart, followed by a
// toggle-refinement pass that accepts any boundary-sample toggle lowering
// mean variance (ties broken toward fewer kept samples), iterating until a
// full pass changes nothing or only one sample remains.
func Slow(x []float64, target float64) KeepMask {
	n := len(x)
	keep := make(KeepMask, n)
	if n == 0 {
		return keep
	}
	keep[0] = true
	keep[n-1] = true
	if n <= 2 {
		return keep
	}

	// Pass 1: greedy accept.
	last := x[0]
	for i := 1; i < n-1; i++ {
		if math.Abs(x[i]-last) >= target {
			keep[i] = true
			last = x[i]
		}
	}

	// Pass 2: toggle refinement.
	for {
		changed := false
		for i := 1; i < n-1; i++ {
			trial := make(KeepMask, n)
			copy(trial, keep)
			trial[i] = !trial[i]
			if keptCount(trial) < 1 {
				continue
			}
			curVar := doVar(x, keep, target)
			trialVar := doVar(x, trial, target)
			if trialVar < curVar-1e-15 ||
				(math.Abs(trialVar-curVar) <= 1e-15 && keptCount(trial) < keptCount(keep)) {
				keep = trial
				changed = true
			}
		}
		if !changed || keptCount(keep) <= 1 {
			break
		}
	}
	return keep
}

// Fast runs the minimum-spacing decimator of spec.md §4.9 used on
// up-going branches: scanning from the deepest ray parameter, it estimates
// X(p) via a three-point parabolic derivative of τ(p) and drops samples
// whose local range increment falls below target.
func Fast(p, tau []float64, x0, x1, target float64) KeepMask {
	n := len(p)
	keep := make(KeepMask, n)
	if n == 0 {
		return keep
	}
	keep[0] = true
	keep[n-1] = true
	if n <= 2 {
		return keep
	}

	estX := make([]float64, n)
	estX[0] = x0
	estX[n-1] = x1
	for i := 1; i < n-1; i++ {
		estX[i] = parabolicDerivative(p, tau, i)
	}

	lastKept := n - 1
	for i := n - 2; i > 0; i-- {
		if math.Abs(estX[i]-estX[lastKept]) >= target {
			keep[i] = true
			lastKept = i
		}
	}
	return keep
}

// parabolicDerivative estimates -dτ/dp at index i (which equals X(p) for
// a ray-theory travel-time curve) via a three-point finite difference
// through (p[i-1],τ[i-1]), (p[i],τ[i]), (p[i+1],τ[i+1]).
func parabolicDerivative(p, tau []float64, i int) float64 {
	h1 := p[i] - p[i-1]
	h2 := p[i+1] - p[i]
	if h1 == 0 || h2 == 0 {
		return 0
	}
	d1 := (tau[i] - tau[i-1]) / h1
	d2 := (tau[i+1] - tau[i]) / h2
	// weighted average of the two one-sided slopes, weighted by the
	// opposite interval (standard non-uniform three-point stencil).
	deriv := (h2*d1 + h1*d2) / (h1 + h2)
	return -deriv
}
