package earthmodel

import "math"

// cubicSpline is a natural cubic spline (second derivative zero at both
// ends) over strictly increasing x. It is a small, self-contained
// tridiagonal (Thomas-algorithm) solve: a dense la.MatAlloc matrix would
// waste O(n²) memory on an O(n) problem, so this is implemented directly
// over plain slices (see DESIGN.md).
type cubicSpline struct {
	x, y, y2 []float64
}

func newCubicSpline(x, y []float64) cubicSpline {
	n := len(x)
	y2 := make([]float64, n)
	if n < 3 {
		return cubicSpline{x: x, y: y, y2: y2}
	}
	u := make([]float64, n)
	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*y2[i-1] + 2
		y2[i] = (sig - 1) / p
		u[i] = (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6*u[i]/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}
	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return cubicSpline{x: x, y: y, y2: y2}
}

// eval returns the interpolated value at x0, or NaN if x0 falls outside
// [x[0], x[n-1]] (spec.md §4.3: "Interpolations outside the shell yield
// NaN").
func (c cubicSpline) eval(x0 float64) float64 {
	n := len(c.x)
	if n == 0 || x0 < c.x[0]-1e-9 || x0 > c.x[n-1]+1e-9 {
		return math.NaN()
	}
	if n == 1 {
		return c.y[0]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if c.x[mid] > x0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	h := c.x[hi] - c.x[lo]
	if h <= 0 {
		return c.y[lo]
	}
	a := (c.x[hi] - x0) / h
	b := (x0 - c.x[lo]) / h
	return a*c.y[lo] + b*c.y[hi] +
		((a*a*a-a)*c.y2[lo]+(b*b*b-b)*c.y2[hi])*(h*h)/6
}

// shellInterp is the velocity interpolant of one shell for one wave type:
// linear when the shell has 2 or fewer samples (a cubic spline over two
// points is ill-posed, spec.md §4.3), cubic spline otherwise.
type shellInterp struct {
	spline cubicSpline
	linear bool
}

func buildShellInterp(samples []ModelSample, sh ModelShell, w WaveType) shellInterp {
	n := sh.ITop - sh.IBot + 1
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = samples[sh.IBot+i].R
		ys[i] = samples[sh.IBot+i].Velocity(w)
	}
	if n <= 2 {
		return shellInterp{spline: cubicSpline{x: xs, y: ys, y2: make([]float64, n)}, linear: true}
	}
	return shellInterp{spline: newCubicSpline(xs, ys)}
}

func (si shellInterp) eval(r float64) float64 {
	if si.linear {
		n := len(si.spline.x)
		if n == 0 {
			return math.NaN()
		}
		if n == 1 {
			if r != si.spline.x[0] {
				return math.NaN()
			}
			return si.spline.y[0]
		}
		x0, x1 := si.spline.x[0], si.spline.x[1]
		if r < x0-1e-9 || r > x1+1e-9 {
			return math.NaN()
		}
		if x1 == x0 {
			return si.spline.y[0]
		}
		t := (r - x0) / (x1 - x0)
		return si.spline.y[0] + t*(si.spline.y[1]-si.spline.y[0])
	}
	return si.spline.eval(r)
}
