// Package layerint implements the closed-form τ, X, and dX/dp integrals
// for one layer of a flattened Earth model (spec.md §4.2). A layer is
// defined by its top and bottom non-dimensional depth and slowness; the
// model assumes slowness varies as p(z̃) = b + B·exp(z̃-z̃_T) within the
// layer, the translation parameter b and gradient B chosen so p matches
// p_T and p_B at the layer's top and bottom.
package layerint

import (
	"math"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/errs"
)

// Layer is one model layer under the flattening transform: top and
// bottom non-dimensional depth (zTop < zBot) and slowness.
type Layer struct {
	ZTop, ZBot float64
	PTop, PBot float64
}

// Result holds the closed-form contributions of one layer to τ and X.
type Result struct {
	Tau float64
	X   float64
}

// bGradient returns the translation parameter b and gradient B of the
// power-law slowness model for the layer, plus Δz̃.
func bGradient(l Layer) (b, B, dz float64) {
	dz = l.ZBot - l.ZTop
	denom := math.Expm1(dz)
	B = (l.PBot - l.PTop) / denom
	b = l.PTop - B
	return
}

// Integrate returns the layer's contribution to τ(p) and X(p). p must
// satisfy p ≤ min(l.PTop, l.PBot) within cfg.DTOL (the ray does not turn
// strictly inside this layer; it either fully traverses it or bottoms
// exactly at l.PBot).
func Integrate(cfg *config.Config, l Layer, p float64) (Result, error) {
	dz := l.ZBot - l.ZTop

	// Case 1: zero-thickness layer.
	if math.Abs(dz) <= cfg.DTOL {
		return Result{}, nil
	}

	// Case 2: constant-slowness layer (p(z̃) is flat across the layer).
	if math.Abs(l.PTop-l.PBot) <= cfg.DTOL {
		if math.Abs(p-l.PTop) <= cfg.DTOL {
			return Result{}, nil
		}
		diff := l.PTop*l.PTop - p*p
		root := math.Sqrt(math.Abs(diff))
		if root < cfg.DMIN {
			root = cfg.DMIN
		}
		res := Result{
			Tau: math.Abs(dz) * root,
			X:   p * math.Abs(dz) / root,
		}
		return clampNegativeX(cfg, res)
	}

	// Case 3/4: straight-through ray (p ≈ 0).
	if p <= cfg.DTOL {
		if l.PBot <= cfg.DTOL {
			// Case 3: straight through the centre; X absorbs π/2 here.
			return Result{Tau: l.PTop, X: math.Pi / 2}, nil
		}
		b, _, _ := bGradient(l)
		res := Result{
			Tau: (l.PBot - l.PTop) + b*dz,
			X:   0,
		}
		return clampNegativeX(cfg, res)
	}

	res, err := integrateGeneral(cfg, l, p, dz)
	if err != nil {
		return Result{}, err
	}
	return clampNegativeX(cfg, res)
}

// integrateGeneral evaluates the two-log / two-arcsin closed form shared
// by the general case and the p==PTop / p==PBot endpoint cases (spec.md
// §4.2 cases 5, 6, 7): those endpoints are not given separate formulas
// here because the general closed form is already well defined and
// numerically finite there (sqrt(w²-p²) reaches zero, not a singularity,
// when w coincides with p).
func integrateGeneral(cfg *config.Config, l Layer, p, dz float64) (Result, error) {
	b, _, _ := bGradient(l)
	d := b*b - p*p

	j := func(w float64) float64 {
		return jIntegral(cfg, w, p, b, d)
	}

	uT, uB := l.PTop, l.PBot
	qT := math.Sqrt(math.Max(uT*uT-p*p, 0))
	qB := math.Sqrt(math.Max(uB*uB-p*p, 0))

	logArg := func(w, q float64) float64 {
		v := w + q
		if v < cfg.DMIN {
			v = cfg.DMIN
		}
		return math.Log(v)
	}

	tau := (qB - qT) + b*(logArg(uB, qB)-logArg(uT, qT)) + d*(j(uB)-j(uT))
	x := p * (j(uB) - j(uT))

	return Result{Tau: tau, X: x}, nil
}

// jIntegral evaluates J(w) = ∫ dw' / [(w'-b)·sqrt(w'²-p²)], the shared
// kernel of the τ and X closed forms, selecting the log branch when
// b²≥p² and the arcsin branch when b²<p² (spec.md §4.2 case 7). When
// |b²-p²| is small the branch is numerically unstable and the dedicated
// limit form (b → ±p) is used instead.
func jIntegral(cfg *config.Config, w, p, b, d float64) float64 {
	q := math.Sqrt(math.Max(w*w-p*p, 0))

	if math.Sqrt(math.Abs(d)) <= cfg.DMIN {
		// Degenerate gradient: b is within numerical noise of +p or -p.
		sign := 1.0
		if b < 0 {
			sign = -1.0
		}
		denom := w - sign*p
		if math.Abs(denom) < cfg.DMIN {
			denom = math.Copysign(cfg.DMIN, denom)
		}
		return -sign * q / (p * denom)
	}

	if d > 0 {
		// Two-log branch.
		sq := math.Sqrt(d)
		denom := w - b
		if math.Abs(denom) < cfg.DMIN {
			denom = math.Copysign(cfg.DMIN, denom)
		}
		num := sq*q + b*w - p*p
		arg := math.Abs(num / denom)
		if arg < cfg.DMIN {
			arg = cfg.DMIN
		}
		return -math.Log(arg) / sq
	}

	// Two-arcsin branch (d < 0).
	se := math.Sqrt(-d)
	denom := p * math.Abs(w-b)
	if denom < cfg.DMIN {
		denom = cfg.DMIN
	}
	arg := (p*p - b*w) / denom
	if arg > 1 {
		arg = 1
	}
	if arg < -1 {
		arg = -1
	}
	return -math.Asin(arg) / se
}

// clampNegativeX tolerates a mildly negative X (spec.md §9 Open Question)
// but signals a fatal error for a negative τ below -TauIntTol (spec.md
// §4.2, §7 NegativeTauIntegral).
func clampNegativeX(cfg *config.Config, r Result) (Result, error) {
	if r.Tau < -cfg.TauIntTol {
		return Result{}, errs.New(errs.BadTauInterval, "negative tau integral: tau=%g", r.Tau)
	}
	if r.X < -cfg.DMIN {
		cfg.Logger.Warnf("layerint: mildly negative X tolerated: X=%g", r.X)
	}
	return r, nil
}

// TurningDepth solves p(z̃) = p for z̃ within [l.ZTop, l.ZBot], returning
// ok=false when p does not lie strictly between l.PTop and l.PBot (the ray
// does not turn inside this layer). Used by the column integrator to find
// the partial layer a ray bottoms within.
func TurningDepth(cfg *config.Config, l Layer, p float64) (zTurn float64, ok bool) {
	lo, hi := l.PTop, l.PBot
	if lo > hi {
		lo, hi = hi, lo
	}
	if p <= lo+cfg.DTOL || p >= hi-cfg.DTOL {
		return 0, false
	}
	b, B, _ := bGradient(l)
	ratio := (p - b) / B
	if ratio <= 0 {
		return 0, false
	}
	return l.ZTop + math.Log(ratio), true
}

// IntegrateDerivative returns dX/dp for one layer, short-circuiting to 0
// for degenerate (zero-thickness or constant-slowness) layers. No pipeline
// stage calls it; the Slowness Sampler's caustic finder differentiates the
// whole column numerically instead.
func IntegrateDerivative(cfg *config.Config, l Layer, p float64) (float64, error) {
	dz := l.ZBot - l.ZTop
	if math.Abs(dz) <= cfg.DTOL {
		return 0, nil
	}
	if math.Abs(l.PTop-l.PBot) <= cfg.DTOL {
		return 0, nil
	}

	h := p * 1e-6
	if h < cfg.DMIN {
		h = 1e-8
	}
	pLo, pHi := p-h, p+h
	if pLo < 0 {
		pLo = 0
	}
	rLo, err := Integrate(cfg, l, pLo)
	if err != nil {
		return 0, err
	}
	rHi, err := Integrate(cfg, l, pHi)
	if err != nil {
		return 0, err
	}
	return (rHi.X - rLo.X) / (pHi - pLo), nil
}
