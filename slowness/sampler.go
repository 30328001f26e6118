package slowness

import (
	"math"
	"sort"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/rootfind"
)

// columnDXdp is a central-difference estimate of dX/dp for the whole
// column (surface to bottoming depth), the column-level analogue of
// layerint.IntegrateDerivative: used only to locate a caustic bracket, not
// on any numerically sensitive closed form.
func columnDXdp(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, p float64) (float64, error) {
	h := p * 1e-6
	if h < 1e-10 {
		h = 1e-8
	}
	pLo, pHi := p-h, p+h
	if pLo < 0 {
		pLo = 0
	}
	_, xLo, _, err := integrateColumn(cfg, m, w, pLo)
	if err != nil {
		return 0, err
	}
	_, xHi, _, err := integrateColumn(cfg, m, w, pHi)
	if err != nil {
		return 0, err
	}
	return (xHi - xLo) / (pHi - pLo), nil
}

func integrateAt(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, p float64) (TauSample, error) {
	tau, x, rTurn, err := integrateColumn(cfg, m, w, p)
	if err != nil {
		return TauSample{}, err
	}
	return TauSample{R: rTurn, P: p, Tau: tau, X: x}, nil
}

// SampleInterval implements the Slowness Sampler's per-critical-interval
// algorithm (spec.md §4.5): quadratic interior schedule, hidden-caustic
// probe, caustic refinement via Pegasus, and an X-target refinement pass
// bounded by ΔX/Δp/Δr soft limits. pTop and pBot are the interval's
// bounding critical slownesses (pTop > pBot); targetDX is the shell's
// target range step.
func SampleInterval(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, pTop, pBot, targetDX float64) ([]TauSample, error) {
	top, err := integrateAt(cfg, m, w, pTop)
	if err != nil {
		return nil, err
	}
	bot, err := integrateAt(cfg, m, w, pBot)
	if err != nil {
		return nil, err
	}

	n := int(math.Ceil(math.Abs(bot.X-top.X) / targetDX))
	if n < 1 {
		n = 1
	}

	temp := []TauSample{top}
	dp := (pTop - pBot) / float64(n*n)
	pmin := (pTop - pBot) / float64(n)
	for k := 1; k < n; k++ {
		step := float64(k*k) * dp
		if lin := float64(k) * pmin; lin > step {
			step = lin
		}
		p := pTop - step
		s, err := integrateAt(cfg, m, w, p)
		if err != nil {
			return nil, err
		}
		temp = append(temp, s)
	}
	temp = append(temp, bot)

	if len(temp) == 2 {
		probeP := pTop - 0.25*dp
		probe, err := integrateAt(cfg, m, w, probeP)
		if err == nil {
			lo, hi := top.X, bot.X
			if lo > hi {
				lo, hi = hi, lo
			}
			if probe.X < lo-cfg.DTOL || probe.X > hi+cfg.DTOL {
				temp = []TauSample{top, probe, bot}
			}
		}
	}

	temp, err = refineCaustics(cfg, m, w, temp)
	if err != nil {
		return nil, err
	}

	out, err := refinementPass(cfg, m, w, temp, targetDX)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// refineCaustics scans temp for a sign change in consecutive ΔX (a range
// extremum) and replaces the middle sample of each detected triple with
// the caustic itself, located by Pegasus root-finding on dX/dp = 0.
func refineCaustics(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, temp []TauSample) ([]TauSample, error) {
	out := make([]TauSample, len(temp))
	copy(out, temp)
	for i := 1; i < len(out)-1; i++ {
		d1 := out[i].X - out[i-1].X
		d2 := out[i+1].X - out[i].X
		if d1 == 0 || d2 == 0 || (d1 > 0) == (d2 > 0) {
			continue
		}
		pLo, pHi := out[i-1].P, out[i+1].P
		if pLo > pHi {
			pLo, pHi = pHi, pLo
		}
		res := rootfind.Solve(func(p float64) float64 {
			d, err := columnDXdp(cfg, m, w, p)
			if err != nil {
				return 0
			}
			return d
		}, pLo, pHi, cfg.RayParamTolerance*cfg.DTOL+cfg.DTOL, cfg.MaxRootFindingIterations)
		if !res.Converged {
			backoff := cfg.SlownessOffset
			for iter := 0; iter < cfg.MaxCausticBackoffIterations && !res.Converged; iter++ {
				res = rootfind.Solve(func(p float64) float64 {
					d, err := columnDXdp(cfg, m, w, p)
					if err != nil {
						return 0
					}
					return d
				}, pLo+backoff, pHi-backoff, cfg.RayParamTolerance*cfg.DTOL+cfg.DTOL, cfg.MaxRootFindingIterations)
				backoff *= 2
			}
			if !res.Converged {
				cfg.Logger.Warnf("slowness: caustic bracket did not converge in [%g, %g]", pLo, pHi)
				continue
			}
		}
		s, err := integrateAt(cfg, m, w, res.Root)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// refinementPass walks consecutive anchors (the caustic-refined temporary
// list) and inserts samples so that |ΔX| stays within targetDX, falling
// back to a uniform slowness or radius step when |Δp| or |Δr| overruns
// their soft bounds (spec.md §4.5 Refinement pass, steps 1-5).
func refinementPass(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, anchors []TauSample, targetDX float64) ([]TauSample, error) {
	if len(anchors) < 2 {
		return anchors, nil
	}

	out := []TauSample{anchors[0]}
	for a := 0; a < len(anchors)-1; a++ {
		prev := anchors[a]
		end := anchors[a+1]
		for iter := 0; iter < cfg.MaxRootFindingIterations*4; iter++ {
			if math.Abs(prev.X-end.X) <= cfg.SampleDistanceTolerance {
				break
			}
			xTarget := prev.X + math.Copysign(targetDX, end.X-prev.X)
			if (end.X-prev.X > 0 && xTarget > end.X) || (end.X-prev.X < 0 && xTarget < end.X) {
				xTarget = end.X
			}

			pLo, pHi := prev.P, end.P
			res := rootfind.Solve(func(p float64) float64 {
				s, err := integrateAt(cfg, m, w, p)
				if err != nil {
					return 0
				}
				return s.X - xTarget
			}, pLo, pHi, cfg.SampleDistanceTolerance, cfg.MaxRootFindingIterations)

			var next TauSample
			var err error
			if res.Converged {
				next, err = integrateAt(cfg, m, w, res.Root)
			} else {
				// Fallback 1: uniform slowness step.
				pFallback := prev.P + math.Copysign(math.Min(math.Abs(end.P-prev.P), cfg.MaxSlownessIncrement), end.P-prev.P)
				next, err = integrateAt(cfg, m, w, pFallback)
			}
			if err != nil {
				return nil, err
			}

			if math.Abs(next.P-prev.P) > cfg.MaxSlownessIncrement {
				pFallback := prev.P + math.Copysign(cfg.MaxSlownessIncrement, end.P-prev.P)
				next, err = integrateAt(cfg, m, w, pFallback)
				if err != nil {
					return nil, err
				}
			}
			if math.Abs(next.R-prev.R) > cfg.MaxRadiusDelta {
				rFallback := prev.R + math.Copysign(cfg.MaxRadiusDelta, next.R-prev.R)
				pFromR, ferr := radiusToSlowness(cfg, m, w, prev, rFallback)
				if ferr == nil {
					next, err = integrateAt(cfg, m, w, pFromR)
					if err != nil {
						return nil, err
					}
				}
			}

			out = append(out, next)
			prev = next
		}
		out = append(out, end)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].P > out[j].P })
	return dedupByP(out, cfg.DTOL), nil
}

// radiusToSlowness converts a target bottoming radius into the slowness
// that produces it via the model's own velocity at that radius (spec.md
// §4.5 step 4: "converting the radius target to a slowness increment
// through the Reference Model's power-law interpolation").
func radiusToSlowness(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, prev TauSample, rTarget float64) (float64, error) {
	return m.Slowness(w, rTarget)
}

func dedupByP(s []TauSample, dtol float64) []TauSample {
	out := s[:0:0]
	for _, v := range s {
		if len(out) > 0 && math.Abs(out[len(out)-1].P-v.P) <= dtol {
			continue
		}
		out = append(out, v)
	}
	return out
}
