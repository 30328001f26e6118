package slowness

import (
	"math"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/errs"
	"github.com/dpedroso/tautable/rootfind"
)

// DepthSample is one row of the Depth Resampler's output: a radius at
// which wave type w's slowness equals merged[MergedIndex] exactly, within
// the Reference Model (spec.md §4.6).
type DepthSample struct {
	R           float64
	P           float64
	MergedIndex int
}

// DepthResample rebuilds, for wave type w, a list of (r, p, mergedIndex)
// samples whose p values are exactly the merged ray parameters, walking
// the Reference Model's samples shell by shell. Inside a non-discontinuity
// shell the radius solving flatP(interpolate(r), r) = p_target is found by
// Pegasus root-finding bracketed by the two reference radii straddling
// that target; inside a low-velocity zone the reference-index walk may
// reverse while the merged index still decreases monotonically. A
// discontinuity shell contributes the radius of each side whose boundary
// slowness matches a merged slowness.
func DepthResample(cfg *config.Config, ref earthmodel.EarthModel, w earthmodel.WaveType, merged []float64) ([]DepthSample, error) {
	samples := ref.Samples()
	if len(samples) == 0 {
		return nil, errs.New(errs.BadModelRead, "empty reference model")
	}
	shells := ref.Shells()

	var out []DepthSample
	for _, sh := range shells {
		if sh.IsDiscontinuity {
			pBot, pTop := samples[sh.IBot].Slowness(w), samples[sh.ITop].Slowness(w)
			for idx, p := range merged {
				if math.Abs(p-pBot) <= cfg.DTOL {
					out = append(out, DepthSample{R: samples[sh.IBot].R, P: p, MergedIndex: idx})
				}
				if math.Abs(p-pTop) <= cfg.DTOL {
					out = append(out, DepthSample{R: samples[sh.ITop].R, P: p, MergedIndex: idx})
				}
			}
			continue
		}

		for i := sh.ITop; i > sh.IBot; i-- {
			shallow, deep := samples[i], samples[i-1]
			pShallow, pDeep := shallow.Slowness(w), deep.Slowness(w)
			lo, hi := pShallow, pDeep
			if lo > hi {
				lo, hi = hi, lo
			}

			for idx, p := range merged {
				if p < lo-cfg.DTOL || p > hi+cfg.DTOL {
					continue
				}
				if math.Abs(p-pShallow) <= cfg.DTOL {
					out = append(out, DepthSample{R: shallow.R, P: p, MergedIndex: idx})
					continue
				}
				if math.Abs(p-pDeep) <= cfg.DTOL {
					continue // picked up as the next pair's shallow endpoint
				}
				res := rootfind.Solve(func(r float64) float64 {
					v, err := ref.Slowness(w, r)
					if err != nil {
						return math.NaN()
					}
					return v - p
				}, deep.R, shallow.R, cfg.SampleDistanceTolerance, cfg.MaxRootFindingIterations)
				if !res.Converged {
					cfg.Logger.Warnf("slowness: depth resample could not bracket p=%g between r=[%g,%g]", p, deep.R, shallow.R)
					continue
				}
				out = append(out, DepthSample{R: res.Root, P: p, MergedIndex: idx})
			}
		}
		if sh.IBot == 0 {
			deep := samples[sh.IBot]
			pDeep := deep.Slowness(w)
			for idx, p := range merged {
				if math.Abs(p-pDeep) <= cfg.DTOL {
					out = append(out, DepthSample{R: deep.R, P: p, MergedIndex: idx})
				}
			}
		}
	}
	return out, nil
}
