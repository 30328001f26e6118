package slowness

import (
	"math"
	"sort"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/earthmodel"
)

// SampleWave runs the Slowness Sampler across every critical interval of
// wave type w and concatenates the result (spec.md §4.5), deduping the
// shared boundary sample between adjacent intervals.
func SampleWave(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType) ([]TauSample, error) {
	crit := m.CriticalSlownesses(w)
	if len(crit) < 2 {
		return nil, nil
	}
	shells := m.Shells()

	var all []TauSample
	for i := 0; i < len(crit)-1; i++ {
		pBot, pTop := crit[i].Slowness, crit[i+1].Slowness
		if pBot == pTop {
			continue
		}
		targetDX := shells[0].TargetStep
		if idx := crit[i+1].ShellIndexP; idx >= 0 && idx < len(shells) {
			targetDX = shells[idx].TargetStep
		}
		samples, err := SampleInterval(cfg, m, w, pTop, pBot, targetDX)
		if err != nil {
			return nil, err
		}
		if len(all) > 0 && len(samples) > 0 && math.Abs(all[len(all)-1].P-samples[0].P) <= cfg.DTOL {
			samples = samples[1:]
		}
		all = append(all, samples...)
	}
	return all, nil
}

// MergeSlownesses implements the Slowness Merger (spec.md §4.6): for each
// interval between consecutive critical slownesses of either wave, keep
// the entire subsequence of whichever wave produced more samples there.
// The result is sorted descending and deduplicated, the common
// ray-parameter grid handed to the Depth Resampler.
func MergeSlownesses(cfg *config.Config, critP, critS []earthmodel.CriticalSlowness, pSamples, sSamples []TauSample) []float64 {
	var boundary []float64
	for _, c := range critP {
		boundary = append(boundary, c.Slowness)
	}
	for _, c := range critS {
		boundary = append(boundary, c.Slowness)
	}
	sort.Float64s(boundary)
	boundary = dedupFloats(boundary, cfg.DTOL)

	var merged []float64
	for i := 0; i < len(boundary)-1; i++ {
		lo, hi := boundary[i], boundary[i+1]
		pIn := inRange(pSamples, lo, hi)
		sIn := inRange(sSamples, lo, hi)
		chosen := pIn
		if len(sIn) > len(pIn) {
			chosen = sIn
		}
		for _, s := range chosen {
			merged = append(merged, s.P)
		}
	}
	merged = append(merged, boundary...)

	sort.Sort(sort.Reverse(sort.Float64Slice(merged)))
	return dedupFloats(merged, cfg.DTOL)
}

func inRange(samples []TauSample, lo, hi float64) []TauSample {
	var out []TauSample
	for _, s := range samples {
		if s.P >= lo-1e-12 && s.P <= hi+1e-12 {
			out = append(out, s)
		}
	}
	return out
}

func dedupFloats(sorted []float64, dtol float64) []float64 {
	out := sorted[:0:0]
	for _, v := range sorted {
		if len(out) > 0 && math.Abs(out[len(out)-1]-v) <= dtol {
			continue
		}
		out = append(out, v)
	}
	return out
}
