// Package cumulative implements the Cumulative Integrator of spec.md
// §4.7: per-depth-row τ/X across the full merged ray-parameter grid, with
// named snapshots at the depths Shell Piecing needs.
package cumulative

import (
	"math"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/convert"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/errs"
	"github.com/dpedroso/tautable/layerint"
	"github.com/dpedroso/tautable/slowness"
)

// maxEarthquakeDepthKm is the deepest depth any hypocentre is modeled at
// (the conventional deep-earthquake cutoff of global travel-time tables);
// it anchors the UPPER_MANTLE snapshot of spec.md §4.7.
const maxEarthquakeDepthKm = 700.0

// Table is the Cumulative Integrator's output for one wave type: one row
// per depth sample (surface to centre), each carrying τ[j] and X[j] for
// every merged ray parameter j.
type Table struct {
	Radius          []float64
	LowVelocityZone []bool
	Tau             [][]float64 // [row][j]
	X               [][]float64
	Snapshot        map[string]int
}

// Build walks the resampled model from the surface to the centre,
// accumulating each layer's closed-form contribution for every merged ray
// parameter (spec.md §4.7's invariant X_k[j] = 2·Σ_{layers shallower than
// k} layerX(p[j])). A ray parameter stops accumulating once its own
// bottoming depth is passed; the row simply holds its value at that depth
// for every row beneath it. depthSamples — the Depth Resampler's output
// (spec.md §4.6) — supplies the authoritative bottoming radius for each
// merged ray parameter when one was found there, in preference to this
// layer's own closed-form turning-depth solve; this is what makes the
// integration accurate even inside an LVZ a direct refraction never
// reaches (spec.md §4.7). May be nil/empty, in which case every ray falls
// back to the closed-form solve.
func Build(cfg *config.Config, resampled earthmodel.EarthModel, w earthmodel.WaveType, merged []float64, depthSamples []slowness.DepthSample) (*Table, error) {
	samples := resampled.Samples()
	if len(samples) == 0 {
		return nil, errs.New(errs.BadModelRead, "empty resampled model")
	}
	shells := resampled.Shells()
	xform := resampled.Transform()
	turnRadius := depthTurnRadii(depthSamples)

	n := len(samples)
	j := len(merged)
	tau := make([][]float64, n)
	x := make([][]float64, n)
	lvz := make([]bool, n)
	radius := make([]float64, n)

	cumTau := make([]float64, j)
	cumX := make([]float64, j)
	bottomed := make([]bool, j)

	radius[n-1] = samples[n-1].R
	tau[n-1] = make([]float64, j)
	x[n-1] = make([]float64, j)
	lvz[n-1] = shellAt(shells, samples[n-1].R).HasLowVelocityZone

	for i := n - 1; i > 0; i-- {
		shallow, deep := samples[i], samples[i-1]
		ptop, pbot := shallow.Slowness(w), deep.Slowness(w)
		l := layerint.Layer{ZTop: shallow.ZTilde, ZBot: deep.ZTilde, PTop: ptop, PBot: pbot}

		for k := 0; k < j; k++ {
			if bottomed[k] {
				continue
			}
			p := merged[k]
			if pbot >= p-cfg.DTOL {
				r, err := layerint.Integrate(cfg, l, p)
				if err != nil {
					return nil, err
				}
				cumTau[k] += r.Tau
				cumX[k] += r.X
				continue
			}
			if zTurn, ok := resolveTurningDepth(cfg, xform, turnRadius, k, l, p); ok {
				partial := layerint.Layer{ZTop: l.ZTop, ZBot: zTurn, PTop: ptop, PBot: p}
				r, err := layerint.Integrate(cfg, partial, p)
				if err != nil {
					return nil, err
				}
				cumTau[k] += r.Tau
				cumX[k] += r.X
			}
			bottomed[k] = true
		}

		row := i - 1
		radius[row] = deep.R
		tau[row] = make([]float64, j)
		x[row] = make([]float64, j)
		for k := 0; k < j; k++ {
			tau[row][k] = 2 * cumTau[k]
			x[row][k] = 2 * cumX[k]
		}
		lvz[row] = shellAt(shells, deep.R).HasLowVelocityZone
	}

	t := &Table{Radius: radius, LowVelocityZone: lvz, Tau: tau, X: x}
	t.Snapshot = buildSnapshots(resampled, w, radius)
	return t, nil
}

// depthTurnRadii collapses the Depth Resampler's output to one radius per
// merged ray-parameter index — the smallest (deepest) radius recorded for
// that index, since a ray that reverses inside an LVZ may be bracketed
// more than once before reaching its true bottoming point.
func depthTurnRadii(depthSamples []slowness.DepthSample) map[int]float64 {
	out := make(map[int]float64, len(depthSamples))
	for _, d := range depthSamples {
		if r, ok := out[d.MergedIndex]; !ok || d.R < r {
			out[d.MergedIndex] = d.R
		}
	}
	return out
}

// resolveTurningDepth prefers the Depth Resampler's root-found radius for
// ray-parameter index k, converted to flattened depth, when it falls
// within this layer's span; otherwise it falls back to the layer's own
// closed-form turning-depth solve.
func resolveTurningDepth(cfg *config.Config, xform convert.Transform, turnRadius map[int]float64, k int, l layerint.Layer, p float64) (float64, bool) {
	if r, ok := turnRadius[k]; ok {
		zTurn := xform.FlatZ(r)
		if zTurn >= l.ZTop-cfg.DTOL && zTurn <= l.ZBot+cfg.DTOL {
			return zTurn, true
		}
	}
	return layerint.TurningDepth(cfg, l, p)
}

func shellAt(shells []earthmodel.ModelShell, r float64) earthmodel.ModelShell {
	for _, sh := range shells {
		if r >= sh.RBot-1e-9 && r <= sh.RTop+1e-9 {
			return sh
		}
	}
	return earthmodel.ModelShell{}
}

// buildSnapshots locates the UPPER_MANTLE, CORE_MANTLE_BOUNDARY,
// INNER_CORE_BOUNDARY, and CENTER rows by name (spec.md §4.7). For S, the
// UPPER_MANTLE snapshot is not the max-earthquake-depth row itself but the
// shallowest row at or below it whose S slowness first falls below the P
// slowness at that depth, letting P-to-S conversions bottom deeper than
// any P ray (spec.md §4.7 final paragraph).
func buildSnapshots(m earthmodel.EarthModel, w earthmodel.WaveType, radius []float64) map[string]int {
	out := map[string]int{}
	surfaceR := radius[len(radius)-1]

	rowAt := func(r float64) int {
		best, bestDist := 0, math.Inf(1)
		for i, rr := range radius {
			d := math.Abs(rr - r)
			if d < bestDist {
				bestDist, best = d, i
			}
		}
		return best
	}

	eqR := surfaceR - maxEarthquakeDepthKm
	if w == earthmodel.P {
		out["UPPER_MANTLE"] = rowAt(eqR)
	} else {
		pAtEq, err := m.Slowness(earthmodel.P, eqR)
		row := rowAt(eqR)
		if err == nil {
			for i := len(radius) - 1; i >= 0; i-- {
				if radius[i] > eqR+1e-9 {
					continue
				}
				sv, serr := m.Slowness(earthmodel.S, radius[i])
				if serr == nil && sv < pAtEq {
					row = i
					break
				}
			}
		}
		out["UPPER_MANTLE"] = row
	}

	for _, sh := range m.Shells() {
		switch sh.Name {
		case config.CoreMantleBoundary:
			out["CORE_MANTLE_BOUNDARY"] = rowAt(sh.RTop)
		case config.InnerCoreBoundary:
			out["INNER_CORE_BOUNDARY"] = rowAt(sh.RTop)
		}
	}
	out["CENTER"] = rowAt(0)
	return out
}
