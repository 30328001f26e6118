// Package slowness implements the Slowness Sampler, Slowness Merger, and
// Depth Resampler of spec.md §4.5-§4.6.
package slowness

import (
	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/errs"
	"github.com/dpedroso/tautable/layerint"
)

// TauSample is one accepted (r, p, X) slowness-sampler row (spec.md §4.5),
// Tau carried alongside for the stages downstream that need it directly.
type TauSample struct {
	R   float64
	P   float64
	Tau float64
	X   float64
}

// integrateColumn integrates τ and X for wave type w at ray parameter p
// from the surface down to the ray's bottoming radius, walking the model's
// samples from the surface inward one layer at a time. It returns the
// bottoming (turning) radius alongside the accumulated τ, X.
func integrateColumn(cfg *config.Config, m earthmodel.EarthModel, w earthmodel.WaveType, p float64) (tau, x, rTurn float64, err error) {
	samples := m.Samples()
	if len(samples) == 0 {
		return 0, 0, 0, errs.New(errs.BadModelRead, "empty model")
	}
	rTurn = samples[len(samples)-1].R

	for i := len(samples) - 1; i > 0; i-- {
		shallow, deep := samples[i], samples[i-1]
		ptop, pbot := shallow.Slowness(w), deep.Slowness(w)
		l := layerint.Layer{ZTop: shallow.ZTilde, ZBot: deep.ZTilde, PTop: ptop, PBot: pbot}

		if pbot >= p-cfg.DTOL {
			// Ray fully traverses this layer without turning.
			r, ierr := layerint.Integrate(cfg, l, p)
			if ierr != nil {
				return 0, 0, 0, ierr
			}
			tau += r.Tau
			x += r.X
			rTurn = deep.R
			continue
		}

		if zTurn, ok := layerint.TurningDepth(cfg, l, p); ok {
			partial := layerint.Layer{ZTop: l.ZTop, ZBot: zTurn, PTop: ptop, PBot: p}
			r, ierr := layerint.Integrate(cfg, partial, p)
			if ierr != nil {
				return 0, 0, 0, ierr
			}
			tau += r.Tau
			x += r.X
			rTurn = m.Transform().RealZ(zTurn)
			return tau, x, rTurn, nil
		}

		// p sits at or above ptop: the ray already turned in a
		// shallower layer (or grazes this one exactly); stop here.
		break
	}
	return tau, x, rTurn, nil
}
