// Package earthmodel implements the Reference Model and Resampled Model
// of spec.md §3-§4.4: loaded samples, their shells, discontinuities,
// critical slownesses, low-velocity zones, and velocity interpolation.
package earthmodel

import (
	"math"

	"github.com/dpedroso/tautable/convert"
)

// WaveType distinguishes the compressional (P) and shear (S) wave
// families tracked throughout the builder.
type WaveType int

const (
	P WaveType = iota
	S
)

func (w WaveType) String() string {
	if w == P {
		return "P"
	}
	return "S"
}

// RawSample is one ingested Earth-model record, in the dimensional units
// of spec.md §6 (km, km/s). VPV/VPH/VSV/VSH/Eta carry the anisotropic
// polarizations; a purely isotropic model sets VPH=VPV, VSH=VSV, Eta=1.
type RawSample struct {
	Radius float64
	VPV    float64
	VPH    float64
	VSV    float64
	VSH    float64
	Eta    float64
}

// isotropicVelocities collapses an anisotropic sample to its isotropic
// equivalent using the Voigt-like average of spec.md §6. When the sample
// is already isotropic (Eta==1, VPV==VPH, VSV==VSH) this is the identity.
func (r RawSample) isotropicVelocities() (vp, vs float64) {
	eta := r.Eta
	vpv2, vph2, vsv2, vsh2 := r.VPV*r.VPV, r.VPH*r.VPH, r.VSV*r.VSV, r.VSH*r.VSH
	vs2 := (1.0 / 15.0) * ((1-2*eta)*vph2 + vpv2 + 5*vsh2 + (6+4*eta)*vsv2)
	vp2 := (1.0 / 15.0) * ((8+4*eta)*vph2 + 3*vpv2 + (8-8*eta)*vsv2)
	if vs2 < 0 {
		vs2 = 0
	}
	if vp2 < 0 {
		vp2 = 0
	}
	return math.Sqrt(vp2), math.Sqrt(vs2)
}

// ModelSample is one immutable radial sample of the ingested Earth model
// (spec.md §3). Vs is forced equal to Vp in a fluid region (Vs == 0 on
// ingest) to eliminate the physically unobserved PKJKP phase.
type ModelSample struct {
	R      float64
	Vp, Vs float64
	ZTilde float64
	Pp, Ps float64
}

// NewSample builds a ModelSample from a raw ingested record, applying the
// isotropic collapse (when anisotropic) and the fluid mask, and computing
// the flattened depth and slownesses via xform.
func NewSample(raw RawSample, xform convert.Transform) ModelSample {
	vp, vs := raw.isotropicVelocities()
	if vs == 0 {
		vs = vp
	}
	z := xform.FlatZ(raw.Radius)
	return ModelSample{
		R:      raw.Radius,
		Vp:     vp,
		Vs:     vs,
		ZTilde: z,
		Pp:     xform.FlatP(vp, raw.Radius),
		Ps:     xform.FlatP(vs, raw.Radius),
	}
}

// Slowness returns the sample's slowness for the given wave type.
func (m ModelSample) Slowness(w WaveType) float64 {
	if w == P {
		return m.Pp
	}
	return m.Ps
}

// Velocity returns the sample's velocity for the given wave type.
func (m ModelSample) Velocity(w WaveType) float64 {
	if w == P {
		return m.Vp
	}
	return m.Vs
}
