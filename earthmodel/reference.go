package earthmodel

import (
	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/convert"
	"github.com/dpedroso/tautable/errs"
)

// Kind distinguishes a Reference Model from a Resampled Model. Both share
// the Model struct and the EarthModel interface (spec.md §9 Design Notes:
// "a single immutable value type with a polymorphism flag... never a base
// class holding mutable state").
type Kind int

const (
	KindReference Kind = iota
	KindResampled
)

// EarthModel is the shared read interface of the Reference Model and the
// Resampled Model: velocity/slowness queries and shell/critical-slowness
// inspection. Everything behind it is immutable after construction.
type EarthModel interface {
	Kind() Kind
	Transform() convert.Transform
	Samples() []ModelSample
	Shells() []ModelShell
	CriticalSlownesses(w WaveType) []CriticalSlowness
	Velocity(w WaveType, r float64) (float64, error)
	Slowness(w WaveType, r float64) (float64, error)
}

// Model implements EarthModel for both the Reference Model and the
// Resampled Model. It is never mutated after New*/resample returns.
type Model struct {
	kind      Kind
	xform     convert.Transform
	samples   []ModelSample
	shells    []ModelShell
	criticalP []CriticalSlowness
	criticalS []CriticalSlowness
	interpP   []shellInterp // parallel to shells
	interpS   []shellInterp
}

var _ EarthModel = (*Model)(nil)

func (m *Model) Kind() Kind                { return m.kind }
func (m *Model) Transform() convert.Transform { return m.xform }

// Samples returns a defensive copy of the model's samples; callers must
// not rely on it aliasing internal storage.
func (m *Model) Samples() []ModelSample {
	out := make([]ModelSample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Shells returns a defensive copy of the model's shells.
func (m *Model) Shells() []ModelShell {
	out := make([]ModelShell, len(m.shells))
	copy(out, m.shells)
	return out
}

// CriticalSlownesses returns a defensive copy of the critical-slowness
// list for the given wave type, already sorted per spec.md §3's total
// order.
func (m *Model) CriticalSlownesses(w WaveType) []CriticalSlowness {
	src := m.criticalP
	if w == S {
		src = m.criticalS
	}
	out := make([]CriticalSlowness, len(src))
	copy(out, src)
	return out
}

// Velocity returns the interpolated velocity (km/s) for wave type w at
// radius r, or a BadModelRead error if r falls outside every shell.
func (m *Model) Velocity(w WaveType, r float64) (float64, error) {
	idx := m.shellIndexAt(r)
	if idx < 0 {
		return 0, errs.New(errs.BadModelRead, "radius %g km is outside the model", r)
	}
	interp := m.interpFor(w)
	return interp[idx].eval(r), nil
}

// Slowness returns the interpolated flattened slowness p for wave type w
// at radius r.
func (m *Model) Slowness(w WaveType, r float64) (float64, error) {
	v, err := m.Velocity(w, r)
	if err != nil {
		return 0, err
	}
	return m.xform.FlatP(v, r), nil
}

func (m *Model) interpFor(w WaveType) []shellInterp {
	if w == P {
		return m.interpP
	}
	return m.interpS
}

// shellIndexAt returns the index of the deepest shell that contains r,
// preferring a non-discontinuity shell when r sits exactly on a boundary
// shared by two shells.
func (m *Model) shellIndexAt(r float64) int {
	for i, sh := range m.shells {
		if r >= sh.RBot-1e-9 && r <= sh.RTop+1e-9 {
			if sh.IsDiscontinuity && i+1 < len(m.shells) {
				continue
			}
			return i
		}
	}
	return -1
}

// NewReferenceModel builds the Reference Model from ingested samples
// (spec.md §3-§4.3). Samples must already be isotropic (via NewSample)
// and sorted by ascending radius; NewReferenceModel validates
// monotonicity itself since it is this module's entry point in place of
// the out-of-scope Earth-model file reader (spec.md §1, SPEC_FULL.md
// SUPPLEMENTED FEATURES).
func NewReferenceModel(samples []ModelSample, cfg *config.Config) (*Model, error) {
	if len(samples) < 2 {
		return nil, errs.New(errs.BadModelFile, "model must have at least two samples")
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].R < samples[i-1].R {
			return nil, errs.New(errs.BadModelFile, "non-monotonic radius at sample %d", i)
		}
	}

	own := make([]ModelSample, len(samples))
	copy(own, samples)
	bridgeVelocities(own, cfg)

	shells := buildShells(own, cfg)
	markLowVelocityZones(shells, own, P)
	markLowVelocityZones(shells, own, S)
	refineBoundaries(shells, own[len(own)-1].R)
	assignTargetSteps(shells, cfg)

	critP := SortAndDedup(collectCriticalSlownesses(shells, own, P), cfg.DTOL)
	critS := SortAndDedup(collectCriticalSlownesses(shells, own, S), cfg.DTOL)

	interpP := make([]shellInterp, len(shells))
	interpS := make([]shellInterp, len(shells))
	for i, sh := range shells {
		interpP[i] = buildShellInterp(own, sh, P)
		interpS[i] = buildShellInterp(own, sh, S)
	}

	xform := convert.New(own[len(own)-1].R, own[len(own)-1].Vs)
	// re-derive every sample's flattened quantities against the
	// surface-anchored transform (NewSample may have been called with a
	// provisional transform by the caller).
	for i := range own {
		own[i].ZTilde = xform.FlatZ(own[i].R)
		own[i].Pp = xform.FlatP(own[i].Vp, own[i].R)
		own[i].Ps = xform.FlatP(own[i].Vs, own[i].R)
	}

	return &Model{
		kind:      KindReference,
		xform:     xform,
		samples:   own,
		shells:    shells,
		criticalP: critP,
		criticalS: critS,
		interpP:   interpP,
		interpS:   interpS,
	}, nil
}

// CloneFloat64s returns a defensive copy of src, used by downstream
// packages that need to hand out a model array without letting a caller
// mutate internal state.
func CloneFloat64s(src []float64) []float64 {
	out := make([]float64, len(src))
	copy(out, src)
	return out
}
