package earthmodel

import (
	"github.com/cpmech/gosl/utl"

	"github.com/dpedroso/tautable/config"
)

// NewResampledModel builds the Resampled Model of spec.md §4.4: a second
// pass with samples at least every cfg.ResampleRadius km, preserving
// every original discontinuity and both endpoints of every
// non-discontinuity shell. Velocities at inserted samples come from the
// Reference Model's shell interpolant; critical slownesses are
// recomputed from the denser sampling.
func NewResampledModel(ref *Model, cfg *config.Config) (*Model, error) {
	var resampled []ModelSample
	var shellBounds []int // sample index of each shell's top, in `resampled`

	refSamples := ref.samples
	for _, sh := range ref.shells {
		startIdx := len(resampled)
		if sh.IsDiscontinuity {
			resampled = append(resampled, refSamples[sh.IBot], refSamples[sh.ITop])
			shellBounds = append(shellBounds, startIdx, startIdx+1)
			continue
		}

		thickness := sh.RTop - sh.RBot
		n := int(thickness/cfg.ResampleRadius) + 1
		if n < 1 {
			n = 1
		}
		radii := utl.LinSpace(sh.RBot, sh.RTop, n+1)
		for _, r := range radii {
			vp := ref.interpFor(P)[shellIdxFor(ref, sh)].eval(r)
			vs := ref.interpFor(S)[shellIdxFor(ref, sh)].eval(r)
			s := ModelSample{R: r, Vp: vp, Vs: vs}
			s.ZTilde = ref.xform.FlatZ(r)
			s.Pp = ref.xform.FlatP(vp, r)
			s.Ps = ref.xform.FlatP(vs, r)
			resampled = append(resampled, s)
		}
		shellBounds = append(shellBounds, startIdx, len(resampled)-1)
	}

	shells := make([]ModelShell, len(ref.shells))
	copy(shells, ref.shells)
	for i := range shells {
		shells[i].IBot = shellBounds[2*i]
		shells[i].ITop = shellBounds[2*i+1]
	}

	interpP := make([]shellInterp, len(shells))
	interpS := make([]shellInterp, len(shells))
	for i, sh := range shells {
		interpP[i] = buildShellInterp(resampled, sh, P)
		interpS[i] = buildShellInterp(resampled, sh, S)
	}

	markLowVelocityZones(shells, resampled, P)
	markLowVelocityZones(shells, resampled, S)

	critP := SortAndDedup(collectCriticalSlownesses(shells, resampled, P), cfg.DTOL)
	critS := SortAndDedup(collectCriticalSlownesses(shells, resampled, S), cfg.DTOL)

	return &Model{
		kind:      KindResampled,
		xform:     ref.xform,
		samples:   resampled,
		shells:    shells,
		criticalP: critP,
		criticalS: critS,
		interpP:   interpP,
		interpS:   interpS,
	}, nil
}

// shellIdxFor returns the index of sh within ref.shells by identity of
// its sample-index bounds (shells carry no back-pointer to their owning
// model, so callers that already have both the model and one of its
// shells re-derive the index this way).
func shellIdxFor(ref *Model, sh ModelShell) int {
	for i, s := range ref.shells {
		if s.IBot == sh.IBot && s.ITop == sh.ITop {
			return i
		}
	}
	return 0
}
