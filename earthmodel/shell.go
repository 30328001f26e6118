package earthmodel

import (
	"math"

	"github.com/dpedroso/tautable/config"
)

// ModelShell is a radial interval [RBot, RTop] of the Earth model
// (spec.md §3). A zero-thickness shell (RBot == RTop) marks a
// discontinuity.
type ModelShell struct {
	RBot, RTop float64
	IBot, ITop int // sample indices, ascending radius
	IsDiscontinuity    bool
	HasLowVelocityZone bool
	Name config.ShellName

	// PCode/SCode are the temporary phase-code fragments used to
	// synthesize composite branch names (spec.md §3, §4.10) once this
	// shell is visited by a turning or reflected ray.
	PCode, SCode string

	// TargetStep is the shell's target range-sampling step ΔX (km).
	TargetStep float64
}

// boundaryTargets pairs a canonical shell name with the nominal
// dimensional radius (km) at which that boundary is expected, used by
// boundary refinement to snap the nearest actual shell top to a name.
// Defaults correspond to a PREM/AK135-like Earth. There is no distance
// tolerance: every target names whichever shell top is nearest, however
// far, and a later target that lands on the same shell replaces the name.
type boundaryTargets struct {
	name   config.ShellName
	radius float64
}

func defaultBoundaryTargets(surfaceRadius float64) []boundaryTargets {
	return []boundaryTargets{
		{config.InnerCoreBoundary, 1221.5},
		{config.CoreMantleBoundary, 3480.0},
		{config.UpperMantle, surfaceRadius - 660.0},
		{config.MohoDiscontinuity, surfaceRadius - 35.0},
	}
}

// buildShells walks samples in ascending radius and splits them into
// shells at every discontinuity (two successive samples at the same
// radius), per spec.md §4.3.
func buildShells(samples []ModelSample, cfg *config.Config) []ModelShell {
	var shells []ModelShell
	start := 0
	for i := 1; i < len(samples); i++ {
		if samples[i].R-samples[i-1].R <= cfg.DTOL {
			// discontinuity: close off the shell ending at i-1, then
			// emit a zero-thickness shell for the jump itself.
			shells = append(shells, ModelShell{
				RBot: samples[start].R, RTop: samples[i-1].R,
				IBot: start, ITop: i - 1,
			})
			shells = append(shells, ModelShell{
				RBot: samples[i-1].R, RTop: samples[i].R,
				IBot: i - 1, ITop: i,
				IsDiscontinuity: true,
			})
			start = i
		}
	}
	shells = append(shells, ModelShell{
		RBot: samples[start].R, RTop: samples[len(samples)-1].R,
		IBot: start, ITop: len(samples) - 1,
	})
	return shells
}

// bridgeVelocities replaces two samples straddling an apparent
// discontinuity by their mean velocity when the relative jump is below
// VelocityTolerance (spec.md §4.3 "Bridge velocity"), killing spurious
// tiny reflections from floating-point noise in the input file.
func bridgeVelocities(samples []ModelSample, cfg *config.Config) {
	for i := 1; i < len(samples); i++ {
		if samples[i].R != samples[i-1].R {
			continue
		}
		for _, pair := range []struct{ get func(*ModelSample) *float64 }{
			{func(m *ModelSample) *float64 { return &m.Vp }},
			{func(m *ModelSample) *float64 { return &m.Vs }},
		} {
			a := pair.get(&samples[i-1])
			b := pair.get(&samples[i])
			if *a == 0 {
				continue
			}
			if math.Abs(*b-*a) <= cfg.VelocityTolerance*(*a) {
				mean := (*a + *b) / 2
				*a, *b = mean, mean
			}
		}
	}
}

// refineBoundaries snaps the canonical named boundaries to the shell top
// nearest each nominal radius (spec.md §4.3 "Boundary refinement").
func refineBoundaries(shells []ModelShell, surfaceRadius float64) {
	targets := defaultBoundaryTargets(surfaceRadius)
	snapped := make([]bool, len(shells))
	for _, t := range targets {
		best := -1
		bestDist := math.Inf(1)
		for i, sh := range shells {
			d := math.Abs(sh.RTop - t.radius)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			shells[best].Name = t.name
			snapped[best] = true
		}
	}
	if len(shells) > 0 {
		shells[len(shells)-1].Name = config.Surface
	}
	if len(shells) > 0 && shells[0].RBot <= 1e-6 && !snapped[0] {
		shells[0].Name = config.InnerCore
	}
}

// assignTargetSteps fills in each shell's target range step from the
// configuration, using the shell's assigned name.
func assignTargetSteps(shells []ModelShell, cfg *config.Config) {
	for i := range shells {
		shells[i].TargetStep = cfg.TargetStep(shells[i].Name)
	}
}

// markLowVelocityZones flags every shell that contains a descent of
// slowness with increasing depth (spec.md §4.3(b)): a local minimum of
// slowness followed by a rise, for the given wave type's slowness
// samples.
func markLowVelocityZones(shells []ModelShell, samples []ModelSample, w WaveType) {
	for si := range shells {
		sh := &shells[si]
		if sh.IsDiscontinuity || sh.ITop <= sh.IBot {
			continue
		}
		for i := sh.IBot + 1; i < sh.ITop; i++ {
			if samples[i].Slowness(w) < samples[i-1].Slowness(w) &&
				samples[i].Slowness(w) < samples[i+1].Slowness(w) {
				sh.HasLowVelocityZone = true
				break
			}
		}
	}
}
