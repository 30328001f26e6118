// Package config holds every tunable constant used by the tau-p table
// builder. Values are gathered into one immutable record that every stage
// receives as a parameter; nothing in this module reads from a package
// level variable.
package config

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/logx"
)

// ShellName enumerates the fixed shell-name vocabulary used for the
// per-shell target range step (spec.md §3 ModelShell, §6
// TARGETTRAVELDISTANCES).
type ShellName int

const (
	InnerCore ShellName = iota
	InnerCoreBoundary
	OuterCore
	CoreMantleBoundary
	LowerMantle
	UpperMantle
	MohoDiscontinuity
	LowerCrust
	ConradDiscontinuity
	UpperCrust
	Surface
)

var shellNames = map[ShellName]string{
	InnerCore:           "INNER_CORE",
	InnerCoreBoundary:   "INNER_CORE_BOUNDARY",
	OuterCore:           "OUTER_CORE",
	CoreMantleBoundary:  "CORE_MANTLE_BOUNDARY",
	LowerMantle:         "LOWER_MANTLE",
	UpperMantle:         "UPPER_MANTLE",
	MohoDiscontinuity:   "MOHO_DISCONTINUITY",
	LowerCrust:          "LOWER_CRUST",
	ConradDiscontinuity: "CONRAD_DISCONTINUITY",
	UpperCrust:          "UPPER_CRUST",
	Surface:             "SURFACE",
}

// String returns the canonical name, e.g. "CORE_MANTLE_BOUNDARY".
func (s ShellName) String() string {
	if n, ok := shellNames[s]; ok {
		return n
	}
	return "UNKNOWN_SHELL"
}

// Config bundles every tunable from spec.md §6. Build one with Default and
// override fields as needed; never mutate a Config that has been handed to
// a running pipeline stage.
type Config struct {
	// ResampleRadius is the maximum radial spacing (km) of the Resampled
	// Model (spec.md §4.4).
	ResampleRadius float64

	// MaxRadiusIncrement (km) is carried in the Config and its parameter
	// round trip only; no stage reads it, and the Resampled Model's
	// spacing is set by ResampleRadius alone.
	MaxRadiusIncrement float64

	// MaxSlownessIncrement is DELPMAX, the soft bound on |Δp| between
	// accepted Slowness Sampler samples (spec.md §4.5).
	MaxSlownessIncrement float64

	// MaxRadiusDelta is DELRMAX, the soft bound on |Δr| between accepted
	// Slowness Sampler samples (spec.md §4.5). Model-dependent; Default
	// picks a value appropriate for an Earth-scale model.
	MaxRadiusDelta float64

	// TargetTravelDistances maps a shell name to its target range step
	// ΔX (km) used by the Slowness Sampler.
	TargetTravelDistances map[ShellName]float64

	// TargetUpgoingSpacing is the minimum range spacing (km) enforced by
	// fast decimation on up-going branches.
	TargetUpgoingSpacing float64

	// RayParamLimitRatio is carried in the Config and its parameter round
	// trip only; no stage reads it. RayParamTolerance only scales the root
	// tolerance of the Slowness Sampler's caustic refinement; neither
	// value marks a ray parameter as grazing.
	RayParamLimitRatio   float64
	RayParamTolerance    float64

	// SampleDistanceTolerance is XTOL, the convergence tolerance (non-
	// dimensional range) of the Slowness Sampler's refinement pass.
	SampleDistanceTolerance float64

	// VelocityTolerance is the relative tolerance used to bridge a
	// near-continuous "discontinuity" in the Reference Model.
	VelocityTolerance float64

	// SlownessOffset is the initial back-off step used when a caustic
	// probe lands exactly on a singular dX/dp at a shell top.
	SlownessOffset float64

	// MaxRootFindingIterations bounds every Pegasus root-finding call.
	MaxRootFindingIterations int

	// MaxCausticBackoffIterations caps the SLOWNESSOFFSET back-off loop
	// (spec.md §9 Open Question: unbounded in the source, bounded here).
	MaxCausticBackoffIterations int

	// DTOL, DMIN, TauIntTol are small numerical guard bands.
	DTOL      float64
	DMIN      float64
	TauIntTol float64

	// Logger receives warnings and debug trace from every stage. Never
	// nil after Default(); callers may swap in logx.Discard{}.
	Logger logx.Logger
}

// Default returns the spec.md §6 default configuration.
func Default() *Config {
	return &Config{
		ResampleRadius:       50,
		MaxRadiusIncrement:   75,
		MaxSlownessIncrement: 0.01,
		MaxRadiusDelta:       100,
		TargetTravelDistances: map[ShellName]float64{
			InnerCore:          300,
			OuterCore:          300,
			LowerMantle:        150,
			UpperMantle:        150,
			LowerCrust:         100,
			UpperCrust:         100,
		},
		TargetUpgoingSpacing:        400,
		RayParamLimitRatio:          0.7,
		RayParamTolerance:           0.03,
		SampleDistanceTolerance:     5e-6,
		VelocityTolerance:           2e-5,
		SlownessOffset:              1e-6,
		MaxRootFindingIterations:    30,
		MaxCausticBackoffIterations: 1000,
		DTOL:                        1e-10,
		DMIN:                        1e-30,
		TauIntTol:                   1e-6,
		Logger:                      logx.Gosl{},
	}
}

// TargetStep returns the configured target range step for a shell name,
// falling back to the upper-mantle step if the shell carries none (e.g. a
// zero-thickness discontinuity shell between two named shells).
func (c *Config) TargetStep(name ShellName) float64 {
	if v, ok := c.TargetTravelDistances[name]; ok {
		return v
	}
	return c.TargetTravelDistances[UpperMantle]
}

// ToPrms exposes the numeric tunables as a gosl/fun named-parameter list,
// the same convention the teacher uses for constitutive-model parameters
// (msolid.Model.GetPrms), so tooling built around fun.Prms can dump or
// diff a configuration without this package depending on that tooling.
func (c *Config) ToPrms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "ResampleRadius", V: c.ResampleRadius},
		&fun.Prm{N: "MaxRadiusIncrement", V: c.MaxRadiusIncrement},
		&fun.Prm{N: "MaxSlownessIncrement", V: c.MaxSlownessIncrement},
		&fun.Prm{N: "MaxRadiusDelta", V: c.MaxRadiusDelta},
		&fun.Prm{N: "TargetUpgoingSpacing", V: c.TargetUpgoingSpacing},
		&fun.Prm{N: "RayParamLimitRatio", V: c.RayParamLimitRatio},
		&fun.Prm{N: "RayParamTolerance", V: c.RayParamTolerance},
		&fun.Prm{N: "SampleDistanceTolerance", V: c.SampleDistanceTolerance},
		&fun.Prm{N: "VelocityTolerance", V: c.VelocityTolerance},
		&fun.Prm{N: "SlownessOffset", V: c.SlownessOffset},
		&fun.Prm{N: "DTOL", V: c.DTOL},
		&fun.Prm{N: "DMIN", V: c.DMIN},
		&fun.Prm{N: "TauIntTol", V: c.TauIntTol},
	}
}

// FromPrms overrides the numeric tunables of c from a fun.Prms list,
// leaving fields absent from prms untouched. Unknown parameter names are
// reported via the logger and otherwise ignored.
func (c *Config) FromPrms(prms fun.Prms) {
	for _, p := range prms {
		switch p.N {
		case "ResampleRadius":
			c.ResampleRadius = p.V
		case "MaxRadiusIncrement":
			c.MaxRadiusIncrement = p.V
		case "MaxSlownessIncrement":
			c.MaxSlownessIncrement = p.V
		case "MaxRadiusDelta":
			c.MaxRadiusDelta = p.V
		case "TargetUpgoingSpacing":
			c.TargetUpgoingSpacing = p.V
		case "RayParamLimitRatio":
			c.RayParamLimitRatio = p.V
		case "RayParamTolerance":
			c.RayParamTolerance = p.V
		case "SampleDistanceTolerance":
			c.SampleDistanceTolerance = p.V
		case "VelocityTolerance":
			c.VelocityTolerance = p.V
		case "SlownessOffset":
			c.SlownessOffset = p.V
		case "DTOL":
			c.DTOL = p.V
		case "DMIN":
			c.DMIN = p.V
		case "TauIntTol":
			c.TauIntTol = p.V
		default:
			if c.Logger != nil {
				c.Logger.Warnf(io.Sf("config: unknown parameter %q ignored", p.N))
			}
		}
	}
}
