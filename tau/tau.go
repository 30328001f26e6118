// Package tau is the top-level orchestrator: it wires the Reference
// Model through the Branch Builder into one Result (spec.md §5).
package tau

import (
	"fmt"
	"sync"

	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/branch"
	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/cumulative"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/errs"
	"github.com/dpedroso/tautable/shellpieces"
	"github.com/dpedroso/tautable/slowness"
)

// Result is the builder's complete output: the ordered list of
// sub-branches built for each successfully recognised phase code (spec.md
// §6, §4.10), the branch-ends treeset, the per-wave-type up-going branch
// stub, and the pieces and depth-resampled rows kept for diagnostics.
type Result struct {
	Branches map[string][]*branch.BranchData
	Ends     *branch.Ends
	Pieces   map[earthmodel.WaveType]*shellpieces.Pieces
	Depth    map[earthmodel.WaveType][]slowness.DepthSample
	UpGoing  map[earthmodel.WaveType]*branch.BranchData
	Merged   []float64
	Skipped  []string
}

// Summary returns a short human-readable digest of the result, the way
// the teacher's drivers print an end-of-run status line.
func (r *Result) Summary() string {
	subBranches := 0
	for _, list := range r.Branches {
		subBranches += len(list)
	}
	return fmt.Sprintf("tau: %d phases (%d sub-branches) built, %d skipped, %d merged ray parameters, %d branch ends",
		len(r.Branches), subBranches, len(r.Skipped), len(r.Merged), len(r.Ends.Values()))
}

// waveStage holds one wave type's Slowness Sampler output and critical
// slownesses — the unit of work the sanctioned P/S parallelism (spec.md
// §5) splits across goroutines, since nothing here depends on the other
// wave type until the Slowness Merger.
type waveStage struct {
	wave    earthmodel.WaveType
	samples []slowness.TauSample
	crit    []earthmodel.CriticalSlowness
	err     error
}

func sampleWaveStage(cfg *config.Config, resampled earthmodel.EarthModel, w earthmodel.WaveType) waveStage {
	samples, err := slowness.SampleWave(cfg, resampled, w)
	return waveStage{wave: w, samples: samples, crit: resampled.CriticalSlownesses(w), err: err}
}

// BuildSequential runs every stage in order on a single goroutine
// (spec.md §5's default scheduling model: no callbacks, no cancellation,
// no suspension points).
func BuildSequential(cfg *config.Config, raw []earthmodel.ModelSample, phaseCodes []string) (*Result, error) {
	resampled, err := buildModel(cfg, raw)
	if err != nil {
		return nil, err
	}
	pStage := sampleWaveStage(cfg, resampled, earthmodel.P)
	if pStage.err != nil {
		return nil, pStage.err
	}
	sStage := sampleWaveStage(cfg, resampled, earthmodel.S)
	if sStage.err != nil {
		return nil, sStage.err
	}
	return finishBuild(cfg, resampled, pStage, sStage, phaseCodes)
}

// BuildParallel runs the P-wave and S-wave Slowness Sampler stages
// concurrently (spec.md §5: "a parallel implementation may compute P-wave
// and S-wave stages ... in parallel, since they are independent until the
// Merger"); every stage from the Merger onward stays sequential.
func BuildParallel(cfg *config.Config, raw []earthmodel.ModelSample, phaseCodes []string) (*Result, error) {
	resampled, err := buildModel(cfg, raw)
	if err != nil {
		return nil, err
	}

	var pStage, sStage waveStage
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); pStage = sampleWaveStage(cfg, resampled, earthmodel.P) }()
	go func() { defer wg.Done(); sStage = sampleWaveStage(cfg, resampled, earthmodel.S) }()
	wg.Wait()
	if pStage.err != nil {
		return nil, pStage.err
	}
	if sStage.err != nil {
		return nil, sStage.err
	}
	return finishBuild(cfg, resampled, pStage, sStage, phaseCodes)
}

func buildModel(cfg *config.Config, raw []earthmodel.ModelSample) (earthmodel.EarthModel, error) {
	ref, err := earthmodel.NewReferenceModel(raw, cfg)
	if err != nil {
		return nil, err
	}
	return earthmodel.NewResampledModel(ref, cfg)
}

// finishBuild runs the Merger onward: strictly sequential regardless of
// how the two waveStages above were computed.
func finishBuild(cfg *config.Config, resampled earthmodel.EarthModel, pStage, sStage waveStage, phaseCodes []string) (*Result, error) {
	merged := slowness.MergeSlownesses(cfg, pStage.crit, sStage.crit, pStage.samples, sStage.samples)
	if len(merged) == 0 {
		return nil, errs.New(errs.BadModelRead, "merged ray-parameter grid is empty")
	}

	depth := map[earthmodel.WaveType][]slowness.DepthSample{}
	pieces := map[earthmodel.WaveType]*shellpieces.Pieces{}
	tables := map[earthmodel.WaveType]*cumulative.Table{}
	upgoing := map[earthmodel.WaveType]*branch.BranchData{}
	for _, w := range []earthmodel.WaveType{earthmodel.P, earthmodel.S} {
		d, err := slowness.DepthResample(cfg, resampled, w, merged)
		if err != nil {
			return nil, err
		}
		depth[w] = d

		table, err := cumulative.Build(cfg, resampled, w, merged, d)
		if err != nil {
			return nil, err
		}
		tables[w] = table

		p, err := shellpieces.Build(table)
		if err != nil {
			return nil, err
		}
		pieces[w] = p

		stub, err := branch.BuildUpGoingStub(cfg, p, merged, w)
		if err != nil {
			return nil, err
		}
		upgoing[w] = stub
	}

	result := &Result{
		Branches: map[string][]*branch.BranchData{},
		Ends:     branch.NewEnds(cfg.DTOL),
		Pieces:   pieces,
		Depth:    depth,
		UpGoing:  upgoing,
		Merged:   merged,
	}

	for _, code := range phaseCodes {
		spec, ok := branch.Lookup(code)
		if !ok {
			cfg.Logger.Warnf(io.Sf("tau: unrecognised phase code %q skipped", code))
			result.Skipped = append(result.Skipped, code)
			continue
		}
		bs, err := branch.Build(cfg, pieces[spec.Wave], tables[spec.Wave], merged, code)
		if err != nil {
			cfg.Logger.Warnf(io.Sf("tau: phase %q failed to build: %v", code, err))
			result.Skipped = append(result.Skipped, code)
			continue
		}
		result.Branches[code] = bs
		for _, b := range bs {
			if len(b.P) > 0 {
				result.Ends.Insert(b.P[0])
				result.Ends.Insert(b.P[len(b.P)-1])
			}
		}
	}

	return result, nil
}
