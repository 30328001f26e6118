// Package shellpieces derives the mantle/outer-core/inner-core additive
// partial integrals from the Cumulative Integrator's output (spec.md
// §4.8), and the per-wave-type proxy range profile used by up-going
// decimation. The result is an immutable record: spec.md §9 explicitly
// prefers this over the source's mutable IntPieces/TauModel pattern, so
// there is no in-place update path here — a fresh Pieces is built whenever
// the cumulative table changes.
package shellpieces

import (
	"math"

	"github.com/dpedroso/tautable/cumulative"
	"github.com/dpedroso/tautable/errs"
)

// Pieces holds the three additive shell partials (spec.md §4.8) and the
// up-going proxy range profile, all indexed by merged ray-parameter index.
type Pieces struct {
	MantleTau, MantleX       []float64
	OuterCoreTau, OuterCoreX []float64
	InnerCoreTau, InnerCoreX []float64
	ProxyX                   []float64
}

// Build derives Pieces from a Cumulative Integrator table. The table must
// carry the CORE_MANTLE_BOUNDARY, INNER_CORE_BOUNDARY and CENTER snapshots;
// UPPER_MANTLE is not read here.
func Build(table *cumulative.Table) (*Pieces, error) {
	cmb, ok := table.Snapshot["CORE_MANTLE_BOUNDARY"]
	if !ok {
		return nil, errs.New(errs.BadModelRead, "cumulative table missing CORE_MANTLE_BOUNDARY snapshot")
	}
	icb, ok := table.Snapshot["INNER_CORE_BOUNDARY"]
	if !ok {
		return nil, errs.New(errs.BadModelRead, "cumulative table missing INNER_CORE_BOUNDARY snapshot")
	}
	center, ok := table.Snapshot["CENTER"]
	if !ok {
		return nil, errs.New(errs.BadModelRead, "cumulative table missing CENTER snapshot")
	}

	n := len(table.Tau[cmb])
	p := &Pieces{
		MantleTau:    append([]float64(nil), table.Tau[cmb]...),
		MantleX:      append([]float64(nil), table.X[cmb]...),
		OuterCoreTau: subtract(table.Tau[icb], table.Tau[cmb]),
		OuterCoreX:   subtract(table.X[icb], table.X[cmb]),
		InnerCoreTau: subtract(table.Tau[center], table.Tau[icb]),
		InnerCoreX:   subtract(table.X[center], table.X[icb]),
		ProxyX:       make([]float64, n),
	}

	for j := 0; j < n; j++ {
		var sum float64
		for i := 1; i < len(table.X); i++ {
			sum += math.Abs(table.X[i][j] - table.X[i-1][j])
		}
		p.ProxyX[j] = sum
	}
	return p, nil
}

func subtract(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}
