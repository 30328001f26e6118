package branch

import (
	"math"
	"strings"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/cumulative"
	"github.com/dpedroso/tautable/decimate"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/errs"
	"github.com/dpedroso/tautable/shellpieces"
	"github.com/dpedroso/tautable/splinebasis"
)

// BranchData is one fully built, decimated branch (spec.md §4.10-§4.11):
// its phase code, governing wave type, ray-parameter/τ/X samples, the
// caustic flag, and the branch's 5×N spline basis.
type BranchData struct {
	Code       string
	Wave       earthmodel.WaveType
	P, Tau, X  []float64
	HasCaustic bool
	Basis      [][]float64
}

// Build synthesizes, for one recognised phase code, the ordered list of
// sub-branches spec.md §4.10 and §6 call for. A Split code (bare P or S)
// walks its contributing end shells top-down: the mantle-only rays become
// the direct branch, the rays additionally crossing the outer core become
// its K-named sub-branch, and the rays reaching the inner core become its
// KIK-named sub-branch, each built only from the merged ray parameters
// that actually reach that far (shellpieces.Pieces already carries a zero
// partial for any shell a ray never touches). Every other code already
// names a single specific traversal and keeps producing one BranchData, as
// before.
func Build(cfg *config.Config, pieces *shellpieces.Pieces, table *cumulative.Table, merged []float64, code string) ([]*BranchData, error) {
	spec, ok := Lookup(code)
	if !ok {
		return nil, errs.New(errs.BadPhaseList, "unrecognised phase code %q", code)
	}

	if !spec.Split {
		b, err := buildOne(cfg, pieces, table, merged, spec, code, spec.M, spec.O, spec.I, identityIndex(len(merged)))
		if err != nil {
			return nil, err
		}
		return []*BranchData{b}, nil
	}

	mantle, outer, inner := classifyDomains(pieces, cfg.DTOL)
	subBranches := []struct {
		idx     []int
		m, o, i int
		suffix  string
	}{
		{mantle, 1, 0, 0, ""},
		{outer, 1, 1, 0, "K"},
		{inner, 1, 1, 1, "IK"},
	}

	var out []*BranchData
	for _, sb := range subBranches {
		if len(sb.idx) < 2 {
			continue
		}
		name := subBranchName(spec.Wave, sb.suffix)
		b, err := buildOne(cfg, pieces, table, merged, spec, name, sb.m, sb.o, sb.i, sb.idx)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// buildOne assembles a single BranchData from the merged-grid indices idx,
// weighting the shell partials by (m,o,i) — spec.md §4.10's per-branch
// slowness-integral accumulation, restricted to whichever indices this
// sub-branch's end shells actually contribute.
func buildOne(cfg *config.Config, pieces *shellpieces.Pieces, table *cumulative.Table, merged []float64, spec PhaseSpec, name string, m, o, i int, idx []int) (*BranchData, error) {
	n := len(idx)
	p := make([]float64, n)
	tau := make([]float64, n)
	x := make([]float64, n)
	for k, j := range idx {
		p[k] = merged[j]
		tau[k] = float64(m)*pieces.MantleTau[j] + float64(o)*pieces.OuterCoreTau[j] + float64(i)*pieces.InnerCoreTau[j]
		x[k] = float64(m)*pieces.MantleX[j] + float64(o)*pieces.OuterCoreX[j] + float64(i)*pieces.InnerCoreX[j]
	}

	applyLVZSplice(table, idx, tau, x)

	causticLo, causticHi, hasCaustic := detectCaustic(x)

	var keep decimate.KeepMask
	if spec.UpGoing {
		keep = decimate.Fast(p, tau, x[0], x[len(x)-1], cfg.TargetUpgoingSpacing)
	} else {
		f := decimationFactor(spec)
		target := f * maxAbsDelta(x)
		keep = decimate.Slow(x, target)
	}
	if hasCaustic {
		keep[causticLo] = true
		keep[causticHi] = true
	}

	dp, dTau, dX := applyMask(p, tau, x, keep)

	basis, err := splinebasis.Build(dp, dTau)
	if err != nil {
		return nil, err
	}

	return &BranchData{
		Code:       buildSubBranchName(name),
		Wave:       spec.Wave,
		P:          dp,
		Tau:        dTau,
		X:          dX,
		HasCaustic: hasCaustic,
		Basis:      basis,
	}, nil
}

// BuildUpGoingStub synthesizes the per-wave-type up-going branch stub of
// spec.md §6: the mantle partial decimated against shellpieces.Pieces'
// proxy range profile with the minimum-spacing Fast decimator (spec.md
// §4.8-§4.9), the seed curve the pP/sP/pS/sS depth phases are spliced onto.
func BuildUpGoingStub(cfg *config.Config, pieces *shellpieces.Pieces, merged []float64, w earthmodel.WaveType) (*BranchData, error) {
	n := len(merged)
	if n == 0 || len(pieces.ProxyX) != n {
		return nil, errs.New(errs.BadModelRead, "up-going stub: merged grid and proxy profile size mismatch")
	}

	tau := append([]float64(nil), pieces.MantleTau...)
	x := pieces.ProxyX

	keep := decimate.Fast(merged, tau, x[0], x[n-1], cfg.TargetUpgoingSpacing)
	p, dTau, dX := applyMask(merged, tau, x, keep)

	basis, err := splinebasis.Build(p, dTau)
	if err != nil {
		return nil, err
	}

	name := "P"
	if w == earthmodel.S {
		name = "S"
	}
	return &BranchData{Code: name + "_upgoing", Wave: w, P: p, Tau: dTau, X: dX, Basis: basis}, nil
}

// classifyDomains buckets each merged ray-parameter index by the deepest
// end shell its partial actually reaches: shellpieces.Build leaves a shell
// partial at zero for any ray that never gets that far, so a nonzero
// OuterCoreX/InnerCoreX entry is exactly the "this ray contributes to that
// shell" signal spec.md §4.10's top-down shell walk is looking for.
func classifyDomains(pieces *shellpieces.Pieces, eps float64) (mantle, outer, inner []int) {
	n := len(pieces.MantleTau)
	for j := 0; j < n; j++ {
		reachesInner := math.Abs(pieces.InnerCoreX[j]) > eps
		reachesOuter := math.Abs(pieces.OuterCoreX[j]) > eps
		switch {
		case reachesInner:
			inner = append(inner, j)
		case reachesOuter:
			outer = append(outer, j)
		default:
			mantle = append(mantle, j)
		}
	}
	return
}

// subBranchName composes the Split sub-branch names: P/PKP/PKIKP for a
// P-governed walk, S/SKS/SKIKS for an S-governed one.
func subBranchName(w earthmodel.WaveType, suffix string) string {
	base := "P"
	if w == earthmodel.S {
		base = "S"
	}
	switch suffix {
	case "K":
		return base + "K" + base
	case "IK":
		return base + "KIK" + base
	default:
		return base
	}
}

func identityIndex(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// applyLVZSplice implements spec.md §4.10's sub-branch low-velocity-zone
// continuation: if the branch begins just under an LVZ, the naive partial
// recorded at the zone's lower boundary is replaced by the cumulative row
// one step inside the zone, so the shallow end of the branch does not
// silently skip the zone's extra delay (spec.md §8 scenario S4).
func applyLVZSplice(table *cumulative.Table, idx []int, tau, x []float64) {
	if table == nil || len(idx) == 0 {
		return
	}
	lvz := table.LowVelocityZone
	boundary := -1
	for r := len(lvz) - 1; r > 0; r-- {
		if lvz[r] && !lvz[r-1] {
			boundary = r
			break
		}
	}
	if boundary <= 0 || boundary >= len(table.Tau) {
		return
	}
	col := idx[0]
	tau[0] += table.Tau[boundary][col] - table.Tau[boundary-1][col]
	x[0] += table.X[boundary][col] - table.X[boundary-1][col]
}

// decimationFactor implements spec.md §4.10's xTarget factor f: 1.5 for a
// reflected phase that traverses the outer core, otherwise
// max(0.75·max(m,o,i), 1) for a refracted phase.
func decimationFactor(spec PhaseSpec) float64 {
	if spec.Reflected && spec.O > 0 {
		return 1.5
	}
	maxCount := spec.M
	if spec.O > maxCount {
		maxCount = spec.O
	}
	if spec.I > maxCount {
		maxCount = spec.I
	}
	f := 0.75 * float64(maxCount)
	if f < 1 {
		f = 1
	}
	return f
}

func maxAbsDelta(x []float64) float64 {
	var m float64
	for i := 1; i < len(x); i++ {
		if d := math.Abs(x[i] - x[i-1]); d > m {
			m = d
		}
	}
	return m
}

// detectCaustic scans x for an internal sign change of the first
// difference (spec.md §4.10's "Caustic handling within a sub-branch").
func detectCaustic(x []float64) (lo, hi int, found bool) {
	for i := 1; i < len(x)-1; i++ {
		d1 := x[i] - x[i-1]
		d2 := x[i+1] - x[i]
		if d1 != 0 && d2 != 0 && (d1 > 0) != (d2 > 0) {
			return i - 1, i + 1, true
		}
	}
	return 0, 0, false
}

func applyMask(p, tau, x []float64, keep decimate.KeepMask) (outP, outTau, outX []float64) {
	for i, k := range keep {
		if k {
			outP = append(outP, p[i])
			outTau = append(outTau, tau[i])
			outX = append(outX, x[i])
		}
	}
	return
}

// buildSubBranchName applies spec.md §4.10's sub-branch naming rewrites.
func buildSubBranchName(code string) string {
	name := code
	for _, old := range []string{"KSab", "S'ab"} {
		if strings.Contains(name, old) {
			name = strings.Replace(name, old, old[:len(old)-2]+"ac", 1)
		}
	}
	return name
}
