package branch

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/cumulative"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/shellpieces"
)

// syntheticPieces builds three contiguous merged-index bands — mantle-only,
// outer-core-reaching, inner-core-reaching — so Build's domain classifier
// has something realistic to split on.
func syntheticPieces(n int) *shellpieces.Pieces {
	p := &shellpieces.Pieces{
		MantleTau:    make([]float64, n),
		MantleX:      make([]float64, n),
		OuterCoreTau: make([]float64, n),
		OuterCoreX:   make([]float64, n),
		InnerCoreTau: make([]float64, n),
		InnerCoreX:   make([]float64, n),
		ProxyX:       make([]float64, n),
	}
	oStart, iStart := n/3, 2*n/3
	for j := 0; j < n; j++ {
		frac := float64(j) / float64(n-1)
		p.MantleTau[j] = 10 * (1 - frac)
		p.MantleX[j] = 90 * frac
		p.ProxyX[j] = 100 * frac
		if j >= oStart {
			p.OuterCoreTau[j] = 2 * (1 - frac)
			p.OuterCoreX[j] = 20 * frac
		}
		if j >= iStart {
			p.InnerCoreTau[j] = 0.5 * (1 - frac)
			p.InnerCoreX[j] = 5 * frac
		}
	}
	return p
}

func syntheticMerged(n int) []float64 {
	merged := make([]float64, n)
	for i := range merged {
		merged[i] = 0.6 - float64(i)*0.01
	}
	return merged
}

func Test_branch01(tst *testing.T) {

	chk.PrintTitle("branch01. unrecognised phase code is rejected")

	cfg := config.Default()
	pieces := syntheticPieces(20)
	merged := syntheticMerged(20)

	if _, err := Build(cfg, pieces, nil, merged, "XYZ"); err == nil {
		tst.Fatalf("expected an error for an unrecognised phase code")
	}
}

func Test_branch02(tst *testing.T) {

	chk.PrintTitle("branch02. direct P phase code splits into P, PKP, PKIKP sub-branches")

	cfg := config.Default()
	pieces := syntheticPieces(60)
	merged := syntheticMerged(60)

	branches, err := Build(cfg, pieces, nil, merged, "P")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(branches) != 3 {
		tst.Fatalf("expected 3 sub-branches (P, PKP, PKIKP), got %d", len(branches))
	}

	wantCodes := []string{"P", "PKP", "PKIKP"}
	for i, b := range branches {
		io.Pforan("branch %s: %d samples, caustic=%v\n", b.Code, len(b.P), b.HasCaustic)
		if b.Code != wantCodes[i] {
			tst.Fatalf("expected sub-branch %d to be named %q, got %q", i, wantCodes[i], b.Code)
		}
		if len(b.P) < 2 {
			tst.Fatalf("%s: expected at least two decimated samples", b.Code)
		}
		for k := 1; k < len(b.P); k++ {
			if b.P[k] >= b.P[k-1] {
				tst.Fatalf("%s: ray parameter must be strictly decreasing: p[%d]=%v p[%d]=%v", b.Code, k, b.P[k], k-1, b.P[k-1])
			}
			if b.Tau[k] < -cfg.TauIntTol {
				tst.Fatalf("%s: tau must stay non-negative: %v", b.Code, b.Tau[k])
			}
		}
		if len(b.Basis) != 5 {
			tst.Fatalf("%s: expected a 5-row spline basis, got %d rows", b.Code, len(b.Basis))
		}
	}
}

func Test_branch03(tst *testing.T) {

	chk.PrintTitle("branch03. ends treeset dedups within tolerance")

	ends := NewEnds(1e-9)
	ends.Insert(0.5)
	ends.Insert(0.5 + 1e-12)
	ends.Insert(0.2)

	vals := ends.Values()
	io.Pforan("ends: %v\n", vals)
	if len(vals) != 2 {
		tst.Fatalf("expected 2 distinct endpoints, got %d", len(vals))
	}
	if vals[0] != 0.2 || vals[1] != 0.5 {
		tst.Fatalf("expected sorted [0.2, 0.5], got %v", vals)
	}
}

func Test_branch04(tst *testing.T) {

	chk.PrintTitle("branch04. a non-split code still produces exactly one branch")

	cfg := config.Default()
	pieces := syntheticPieces(60)
	merged := syntheticMerged(60)

	branches, err := Build(cfg, pieces, nil, merged, "PcP")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(branches) != 1 {
		tst.Fatalf("expected exactly one PcP branch, got %d", len(branches))
	}
	if branches[0].Code != "PcP" {
		tst.Fatalf("expected code PcP, got %q", branches[0].Code)
	}
}

func Test_branch05(tst *testing.T) {

	chk.PrintTitle("branch05. sub-branch LVZ splice changes tau[0] when the table flags an LVZ")

	cfg := config.Default()
	pieces := syntheticPieces(60)
	merged := syntheticMerged(60)

	rows := 4
	tau := make([][]float64, rows)
	x := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		tau[r] = make([]float64, 60)
		x[r] = make([]float64, 60)
		for j := 0; j < 60; j++ {
			tau[r][j] = float64(r)
			x[r][j] = float64(r) * 2
		}
	}
	lvzTable := &cumulative.Table{
		LowVelocityZone: []bool{false, true, false, false},
		Tau:             tau,
		X:               x,
	}

	plain, err := Build(cfg, pieces, nil, merged, "P")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	spliced, err := Build(cfg, pieces, lvzTable, merged, "P")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	io.Pforan("plain P tau[0]=%v spliced P tau[0]=%v\n", plain[0].Tau[0], spliced[0].Tau[0])
	if plain[0].P[0] != spliced[0].P[0] {
		tst.Fatalf("splice must not change which ray parameter is kept at index 0")
	}
	if plain[0].Tau[0] == spliced[0].Tau[0] {
		tst.Fatalf("expected the LVZ splice to change the branch's tau[0]")
	}
}

func Test_branch06(tst *testing.T) {

	chk.PrintTitle("branch06. an up-going depth phase builds one decimated branch")

	cfg := config.Default()
	pieces := syntheticPieces(60)
	merged := syntheticMerged(60)

	branches, err := Build(cfg, pieces, nil, merged, "pP")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(branches) != 1 {
		tst.Fatalf("expected exactly one pP branch, got %d", len(branches))
	}
	io.Pforan("pP: %d samples\n", len(branches[0].P))
	if len(branches[0].P) < 2 {
		tst.Fatalf("expected at least two decimated samples")
	}
}

func Test_branch07(tst *testing.T) {

	chk.PrintTitle("branch07. the up-going branch stub reads the proxy range profile")

	cfg := config.Default()
	pieces := syntheticPieces(60)
	merged := syntheticMerged(60)

	stub, err := BuildUpGoingStub(cfg, pieces, merged, earthmodel.P)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	io.Pforan("stub %s: %d samples\n", stub.Code, len(stub.P))
	if len(stub.P) < 2 {
		tst.Fatalf("expected at least two decimated samples")
	}
}
