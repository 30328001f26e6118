package tau

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/convert"
	"github.com/dpedroso/tautable/earthmodel"
)

func ak135Like(tst *testing.T) []earthmodel.ModelSample {
	xform := convert.New(6371.0, 5.8)
	raws := []earthmodel.RawSample{
		{Radius: 0, VPV: 11.3, VPH: 11.3, VSV: 3.6, VSH: 3.6, Eta: 1},
		{Radius: 1221.5, VPV: 11.1, VPH: 11.1, VSV: 3.5, VSH: 3.5, Eta: 1},
		{Radius: 1221.5, VPV: 10.3, VPH: 10.3, VSV: 0, VSH: 0, Eta: 1},
		{Radius: 2000.0, VPV: 9.5, VPH: 9.5, VSV: 0, VSH: 0, Eta: 1},
		{Radius: 3480.0, VPV: 8.0, VPH: 8.0, VSV: 0, VSH: 0, Eta: 1},
		{Radius: 3480.0, VPV: 13.7, VPH: 13.7, VSV: 7.2, VSH: 7.2, Eta: 1},
		{Radius: 4500.0, VPV: 12.0, VPH: 12.0, VSV: 6.5, VSH: 6.5, Eta: 1},
		{Radius: 5701.0, VPV: 10.8, VPH: 10.8, VSV: 6.0, VSH: 6.0, Eta: 1},
		{Radius: 6371.0, VPV: 8.1, VPH: 8.1, VSV: 4.5, VSH: 4.5, Eta: 1},
	}
	samples := make([]earthmodel.ModelSample, len(raws))
	for i, r := range raws {
		samples[i] = earthmodel.NewSample(r, xform)
	}
	return samples
}

func Test_tau01(tst *testing.T) {

	chk.PrintTitle("tau01. sequential build produces P and PKP branches with shared ends")

	cfg := config.Default()
	raw := ak135Like(tst)

	result, err := BuildSequential(cfg, raw, []string{"P", "PKP"})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	io.Pforan(result.Summary() + "\n")

	if len(result.Skipped) != 0 {
		tst.Fatalf("expected no skipped phases, got %v", result.Skipped)
	}
	pBranches, ok := result.Branches["P"]
	if !ok || len(pBranches) == 0 {
		tst.Fatalf("expected a P branch")
	}
	if len(pBranches) != 3 {
		tst.Fatalf("expected P to split into P, PKP, PKIKP sub-branches, got %d", len(pBranches))
	}
	if _, ok := result.Branches["PKP"]; !ok {
		tst.Fatalf("expected a PKP branch")
	}

	for code, list := range result.Branches {
		for _, b := range list {
			if len(b.P) == 0 {
				continue
			}
			if !result.Ends.Contains(b.P[0]) || !result.Ends.Contains(b.P[len(b.P)-1]) {
				tst.Fatalf("%s/%s's endpoints must appear in the branch-ends treeset", code, b.Code)
			}
			io.Pforan("%s/%s: %d samples\n", code, b.Code, len(b.P))
		}
	}

	if result.UpGoing[earthmodel.P] == nil || len(result.UpGoing[earthmodel.P].P) == 0 {
		tst.Fatalf("expected a non-empty P up-going branch stub")
	}
}

func Test_tau02(tst *testing.T) {

	chk.PrintTitle("tau02. parallel and sequential builds agree on branch count")

	cfg := config.Default()
	raw := ak135Like(tst)

	seq, err := BuildSequential(cfg, raw, []string{"P", "S"})
	if err != nil {
		tst.Fatalf("unexpected error (sequential): %v", err)
	}
	par, err := BuildParallel(cfg, raw, []string{"P", "S"})
	if err != nil {
		tst.Fatalf("unexpected error (parallel): %v", err)
	}
	if len(seq.Branches) != len(par.Branches) {
		tst.Fatalf("sequential and parallel builds should agree on branch count: %d vs %d", len(seq.Branches), len(par.Branches))
	}
}

func Test_tau03(tst *testing.T) {

	chk.PrintTitle("tau03. unknown phase code is skipped, not fatal")

	cfg := config.Default()
	raw := ak135Like(tst)

	result, err := BuildSequential(cfg, raw, []string{"P", "ZZZZZ"})
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "ZZZZZ" {
		tst.Fatalf("expected ZZZZZ to be skipped, got %v", result.Skipped)
	}
}
