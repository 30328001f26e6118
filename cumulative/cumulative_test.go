package cumulative

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/config"
	"github.com/dpedroso/tautable/convert"
	"github.com/dpedroso/tautable/earthmodel"
	"github.com/dpedroso/tautable/slowness"
)

func ak135LikeModel(tst *testing.T, cfg *config.Config) earthmodel.EarthModel {
	xform := convert.New(6371.0, 5.8)
	raws := []earthmodel.RawSample{
		{Radius: 0, VPV: 11.3, VPH: 11.3, VSV: 3.6, VSH: 3.6, Eta: 1},
		{Radius: 1221.5, VPV: 11.1, VPH: 11.1, VSV: 3.5, VSH: 3.5, Eta: 1},
		{Radius: 1221.5, VPV: 10.3, VPH: 10.3, VSV: 0, VSH: 0, Eta: 1}, // ICB, liquid outer core
		{Radius: 3480.0, VPV: 8.0, VPH: 8.0, VSV: 0, VSH: 0, Eta: 1},
		{Radius: 3480.0, VPV: 13.7, VPH: 13.7, VSV: 7.2, VSH: 7.2, Eta: 1}, // CMB
		{Radius: 5000.0, VPV: 10.8, VPH: 10.8, VSV: 6.0, VSH: 6.0, Eta: 1},
		{Radius: 6371.0, VPV: 8.1, VPH: 8.1, VSV: 4.5, VSH: 4.5, Eta: 1},
	}
	samples := make([]earthmodel.ModelSample, len(raws))
	for i, r := range raws {
		samples[i] = earthmodel.NewSample(r, xform)
	}
	ref, err := earthmodel.NewReferenceModel(samples, cfg)
	if err != nil {
		tst.Fatalf("unexpected error building reference model: %v", err)
	}
	res, err := earthmodel.NewResampledModel(ref, cfg)
	if err != nil {
		tst.Fatalf("unexpected error building resampled model: %v", err)
	}
	return res
}

func Test_cumulative01(tst *testing.T) {

	chk.PrintTitle("cumulative01. cumulative X grows monotonically from surface to centre")

	cfg := config.Default()
	m := ak135LikeModel(tst, cfg)
	p := 0.05

	table, err := Build(cfg, m, earthmodel.P, []float64{p}, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	io.Pforan("built %d rows, snapshots=%v\n", len(table.Radius), table.Snapshot)

	for name, idx := range table.Snapshot {
		if idx < 0 || idx >= len(table.Radius) {
			tst.Fatalf("snapshot %s points outside the table: %d", name, idx)
		}
	}

	prev := -1.0
	for i := len(table.Radius) - 1; i >= 0; i-- {
		if table.X[i][0] < prev-1e-9 {
			tst.Fatalf("cumulative X must not decrease walking from surface to centre: row %d", i)
		}
		prev = table.X[i][0]
	}
}

func Test_cumulative02(tst *testing.T) {

	chk.PrintTitle("cumulative02. center row is the deepest sample")

	cfg := config.Default()
	m := ak135LikeModel(tst, cfg)
	table, err := Build(cfg, m, earthmodel.P, []float64{0.01, 0.05}, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	center, ok := table.Snapshot["CENTER"]
	if !ok {
		tst.Fatalf("expected a CENTER snapshot")
	}
	io.Pforan("center row radius = %v\n", table.Radius[center])
	if table.Radius[center] > 1.0 {
		tst.Fatalf("CENTER snapshot should sit at radius ~0, got %v", table.Radius[center])
	}
}

func Test_cumulative03(tst *testing.T) {

	chk.PrintTitle("cumulative03. depth-resampled turning radii are consulted, not just stashed")

	cfg := config.Default()
	m := ak135LikeModel(tst, cfg)
	merged := []float64{0.01, 0.05}

	depth, err := slowness.DepthResample(cfg, m, earthmodel.P, merged)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(depth) == 0 {
		tst.Fatalf("expected at least one depth-resampled sample")
	}

	withDepth, err := Build(cfg, m, earthmodel.P, merged, depth)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	withoutDepth, err := Build(cfg, m, earthmodel.P, merged, nil)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}

	center := withDepth.Snapshot["CENTER"]
	for j := range merged {
		io.Pforan("j=%d with-depth X=%v without-depth X=%v\n", j, withDepth.X[center][j], withoutDepth.X[center][j])
		chk.Float64(tst, "X agreement", 1e-6, withDepth.X[center][j], withoutDepth.X[center][j])
	}
}
