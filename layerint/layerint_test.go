package layerint

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/dpedroso/tautable/config"
)

func Test_layerint01(tst *testing.T) {

	chk.PrintTitle("layerint01. zero-thickness layer")

	cfg := config.Default()
	l := Layer{ZTop: 0.5, ZBot: 0.5, PTop: 0.3, PBot: 0.3}
	r, err := Integrate(cfg, l, 0.1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Float64(tst, "tau", 1e-15, r.Tau, 0)
	chk.Float64(tst, "X", 1e-15, r.X, 0)
}

func Test_layerint02(tst *testing.T) {

	chk.PrintTitle("layerint02. constant-slowness layer")

	cfg := config.Default()
	l := Layer{ZTop: 0.0, ZBot: 0.2, PTop: 0.5, PBot: 0.5}
	p := 0.3
	r, err := Integrate(cfg, l, p)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	root := math.Sqrt(l.PTop*l.PTop - p*p)
	tauWant := 0.2 * root
	xWant := p * 0.2 / root
	io.Pforan("tau = %v (want %v)\n", r.Tau, tauWant)
	io.Pforan("X   = %v (want %v)\n", r.X, xWant)
	chk.Float64(tst, "tau", 1e-12, r.Tau, tauWant)
	chk.Float64(tst, "X", 1e-12, r.X, xWant)
}

func Test_layerint03(tst *testing.T) {

	chk.PrintTitle("layerint03. straight-through ray at centre")

	cfg := config.Default()
	l := Layer{ZTop: 1.0, ZBot: 2.0, PTop: 0.4, PBot: 0.0}
	r, err := Integrate(cfg, l, 0.0)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Float64(tst, "tau", 1e-15, r.Tau, l.PTop)
	chk.Float64(tst, "X", 1e-15, r.X, math.Pi/2)
}

func Test_layerint04(tst *testing.T) {

	chk.PrintTitle("layerint04. general layer: tau is non-negative and X grows as p grows")

	cfg := config.Default()
	l := Layer{ZTop: 0.1, ZBot: 0.4, PTop: 0.50, PBot: 0.65}
	var prev Result
	for i, p := range []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.49} {
		r, err := Integrate(cfg, l, p)
		if err != nil {
			tst.Fatalf("unexpected error at p=%v: %v", p, err)
		}
		io.Pforan("p=%v tau=%v X=%v\n", p, r.Tau, r.X)
		if r.Tau < -cfg.TauIntTol {
			tst.Fatalf("tau negative beyond tolerance at p=%v: %v", p, r.Tau)
		}
		if i > 0 && r.X < prev.X-1e-9 {
			tst.Fatalf("X should grow with p: p=%v X=%v prevX=%v", p, r.X, prev.X)
		}
		prev = r
	}
}

func Test_layerint05(tst *testing.T) {

	chk.PrintTitle("layerint05. derivative short-circuits to zero for degenerate layers")

	cfg := config.Default()
	l := Layer{ZTop: 0.2, ZBot: 0.2, PTop: 0.3, PBot: 0.3}
	d, err := IntegrateDerivative(cfg, l, 0.1)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	chk.Float64(tst, "dXdp", 1e-15, d, 0)
}
