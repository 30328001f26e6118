package decimate

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_decimate01(tst *testing.T) {

	chk.PrintTitle("decimate01. slow decimation keeps endpoints and roughly every third sample")

	x := make([]float64, 100)
	for i := range x {
		x[i] = float64(i)
	}
	keep := Slow(x, 3.0)

	if !keep[0] || !keep[len(keep)-1] {
		tst.Fatalf("endpoints must always survive")
	}
	n := keptCount(keep)
	io.Pforan("kept %d of %d samples\n", n, len(x))
	if n < 25 || n > 45 {
		tst.Fatalf("expected roughly every third sample kept (~33), got %d", n)
	}
}

func Test_decimate02(tst *testing.T) {

	chk.PrintTitle("decimate02. slow decimation variance is no worse than a uniform hand pattern")

	x := make([]float64, 100)
	for i := range x {
		x[i] = float64(i)
	}
	keep := Slow(x, 3.0)
	gotVar := doVar(x, keep, 3.0)

	hand := make(KeepMask, len(x))
	for i := 0; i < len(x); i += 3 {
		hand[i] = true
	}
	hand[len(hand)-1] = true
	handVar := doVar(x, hand, 3.0)

	io.Pforan("got variance=%v hand-pattern variance=%v\n", gotVar, handVar)
	if gotVar > handVar+1e-9 {
		tst.Fatalf("slow decimation variance %v should not exceed a naive uniform pattern %v", gotVar, handVar)
	}
}

func Test_decimate03(tst *testing.T) {

	chk.PrintTitle("decimate03. fast decimation with a minimum-spacing target keeps both endpoints")

	n := 50
	p := make([]float64, n)
	tau := make([]float64, n)
	for i := 0; i < n; i++ {
		p[i] = float64(n-i) * 0.01
		tau[i] = -float64(i) * 2.0 // dtau/dp = 200 => estimated X = -200 at interior samples
	}
	keep := Fast(p, tau, 0, 2*float64(n-1), 5.0)

	if !keep[0] || !keep[n-1] {
		tst.Fatalf("endpoints must always survive")
	}
	io.Pforan("kept %d of %d samples\n", keptCount(keep), n)
}

func Test_decimate04(tst *testing.T) {

	chk.PrintTitle("decimate04. union keep-mask is the logical OR of its inputs")

	a := KeepMask{true, false, false, true}
	b := KeepMask{false, true, false, false}
	u := Union(append(KeepMask(nil), a...), b)
	want := KeepMask{true, true, false, true}
	for i := range want {
		if u[i] != want[i] {
			tst.Fatalf("union mismatch at %d: got %v want %v", i, u[i], want[i])
		}
	}
}
