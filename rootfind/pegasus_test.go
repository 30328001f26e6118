package rootfind

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_pegasus01(tst *testing.T) {

	chk.PrintTitle("pegasus01. root of a smooth cubic")

	f := func(x float64) float64 { return x*x*x - 2*x - 5 }
	res := Solve(f, 2, 3, 1e-12, 30)
	if !res.Converged {
		tst.Fatalf("did not converge")
	}
	chk.Float64(tst, "root", 1e-9, res.Root, 2.0945514815423265)
}

func Test_pegasus02(tst *testing.T) {

	chk.PrintTitle("pegasus02. invalid bracket returns NaN sentinel")

	f := func(x float64) float64 { return x*x + 1 }
	res := Solve(f, -1, 1, 1e-9, 30)
	if res.Converged {
		tst.Fatalf("expected non-convergence for a same-sign bracket")
	}
	if !math.IsNaN(res.Root) {
		tst.Fatalf("expected NaN sentinel, got %v", res.Root)
	}
}

func Test_pegasus03(tst *testing.T) {

	chk.PrintTitle("pegasus03. exact root at an endpoint")

	f := func(x float64) float64 { return x - 1 }
	res := Solve(f, 1, 2, 1e-12, 30)
	if !res.Converged || res.Root != 1 {
		tst.Fatalf("expected immediate convergence at a=1, got %+v", res)
	}
}
