package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01. Default is usable and TargetStep falls back to UpperMantle")

	cfg := Default()
	if cfg.Logger == nil {
		tst.Fatalf("Default must set a non-nil Logger")
	}
	if cfg.TargetStep(MohoDiscontinuity) != cfg.TargetTravelDistances[UpperMantle] {
		tst.Fatalf("expected MohoDiscontinuity (unconfigured) to fall back to UpperMantle's step")
	}
	if cfg.TargetStep(InnerCore) != 300 {
		tst.Fatalf("expected InnerCore's own configured step")
	}
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02. ToPrms/FromPrms round trip numeric tunables")

	cfg := Default()
	prms := cfg.ToPrms()

	other := Default()
	other.ResampleRadius = 0
	other.DTOL = 0
	other.FromPrms(prms)

	if other.ResampleRadius != cfg.ResampleRadius {
		tst.Fatalf("expected ResampleRadius to round-trip, got %v want %v", other.ResampleRadius, cfg.ResampleRadius)
	}
	if other.DTOL != cfg.DTOL {
		tst.Fatalf("expected DTOL to round-trip, got %v want %v", other.DTOL, cfg.DTOL)
	}
}

func Test_config03(tst *testing.T) {

	chk.PrintTitle("config03. ShellName.String is stable and falls back for unknown values")

	if CoreMantleBoundary.String() != "CORE_MANTLE_BOUNDARY" {
		tst.Fatalf("unexpected name: %s", CoreMantleBoundary.String())
	}
	if ShellName(999).String() != "UNKNOWN_SHELL" {
		tst.Fatalf("expected UNKNOWN_SHELL for an out-of-range ShellName")
	}
}
