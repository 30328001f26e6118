// Package branch implements the Branch Builder of spec.md §4.10: phase-
// code grammar recognition, sub-branch synthesis from shell partials,
// decimation, caustic-forced survival, and sub-branch naming.
package branch

import "github.com/dpedroso/tautable/earthmodel"

// PhaseSpec is one recognised phase code's traversal counts (mantle,
// outer-core, inner-core), the wave type governing its down-going leg, and
// the bookkeeping flags the per-contributing-shell walk needs (spec.md
// §4.10's grammar table).
type PhaseSpec struct {
	Code      string
	M, O, I   int
	Wave      earthmodel.WaveType
	Reflected bool // surface- or core-reflected: affects the decimation factor f

	// Split marks the bare direct/refracted codes (P, S) whose single
	// grammar entry fans out into one sub-branch per contributing end
	// shell — mantle-turning, outer-core-turning, inner-core-turning —
	// exactly as spec.md §4.10 walks the end shells top-down and §8
	// scenario S2 requires (P alone yields P, PKP, PKIKP).
	Split bool

	// UpGoing marks a depth phase's up-going leg (pP, sP, pS, sS):
	// spec.md §6's "up-going branch stubs" are decimated with the
	// minimum-spacing Fast decimator instead of the variance-minimizing
	// Slow one (spec.md §4.9, §4.11).
	UpGoing bool
}

// grammar is the complete enumeration of spec.md §4.10's recognised phase
// codes.
var grammar = map[string]PhaseSpec{
	"P": {Code: "P", M: 1, O: 1, I: 1, Wave: earthmodel.P, Split: true},
	"S": {Code: "S", M: 1, O: 1, I: 1, Wave: earthmodel.S, Split: true},

	"pP": {Code: "pP", M: 1, O: 1, I: 1, Wave: earthmodel.P, Reflected: true, UpGoing: true},
	"sP": {Code: "sP", M: 1, O: 1, I: 1, Wave: earthmodel.P, Reflected: true, UpGoing: true},
	"pS": {Code: "pS", M: 1, O: 1, I: 1, Wave: earthmodel.S, Reflected: true, UpGoing: true},
	"sS": {Code: "sS", M: 1, O: 1, I: 1, Wave: earthmodel.S, Reflected: true, UpGoing: true},

	"PP": {Code: "PP", M: 2, O: 2, I: 2, Wave: earthmodel.P, Reflected: true},
	"SS": {Code: "SS", M: 2, O: 2, I: 2, Wave: earthmodel.S, Reflected: true},

	"SP": {Code: "SP", M: 2, O: 0, I: 0, Wave: earthmodel.S, Reflected: true},
	"PS": {Code: "PS", M: 2, O: 0, I: 0, Wave: earthmodel.P, Reflected: true},

	"PcP": {Code: "PcP", M: 1, O: 0, I: 0, Wave: earthmodel.P, Reflected: true},
	"ScS": {Code: "ScS", M: 1, O: 0, I: 0, Wave: earthmodel.S, Reflected: true},
	"PcS": {Code: "PcS", M: 1, O: 0, I: 0, Wave: earthmodel.P, Reflected: true},
	"ScP": {Code: "ScP", M: 1, O: 0, I: 0, Wave: earthmodel.S, Reflected: true},

	"PKiKP": {Code: "PKiKP", M: 1, O: 1, I: 0, Wave: earthmodel.P, Reflected: true},
	"SKiKS": {Code: "SKiKS", M: 1, O: 1, I: 0, Wave: earthmodel.S, Reflected: true},
	"PKiKS": {Code: "PKiKS", M: 1, O: 1, I: 0, Wave: earthmodel.P, Reflected: true},
	"SKiKP": {Code: "SKiKP", M: 1, O: 1, I: 0, Wave: earthmodel.S, Reflected: true},

	"pPKiKP": {Code: "pPKiKP", M: 1, O: 1, I: 0, Wave: earthmodel.P, Reflected: true, UpGoing: true},
	"sPKiKP": {Code: "sPKiKP", M: 1, O: 1, I: 0, Wave: earthmodel.P, Reflected: true, UpGoing: true},
	"pSKiKS": {Code: "pSKiKS", M: 1, O: 1, I: 0, Wave: earthmodel.S, Reflected: true, UpGoing: true},
	"sSKiKS": {Code: "sSKiKS", M: 1, O: 1, I: 0, Wave: earthmodel.S, Reflected: true, UpGoing: true},

	"PKKP": {Code: "PKKP", M: 1, O: 2, I: 2, Wave: earthmodel.P, Reflected: true},
	"SKKS": {Code: "SKKS", M: 1, O: 2, I: 2, Wave: earthmodel.S, Reflected: true},
	"SKKP": {Code: "SKKP", M: 1, O: 2, I: 2, Wave: earthmodel.S, Reflected: true},
	"PKKS": {Code: "PKKS", M: 1, O: 2, I: 2, Wave: earthmodel.P, Reflected: true},

	"PKP": {Code: "PKP", M: 1, O: 1, I: 1, Wave: earthmodel.P},
	"SKS": {Code: "SKS", M: 1, O: 1, I: 1, Wave: earthmodel.S},
	"SKP": {Code: "SKP", M: 1, O: 1, I: 1, Wave: earthmodel.S},
	"PKS": {Code: "PKS", M: 1, O: 1, I: 1, Wave: earthmodel.P},
}

// Lookup returns the grammar entry for a phase code, or ok=false for an
// unrecognised code (spec.md §7 UnknownPhaseCode: the caller logs a
// warning and skips that phase, the remaining phases still build).
func Lookup(code string) (PhaseSpec, bool) {
	spec, ok := grammar[code]
	return spec, ok
}
