package earthmodel

import "sort"

// Location distinguishes a critical slowness taken at a shell interior
// extremum from one taken exactly at a shell boundary (spec.md §3).
type Location int

const (
	AtShell Location = iota
	AtBoundary
)

// CriticalSlowness is a slowness at which the Slowness Sampler must place
// a sample interval boundary: a shell boundary or a local extremum of
// slowness within a shell (spec.md §3, §4.3).
type CriticalSlowness struct {
	Wave        WaveType
	ShellIndexP int
	ShellIndexS int
	Location    Location
	Slowness    float64
}

// Less orders critical slownesses by slowness ascending, ties broken
// BOUNDARY after SHELL (spec.md §3 total order).
func Less(a, b CriticalSlowness) bool {
	if a.Slowness != b.Slowness {
		return a.Slowness < b.Slowness
	}
	return locationRank(a.Location) < locationRank(b.Location)
}

func locationRank(l Location) int {
	if l == AtBoundary {
		return 1
	}
	return 0
}

// SortAndDedup sorts critical slownesses per the total order and merges
// duplicates (equal slowness and location) into one entry.
func SortAndDedup(cs []CriticalSlowness, dtol float64) []CriticalSlowness {
	sort.Slice(cs, func(i, j int) bool { return Less(cs[i], cs[j]) })
	out := cs[:0:0]
	for _, c := range cs {
		if len(out) > 0 {
			last := out[len(out)-1]
			if abs(last.Slowness-c.Slowness) <= dtol && last.Location == c.Location {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// collectCriticalSlownesses implements spec.md §4.3: slowness just above
// and below every discontinuity, plus the slowness at the beginning and
// end of every internal low-velocity zone, for one wave type.
func collectCriticalSlownesses(shells []ModelShell, samples []ModelSample, w WaveType) []CriticalSlowness {
	var out []CriticalSlowness

	for i, sh := range shells {
		if sh.IsDiscontinuity {
			out = append(out,
				CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtBoundary, Slowness: samples[sh.IBot].Slowness(w)},
				CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtBoundary, Slowness: samples[sh.ITop].Slowness(w)},
			)
			continue
		}
		out = append(out,
			CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtBoundary, Slowness: samples[sh.IBot].Slowness(w)},
			CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtBoundary, Slowness: samples[sh.ITop].Slowness(w)},
		)
		if sh.HasLowVelocityZone {
			out = append(out, lvzExtrema(sh, samples, w)...)
		}
	}
	return out
}

// lvzExtrema locates every local minimum (start of an LVZ, scanning
// downward) and the following local maximum (its end) of slowness inside
// one shell.
func lvzExtrema(sh ModelShell, samples []ModelSample, w WaveType) []CriticalSlowness {
	var out []CriticalSlowness
	for i := sh.IBot + 1; i < sh.ITop; i++ {
		prev, cur, next := samples[i-1].Slowness(w), samples[i].Slowness(w), samples[i+1].Slowness(w)
		if cur < prev && cur < next {
			out = append(out, CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtShell, Slowness: cur})
		}
		if cur > prev && cur > next {
			out = append(out, CriticalSlowness{Wave: w, ShellIndexP: i, Location: AtShell, Slowness: cur})
		}
	}
	return out
}
