package branch

import "sort"

// Ends is a sorted, deduplicated set of ray-parameter values at branch
// endpoints (spec.md §4.11's "sorted, deduplicated treeset"). It is kept
// as a plain sorted slice — the set sizes involved (tens to low hundreds
// of branch endpoints) never justify a balanced-tree structure.
type Ends struct {
	values []float64
	dtol   float64
}

// NewEnds returns an empty Ends set using dtol as the equality tolerance.
func NewEnds(dtol float64) *Ends {
	return &Ends{dtol: dtol}
}

// Contains reports whether v is already present within dtol.
func (e *Ends) Contains(v float64) bool {
	i := sort.Search(len(e.values), func(i int) bool { return e.values[i] >= v-e.dtol })
	return i < len(e.values) && e.values[i] <= v+e.dtol
}

// Insert adds v if not already present, keeping values sorted ascending.
func (e *Ends) Insert(v float64) {
	if e.Contains(v) {
		return
	}
	i := sort.Search(len(e.values), func(i int) bool { return e.values[i] >= v })
	e.values = append(e.values, 0)
	copy(e.values[i+1:], e.values[i:])
	e.values[i] = v
}

// Values returns the sorted, deduplicated endpoint list.
func (e *Ends) Values() []float64 {
	out := make([]float64, len(e.values))
	copy(out, e.values)
	return out
}
