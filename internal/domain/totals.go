package domain

// Totals is the aggregate of a work-item collection. It is always derived,
// never stored apart from the items it was computed from.
type Totals struct {
	Duration float64
	Cost     float64
}

// IsZero reports whether both totals are zero.
func (t Totals) IsZero() bool {
	return t.Duration == 0 && t.Cost == 0
}

// Aggregate sums durations and costs. No rounding is applied.
func Aggregate(items []WorkItem) Totals {
	var t Totals
	for _, w := range items {
		t.Duration += w.Duration
		t.Cost += w.Cost
	}
	return t
}
