package domain

import "fmt"

// WorkItem is one service performed during an appointment (a cut, a colour).
// Duration is in minutes.
type WorkItem struct {
	ID          string
	Description string
	Duration    float64
	Cost        float64
}

// Validate checks the non-negativity constraints on duration and cost.
func (w WorkItem) Validate() error {
	if w.Duration < 0 {
		return fmt.Errorf("work item %q has negative duration %v", w.Description, w.Duration)
	}
	if w.Cost < 0 {
		return fmt.Errorf("work item %q has negative cost %v", w.Description, w.Cost)
	}
	return nil
}
