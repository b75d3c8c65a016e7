package cli

import (
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Stylist is the signed-in profile, nil until loaded or if the
	// profile call failed.
	Stylist *domain.Stylist

	// Terminal dimensions
	Width  int
	Height int
}

// Now returns the current time from the App clock.
func (s *SharedState) Now() time.Time {
	return s.App.now()
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and notice line (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
