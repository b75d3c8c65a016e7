package cli

import (
	"time"

	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for a date field with YYYY-MM-DD validation.
func dateInput(title, placeholder string, value *string) *huh.Input {
	if placeholder == "" {
		placeholder = "2025-06-30"
	}
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateDate)
}

// goToDateForm returns a themed single-field Form for jumping to a date.
// The input starts out holding current.
func goToDateForm(current time.Time, value *string) *huh.Form {
	if !current.IsZero() {
		*value = current.Format(dateLayout)
	}
	return huh.NewForm(
		huh.NewGroup(
			dateInput("Go to date (YYYY-MM-DD, today, tomorrow)", "", value),
		),
	).WithTheme(chairsideHuhTheme()).WithShowHelp(false)
}
