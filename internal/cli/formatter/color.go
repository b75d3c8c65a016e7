package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style used for an appointment status.
func StatusColor(status domain.AppointmentStatus) lipgloss.Style {
	switch status {
	case domain.AppointmentPending:
		return StyleYellow
	case domain.AppointmentApproved:
		return StyleBlue
	case domain.AppointmentCompleted:
		return StyleGreen
	case domain.AppointmentCancelled:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusPill returns a colored status indicator such as "○ pending".
func StatusPill(status domain.AppointmentStatus) string {
	switch status {
	case domain.AppointmentPending:
		return StyleYellow.Render("○ " + status.Label())
	case domain.AppointmentApproved:
		return StyleBlue.Render("● " + status.Label())
	case domain.AppointmentCompleted:
		return StyleGreen.Render("✔ " + status.Label())
	case domain.AppointmentCancelled:
		return StyleRed.Render("✖ " + status.Label())
	case "":
		return StyleDim.Render("--")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

// ErrorBanner renders a one-line red error notice.
func ErrorBanner(text string) string {
	return StyleRed.Render("✖ " + text)
}
