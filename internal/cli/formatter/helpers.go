package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDayFrom names day relative to now: "Today", "Tomorrow",
// "Yesterday", "In 3d", "2d ago", or the weekday and date further out.
func RelativeDayFrom(day, now time.Time) string {
	d := calendarDays(day, now)
	switch {
	case d == 0:
		return "Today"
	case d == 1:
		return "Tomorrow"
	case d == -1:
		return "Yesterday"
	case d > 1 && d < 7:
		return fmt.Sprintf("In %dd", d)
	case d < -1 && d > -7:
		return fmt.Sprintf("%dd ago", -d)
	default:
		return day.Format("Mon Jan 2")
	}
}

// calendarDays counts midnights between now and day in day's location.
func calendarDays(day, now time.Time) int {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.In(day.Location()).Date()
	a := time.Date(y1, m1, d1, 12, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 12, 0, 0, 0, time.UTC)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	return t.Format("Mon Jan 2, 2006")
}

// ClockTime formats the time of day, or "--:--" for date-only values.
func ClockTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 {
		return "--:--"
	}
	return t.Format("15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts minutes into a human-friendly duration. Fractional
// minutes are rounded for display only.
func FormatMinutes(min float64) string {
	total := int(math.Round(min))
	if total <= 0 {
		return "0m"
	}
	h := total / 60
	m := total % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatCost renders a currency amount with two decimals.
func FormatCost(cost float64) string {
	return "$" + strconv.FormatFloat(cost, 'f', 2, 64)
}
