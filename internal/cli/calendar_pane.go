package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// calendarDay describes a single cell of the month grid.
type calendarDay struct {
	Day        int
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// calendarStyles controls month grid styling.
type calendarStyles struct {
	Header   lipgloss.Style
	Empty    lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
}

// calendarPane renders the date selector. It holds no state of its own; the
// dashboard passes the current date on every render.
type calendarPane struct {
	styles calendarStyles
}

func newCalendarPane() calendarPane {
	return calendarPane{styles: calendarStyles{
		Header:   lipgloss.NewStyle().Foreground(formatter.ColorDim).Bold(true),
		Empty:    lipgloss.NewStyle().Foreground(formatter.ColorDim),
		Entry:    lipgloss.NewStyle().Foreground(formatter.ColorGreen).Bold(true),
		Today:    lipgloss.NewStyle().Underline(true),
		Selected: lipgloss.NewStyle().Background(formatter.ColorHeader).Foreground(lipgloss.Color("#282828")),
	}}
}

// render draws a Sunday-first month grid around selected. Days with at least
// one appointment are highlighted.
func (p calendarPane) render(selected, today time.Time, appts []domain.Appointment) string {
	styles := p.styles
	if selected.IsZero() {
		return ""
	}

	entries := entryDays(selected, appts)
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	total := daysIn(selected)

	todayDay := 0
	if today.Year() == selected.Year() && today.Month() == selected.Month() {
		todayDay = today.Day()
	}

	lines := []string{
		formatter.StyleHeader.Render(selected.Format("January 2006")),
		styles.Header.Render("Su Mo Tu We Th Fr Sa"),
	}

	offset := int(first.Weekday())
	rows := (offset + total + 6) / 7
	for row := 0; row < rows; row++ {
		cells := make([]string, 0, 7)
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > total {
				cells = append(cells, styles.Empty.Render("  "))
				continue
			}
			cells = append(cells, renderCalendarDay(calendarDay{
				Day:        day,
				HasEntry:   entries[day],
				IsToday:    day == todayDay,
				IsSelected: day == selected.Day(),
			}, styles))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderCalendarDay(info calendarDay, styles calendarStyles) string {
	style := styles.Empty
	if info.HasEntry {
		style = styles.Entry
	}
	if info.IsToday {
		style = style.Inherit(styles.Today)
	}
	if info.IsSelected {
		style = styles.Selected.Inherit(style)
	}
	return style.Render(fmt.Sprintf("%2d", info.Day))
}

// entryDays returns the days of month's month that have appointments.
func entryDays(month time.Time, appts []domain.Appointment) map[int]bool {
	out := make(map[int]bool)
	for _, a := range appts {
		d := a.Date.In(month.Location())
		if d.Year() == month.Year() && d.Month() == month.Month() {
			out[d.Day()] = true
		}
	}
	return out
}

// daysIn returns the number of days in a month.
func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonthsClamped moves t by n months, clamping the day to the target
// month's length so Jan 31 + 1 month is the last day of February.
func addMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := min(t.Day(), daysIn(first))
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}
