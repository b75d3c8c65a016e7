package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/domain"
)

// appointmentList is a cursor over the appointment collection. The cursor is
// kept on the same appointment id across reloads when possible.
type appointmentList struct {
	items  []domain.Appointment
	cursor int
}

// setItems replaces the collection, keeping the cursor on the appointment it
// pointed at if that appointment is still present.
func (l *appointmentList) setItems(items []domain.Appointment) {
	var current domain.AppointmentID
	if a, ok := l.current(); ok {
		current = a.ID
	}
	l.items = items
	if i := domain.IndexOf(items, current); i >= 0 {
		l.cursor = i
		return
	}
	l.cursor = min(l.cursor, max(len(items)-1, 0))
}

func (l *appointmentList) current() (domain.Appointment, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return domain.Appointment{}, false
	}
	return l.items[l.cursor], true
}

func (l *appointmentList) up() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *appointmentList) down() {
	if l.cursor < len(l.items)-1 {
		l.cursor++
	}
}

// focus moves the cursor to id if present.
func (l *appointmentList) focus(id domain.AppointmentID) {
	if i := domain.IndexOf(l.items, id); i >= 0 {
		l.cursor = i
	}
}

// render draws one row per appointment. selected marks the appointment whose
// details are shown; day highlights rows on the calendar date.
func (l *appointmentList) render(selected domain.AppointmentID, day, now time.Time, height int) string {
	if len(l.items) == 0 {
		return formatter.Dim("No pending appointments.")
	}

	// Keep the cursor visible when the list is taller than the pane.
	start := 0
	if height > 0 && l.cursor >= height {
		start = l.cursor - height + 1
	}
	end := len(l.items)
	if height > 0 {
		end = min(end, start+height)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		a := l.items[i]
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == l.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		mark := " "
		if a.ID == selected {
			mark = formatter.StyleHeader.Render("●")
		}

		when := formatter.RelativeDayFrom(a.Date, now)
		whenStyle := formatter.StyleDim
		if a.SameDay(day) {
			whenStyle = formatter.StyleYellow
		}

		b.WriteString(fmt.Sprintf("%s%s %s %s %s\n",
			cursor,
			mark,
			whenStyle.Render(padRight(when, 9)),
			formatter.Dim(formatter.ClockTime(a.Date)),
			nameStyle.Render(truncate(a.User, 18)),
		))
	}
	if end < len(l.items) {
		b.WriteString(formatter.Dim(fmt.Sprintf("  … %d more\n", len(l.items)-end)))
	}
	return b.String()
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens s to width runes, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
