package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

// FormatAppointments renders appointments as a table in the order given.
func FormatAppointments(title string, appts []domain.Appointment, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n\n")

	if len(appts) == 0 {
		b.WriteString(Dim("No appointments."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"ID", "DAY", "DATE", "TIME", "CLIENT", "STATUS"}
	rows := make([][]string, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, []string{
			a.ID.String(),
			RelativeDayFrom(a.Date, now),
			a.Date.Format("2006-01-02"),
			ClockTime(a.Date),
			a.User,
			StatusPill(a.Status),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim(fmt.Sprintf("%d appointment(s)", len(appts))))
	b.WriteString("\n")
	return b.String()
}

// FormatWorkItems renders the items of one appointment with their share of
// the total duration, followed by the totals line.
func FormatWorkItems(items []domain.WorkItem, totals domain.Totals) string {
	if len(items) == 0 {
		return Dim("No services recorded.") + "\n" + FormatTotals(totals)
	}

	headers := []string{"SERVICE", "DURATION", "COST", "SHARE"}
	rows := make([][]string, 0, len(items))
	for _, w := range items {
		rows = append(rows, []string{
			w.Description,
			FormatMinutes(w.Duration),
			FormatCost(w.Cost),
			RenderShare(w.Duration, totals.Duration, 10),
		})
	}
	return RenderTable(headers, rows) + FormatTotals(totals)
}

// FormatTotals renders the aggregate line.
func FormatTotals(t domain.Totals) string {
	return fmt.Sprintf("%s %s  %s %s\n",
		StyleHeader.Render("TOTAL"), Bold(FormatMinutes(t.Duration)),
		Dim("·"), Bold(FormatCost(t.Cost)))
}

// FormatAppointmentDetail renders one appointment with its items in a box.
func FormatAppointmentDetail(a domain.Appointment, items []domain.WorkItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Client:"), Bold(a.User))
	fmt.Fprintf(&b, "%s %s %s\n", Dim("When:  "), HumanDate(a.Date), ClockTime(a.Date))
	fmt.Fprintf(&b, "%s %s\n\n", Dim("Status:"), StatusPill(a.Status))
	b.WriteString(FormatWorkItems(items, domain.Aggregate(items)))
	return RenderBox("Appointment "+a.ID.String(), strings.TrimRight(b.String(), "\n"))
}

// FormatStylist renders the stylist profile.
func FormatStylist(s *domain.Stylist) string {
	if s == nil {
		return Dim("No stylist profile.") + "\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Name: "), Bold(s.DisplayName()))
	fmt.Fprintf(&b, "%s %s\n", Dim("Email:"), s.Email)
	if s.Phone != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Phone:"), s.Phone)
	}
	if s.Role != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Role: "), StylePurple.Render(string(s.Role)))
	}
	return RenderBox("Stylist", strings.TrimRight(b.String(), "\n"))
}
