package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/dashboard"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardMsg marks messages addressed to the dashboard. The app model
// delivers them even while another view is on top of the stack.
type dashboardMsg interface {
	dashboardMsg()
}

// appointmentsLoadedMsg carries the outcome of a pending-appointments fetch.
type appointmentsLoadedMsg struct {
	req   dashboard.Request
	appts []domain.Appointment
	err   error
}

// workItemsLoadedMsg carries the outcome of a work-items fetch.
type workItemsLoadedMsg struct {
	req   dashboard.Request
	items []domain.WorkItem
	err   error
}

// dateSelectedMsg is sent by the go-to-date wizard.
type dateSelectedMsg struct {
	date time.Time
}

// statusChangedMsg carries the outcome of a complete or cancel action.
type statusChangedMsg struct {
	id     domain.AppointmentID
	status domain.AppointmentStatus
	err    error
}

// tickOwner is implemented by views whose spinner keeps ticking while they
// are covered by another view.
type tickOwner interface {
	ownsTick(spinner.TickMsg) bool
}

func (appointmentsLoadedMsg) dashboardMsg() {}
func (workItemsLoadedMsg) dashboardMsg()    {}
func (dateSelectedMsg) dashboardMsg()       {}
func (statusChangedMsg) dashboardMsg()      {}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI: calendar and appointment list
// on the left, the selected appointment's services and totals on the right.
// All state lives in the dashboard.Controller; the view only renders
// snapshots and turns keys into controller calls and fetch commands.
type dashboardView struct {
	state    *SharedState
	ctrl     *dashboard.Controller
	calendar calendarPane
	list     appointmentList
	spinner  spinner.Model
	spinning bool
	start    time.Time
}

func newDashboardView(state *SharedState, date time.Time) *dashboardView {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = formatter.StylePurple

	return &dashboardView{
		state:    state,
		ctrl:     dashboard.NewController(dashboard.WithObserver(state.App.DashboardObserver)),
		calendar: newCalendarPane(),
		spinner:  s,
		start:    startOfDay(date),
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Appointments" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "day")),
		key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "month")),
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to date")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "history")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.setDate(v.start)
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) fetchAppointments(req dashboard.Request) tea.Cmd {
	svc := v.state.App.Appointments
	return func() tea.Msg {
		ctx := salon.WithRequestID(context.Background(), req.ID)
		appts, err := svc.ListPending(ctx)
		return appointmentsLoadedMsg{req: req, appts: appts, err: err}
	}
}

func (v *dashboardView) fetchWorkItems(req dashboard.Request) tea.Cmd {
	svc := v.state.App.WorkItems
	return func() tea.Msg {
		ctx := salon.WithRequestID(context.Background(), req.ID)
		items, err := svc.ListByAppointment(ctx, req.AppointmentID)
		return workItemsLoadedMsg{req: req, items: items, err: err}
	}
}

func (v *dashboardView) changeStatus(id domain.AppointmentID, status domain.AppointmentStatus) tea.Cmd {
	svc := v.state.App.Appointments
	return func() tea.Msg {
		var err error
		switch status {
		case domain.AppointmentCompleted:
			_, err = svc.Complete(context.Background(), id)
		case domain.AppointmentCancelled:
			_, err = svc.Cancel(context.Background(), id)
		default:
			err = fmt.Errorf("unsupported status %q", status)
		}
		return statusChangedMsg{id: id, status: status, err: err}
	}
}

func (v *dashboardView) setDate(date time.Time) tea.Cmd {
	req := v.ctrl.SetDate(startOfDay(date))
	return tea.Batch(v.fetchAppointments(req), v.startSpinner())
}

func (v *dashboardView) refresh() tea.Cmd {
	req, err := v.ctrl.Refresh()
	if err != nil {
		return nil
	}
	return tea.Batch(v.fetchAppointments(req), v.startSpinner())
}

func (v *dashboardView) selectCurrent() tea.Cmd {
	a, ok := v.list.current()
	if !ok {
		return nil
	}
	req, err := v.ctrl.Select(a.ID)
	if errors.Is(err, dashboard.ErrAppointmentsNotReady) {
		return showOutput(formatter.Dim("Appointments are not loaded yet."))
	}
	if err != nil {
		return showOutput(formatter.ErrorBanner(err.Error()))
	}
	return tea.Batch(v.fetchWorkItems(req), v.startSpinner())
}

func (v *dashboardView) ownsTick(msg spinner.TickMsg) bool {
	return msg.ID == v.spinner.ID()
}

// startSpinner starts the tick loop unless it is already running.
func (v *dashboardView) startSpinner() tea.Cmd {
	if v.spinning {
		return nil
	}
	v.spinning = true
	return v.spinner.Tick
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case appointmentsLoadedMsg:
		if v.ctrl.ResolveAppointments(msg.req, msg.appts, msg.err) && msg.err == nil {
			snap := v.ctrl.Snapshot()
			v.list.setItems(snap.Appointments)
			if !snap.Selected.IsZero() {
				v.list.focus(snap.Selected)
			}
		}
		return v, nil

	case workItemsLoadedMsg:
		v.ctrl.ResolveWorkItems(msg.req, msg.items, msg.err)
		return v, nil

	case dateSelectedMsg:
		return v, v.setDate(msg.date)

	case statusChangedMsg:
		if msg.err != nil {
			return v, showOutput(formatter.ErrorBanner(
				fmt.Sprintf("Could not mark appointment %s as %s: %s", msg.id, msg.status.Label(), describeError(msg.err))))
		}
		return v, tea.Batch(
			showOutput(formatter.StyleGreen.Render(fmt.Sprintf("Appointment %s marked %s.", msg.id, msg.status.Label()))),
			v.refresh(),
		)

	case spinner.TickMsg:
		if !v.ctrl.State().Loading() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *dashboardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	date, _ := v.ctrl.Date()

	switch msg.String() {
	case "left", "h":
		return v, v.setDate(date.AddDate(0, 0, -1))
	case "right", "l":
		return v, v.setDate(date.AddDate(0, 0, 1))
	case "[":
		return v, v.setDate(addMonthsClamped(date, -1))
	case "]":
		return v, v.setDate(addMonthsClamped(date, 1))
	case "t":
		return v, v.setDate(v.state.Now())
	case "g":
		return v, v.goToDate(date)
	case "up", "k":
		v.list.up()
	case "down", "j":
		v.list.down()
	case "enter":
		return v, v.selectCurrent()
	case "esc":
		v.ctrl.Deselect()
	case "r":
		return v, v.refresh()
	case "c":
		return v, v.confirmStatus(domain.AppointmentCompleted)
	case "x":
		return v, v.confirmStatus(domain.AppointmentCancelled)
	}
	return v, nil
}

// goToDate opens a form asking for a date, then jumps to it.
func (v *dashboardView) goToDate(current time.Time) tea.Cmd {
	input := new(string)
	return startWizardCmd(v.state, "Go to date", goToDateForm(current, input), func() tea.Cmd {
		d, err := parseDateArg(*input, v.state.Now())
		if err != nil {
			return showOutput(formatter.ErrorBanner(err.Error()))
		}
		return func() tea.Msg { return dateSelectedMsg{date: d} }
	})
}

// confirmStatus asks before completing or cancelling the selected appointment.
func (v *dashboardView) confirmStatus(status domain.AppointmentStatus) tea.Cmd {
	a, ok := v.ctrl.Snapshot().SelectedAppointment()
	if !ok {
		return showOutput(formatter.Dim("Select an appointment first (enter)."))
	}

	verb := "Complete"
	if status == domain.AppointmentCancelled {
		verb = "Cancel"
	}
	confirmed := new(bool)
	title := fmt.Sprintf("%s %s's appointment on %s?", verb, a.User, formatter.HumanDate(a.Date))
	return startWizardCmd(v.state, verb+" appointment", wizardConfirm(title, confirmed), func() tea.Cmd {
		if !*confirmed {
			return showOutput(formatter.Dim("Cancelled."))
		}
		return v.changeStatus(a.ID, status)
	})
}

// ── view rendering ───────────────────────────────────────────────────────────

const dashLeftPaneWidth = 38

func (v *dashboardView) View() string {
	snap := v.ctrl.Snapshot()
	now := v.state.Now()

	var b strings.Builder

	b.WriteString("\n  " + v.renderDateLine(snap, now) + "\n")
	if snap.AppointmentsErr != nil {
		b.WriteString("  " + formatter.ErrorBanner("Could not load appointments: "+describeError(snap.AppointmentsErr)))
		b.WriteString(formatter.Dim("  (r to retry)") + "\n")
	}
	b.WriteString("\n")

	leftPane := v.renderLeftPane(snap, now)
	rightPane := v.renderRightPane(snap)

	// Decide layout: split pane vs. single column.
	if v.state.Width < 80 {
		b.WriteString(leftPane)
		b.WriteString("\n")
		b.WriteString(rightPane)
		return b.String()
	}

	rightWidth := max(v.state.Width-dashLeftPaneWidth-3, 20)

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).PaddingLeft(2).Render(leftPane)
	divider := lipgloss.NewStyle().
		Foreground(formatter.ColorDim).
		Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))

	return b.String()
}

func (v *dashboardView) renderDateLine(snap dashboard.Snapshot, now time.Time) string {
	if !snap.HasDate {
		return formatter.Dim("No date selected.")
	}
	line := formatter.Bold(formatter.HumanDate(snap.Date)) + " " +
		formatter.Dim("("+formatter.RelativeDayFrom(snap.Date, now)+")")
	if n := len(snap.AppointmentsOn(snap.Date)); n > 0 {
		line += "  " + formatter.StyleGreen.Render(fmt.Sprintf("%d on this day", n))
	}
	if snap.State == dashboard.StateLoadingAppointments {
		line += "  " + v.spinner.View() + " " + formatter.Dim("Loading appointments...")
	}
	return line
}

// ── left pane: calendar and appointment list ─────────────────────────────────

func (v *dashboardView) renderLeftPane(snap dashboard.Snapshot, now time.Time) string {
	var b strings.Builder

	b.WriteString(v.calendar.render(snap.Date, now, snap.Appointments) + "\n\n")
	b.WriteString(formatter.StyleHeader.Render("PENDING") + "\n\n")

	if !snap.AppointmentsLoaded {
		if snap.State == dashboard.StateLoadingAppointments {
			b.WriteString(formatter.Dim("Loading...") + "\n")
		}
		return b.String()
	}

	// Calendar (8 lines) and headings take the rest of the content area.
	height := v.state.ContentHeight() - 14
	b.WriteString(v.list.render(snap.Selected, snap.Date, now, height))
	return b.String()
}

// ── right pane: appointment detail ───────────────────────────────────────────

func (v *dashboardView) renderRightPane(snap dashboard.Snapshot) string {
	a, ok := snap.SelectedAppointment()
	if !ok {
		return formatter.Dim("Select an appointment to see its services.")
	}

	var b strings.Builder
	b.WriteString(formatter.StyleBold.Render(a.User) + "  " + formatter.StatusPill(a.Status) + "\n")
	b.WriteString(formatter.Dim("When      ") + formatter.HumanDate(a.Date) + " " + formatter.ClockTime(a.Date) + "\n")
	b.WriteString(formatter.Dim("ID        ") + a.ID.String() + "\n\n")

	switch snap.State {
	case dashboard.StateLoadingWorkItems:
		b.WriteString(v.spinner.View() + " " + formatter.Dim("Loading services...") + "\n\n")
		b.WriteString(formatter.FormatTotals(snap.Totals))
	case dashboard.StateWorkItemsFailed:
		b.WriteString(formatter.ErrorBanner("Could not load services: "+describeError(snap.WorkItemsErr)) + "\n")
		b.WriteString(formatter.Dim("Press enter to retry.") + "\n\n")
		b.WriteString(formatter.FormatTotals(snap.Totals))
	default:
		b.WriteString(formatter.FormatWorkItems(snap.Items, snap.Totals))
	}

	return b.String()
}

// describeError turns salon errors into a short message for the UI.
func describeError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, salon.ErrTimeout):
		return "the salon service did not answer in time"
	case errors.Is(err, salon.ErrNetwork):
		return "the salon service is unreachable"
	case errors.Is(err, salon.ErrInvalidResponse):
		return "the salon service sent an unreadable response"
	}
	var se *salon.ServerError
	if errors.As(err, &se) {
		if se.Body != "" {
			return fmt.Sprintf("server error %d: %s", se.Status, se.Body)
		}
		return fmt.Sprintf("server error %d", se.Status)
	}
	return err.Error()
}
