package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/chairside/internal/cli/formatter"
	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// historyLoadedMsg carries the completed appointments.
type historyLoadedMsg struct {
	appts []domain.Appointment
	err   error
}

// historyView shows completed appointments in a scrollable viewport.
type historyView struct {
	state   *SharedState
	vp      viewport.Model
	appts   []domain.Appointment
	loading bool
	err     error
}

func newHistoryView(state *SharedState) *historyView {
	vp := viewport.New(state.Width, state.ContentHeight()-1)
	vp.KeyMap = historyViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &historyView{
		state:   state,
		vp:      vp,
		loading: true,
	}
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }

func (v *historyView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "scroll")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "back")),
	}
}

func (v *historyView) Init() tea.Cmd {
	return v.loadData()
}

func (v *historyView) loadData() tea.Cmd {
	svc := v.state.App.Appointments
	return func() tea.Msg {
		appts, err := svc.ListDone(context.Background())
		return historyLoadedMsg{appts: appts, err: err}
	}
}

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.appts = msg.appts
		}
		v.vp.SetContent(v.renderContent())
		v.vp.GotoTop()
		return v, nil

	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight() - 1
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "b":
			return v, popView()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *historyView) renderContent() string {
	var b strings.Builder
	if v.err != nil {
		b.WriteString(formatter.ErrorBanner("Could not load history: "+describeError(v.err)) + "\n\n")
	}
	b.WriteString(formatter.FormatAppointments("Completed", v.appts, v.state.Now()))
	return b.String()
}

func (v *historyView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	return v.vp.View() + "\n" + scrollIndicator(v.vp)
}

// historyViewportKeyMap returns a restricted keymap for the history viewport.
// Letter keys stay free for view and global shortcuts.
func historyViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

// scrollIndicator returns a dim scroll position string.
func scrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height {
		return ""
	}
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
