package cli

import (
	"regexp"
	"testing"

	"github.com/alexanderramin/chairside/internal/dashboard"
	"github.com/alexanderramin/chairside/internal/teatest"
)

// TestDriver wraps teatest.Driver with chairside-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// dashboard controller) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which loads the stylist and the pending appointments synchronously
// from the in-memory fake salon).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── chairside-specific inspection ────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting returns whether the app has signaled a quit.
// Checks model.quitting (q/Ctrl+C/quitMsg) and the driver's Quitting flag
// (tea.QuitMsg seen during drain).
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// Notice returns the transient notice line.
func (d *TestDriver) Notice() string {
	return d.appModel().notice
}

// Dashboard returns the home view at the bottom of the stack.
func (d *TestDriver) Dashboard() *dashboardView {
	return d.appModel().viewStack[0].(*dashboardView)
}

// Snapshot returns the dashboard controller's current snapshot.
func (d *TestDriver) Snapshot() dashboard.Snapshot {
	return d.Dashboard().ctrl.Snapshot()
}

// PlainView returns View() with ANSI escapes removed.
func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}
