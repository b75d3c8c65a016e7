// Package teatest runs bubbletea models without a tea.Program.
//
// A Driver calls Update directly and executes every returned Cmd inline,
// feeding the resulting messages back until nothing is left. Tests can then
// assert on the model as it would look after the runtime settled.
//
// Cmds that do not return within cmdTimeout are dropped. That covers timers
// such as cursor blinks and spinner ticks, which would otherwise block or
// loop forever.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many chained messages one Send may produce.
const maxDepth = 100

// cmdTimeout separates fetches against in-memory fakes, which return in
// microseconds, from timer Cmds, which block for 100ms or more.
const cmdTimeout = 10 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a tea.QuitMsg has been produced.
	Quitting bool
}

// Option configures a Driver.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.apply(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New wraps model. Call DrainInit to run its Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit runs Init and everything it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.run(d.Model.Init(), 0)
}

// Send delivers msg and runs the resulting Cmds to completion. Messages sent
// after the model quit are ignored.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.run(d.apply(msg), 0)
}

func (d *Driver) PressKey(r rune) { d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}) }
func (d *Driver) PressEnter()     { d.press(tea.KeyEnter) }
func (d *Driver) PressEsc()       { d.press(tea.KeyEsc) }
func (d *Driver) PressCtrlC()     { d.press(tea.KeyCtrlC) }
func (d *Driver) PressDown()      { d.press(tea.KeyDown) }
func (d *Driver) PressLeft()      { d.press(tea.KeyLeft) }
func (d *Driver) PressRight()     { d.press(tea.KeyRight) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	for _, r := range s {
		d.PressKey(r)
	}
}

// View renders the model.
func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) press(k tea.KeyType) {
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) apply(msg tea.Msg) tea.Cmd {
	next, cmd := d.Model.Update(msg)
	d.Model = next
	return cmd
}

// run executes cmd and recursively feeds its message back into the model.
// Batches fan out; blink messages and timed-out Cmds end the chain.
func (d *Driver) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.T.Logf("teatest: stopped after %d chained messages", maxDepth)
		return
	}

	msg := await(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.run(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		d.apply(msg)
		return
	}
	if isBlink(msg) {
		return
	}
	d.run(d.apply(msg), depth+1)
}

// await runs cmd on its own goroutine and gives up after cmdTimeout.
func await(cmd tea.Cmd) tea.Msg {
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported cursor blink messages of bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
