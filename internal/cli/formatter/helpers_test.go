package formatter

import (
	"regexp"
	"testing"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDayFrom(t *testing.T) {
	now := time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today early", time.Date(2024, 5, 1, 0, 5, 0, 0, time.UTC), "Today"},
		{"tomorrow morning", time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC), "Yesterday"},
		{"in 3 days", time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC), "In 3d"},
		{"3 days ago", time.Date(2024, 4, 28, 9, 0, 0, 0, time.UTC), "3d ago"},
		{"far future", time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC), "Mon May 20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDayFrom(tt.input, now))
		})
	}
}

func TestClockTime(t *testing.T) {
	assert.Equal(t, "09:30", ClockTime(time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "--:--", ClockTime(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.AppointmentStatus
		contains string
	}{
		{domain.AppointmentPending, "pending"},
		{domain.AppointmentApproved, "approved"},
		{domain.AppointmentCompleted, "completed"},
		{domain.AppointmentCancelled, "cancelled"},
		{"", "--"},
		{"archivada", "archivada"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusPill(tt.status), tt.contains)
		})
	}
}

func TestTruncID(t *testing.T) {
	got := TruncID("a1b2c3d4-e5f6-7890-abcd-ef1234567890")
	assert.Contains(t, got, "a1b2c3d4")
	assert.NotContains(t, got, "e5f6")

	assert.Contains(t, TruncID("42"), "42")
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0m"},
		{-5, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{150, "2h 30m"},
		{29.6, "30m"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinutes(tt.input))
		})
	}
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$70.00", FormatCost(70))
	assert.Equal(t, "$10.00", FormatCost(9.99+0.01))
	assert.Equal(t, "$0.00", FormatCost(0))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderShare(t *testing.T) {
	assert.Contains(t, stripANSI(RenderShare(45, 90, 8)), "[████░░░░]  50%")
	assert.Contains(t, stripANSI(RenderShare(0, 0, 4)), "[░░░░]   0%")
	assert.Contains(t, stripANSI(RenderShare(10, 5, 4)), "[████] 100%")
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"A", "B"},
		[][]string{{StyleRed.Render("long cell"), "x"}, {"s", "y"}},
	))

	assert.Contains(t, out, "A          B\n")
	assert.Contains(t, out, "long cell  x\n")
	assert.Contains(t, out, "s          y\n")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
