package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarPane_RendersMonthGrid(t *testing.T) {
	appts := []domain.Appointment{
		testutil.NewTestAppointment("Ann", testutil.At(2024, time.May, 14, 10, 0)),
		testutil.NewTestAppointment("Bo", testutil.At(2024, time.June, 2, 10, 0)),
	}

	out := stripANSI(newCalendarPane().render(testutil.Day(2024, time.May, 1), testutil.Day(2024, time.May, 1), appts))
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 7)
	assert.Equal(t, "May 2024", strings.TrimSpace(lines[0]))
	assert.Equal(t, "Su Mo Tu We Th Fr Sa", lines[1])
	// May 1, 2024 is a Wednesday.
	assert.Equal(t, "          1  2  3  4", strings.TrimRight(lines[2], " "))
	assert.Contains(t, lines[6], "26 27 28 29 30 31")
}

func TestCalendarPane_ZeroDateRendersNothing(t *testing.T) {
	assert.Empty(t, newCalendarPane().render(time.Time{}, time.Now(), nil))
}

func TestEntryDays(t *testing.T) {
	appts := []domain.Appointment{
		testutil.NewTestAppointment("Ann", testutil.At(2024, time.May, 14, 10, 0)),
		testutil.NewTestAppointment("Bo", testutil.At(2024, time.May, 14, 16, 0)),
		testutil.NewTestAppointment("Cleo", testutil.At(2024, time.June, 2, 10, 0)),
		testutil.NewTestAppointment("Dee", testutil.At(2023, time.May, 3, 10, 0)),
	}

	days := entryDays(testutil.Day(2024, time.May, 1), appts)

	assert.Equal(t, map[int]bool{14: true}, days)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{"leap february", testutil.Day(2024, time.January, 31), 1, testutil.Day(2024, time.February, 29)},
		{"plain february", testutil.Day(2023, time.January, 31), 1, testutil.Day(2023, time.February, 28)},
		{"backwards", testutil.Day(2024, time.March, 31), -1, testutil.Day(2024, time.February, 29)},
		{"year wrap", testutil.Day(2024, time.December, 15), 1, testutil.Day(2025, time.January, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := addMonthsClamped(tt.from, tt.n)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestAppointmentList_KeepsCursorOnSameAppointment(t *testing.T) {
	a := testutil.NewTestAppointment("Ann", testutil.At(2024, time.May, 1, 9, 0))
	b := testutil.NewTestAppointment("Bo", testutil.At(2024, time.May, 1, 10, 0))
	c := testutil.NewTestAppointment("Cleo", testutil.At(2024, time.May, 1, 11, 0))

	var l appointmentList
	l.setItems([]domain.Appointment{a, b, c})
	l.down()

	l.setItems([]domain.Appointment{c, b})
	cur, ok := l.current()
	require.True(t, ok)
	assert.Equal(t, b.ID, cur.ID)

	// Removed appointment: cursor clamps to the end.
	l.down()
	l.setItems([]domain.Appointment{a})
	cur, ok = l.current()
	require.True(t, ok)
	assert.Equal(t, a.ID, cur.ID)

	l.setItems(nil)
	_, ok = l.current()
	assert.False(t, ok)
}

func TestAppointmentList_CursorBounds(t *testing.T) {
	a := testutil.NewTestAppointment("Ann", testutil.At(2024, time.May, 1, 9, 0))
	b := testutil.NewTestAppointment("Bo", testutil.At(2024, time.May, 1, 10, 0))

	var l appointmentList
	l.setItems([]domain.Appointment{a, b})
	l.up()
	assert.Equal(t, 0, l.cursor)
	l.down()
	l.down()
	assert.Equal(t, 1, l.cursor)

	l.focus(a.ID)
	assert.Equal(t, 0, l.cursor)
	l.focus("missing")
	assert.Equal(t, 0, l.cursor)
}

func TestAppointmentList_Render(t *testing.T) {
	now := testutil.At(2024, time.May, 1, 9, 0)

	var empty appointmentList
	assert.Contains(t, stripANSI(empty.render("", now, now, 10)), "No pending appointments.")

	a := testutil.NewTestAppointment("Ann", testutil.At(2024, time.May, 1, 14, 30))
	b := testutil.NewTestAppointment("Bo", testutil.At(2024, time.May, 2, 10, 0))
	var l appointmentList
	l.setItems([]domain.Appointment{a, b})

	out := stripANSI(l.render(a.ID, now, now, 1))
	assert.Contains(t, out, "▸ ● ")
	assert.Contains(t, out, "14:30")
	assert.Contains(t, out, "Ann")
	assert.NotContains(t, out, "Bo")
	assert.Contains(t, out, "… 1 more")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "ab   ", padRight("ab", 5))
}

func TestParseDateArg(t *testing.T) {
	now := testutil.At(2024, time.May, 1, 9, 0)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", testutil.Day(2024, time.May, 1)},
		{"today", testutil.Day(2024, time.May, 1)},
		{" Tomorrow ", testutil.Day(2024, time.May, 2)},
		{"yesterday", testutil.Day(2024, time.April, 30)},
		{"2024-02-29", testutil.Day(2024, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDateArg(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}

	_, err := parseDateArg("2023-02-29", now)
	assert.ErrorContains(t, err, "invalid date")
	_, err = parseDateArg("next week", now)
	assert.ErrorContains(t, err, "use YYYY-MM-DD")
}

func TestDateValue(t *testing.T) {
	var raw string
	v := newDateValue(&raw, func() time.Time { return testutil.At(2024, time.May, 1, 9, 0) })

	assert.Equal(t, "", v.String())
	assert.Equal(t, "date", v.Type())

	require.NoError(t, v.Set("tomorrow"))
	assert.Equal(t, "tomorrow", v.String())

	assert.Error(t, v.Set("soon"))
	assert.Equal(t, "tomorrow", raw)
}

func TestResolveStartDate_UsesConfiguredTimezone(t *testing.T) {
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	app := &App{Now: func() time.Time { return testutil.At(2024, time.May, 2, 3, 0) }, loc: bogota, dateArg: "today"}
	require.NoError(t, app.resolveStartDate())

	// 03:00 UTC on May 2 is still May 1 in Bogota.
	want := time.Date(2024, time.May, 1, 0, 0, 0, 0, bogota)
	assert.True(t, want.Equal(app.StartDate), "got %s", app.StartDate)
	assert.Equal(t, bogota, app.StartDate.Location())
}
