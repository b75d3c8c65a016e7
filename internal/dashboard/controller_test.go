package dashboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
	"github.com/alexanderramin/chairside/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioAppointments() []domain.Appointment {
	return []domain.Appointment{
		testutil.NewTestAppointment("Ann", testutil.Day(2024, 5, 1), testutil.WithAppointmentID("1")),
		testutil.NewTestAppointment("Bo", testutil.Day(2024, 5, 2), testutil.WithAppointmentID("2")),
	}
}

func cutAndColor() []domain.WorkItem {
	return []domain.WorkItem{
		{Description: "Cut", Duration: 30, Cost: 20},
		{Description: "Color", Duration: 60, Cost: 50},
	}
}

// readyController returns a controller whose appointments have loaded.
func readyController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := NewController(opts...)
	req := c.SetDate(testutil.Day(2024, 5, 1))
	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))
	require.Equal(t, StateAppointmentsReady, c.State())
	return c
}

func TestController_InitialState(t *testing.T) {
	c := NewController()

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.False(t, snap.HasDate)
	assert.Empty(t, snap.Appointments)
	assert.True(t, snap.Totals.IsZero())
}

func TestController_SetDate_LoadsAppointments(t *testing.T) {
	c := NewController()

	req := c.SetDate(testutil.Day(2024, 5, 1))

	assert.Equal(t, KindAppointments, req.Kind)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, testutil.Day(2024, 5, 1), req.Date)
	assert.Equal(t, StateLoadingAppointments, c.State())

	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))

	snap := c.Snapshot()
	assert.Equal(t, StateAppointmentsReady, snap.State)
	require.Len(t, snap.Appointments, 2)
	assert.Equal(t, "Ann", snap.Appointments[0].User, "server order is kept")
	assert.Equal(t, "Bo", snap.Appointments[1].User)
	assert.True(t, snap.AppointmentsLoaded)
}

func TestController_SelectComputesTotals(t *testing.T) {
	c := readyController(t)

	req, err := c.Select("1")
	require.NoError(t, err)
	assert.Equal(t, StateLoadingWorkItems, c.State())
	assert.Equal(t, domain.AppointmentID("1"), req.AppointmentID)

	require.True(t, c.ResolveWorkItems(req, cutAndColor(), nil))

	snap := c.Snapshot()
	assert.Equal(t, StateWorkItemsReady, snap.State)
	assert.Equal(t, domain.Totals{Duration: 90, Cost: 70}, snap.Totals)
	appt, ok := snap.SelectedAppointment()
	require.True(t, ok)
	assert.Equal(t, "Ann", appt.User)
}

func TestController_EmptyWorkItemsIsNotAnError(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("2")
	require.NoError(t, err)

	require.True(t, c.ResolveWorkItems(req, nil, nil))

	snap := c.Snapshot()
	assert.Equal(t, StateWorkItemsReady, snap.State)
	assert.NotNil(t, snap.Items)
	assert.Empty(t, snap.Items)
	assert.Equal(t, domain.Totals{}, snap.Totals)
	assert.NoError(t, snap.WorkItemsErr)
}

func TestController_FirstLoadFailure(t *testing.T) {
	c := NewController()
	req := c.SetDate(testutil.Day(2024, 5, 1))

	require.True(t, c.ResolveAppointments(req, nil, &salon.ServerError{Status: 500}))

	snap := c.Snapshot()
	assert.Equal(t, StateAppointmentsFailed, snap.State)
	assert.Empty(t, snap.Appointments)
	assert.False(t, snap.AppointmentsLoaded)
	assert.True(t, snap.Totals.IsZero())
	status, ok := salon.StatusOf(snap.AppointmentsErr)
	require.True(t, ok)
	assert.Equal(t, 500, status)
}

func TestController_FailedRefreshKeepsCollection(t *testing.T) {
	c := readyController(t)

	req, err := c.Refresh()
	require.NoError(t, err)
	require.True(t, c.ResolveAppointments(req, nil, salon.ErrNetwork))

	snap := c.Snapshot()
	assert.Equal(t, StateAppointmentsFailed, snap.State)
	assert.Equal(t, scenarioAppointments(), snap.Appointments)
	assert.ErrorIs(t, snap.AppointmentsErr, salon.ErrNetwork)
}

func TestController_RetryAfterFailure(t *testing.T) {
	c := NewController()
	req := c.SetDate(testutil.Day(2024, 5, 1))
	require.True(t, c.ResolveAppointments(req, nil, salon.ErrTimeout))

	req, err := c.Refresh()
	require.NoError(t, err)
	assert.Equal(t, StateLoadingAppointments, c.State())
	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))

	snap := c.Snapshot()
	assert.Equal(t, StateAppointmentsReady, snap.State)
	assert.NoError(t, snap.AppointmentsErr)
	assert.Len(t, snap.Appointments, 2)
}

func TestController_StaleWorkItemsDropped(t *testing.T) {
	c := readyController(t)

	reqA, err := c.Select("1")
	require.NoError(t, err)
	reqB, err := c.Select("2")
	require.NoError(t, err)

	bItems := []domain.WorkItem{{Description: "Wash", Duration: 15, Cost: 8}}
	require.True(t, c.ResolveWorkItems(reqB, bItems, nil))
	assert.False(t, c.ResolveWorkItems(reqA, cutAndColor(), nil), "A resolved after B")

	snap := c.Snapshot()
	assert.Equal(t, domain.AppointmentID("2"), snap.Selected)
	assert.Equal(t, domain.Totals{Duration: 15, Cost: 8}, snap.Totals)
	assert.Equal(t, bItems, snap.Items)
}

func TestController_StaleWorkItemsDroppedBeforeLatestResolves(t *testing.T) {
	c := readyController(t)

	reqA, err := c.Select("1")
	require.NoError(t, err)
	_, err = c.Select("2")
	require.NoError(t, err)

	assert.False(t, c.ResolveWorkItems(reqA, cutAndColor(), nil))

	snap := c.Snapshot()
	assert.Equal(t, StateLoadingWorkItems, snap.State)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Totals.IsZero())
}

func TestController_ReselectResetsTotalsImmediately(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, cutAndColor(), nil))
	require.Equal(t, domain.Totals{Duration: 90, Cost: 70}, c.Totals())

	_, err = c.Select("2")
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, StateLoadingWorkItems, snap.State)
	assert.Empty(t, snap.Items)
	assert.True(t, snap.Totals.IsZero())
}

func TestController_WorkItemsFailureZeroesTotals(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, cutAndColor(), nil))

	req, err = c.Select("2")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, nil, salon.ErrNetwork))

	snap := c.Snapshot()
	assert.Equal(t, StateWorkItemsFailed, snap.State)
	assert.True(t, snap.Totals.IsZero())
	assert.ErrorIs(t, snap.WorkItemsErr, salon.ErrNetwork)
	assert.Len(t, snap.Appointments, 2, "appointments unaffected")
}

func TestController_SelectFromWorkItemsFailed(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, nil, errors.New("boom")))

	req, err = c.Select("1")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, cutAndColor(), nil))

	assert.Equal(t, StateWorkItemsReady, c.State())
	assert.Equal(t, 90.0, c.Totals().Duration)
}

func TestController_SelectRequiresAppointments(t *testing.T) {
	c := NewController()
	_, err := c.Select("1")
	assert.ErrorIs(t, err, ErrAppointmentsNotReady)

	req := c.SetDate(testutil.Day(2024, 5, 1))
	_, err = c.Select("1")
	assert.ErrorIs(t, err, ErrAppointmentsNotReady, "still loading")

	require.True(t, c.ResolveAppointments(req, nil, salon.ErrNetwork))
	_, err = c.Select("1")
	assert.ErrorIs(t, err, ErrAppointmentsNotReady, "failed")
}

func TestController_RefreshWithoutDate(t *testing.T) {
	c := NewController()
	_, err := c.Refresh()
	assert.ErrorIs(t, err, ErrNoDate)
}

func TestController_DateChangeSupersedesEverything(t *testing.T) {
	c := readyController(t)
	oldAppts, err := c.Refresh()
	require.NoError(t, err)
	require.True(t, c.ResolveAppointments(oldAppts, scenarioAppointments(), nil))
	itemsReq, err := c.Select("1")
	require.NoError(t, err)
	staleAppts, err := c.Refresh()
	require.NoError(t, err)

	newReq := c.SetDate(testutil.Day(2024, 5, 2))

	assert.Equal(t, StateLoadingAppointments, c.State())
	assert.True(t, c.Selected().IsZero())
	assert.False(t, c.ResolveWorkItems(itemsReq, cutAndColor(), nil))
	assert.False(t, c.ResolveAppointments(staleAppts, nil, nil))

	fresh := []domain.Appointment{testutil.NewTestAppointment("Cy", testutil.Day(2024, 5, 2))}
	require.True(t, c.ResolveAppointments(newReq, fresh, nil))
	snap := c.Snapshot()
	assert.Equal(t, fresh, snap.Appointments)
	assert.True(t, snap.Totals.IsZero())
	date, ok := c.Date()
	assert.True(t, ok)
	assert.Equal(t, testutil.Day(2024, 5, 2), date)
}

func TestController_StaleAppointmentsDropped(t *testing.T) {
	c := NewController()
	first := c.SetDate(testutil.Day(2024, 5, 1))
	second := c.SetDate(testutil.Day(2024, 5, 2))

	late := []domain.Appointment{testutil.NewTestAppointment("Late", testutil.Day(2024, 5, 2))}
	require.True(t, c.ResolveAppointments(second, late, nil))
	assert.False(t, c.ResolveAppointments(first, scenarioAppointments(), nil))

	assert.Equal(t, late, c.Snapshot().Appointments)
}

func TestController_ResolveTwiceIsIgnored(t *testing.T) {
	c := NewController()
	req := c.SetDate(testutil.Day(2024, 5, 1))

	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))
	assert.False(t, c.ResolveAppointments(req, nil, salon.ErrNetwork))
	assert.Equal(t, StateAppointmentsReady, c.State())
}

func TestController_ResolveWrongKindIsIgnored(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)

	assert.False(t, c.ResolveAppointments(req, nil, nil))
	assert.Equal(t, StateLoadingWorkItems, c.State())
}

func TestController_RefreshKeepsSelectionWhenPresent(t *testing.T) {
	c := readyController(t)
	itemsReq, err := c.Select("2")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(itemsReq, cutAndColor(), nil))

	req, err := c.Refresh()
	require.NoError(t, err)
	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))

	snap := c.Snapshot()
	assert.Equal(t, StateWorkItemsReady, snap.State)
	assert.Equal(t, domain.AppointmentID("2"), snap.Selected)
	assert.Equal(t, 70.0, snap.Totals.Cost)
}

func TestController_RefreshDropsVanishedSelection(t *testing.T) {
	c := readyController(t)
	itemsReq, err := c.Select("2")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(itemsReq, cutAndColor(), nil))

	req, err := c.Refresh()
	require.NoError(t, err)
	require.True(t, c.ResolveAppointments(req, scenarioAppointments()[:1], nil))

	snap := c.Snapshot()
	assert.Equal(t, StateAppointmentsReady, snap.State)
	assert.True(t, snap.Selected.IsZero())
	assert.True(t, snap.Totals.IsZero())
}

func TestController_Deselect(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)

	c.Deselect()

	assert.Equal(t, StateAppointmentsReady, c.State())
	assert.False(t, c.ResolveWorkItems(req, cutAndColor(), nil))
	assert.True(t, c.Totals().IsZero())
}

func TestController_SnapshotIsIsolated(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)
	require.True(t, c.ResolveWorkItems(req, cutAndColor(), nil))

	snap := c.Snapshot()
	snap.Appointments[0].User = "mutated"
	snap.Items[0].Cost = 999

	fresh := c.Snapshot()
	assert.Equal(t, "Ann", fresh.Appointments[0].User)
	assert.Equal(t, 70.0, fresh.Totals.Cost)
}

func TestController_ResolveCopiesInput(t *testing.T) {
	c := readyController(t)
	req, err := c.Select("1")
	require.NoError(t, err)
	items := cutAndColor()
	require.True(t, c.ResolveWorkItems(req, items, nil))

	items[0].Cost = 1000

	assert.Equal(t, 70.0, c.Totals().Cost)
}

func TestController_ObserverSeesTransitionsAndStaleDrops(t *testing.T) {
	obs := &recordingObserver{}
	c := NewController(WithObserver(obs))

	req := c.SetDate(testutil.Day(2024, 5, 1))
	require.True(t, c.ResolveAppointments(req, scenarioAppointments(), nil))
	reqA, err := c.Select("1")
	require.NoError(t, err)
	_, err = c.Select("2")
	require.NoError(t, err)
	c.ResolveWorkItems(reqA, nil, nil)

	assert.Equal(t, []string{
		"idle->loading_appointments:set_date",
		"loading_appointments->appointments_ready:appointments_loaded",
		"appointments_ready->loading_work_items:select",
	}, obs.transitions)
	require.Len(t, obs.stale, 1)
	assert.Equal(t, reqA.Seq, obs.stale[0].Seq)
}

func TestLogObserver_Lines(t *testing.T) {
	var buf bytes.Buffer
	c := NewController(WithObserver(NewLogObserver(&buf)))

	req := c.SetDate(testutil.Day(2024, 5, 1))
	c.ResolveAppointments(Request{Kind: KindAppointments, Seq: req.Seq + 100}, nil, nil)

	out := buf.String()
	assert.Contains(t, out, "dashboard_transition from=idle to=loading_appointments cause=set_date")
	assert.Contains(t, out, "dashboard_stale_response kind=appointments")
}

func TestState_Helpers(t *testing.T) {
	assert.True(t, StateLoadingWorkItems.Loading())
	assert.False(t, StateWorkItemsReady.Loading())
	assert.True(t, StateWorkItemsFailed.CanSelect())
	assert.False(t, StateAppointmentsFailed.CanSelect())
	assert.Equal(t, "unknown", State(99).String())
}

func TestSnapshot_AppointmentsOn(t *testing.T) {
	c := readyController(t)

	on := c.Snapshot().AppointmentsOn(testutil.At(2024, 5, 2, 15, 0))

	require.Len(t, on, 1)
	assert.Equal(t, "Bo", on[0].User)
}

type recordingObserver struct {
	transitions []string
	stale       []Request
}

func (o *recordingObserver) OnTransition(from, to State, cause string) {
	o.transitions = append(o.transitions, from.String()+"->"+to.String()+":"+cause)
}

func (o *recordingObserver) OnStaleResponse(req Request) {
	o.stale = append(o.stale, req)
}
