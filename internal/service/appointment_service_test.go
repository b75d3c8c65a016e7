package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
	"github.com/alexanderramin/chairside/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentService_ListPending_PreservesOrder(t *testing.T) {
	fake := testutil.NewFakeSalon()
	late := testutil.NewTestAppointment("Ana", testutil.At(2024, 5, 2, 17, 0))
	early := testutil.NewTestAppointment("Luis", testutil.At(2024, 5, 2, 9, 0))
	fake.SetPending(late, early)
	svc := NewAppointmentService(fake)

	appts, err := svc.ListPending(context.Background())

	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, late.ID, appts[0].ID)
	assert.Equal(t, early.ID, appts[1].ID)
}

func TestAppointmentService_ListPending_Empty(t *testing.T) {
	svc := NewAppointmentService(testutil.NewFakeSalon())

	appts, err := svc.ListPending(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, appts)
	assert.Empty(t, appts)
}

func TestAppointmentService_ListPending_WrapsError(t *testing.T) {
	fake := testutil.NewFakeSalon()
	fake.PendingErr = salon.ErrTimeout
	svc := NewAppointmentService(fake)

	_, err := svc.ListPending(context.Background())

	assert.ErrorIs(t, err, salon.ErrTimeout)
	assert.Contains(t, err.Error(), "pending appointments")
}

func TestAppointmentService_ListDone(t *testing.T) {
	fake := testutil.NewFakeSalon()
	fake.SetDone(testutil.NewTestAppointment("Eva", testutil.At(2024, 4, 1, 10, 0), testutil.WithStatus(domain.AppointmentCompleted)))
	svc := NewAppointmentService(fake)

	appts, err := svc.ListDone(context.Background())

	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, domain.AppointmentCompleted, appts[0].Status)
}

func TestAppointmentService_Complete(t *testing.T) {
	fake := testutil.NewFakeSalon()
	a := testutil.NewTestAppointment("Ana", testutil.At(2024, 5, 2, 10, 0))
	fake.SetPending(a)
	svc := NewAppointmentService(fake)

	got, err := svc.Complete(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCompleted, got.Status)

	pending, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
	done, err := svc.ListDone(context.Background())
	require.NoError(t, err)
	assert.Len(t, done, 1)
}

func TestAppointmentService_Cancel(t *testing.T) {
	fake := testutil.NewFakeSalon()
	a := testutil.NewTestAppointment("Ana", testutil.At(2024, 5, 2, 10, 0))
	fake.SetPending(a)
	svc := NewAppointmentService(fake)

	got, err := svc.Cancel(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentCancelled, got.Status)
	assert.Equal(t, 1, fake.Calls(salon.OpUpdateStatus))
}

func TestAppointmentService_Complete_MissingID(t *testing.T) {
	fake := testutil.NewFakeSalon()
	svc := NewAppointmentService(fake)

	_, err := svc.Complete(context.Background(), "")

	assert.ErrorIs(t, err, ErrMissingAppointmentID)
	assert.Zero(t, fake.Calls(salon.OpUpdateStatus))
}

func TestAppointmentService_Complete_UnknownAppointment(t *testing.T) {
	svc := NewAppointmentService(testutil.NewFakeSalon())

	_, err := svc.Complete(context.Background(), "404")

	status, ok := salon.StatusOf(err)
	require.True(t, ok)
	assert.Equal(t, 404, status)
}

func TestAppointmentService_ObserverReceivesEvents(t *testing.T) {
	fake := testutil.NewFakeSalon()
	fake.SetPending(testutil.NewTestAppointment("Ana", testutil.At(2024, 5, 2, 10, 0)))
	var events []UseCaseEvent
	obs := observerFunc(func(_ context.Context, e UseCaseEvent) { events = append(events, e) })
	svc := NewAppointmentService(fake, obs)

	_, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	fake.PendingErr = errors.New("boom")
	_, err = svc.ListPending(context.Background())
	require.Error(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, "list-pending", events[0].Name)
	assert.True(t, events[0].Success)
	assert.Equal(t, 1, events[0].Fields["count"])
	assert.False(t, events[1].Success)
	assert.GreaterOrEqual(t, events[1].Duration, time.Duration(0))
}

func TestLogUseCaseObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	svc := NewAppointmentService(testutil.NewFakeSalon(), NewLogUseCaseObserver(&buf))

	_, err := svc.ListPending(context.Background())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=list-pending")
	assert.Contains(t, out, "success=true")
}

func TestNewLogUseCaseObserver_NilWriter(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

type observerFunc func(context.Context, UseCaseEvent)

func (f observerFunc) ObserveUseCase(ctx context.Context, e UseCaseEvent) { f(ctx, e) }
