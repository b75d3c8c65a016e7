package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
)

// FakeSalon is an in-memory salon.Client. Errors set on it are returned by
// the matching call until cleared.
type FakeSalon struct {
	mu      sync.Mutex
	pending []domain.Appointment
	done    []domain.Appointment
	items   map[domain.AppointmentID][]domain.WorkItem
	stylist *domain.Stylist

	PendingErr error
	DoneErr    error
	ItemsErr   error
	StylistErr error
	UpdateErr  error
	ProfileErr error

	calls map[salon.Operation]int
}

var _ salon.Client = (*FakeSalon)(nil)

func NewFakeSalon() *FakeSalon {
	return &FakeSalon{
		items:   make(map[domain.AppointmentID][]domain.WorkItem),
		stylist: NewTestStylist("Marta"),
		calls:   make(map[salon.Operation]int),
	}
}

// SetPending replaces the pending appointment list.
func (f *FakeSalon) SetPending(appts ...domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append([]domain.Appointment(nil), appts...)
}

// SetDone replaces the completed appointment list.
func (f *FakeSalon) SetDone(appts ...domain.Appointment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = append([]domain.Appointment(nil), appts...)
}

// SetItems replaces the work items of one appointment.
func (f *FakeSalon) SetItems(id domain.AppointmentID, items ...domain.WorkItem) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id] = append([]domain.WorkItem(nil), items...)
}

func (f *FakeSalon) SetStylist(s *domain.Stylist) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stylist = s
}

// SetError configures the error returned by op. A nil err clears it.
func (f *FakeSalon) SetError(op salon.Operation, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch op {
	case salon.OpPendingAppointments:
		f.PendingErr = err
	case salon.OpDoneAppointments:
		f.DoneErr = err
	case salon.OpAppointmentItems:
		f.ItemsErr = err
	case salon.OpStylistInfo:
		f.StylistErr = err
	case salon.OpUpdateStatus:
		f.UpdateErr = err
	case salon.OpUpdateProfile:
		f.ProfileErr = err
	}
}

// Calls returns how many times op was invoked.
func (f *FakeSalon) Calls(op salon.Operation) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeSalon) PendingAppointments(ctx context.Context) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpPendingAppointments]++
	if f.PendingErr != nil {
		return nil, f.PendingErr
	}
	return append([]domain.Appointment{}, f.pending...), nil
}

func (f *FakeSalon) DoneAppointments(ctx context.Context) ([]domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpDoneAppointments]++
	if f.DoneErr != nil {
		return nil, f.DoneErr
	}
	return append([]domain.Appointment{}, f.done...), nil
}

func (f *FakeSalon) AppointmentItems(ctx context.Context, id domain.AppointmentID) ([]domain.WorkItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpAppointmentItems]++
	if f.ItemsErr != nil {
		return nil, f.ItemsErr
	}
	return append([]domain.WorkItem{}, f.items[id]...), nil
}

func (f *FakeSalon) StylistInfo(ctx context.Context) (*domain.Stylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpStylistInfo]++
	if f.StylistErr != nil {
		return nil, f.StylistErr
	}
	if f.stylist == nil {
		return &domain.Stylist{}, nil
	}
	s := *f.stylist
	return &s, nil
}

// UpdateAppointmentStatus moves a pending appointment to the done list when
// completed and drops it when cancelled.
func (f *FakeSalon) UpdateAppointmentStatus(ctx context.Context, id domain.AppointmentID, status domain.AppointmentStatus) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpUpdateStatus]++
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	i := domain.IndexOf(f.pending, id)
	if i < 0 {
		return nil, &salon.ServerError{Status: 404, Body: "appointment not found"}
	}
	a := f.pending[i]
	a.Status = status
	f.pending = append(f.pending[:i:i], f.pending[i+1:]...)
	if status == domain.AppointmentCompleted {
		f.done = append(f.done, a)
	}
	return &a, nil
}

// UpdateProfile applies update to the stored stylist. An update without an
// email is rejected with a 400 like the backend does.
func (f *FakeSalon) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Stylist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[salon.OpUpdateProfile]++
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	if update.Email == "" {
		return nil, &salon.ServerError{Status: 400, Body: "email is required"}
	}
	var current domain.Stylist
	if f.stylist != nil {
		current = *f.stylist
	}
	updated := update.Apply(current)
	f.stylist = &updated
	s := updated
	return &s, nil
}
