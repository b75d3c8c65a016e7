package dashboard

import (
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

// Snapshot is an immutable copy of the dashboard state. Slices are owned by
// the snapshot and may be retained by the caller.
type Snapshot struct {
	State    State
	Date     time.Time
	HasDate  bool
	Selected domain.AppointmentID

	Appointments []domain.Appointment
	// AppointmentsLoaded is true once any appointment fetch has succeeded.
	AppointmentsLoaded bool
	AppointmentsErr    error

	Items        []domain.WorkItem
	Totals       domain.Totals
	WorkItemsErr error
}

// SelectedAppointment returns the selected appointment if it is present in
// the collection.
func (s Snapshot) SelectedAppointment() (domain.Appointment, bool) {
	if s.Selected.IsZero() {
		return domain.Appointment{}, false
	}
	if i := domain.IndexOf(s.Appointments, s.Selected); i >= 0 {
		return s.Appointments[i], true
	}
	return domain.Appointment{}, false
}

// AppointmentsOn returns the appointments falling on day, in collection order.
func (s Snapshot) AppointmentsOn(day time.Time) []domain.Appointment {
	var out []domain.Appointment
	for _, a := range s.Appointments {
		if a.SameDay(day) {
			out = append(out, a)
		}
	}
	return out
}
