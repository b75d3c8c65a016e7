package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

var testIDCounter atomic.Int64

// Appointment options
type AppointmentOption func(*domain.Appointment)

func WithAppointmentID(id domain.AppointmentID) AppointmentOption {
	return func(a *domain.Appointment) {
		a.ID = id
	}
}

func WithStatus(s domain.AppointmentStatus) AppointmentOption {
	return func(a *domain.Appointment) {
		a.Status = s
	}
}

func WithStylistID(id string) AppointmentOption {
	return func(a *domain.Appointment) {
		a.StylistID = id
	}
}

// NewTestAppointment returns a pending appointment for user at date with a
// unique numeric id.
func NewTestAppointment(user string, date time.Time, opts ...AppointmentOption) domain.Appointment {
	a := domain.Appointment{
		ID:        domain.AppointmentID(fmt.Sprintf("%d", testIDCounter.Add(1))),
		Date:      date,
		User:      user,
		Status:    domain.AppointmentPending,
		UserID:    fmt.Sprintf("u-%s", user),
		StylistID: "1",
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func NewTestWorkItem(description string, durationMin, cost float64) domain.WorkItem {
	return domain.WorkItem{
		ID:          fmt.Sprintf("w%d", testIDCounter.Add(1)),
		Description: description,
		Duration:    durationMin,
		Cost:        cost,
	}
}

func NewTestStylist(name string) *domain.Stylist {
	return &domain.Stylist{
		ID:    "1",
		Email: "stylist@salon.test",
		Name:  name,
		Phone: "555-0100",
		Role:  domain.RoleStylist,
	}
}

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// At returns the given date and time of day in UTC.
func At(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}
