package domain

import (
	"fmt"
	"strings"
	"time"
)

// AppointmentID is the backend's identifier for an appointment. The client
// treats it as opaque.
type AppointmentID string

func (id AppointmentID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id AppointmentID) IsZero() bool { return id == "" }

type Appointment struct {
	ID        AppointmentID
	Date      time.Time
	User      string
	Status    AppointmentStatus
	UserID    string
	StylistID string
}

// appointmentDateLayouts are tried in order when decoding backend dates.
var appointmentDateLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAppointmentDate parses the date formats emitted by the backend.
// Times without a zone are interpreted in loc.
func ParseAppointmentDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range appointmentDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized appointment date %q", s)
}

// SameDay reports whether the appointment falls on the calendar day of d.
func (a Appointment) SameDay(d time.Time) bool {
	y1, m1, d1 := a.Date.Date()
	y2, m2, d2 := d.In(a.Date.Location()).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// HasTime reports whether the appointment carries a time of day.
func (a Appointment) HasTime() bool {
	return a.Date.Hour() != 0 || a.Date.Minute() != 0
}

// IndexOf returns the position of id in appts, or -1.
func IndexOf(appts []Appointment, id AppointmentID) int {
	for i, a := range appts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
