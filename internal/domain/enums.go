package domain

// AppointmentStatus values are the wire values used by the salon backend.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pendiente"
	AppointmentApproved  AppointmentStatus = "aprobada"
	AppointmentCancelled AppointmentStatus = "cancelada"
	AppointmentCompleted AppointmentStatus = "completada"
)

// Valid reports whether s is one of the statuses the backend accepts.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentApproved, AppointmentCancelled, AppointmentCompleted:
		return true
	}
	return false
}

// Label returns the English display name of the status.
func (s AppointmentStatus) Label() string {
	switch s {
	case AppointmentPending:
		return "pending"
	case AppointmentApproved:
		return "approved"
	case AppointmentCancelled:
		return "cancelled"
	case AppointmentCompleted:
		return "completed"
	default:
		return string(s)
	}
}

// ParseAppointmentStatus accepts either the wire value or the English label.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	for _, st := range []AppointmentStatus{AppointmentPending, AppointmentApproved, AppointmentCancelled, AppointmentCompleted} {
		if s == string(st) || s == st.Label() {
			return st, true
		}
	}
	return "", false
}

type StylistRole string

const (
	RoleAdmin   StylistRole = "admin"
	RoleStylist StylistRole = "stylist"
	RoleUser    StylistRole = "user"
)
