package dashboard

import (
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
)

// Kind is the resource category a Request fetches. A new request of a kind
// supersedes every earlier one of the same kind.
type Kind int

const (
	KindAppointments Kind = iota + 1
	KindWorkItems
)

func (k Kind) String() string {
	switch k {
	case KindAppointments:
		return "appointments"
	case KindWorkItems:
		return "work_items"
	default:
		return "unknown"
	}
}

// Request identifies one fetch issued by the Controller.
type Request struct {
	Kind Kind
	Seq  uint64
	// ID is a unique id for correlating logs with backend requests.
	ID            string
	Date          time.Time
	AppointmentID domain.AppointmentID
}

// IsZero reports whether r was never issued.
func (r Request) IsZero() bool { return r.Seq == 0 }
