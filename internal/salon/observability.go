package salon

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Operation names a salon endpoint for logging.
type Operation string

const (
	OpPendingAppointments Operation = "pending_appointments"
	OpDoneAppointments    Operation = "done_appointments"
	OpAppointmentItems    Operation = "appointment_items"
	OpStylistInfo         Operation = "stylist_info"
	OpUpdateStatus        Operation = "update_status"
	OpUpdateProfile       Operation = "update_profile"
)

// CallEvent records metadata about a single salon service call.
type CallEvent struct {
	Op        Operation
	RequestID string
	Status    int
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about salon calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, "[%s] salon_call op=%s request_id=%s http_status=%d attempts=%d latency_ms=%d status=%s\n",
		ts, event.Op, event.RequestID, event.Status, event.Attempts, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
