package dashboard

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Observer receives dashboard lifecycle events for logging.
type Observer interface {
	OnTransition(from, to State, cause string)
	OnStaleResponse(req Request)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnTransition(State, State, string) {}
func (NoopObserver) OnStaleResponse(Request)           {}

// LogObserver writes events as single key=value lines.
type LogObserver struct {
	mu sync.Mutex
	w  io.Writer
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnTransition(from, to State, cause string) {
	o.printf("dashboard_transition from=%s to=%s cause=%s", from, to, cause)
}

func (o *LogObserver) OnStaleResponse(req Request) {
	o.printf("dashboard_stale_response kind=%s seq=%d request_id=%s appointment_id=%s",
		req.Kind, req.Seq, req.ID, req.AppointmentID)
}

func (o *LogObserver) printf(format string, args ...any) {
	ts := time.Now().UTC().Format(time.RFC3339)
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, "[%s] "+format+"\n", append([]any{ts}, args...)...)
}
