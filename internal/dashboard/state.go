// Package dashboard holds the stylist dashboard's state machine: the chosen
// date, the pending appointment collection, the selected appointment and its
// work items. It performs no I/O. Callers issue the fetch described by each
// returned Request and hand the outcome back through the Resolve methods,
// which drop any result that is no longer the latest of its kind.
package dashboard

// State is the dashboard's position in its load cycle.
type State int

const (
	StateIdle State = iota
	StateLoadingAppointments
	StateAppointmentsReady
	StateAppointmentsFailed
	StateLoadingWorkItems
	StateWorkItemsReady
	StateWorkItemsFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingAppointments:
		return "loading_appointments"
	case StateAppointmentsReady:
		return "appointments_ready"
	case StateAppointmentsFailed:
		return "appointments_failed"
	case StateLoadingWorkItems:
		return "loading_work_items"
	case StateWorkItemsReady:
		return "work_items_ready"
	case StateWorkItemsFailed:
		return "work_items_failed"
	default:
		return "unknown"
	}
}

// Loading reports whether a fetch is outstanding in this state.
func (s State) Loading() bool {
	return s == StateLoadingAppointments || s == StateLoadingWorkItems
}

// CanSelect reports whether an appointment may be selected in this state.
func (s State) CanSelect() bool {
	switch s {
	case StateAppointmentsReady, StateLoadingWorkItems, StateWorkItemsReady, StateWorkItemsFailed:
		return true
	}
	return false
}
