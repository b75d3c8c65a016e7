package dashboard

import (
	"errors"
	"slices"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/google/uuid"
)

var (
	// ErrNoDate is returned by Refresh before any date has been set.
	ErrNoDate = errors.New("no date selected")

	// ErrAppointmentsNotReady is returned by Select while the appointment
	// collection is loading, failed or was never requested.
	ErrAppointmentsNotReady = errors.New("appointments are not ready")
)

// Controller owns the dashboard state. It is not safe for concurrent use;
// the TUI calls it only from its Update loop.
type Controller struct {
	observer Observer

	date    time.Time
	hasDate bool

	appts       []domain.Appointment
	apptsLoaded bool
	apptReq     Request
	apptPending bool
	apptErr     error

	selected     domain.AppointmentID
	items        []domain.WorkItem
	itemReq      Request
	itemsPending bool
	itemsErr     error

	seq uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the observer notified of transitions and stale drops.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewController returns a Controller in StateIdle.
func NewController(opts ...Option) *Controller {
	c := &Controller{observer: NoopObserver{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State derives the current state from the outstanding requests.
func (c *Controller) State() State {
	switch {
	case !c.hasDate:
		return StateIdle
	case c.apptPending:
		return StateLoadingAppointments
	case c.apptErr != nil:
		return StateAppointmentsFailed
	case c.selected.IsZero():
		return StateAppointmentsReady
	case c.itemsPending:
		return StateLoadingWorkItems
	case c.itemsErr != nil:
		return StateWorkItemsFailed
	default:
		return StateWorkItemsReady
	}
}

// SetDate makes date current and requests the appointment collection. The
// selection, its items and any in-flight request of either kind are
// discarded.
func (c *Controller) SetDate(date time.Time) Request {
	defer c.track("set_date")()

	c.date = date
	c.hasDate = true
	c.clearSelection()
	return c.requestAppointments()
}

// Refresh re-requests the appointment collection for the current date. The
// selection survives if the new collection still contains it.
func (c *Controller) Refresh() (Request, error) {
	if !c.hasDate {
		return Request{}, ErrNoDate
	}
	defer c.track("refresh")()
	return c.requestAppointments(), nil
}

// Select makes id the selected appointment and requests its work items. The
// previous items are dropped at once so totals read zero until the new
// items arrive.
func (c *Controller) Select(id domain.AppointmentID) (Request, error) {
	if !c.State().CanSelect() {
		return Request{}, ErrAppointmentsNotReady
	}
	defer c.track("select")()

	c.clearSelection()
	c.selected = id
	c.itemReq = c.newRequest(KindWorkItems)
	c.itemReq.AppointmentID = id
	c.itemsPending = true
	return c.itemReq, nil
}

// Deselect clears the selection and supersedes any in-flight items request.
func (c *Controller) Deselect() {
	defer c.track("deselect")()
	c.clearSelection()
}

// ResolveAppointments commits the outcome of an appointments request. It
// returns false, changing nothing, when req is not the latest outstanding
// appointments request. On error the previous collection is kept.
func (c *Controller) ResolveAppointments(req Request, appts []domain.Appointment, err error) bool {
	if !c.isCurrent(req, c.apptReq, c.apptPending) {
		c.observer.OnStaleResponse(req)
		return false
	}
	cause := "appointments_loaded"
	if err != nil {
		cause = "appointments_failed"
	}
	defer c.track(cause)()

	c.apptPending = false
	if err != nil {
		c.apptErr = err
		return true
	}
	c.apptErr = nil
	c.apptsLoaded = true
	c.appts = slices.Clone(appts)
	if c.appts == nil {
		c.appts = []domain.Appointment{}
	}
	if !c.selected.IsZero() && domain.IndexOf(c.appts, c.selected) < 0 {
		c.clearSelection()
	}
	return true
}

// ResolveWorkItems commits the outcome of a work-items request. It returns
// false, changing nothing, when req is not the latest outstanding items
// request. On error the items are left empty so totals read zero.
func (c *Controller) ResolveWorkItems(req Request, items []domain.WorkItem, err error) bool {
	if !c.isCurrent(req, c.itemReq, c.itemsPending) {
		c.observer.OnStaleResponse(req)
		return false
	}
	cause := "work_items_loaded"
	if err != nil {
		cause = "work_items_failed"
	}
	defer c.track(cause)()

	c.itemsPending = false
	if err != nil {
		c.items = nil
		c.itemsErr = err
		return true
	}
	c.itemsErr = nil
	c.items = slices.Clone(items)
	if c.items == nil {
		c.items = []domain.WorkItem{}
	}
	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:              c.State(),
		Date:               c.date,
		HasDate:            c.hasDate,
		Selected:           c.selected,
		Appointments:       slices.Clone(c.appts),
		AppointmentsLoaded: c.apptsLoaded,
		AppointmentsErr:    c.apptErr,
		Items:              slices.Clone(c.items),
		Totals:             domain.Aggregate(c.items),
		WorkItemsErr:       c.itemsErr,
	}
}

// Totals aggregates the current work items.
func (c *Controller) Totals() domain.Totals {
	return domain.Aggregate(c.items)
}

// Date returns the current date and whether one has been set.
func (c *Controller) Date() (time.Time, bool) {
	return c.date, c.hasDate
}

// Selected returns the selected appointment id, or the zero id.
func (c *Controller) Selected() domain.AppointmentID {
	return c.selected
}

func (c *Controller) requestAppointments() Request {
	c.apptReq = c.newRequest(KindAppointments)
	c.apptReq.Date = c.date
	c.apptPending = true
	c.apptErr = nil
	return c.apptReq
}

func (c *Controller) clearSelection() {
	c.selected = ""
	c.items = nil
	c.itemsErr = nil
	c.itemsPending = false
	// Bumping the sequence makes any in-flight items response stale.
	c.itemReq = Request{Kind: KindWorkItems, Seq: c.nextSeq()}
}

func (c *Controller) newRequest(kind Kind) Request {
	return Request{Kind: kind, Seq: c.nextSeq(), ID: uuid.NewString()}
}

func (c *Controller) nextSeq() uint64 {
	c.seq++
	return c.seq
}

func (c *Controller) isCurrent(req, latest Request, pending bool) bool {
	return pending && req.Kind == latest.Kind && req.Seq == latest.Seq
}

// track reports a transition if the state changed across the caller.
func (c *Controller) track(cause string) func() {
	from := c.State()
	return func() {
		if to := c.State(); to != from {
			c.observer.OnTransition(from, to, cause)
		}
	}
}
