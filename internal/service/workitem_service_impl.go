package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
)

type workItemService struct {
	client   salon.Client
	observer UseCaseObserver
}

func NewWorkItemService(client salon.Client, observers ...UseCaseObserver) WorkItemService {
	return &workItemService{
		client:   client,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ListByAppointment returns the appointment's work items in server order.
// A batch containing an item with negative duration or cost is rejected as a
// whole so totals are never computed from bad data.
func (s *workItemService) ListByAppointment(ctx context.Context, id domain.AppointmentID) (items []domain.WorkItem, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "list-work-items",
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"appointment_id": id.String(), "count": len(items)},
			StartedAt: startedAt,
		})
	}()

	if id.IsZero() {
		return nil, ErrMissingAppointmentID
	}
	items, err = s.client.AppointmentItems(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching work items for appointment %s: %w", id, err)
	}
	for _, w := range items {
		if verr := w.Validate(); verr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidWorkItem, verr)
		}
	}
	if items == nil {
		items = []domain.WorkItem{}
	}
	return items, nil
}
