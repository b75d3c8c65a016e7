package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
)

type appointmentService struct {
	client   salon.Client
	observer UseCaseObserver
}

func NewAppointmentService(client salon.Client, observers ...UseCaseObserver) AppointmentService {
	return &appointmentService{
		client:   client,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *appointmentService) ListPending(ctx context.Context) (appts []domain.Appointment, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "list-pending", startedAt, err, map[string]any{"count": len(appts)})
	}()

	appts, err = s.client.PendingAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching pending appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) ListDone(ctx context.Context) (appts []domain.Appointment, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, "list-done", startedAt, err, map[string]any{"count": len(appts)})
	}()

	appts, err = s.client.DoneAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching completed appointments: %w", err)
	}
	return appts, nil
}

func (s *appointmentService) Complete(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error) {
	return s.transition(ctx, "complete-appointment", id, domain.AppointmentCompleted)
}

func (s *appointmentService) Cancel(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error) {
	return s.transition(ctx, "cancel-appointment", id, domain.AppointmentCancelled)
}

func (s *appointmentService) transition(ctx context.Context, name string, id domain.AppointmentID, to domain.AppointmentStatus) (appt *domain.Appointment, err error) {
	startedAt := time.Now()
	defer func() {
		s.observe(ctx, name, startedAt, err, map[string]any{"appointment_id": id.String(), "status": string(to)})
	}()

	if id.IsZero() {
		return nil, ErrMissingAppointmentID
	}
	appt, err = s.client.UpdateAppointmentStatus(ctx, id, to)
	if err != nil {
		return nil, fmt.Errorf("setting appointment %s to %s: %w", id, to.Label(), err)
	}
	if appt == nil {
		appt = &domain.Appointment{ID: id, Status: to}
	}
	return appt, nil
}

func (s *appointmentService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
		StartedAt: startedAt,
	})
}
