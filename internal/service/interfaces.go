package service

import (
	"context"

	"github.com/alexanderramin/chairside/internal/domain"
)

type AppointmentService interface {
	ListPending(ctx context.Context) ([]domain.Appointment, error)
	ListDone(ctx context.Context) ([]domain.Appointment, error)
	Complete(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error)
	Cancel(ctx context.Context, id domain.AppointmentID) (*domain.Appointment, error)
}

type WorkItemService interface {
	ListByAppointment(ctx context.Context, id domain.AppointmentID) ([]domain.WorkItem, error)
}

type StylistService interface {
	Info(ctx context.Context) (*domain.Stylist, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.Stylist, error)
}
