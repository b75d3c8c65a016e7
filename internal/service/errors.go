package service

import "errors"

var (
	// ErrMissingAppointmentID is returned when an operation needs an
	// appointment id and none was given.
	ErrMissingAppointmentID = errors.New("appointment id is required")

	// ErrInvalidWorkItem is returned when the backend sends a work item with
	// a negative duration or cost.
	ErrInvalidWorkItem = errors.New("invalid work item")

	// ErrInvalidProfile is returned when a profile update fails validation
	// before it is sent.
	ErrInvalidProfile = errors.New("invalid profile update")
)
