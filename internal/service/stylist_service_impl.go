package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chairside/internal/domain"
	"github.com/alexanderramin/chairside/internal/salon"
)

type stylistService struct {
	client   salon.Client
	observer UseCaseObserver
}

func NewStylistService(client salon.Client, observers ...UseCaseObserver) StylistService {
	return &stylistService{
		client:   client,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *stylistService) Info(ctx context.Context) (*domain.Stylist, error) {
	st, err := s.client.StylistInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching stylist profile: %w", err)
	}
	return st, nil
}

func (s *stylistService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (st *domain.Stylist, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-profile",
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"email": update.Email},
			StartedAt: startedAt,
		})
	}()

	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	st, err = s.client.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("updating stylist profile: %w", err)
	}
	return st, nil
}
