package pricing

import (
	"context"
	"errors"
	"fmt"

	"studiodesk/internal/domain"
)

var ErrValidation = errors.New("validation failed")

type Repository interface {
	GetSettings(ctx context.Context) (*domain.PricingSettings, error)
	SaveSettings(ctx context.Context, settings *domain.PricingSettings) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context) (*domain.PricingSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing settings: %w", err)
	}
	return settings, nil
}

type UpdateInput struct {
	HourlyRate             int64
	ExtraPersonRatePerHour int64
	HalfDay                domain.DayPackage
	FullDay                domain.DayPackage
}

// Update replaces the live tariff. Bookings created before the change
// keep the rates frozen in their snapshot.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*domain.PricingSettings, error) {
	if in.HourlyRate <= 0 || in.ExtraPersonRatePerHour <= 0 {
		return nil, fmt.Errorf("%w: rates must be positive", ErrValidation)
	}
	if in.HalfDay.Hours <= 0 || in.HalfDay.Price <= 0 ||
		in.FullDay.Hours <= 0 || in.FullDay.Price <= 0 {
		return nil, fmt.Errorf("%w: day packages must have positive hours and price", ErrValidation)
	}
	if in.FullDay.Hours <= in.HalfDay.Hours {
		return nil, fmt.Errorf("%w: full day must be longer than half day", ErrValidation)
	}

	current, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pricing settings: %w", err)
	}

	current.HourlyRate = in.HourlyRate
	current.ExtraPersonRatePerHour = in.ExtraPersonRatePerHour
	current.HalfDay = in.HalfDay
	current.FullDay = in.FullDay

	if err := s.repo.SaveSettings(ctx, current); err != nil {
		return nil, fmt.Errorf("save pricing settings: %w", err)
	}
	return current, nil
}
