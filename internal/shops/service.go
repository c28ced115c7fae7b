package shops

import (
	"context"
	"errors"
	"fmt"

	"github.com/axis-meridian-dev/Luber-development/internal/payments"
)

var (
	ErrNotShopOwner = errors.New("unauthorized")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Add technician (tier roster limit enforced)
// --------------------------------------------------
func (s *Service) AddTechnician(ctx context.Context, ownerID, profileID, licenseNumber string) (*Technician, error) {
	if profileID == "" || licenseNumber == "" {
		return nil, errors.New("missing required fields")
	}

	shop, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	plan, ok := payments.PlanForTier(shop.SubscriptionTier)
	if !ok {
		return nil, fmt.Errorf("invalid subscription tier: %q", shop.SubscriptionTier)
	}

	count, err := s.repo.CountActiveTechnicians(ctx, shop.ID)
	if err != nil {
		return nil, err
	}
	if count >= plan.MaxTechnicians {
		return nil, fmt.Errorf("your %s plan allows a maximum of %d technician(s), please upgrade to add more",
			shop.SubscriptionTier, plan.MaxTechnicians)
	}

	tech := &Technician{
		ShopID:        shop.ID,
		ProfileID:     profileID,
		LicenseNumber: licenseNumber,
		IsAvailable:   true,
	}

	if err := s.repo.CreateTechnician(ctx, tech); err != nil {
		return nil, err
	}

	return tech, nil
}

// --------------------------------------------------
// List roster
// --------------------------------------------------
func (s *Service) ListTechnicians(ctx context.Context, ownerID string) ([]*Technician, error) {
	shop, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTechnicians(ctx, shop.ID)
}

// --------------------------------------------------
// Remove technician (soft: row kept, deactivated)
// --------------------------------------------------
func (s *Service) RemoveTechnician(ctx context.Context, ownerID, technicianID string) error {
	shop, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.repo.DeactivateTechnician(ctx, shop.ID, technicianID)
}

// --------------------------------------------------
// Toggle availability
// --------------------------------------------------
func (s *Service) SetAvailability(ctx context.Context, ownerID, technicianID string, available bool) error {
	shop, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	return s.repo.SetTechnicianAvailability(ctx, shop.ID, technicianID, available)
}
