package packages

import (
	"context"
	"errors"

	"github.com/axis-meridian-dev/Luber-development/internal/core"
)

var ErrUnauthorized = errors.New("unauthorized")

// DeleteOutcome tells the caller whether the package row was removed
// or merely deactivated because bookings still reference it.
type DeleteOutcome string

const (
	Deleted     DeleteOutcome = "deleted"
	Deactivated DeleteOutcome = "deactivated"
)

type Service struct {
	repo  Repository
	shops core.ShopReader
}

func NewService(repo Repository, shops core.ShopReader) *Service {
	return &Service{repo: repo, shops: shops}
}

func validateInput(input PackageInput) error {
	if input.PackageName == "" || len(input.PackageName) > 100 {
		return errors.New("package name is required and must be at most 100 characters")
	}
	if input.PriceCents <= 0 {
		return errors.New("price must be greater than 0")
	}
	if input.EstimatedDurationMinutes < 1 || input.EstimatedDurationMinutes > 1440 {
		return errors.New("duration must be between 1 minute and 24 hours")
	}
	return nil
}

// ownedPackage loads a package and checks it belongs to the caller's shop.
func (s *Service) ownedPackage(ctx context.Context, ownerID, packageID string) (*ServicePackage, error) {
	shopID, err := s.shops.ShopIDForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.repo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg.ShopID != shopID {
		return nil, ErrUnauthorized
	}
	return pkg, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------
func (s *Service) CreatePackage(ctx context.Context, ownerID string, input PackageInput) (*ServicePackage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	shopID, err := s.shops.ShopIDForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	pkg := &ServicePackage{
		ShopID:                   shopID,
		PackageName:              input.PackageName,
		Description:              input.Description,
		PriceCents:               input.PriceCents,
		EstimatedDurationMinutes: input.EstimatedDurationMinutes,
		OilType:                  input.OilType,
		IncludesFilter:           input.IncludesFilter,
		IncludesInspection:       input.IncludesInspection,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// --------------------------------------------------
// Update
// --------------------------------------------------
func (s *Service) UpdatePackage(ctx context.Context, ownerID, packageID string, input PackageInput) (*ServicePackage, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	pkg, err := s.ownedPackage(ctx, ownerID, packageID)
	if err != nil {
		return nil, err
	}

	pkg.PackageName = input.PackageName
	pkg.Description = input.Description
	pkg.PriceCents = input.PriceCents
	pkg.EstimatedDurationMinutes = input.EstimatedDurationMinutes
	pkg.OilType = input.OilType
	pkg.IncludesFilter = input.IncludesFilter
	pkg.IncludesInspection = input.IncludesInspection

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// --------------------------------------------------
// List
// --------------------------------------------------
func (s *Service) ListPackages(ctx context.Context, ownerID string) ([]*ServicePackage, error) {
	shopID, err := s.shops.ShopIDForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByShop(ctx, shopID)
}

// --------------------------------------------------
// Delete (soft when referenced by a booking)
// --------------------------------------------------
func (s *Service) DeletePackage(ctx context.Context, ownerID, packageID string) (DeleteOutcome, error) {
	pkg, err := s.ownedPackage(ctx, ownerID, packageID)
	if err != nil {
		return "", err
	}

	referenced, err := s.repo.IsReferenced(ctx, pkg.ID)
	if err != nil {
		return "", err
	}

	if referenced {
		if err := s.repo.SetActive(ctx, pkg.ID, false); err != nil {
			return "", err
		}
		return Deactivated, nil
	}

	if err := s.repo.HardDelete(ctx, pkg.ID); err != nil {
		return "", err
	}
	return Deleted, nil
}

// --------------------------------------------------
// Toggle active
// --------------------------------------------------
func (s *Service) TogglePackageActive(ctx context.Context, ownerID, packageID string, active bool) error {
	pkg, err := s.ownedPackage(ctx, ownerID, packageID)
	if err != nil {
		return err
	}
	return s.repo.SetActive(ctx, pkg.ID, active)
}
