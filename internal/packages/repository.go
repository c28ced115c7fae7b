package packages

import "context"

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	Create(ctx context.Context, pkg *ServicePackage) error
	Update(ctx context.Context, pkg *ServicePackage) error
	ListByShop(ctx context.Context, shopID string) ([]*ServicePackage, error)
	GetByID(ctx context.Context, id string) (*ServicePackage, error)

	// IsReferenced reports whether any booking points at the package.
	IsReferenced(ctx context.Context, id string) (bool, error)

	SetActive(ctx context.Context, id string, active bool) error
	HardDelete(ctx context.Context, id string) error
}
