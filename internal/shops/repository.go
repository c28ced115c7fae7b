package shops

import "context"

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID string) (*Shop, error)
	IsOwner(ctx context.Context, shopID, userID string) (bool, error)

	CreateTechnician(ctx context.Context, tech *Technician) error
	ListTechnicians(ctx context.Context, shopID string) ([]*Technician, error)
	CountActiveTechnicians(ctx context.Context, shopID string) (int, error)
	DeactivateTechnician(ctx context.Context, shopID, technicianID string) error
	SetTechnicianAvailability(ctx context.Context, shopID, technicianID string, available bool) error
}
