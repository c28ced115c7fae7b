package jobs

import (
	"context"
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/pricing"
)

// Repository defines the data-access contract.
// Service depends ONLY on this interface.
type Repository interface {
	CreateJob(ctx context.Context, job *Job) error
	GetJob(ctx context.Context, id string) (*Job, error)

	// AcceptPending atomically claims a pending job for a technician.
	// It fails when the job is missing or no longer pending, so two
	// racing technicians cannot both win.
	AcceptPending(ctx context.Context, jobID, technicianID string, at time.Time) (*Job, error)

	MarkStarted(ctx context.Context, jobID string, at time.Time) error
	MarkCompleted(ctx context.Context, jobID string, at time.Time) error
	MarkCancelled(ctx context.Context, jobID, reason string, at time.Time) error

	SetTransferID(ctx context.Context, jobID, transferID string) error

	// VehicleTypeForCustomer resolves the vehicle's type, scoped to
	// the owning customer.
	VehicleTypeForCustomer(ctx context.Context, vehicleID, customerID string) (pricing.VehicleType, error)

	// TechnicianStripeAccount returns the technician's Connect
	// account id, empty when they have not onboarded.
	TechnicianStripeAccount(ctx context.Context, technicianID string) (string, error)
}
