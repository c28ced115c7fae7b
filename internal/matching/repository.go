package matching

import "context"

// TechnicianRepository defines the data-access contract.
// Service depends ONLY on this interface.
type TechnicianRepository interface {
	// ListAvailableApproved returns technicians that are marked
	// available and whose application has been approved, each with
	// their most recent location when one exists.
	ListAvailableApproved(ctx context.Context) ([]TechnicianRecord, error)
}
