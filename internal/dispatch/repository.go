package dispatch

import "context"

// Repository defines the data-access contract. The multi-write
// operations (Assign, Reassign) are atomic: implementations run all
// writes in one transaction.
type Repository interface {
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)

	// Assign links a technician, moves the booking to the given
	// status, and appends an assignment record.
	Assign(ctx context.Context, booking *Booking, assignment *Assignment) error

	// Reassign marks the booking's current assignment records
	// "reassigned", repoints the booking at the new technician, and
	// appends a fresh assignment record. Booking status is untouched.
	Reassign(ctx context.Context, bookingID, newTechnicianID string, assignment *Assignment) error

	// ListAvailableByWorkload returns the shop's available, active
	// technicians ordered by ascending total jobs.
	ListAvailableByWorkload(ctx context.Context, shopID string) ([]TechnicianOption, error)

	ListAssignments(ctx context.Context, bookingID string) ([]*Assignment, error)
}
