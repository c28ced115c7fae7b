package dispatch

import "time"

// BookingStatus follows the chain pending -> confirmed -> in_progress
// -> completed, with cancelled reachable from any non-terminal state.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

var nextStatus = map[BookingStatus]BookingStatus{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

// Terminal reports whether no further transitions are allowed.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition enforces the booking state machine. Reassignment is
// not a transition; it only swaps the technician pointer.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return nextStatus[s] == to
}

type AssignmentType string

const (
	AssignmentManual AssignmentType = "manual"
	AssignmentAuto   AssignmentType = "auto"
)

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentReassigned AssignmentStatus = "reassigned"
)

// Booking is a B2B shop booking.
type Booking struct {
	ID                  string        `json:"id"`
	CustomerID          string        `json:"customer_id"`
	ShopID              string        `json:"shop_id"`
	ShopTechnicianID    string        `json:"shop_technician_id,omitempty"`
	ServicePackageID    string        `json:"service_package_id,omitempty"`
	Status              BookingStatus `json:"status"`
	ScheduledDate       time.Time     `json:"scheduled_date"`
	EstimatedPriceCents int64         `json:"estimated_price_cents"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// Assignment is an append-only audit record; reassignment creates a
// new row instead of mutating the old one.
type Assignment struct {
	ID             string           `json:"id"`
	BookingID      string           `json:"booking_id"`
	ShopID         string           `json:"shop_id"`
	AssignedTo     string           `json:"assigned_to"`
	AssignedBy     string           `json:"assigned_by,omitempty"`
	AssignmentType AssignmentType   `json:"assignment_type"`
	Status         AssignmentStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// TechnicianOption is an auto-assign candidate: an available roster
// member with their current workload.
type TechnicianOption struct {
	ID        string
	TotalJobs int
}
