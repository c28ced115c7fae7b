package jobs

import (
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/pricing"
)

// Status follows pending -> accepted -> in_progress -> completed,
// with cancelled reachable from any non-terminal state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var nextStatus = map[Status]Status{
	StatusPending:    StatusAccepted,
	StatusAccepted:   StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransition(to Status) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return nextStatus[s] == to
}

// Job is a consumer marketplace oil change request.
type Job struct {
	ID                      string              `json:"id"`
	CustomerID              string              `json:"customer_id"`
	TechnicianID            string              `json:"technician_id,omitempty"`
	VehicleID               string              `json:"vehicle_id"`
	AddressID               string              `json:"address_id"`
	Status                  Status              `json:"status"`
	OilType                 pricing.OilType     `json:"oil_type"`
	PriceCents              int64               `json:"price_cents"`
	PlatformFeeCents        int64               `json:"platform_fee_cents"`
	TechnicianEarningsCents int64               `json:"technician_earnings_cents"`
	ScheduledTime           time.Time           `json:"scheduled_time"`
	SpecialInstructions     string              `json:"special_instructions,omitempty"`
	StripePaymentIntentID   string              `json:"stripe_payment_intent_id,omitempty"`
	StripeTransferID        string              `json:"stripe_transfer_id,omitempty"`
	AcceptedAt              *time.Time          `json:"accepted_at,omitempty"`
	StartedAt               *time.Time          `json:"started_at,omitempty"`
	CompletedAt             *time.Time          `json:"completed_at,omitempty"`
	CancelledAt             *time.Time          `json:"cancelled_at,omitempty"`
	CancellationReason      string              `json:"cancellation_reason,omitempty"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// CreateJobInput is the booking payload from the customer app.
type CreateJobInput struct {
	VehicleID           string    `json:"vehicle_id"`
	AddressID           string    `json:"address_id"`
	OilType             string    `json:"oil_type"`
	ScheduledTime       time.Time `json:"scheduled_time"`
	SpecialInstructions string    `json:"special_instructions"`
	PaymentMethodID     string    `json:"payment_method_id"`
}
