package shops

import (
	"time"

	"github.com/axis-meridian-dev/Luber-development/internal/payments"
)

// Shop is the B2B tenant. Subscription and Connect status fields are
// cached copies of the payment processor's state.
type Shop struct {
	ID                   string        `json:"id"`
	OwnerID              string        `json:"owner_id"`
	ShopName             string        `json:"shop_name"`
	BusinessEmail        string        `json:"business_email"`
	SubscriptionTier     payments.Tier `json:"subscription_tier"`
	SubscriptionStatus   string        `json:"subscription_status"`
	StripeCustomerID     string        `json:"stripe_customer_id,omitempty"`
	StripeSubscriptionID string        `json:"stripe_subscription_id,omitempty"`
	StripeAccountID      string        `json:"stripe_account_id,omitempty"`
	TrialEndsAt          *time.Time    `json:"trial_ends_at,omitempty"`
	TotalTechnicians     int           `json:"total_technicians"`
	CreatedAt            time.Time     `json:"created_at"`
}

// Technician is a member of a shop's roster. Removal deactivates the
// row instead of deleting it so assignment history stays intact.
type Technician struct {
	ID            string    `json:"id"`
	ShopID        string    `json:"shop_id"`
	ProfileID     string    `json:"profile_id"`
	LicenseNumber string    `json:"license_number"`
	IsAvailable   bool      `json:"is_available"`
	IsActive      bool      `json:"is_active"`
	TotalJobs     int       `json:"total_jobs"`
	CreatedAt     time.Time `json:"created_at"`
}
