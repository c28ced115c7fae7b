package packages

import "time"

// ServicePackage is a shop-defined price/duration bundle. A package
// referenced by at least one booking is never hard-deleted; delete
// degrades to deactivation so historical bookings keep their pricing.
type ServicePackage struct {
	ID                       string    `json:"id"`
	ShopID                   string    `json:"shop_id"`
	PackageName              string    `json:"package_name"`
	Description              string    `json:"description,omitempty"`
	PriceCents               int64     `json:"price_cents"`
	EstimatedDurationMinutes int       `json:"estimated_duration_minutes"`
	OilType                  string    `json:"oil_type,omitempty"`
	IncludesFilter           bool      `json:"includes_filter"`
	IncludesInspection       bool      `json:"includes_inspection"`
	IsActive                 bool      `json:"is_active"`
	CreatedAt                time.Time `json:"created_at"`
}

// PackageInput is the create/update payload.
type PackageInput struct {
	PackageName              string `json:"package_name"`
	Description              string `json:"description"`
	PriceCents               int64  `json:"price_cents"`
	EstimatedDurationMinutes int    `json:"estimated_duration_minutes"`
	OilType                  string `json:"oil_type"`
	IncludesFilter           bool   `json:"includes_filter"`
	IncludesInspection       bool   `json:"includes_inspection"`
}
