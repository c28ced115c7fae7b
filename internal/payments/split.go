package payments

import (
	"fmt"
	"math"
)

// Split is the platform/shop breakdown of a booking amount, in cents.
type Split struct {
	PlatformFeeCents int64 `json:"platform_fee_cents"`
	ShopPayoutCents  int64 `json:"shop_payout_cents"`
}

// CalculateSplit divides a booking total between the platform and the
// shop according to the shop's subscription tier. Tier is a closed
// enum, so the error branch should never fire with values read from
// our own tables.
func CalculateSplit(totalCents int64, tier Tier) (Split, error) {
	plan, ok := planByTier[tier]
	if !ok {
		return Split{}, fmt.Errorf("invalid subscription tier: %q", tier)
	}

	fee := int64(math.Round(float64(totalCents) * float64(plan.TransactionFeePct) / 100))

	return Split{
		PlatformFeeCents: fee,
		ShopPayoutCents:  totalCents - fee,
	}, nil
}
