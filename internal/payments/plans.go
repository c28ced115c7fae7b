package payments

// Tier is the B2B subscription plan category.
type Tier string

const (
	TierSolo     Tier = "solo"
	TierBusiness Tier = "business"
)

func (t Tier) Valid() bool {
	_, ok := planByTier[t]
	return ok
}

// SubscriptionPlan describes a B2B SaaS plan. Prices are in cents.
type SubscriptionPlan struct {
	ID                  string
	Name                string
	Tier                Tier
	BasePriceCents      int64
	PerTechnicianCents  int64 // business tier only, per technician past the base
	TransactionFeePct   int
	MaxTechnicians      int
	TrialPeriodDays     int64
}

var planByTier = map[Tier]SubscriptionPlan{
	TierSolo: {
		ID:                "solo-plan",
		Name:              "Solo Mechanic",
		Tier:              TierSolo,
		BasePriceCents:    9900,
		TransactionFeePct: 8,
		MaxTechnicians:    1,
		TrialPeriodDays:   14,
	},
	TierBusiness: {
		ID:                 "business-plan",
		Name:               "Business",
		Tier:               TierBusiness,
		BasePriceCents:     29900,
		PerTechnicianCents: 4900,
		TransactionFeePct:  5,
		MaxTechnicians:     10,
		TrialPeriodDays:    14,
	},
}

// PlanForTier looks up the static plan table.
func PlanForTier(tier Tier) (SubscriptionPlan, bool) {
	plan, ok := planByTier[tier]
	return plan, ok
}
