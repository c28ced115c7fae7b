package pricing

import (
	"errors"
	"fmt"
	"math"
)

var ErrVehicleNotServiceable = errors.New("vehicle type is not serviceable")

type OilType string

const (
	OilConventional   OilType = "conventional"
	OilSyntheticBlend OilType = "synthetic_blend"
	OilFullSynthetic  OilType = "full_synthetic"
	OilHighMileage    OilType = "high_mileage"
)

type VehicleType string

const (
	VehicleSedan     VehicleType = "sedan"
	VehicleSUV       VehicleType = "suv"
	VehicleTruck     VehicleType = "truck"
	VehicleSportsCar VehicleType = "sports_car"
	VehicleHybrid    VehicleType = "hybrid"
	VehicleElectric  VehicleType = "electric"
)

// Base prices in cents.
var basePrices = map[OilType]int64{
	OilConventional:   3999,
	OilSyntheticBlend: 5999,
	OilFullSynthetic:  7999,
	OilHighMileage:    6999,
}

// Electric vehicles have no oil to change, so they are rejected
// outright instead of being quoted at zero.
var vehicleMultipliers = map[VehicleType]float64{
	VehicleSedan:     1.0,
	VehicleSUV:       1.2,
	VehicleTruck:     1.3,
	VehicleSportsCar: 1.4,
	VehicleHybrid:    1.1,
	VehicleElectric:  0,
}

// Platform keeps 20% of every consumer job.
const platformFeeRate = 0.20

// Quote is the price breakdown for a single job, in cents.
// TechnicianEarnings is the remainder after the platform fee, so the
// three fields always add up exactly.
type Quote struct {
	PriceCents              int64 `json:"price_cents"`
	PlatformFeeCents        int64 `json:"platform_fee_cents"`
	TechnicianEarningsCents int64 `json:"technician_earnings_cents"`
}

func (o OilType) Valid() bool {
	_, ok := basePrices[o]
	return ok
}

func (v VehicleType) Valid() bool {
	_, ok := vehicleMultipliers[v]
	return ok
}

// CalculateJobPrice maps an (oil type, vehicle type) pair to a Quote.
func CalculateJobPrice(oilType OilType, vehicleType VehicleType) (Quote, error) {
	base, ok := basePrices[oilType]
	if !ok {
		return Quote{}, fmt.Errorf("unknown oil type %q", oilType)
	}

	multiplier, ok := vehicleMultipliers[vehicleType]
	if !ok {
		return Quote{}, fmt.Errorf("unknown vehicle type %q", vehicleType)
	}
	if multiplier == 0 {
		return Quote{}, ErrVehicleNotServiceable
	}

	price := int64(math.Round(float64(base) * multiplier))
	fee := int64(math.Round(float64(price) * platformFeeRate))

	return Quote{
		PriceCents:              price,
		PlatformFeeCents:        fee,
		TechnicianEarningsCents: price - fee,
	}, nil
}
