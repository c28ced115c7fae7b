package geo

import "math"

// Earth's radius in miles.
const earthRadiusMiles = 3959

// DistanceMiles returns the great-circle distance between two
// latitude/longitude points using the Haversine formula.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// RoundToTenth rounds a distance to one decimal place for display.
func RoundToTenth(miles float64) float64 {
	return math.Round(miles*10) / 10
}
