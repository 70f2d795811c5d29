package geo

import "math"

const earthRadiusKm = 6371.0

// UnknownDistanceKm is returned when either coordinate pair is missing.
// It sorts missing-location candidates behind every real distance.
const UnknownDistanceKm = 999999.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceKm handles nullable coordinates, falling back to
// UnknownDistanceKm when any value is absent.
func DistanceKm(lat1, lng1, lat2, lng2 *float64) float64 {
	if lat1 == nil || lng1 == nil || lat2 == nil || lng2 == nil {
		return UnknownDistanceKm
	}
	return HaversineKm(*lat1, *lng1, *lat2, *lng2)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
