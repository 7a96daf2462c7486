// Package geo computes great-circle distances for provider discovery.
package geo

import (
	"math"

	"servicehub/models"
)

const (
	// EarthRadiusKm is the mean earth radius used by the haversine formula.
	EarthRadiusKm = 6371.0
	// DistancePrecision is the number of decimals kept in displayed distances.
	DistancePrecision = 2
)

// ValidateCoordinates checks lat ∈ [-90,90] and lng ∈ [-180,180], rejecting NaN and infinities.
func ValidateCoordinates(lat, lng float64) error {
	if !finite(lat) || lat < -90 || lat > 90 {
		return models.ErrInvalidCoordinates.WithField("lat")
	}
	if !finite(lng) || lng < -180 || lng > 180 {
		return models.ErrInvalidCoordinates.WithField("lng")
	}
	return nil
}

// DistanceKm returns the haversine distance between two points in kilometres.
func DistanceKm(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := ValidateCoordinates(lat1, lng1); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(lat2, lng2); err != nil {
		return 0, err
	}
	return haversine(lat1, lng1, lat2, lng2), nil
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Clamp float drift for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DisplayKm truncates km to DistancePrecision decimals. It never rounds up,
// so a displayed distance cannot exceed the radius that admitted it.
func DisplayKm(km float64) float64 {
	scale := math.Pow(10, DistancePrecision)
	return math.Floor(km*scale) / scale
}

// WithinRadius reports whether km lies inside a radius given in metres.
func WithinRadius(km float64, radiusMeters int) bool {
	return km <= float64(radiusMeters)/1000
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
