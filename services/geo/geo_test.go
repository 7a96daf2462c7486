package geo

import (
	"math"
	"testing"

	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceKmSamePoint(t *testing.T) {
	d, err := DistanceKm(19.0, 73.0, 19.0, 73.0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistanceKmOneDegreeLatitude(t *testing.T) {
	d, err := DistanceKm(0, 0, 1, 0)
	require.NoError(t, err)
	// 2πR/360
	assert.InDelta(t, 111.195, d, 0.001)
}

func TestDistanceKmIsSymmetric(t *testing.T) {
	a, err := DistanceKm(19.0, 73.0, 19.05, 73.02)
	require.NoError(t, err)
	b, err := DistanceKm(19.05, 73.02, 19.0, 73.0)
	require.NoError(t, err)
	assert.InDelta(t, a, b, 1e-12)
}

func TestDistanceKmAntipodal(t *testing.T) {
	d, err := DistanceKm(0, 0, 0, 180)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*EarthRadiusKm, d, 1e-6)
}

func TestDistanceKmRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name       string
		lat1, lng1 float64
		lat2, lng2 float64
		field      string
	}{
		{"lat too high", 91, 0, 0, 0, "lat"},
		{"lng too low", 0, -181, 0, 0, "lng"},
		{"nan", math.NaN(), 0, 0, 0, "lat"},
		{"infinite destination", 0, 0, 0, math.Inf(1), "lng"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DistanceKm(tc.lat1, tc.lng1, tc.lat2, tc.lng2)
			require.ErrorIs(t, err, models.ErrInvalidCoordinates)
			de, ok := models.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, de.Field)
		})
	}
}

func TestValidateCoordinatesBoundaries(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(90, 180))
	assert.NoError(t, ValidateCoordinates(-90, -180))
}

func TestDisplayKmTruncates(t *testing.T) {
	assert.Equal(t, 9.99, DisplayKm(9.9999))
	assert.Equal(t, 1.23, DisplayKm(1.239))
	assert.Equal(t, 0.0, DisplayKm(0.004))
}

func TestWithinRadius(t *testing.T) {
	assert.True(t, WithinRadius(10, 10000))
	assert.False(t, WithinRadius(10.0001, 10000))
}
