package services_test

import (
	"testing"

	"mealmarket/internal/core/domain/model/kernel"
	"mealmarket/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointAtKM returns a pair of points whose haversine distance is exactly
// km (to 2 decimal places): it walks due north from the equator, where
// one degree of latitude spans 6371*pi/180 km.
func pointAtKM(t *testing.T, km float64) (kernel.GeoPoint, kernel.GeoPoint) {
	t.Helper()
	origin, err := kernel.NewGeoPoint(0, 0)
	require.NoError(t, err)

	const kmPerDegree = 6371.0 * 3.14159265358979323846 / 180.0
	dest, err := kernel.NewGeoPoint(km/kmPerDegree, 0)
	require.NoError(t, err)

	actual, err := origin.DistanceTo(dest)
	require.NoError(t, err)
	require.InDelta(t, km, actual, 0.005)

	return origin, dest
}

func quoteAtKM(t *testing.T, km float64) services.DeliveryQuote {
	t.Helper()
	origin, dest := pointAtKM(t, km)
	quote, err := services.NewDeliveryPricer().Quote(&origin, &dest)
	require.NoError(t, err)
	return quote
}

func TestDeliveryPricer_Quote_TierBoundaries(t *testing.T) {
	// The schedule is continuous at every breakpoint; an off-by-one on
	// interval inclusivity would change the fee exactly at 1, 2, 4 or 7 km.
	tests := []struct {
		name        string
		distanceKM  float64
		expectedFee int64
	}{
		{"zero_distance", 0, 10},
		{"inside_first_tier", 0.5, 10},
		{"exactly_1km", 1, 10},
		{"just_past_1km", 1.01, 15},
		{"exactly_2km", 2, 15},
		{"just_past_2km", 2.01, 15}, // round(15 + 0.01*10) = 15
		{"midway_third_tier", 3, 25},
		{"exactly_4km", 4, 35},
		{"just_past_4km", 4.5, 39}, // round(35 + 0.5*8.33) = round(39.165)
		{"midway_fourth_tier", 5, 43},
		{"near_cutoff", 6.99, 60},
		{"exactly_7km", 7, 60}, // round(35 + 3*8.33) = round(59.99)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := quoteAtKM(t, tt.distanceKM)

			assert.True(t, quote.Available)
			assert.Empty(t, quote.Reason)
			require.NotNil(t, quote.Fee)
			assert.Equal(t, tt.expectedFee, *quote.Fee)
		})
	}
}

func TestDeliveryPricer_Quote_BeyondCutoff(t *testing.T) {
	t.Run("just_past_7km", func(t *testing.T) {
		quote := quoteAtKM(t, 7.01)

		assert.False(t, quote.Available)
		assert.Nil(t, quote.Fee)
		assert.Equal(t, services.ReasonOutsideServiceArea, quote.Reason)
		assert.InDelta(t, 7.01, quote.DistanceKM, 0.005)
	})

	t.Run("dhaka_scenario_exceeds_radius", func(t *testing.T) {
		kitchen, err := kernel.NewGeoPoint(23.8103, 90.4125)
		require.NoError(t, err)
		buyer, err := kernel.NewGeoPoint(23.7465, 90.3765)
		require.NoError(t, err)

		quote, err := services.NewDeliveryPricer().Quote(&kitchen, &buyer)
		require.NoError(t, err)

		assert.False(t, quote.Available)
		assert.Nil(t, quote.Fee)
		assert.InDelta(t, 7.98, quote.DistanceKM, 0.001)
	})
}

func TestDeliveryPricer_Quote_SameCoordinates(t *testing.T) {
	point, err := kernel.NewGeoPoint(23.8103, 90.4125)
	require.NoError(t, err)

	quote, err := services.NewDeliveryPricer().Quote(&point, &point)
	require.NoError(t, err)

	assert.True(t, quote.Available)
	assert.InDelta(t, 0.0, quote.DistanceKM, 0)
	require.NotNil(t, quote.Fee)
	assert.Equal(t, int64(10), *quote.Fee)
}

func TestDeliveryPricer_Quote_MissingCoordinates(t *testing.T) {
	point, err := kernel.NewGeoPoint(23.8103, 90.4125)
	require.NoError(t, err)

	tests := []struct {
		name         string
		origin, dest *kernel.GeoPoint
	}{
		{"missing_origin", nil, &point},
		{"missing_destination", &point, nil},
		{"missing_both", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := services.NewDeliveryPricer().Quote(tt.origin, tt.dest)

			require.NoError(t, err)
			assert.False(t, quote.Available)
			assert.Nil(t, quote.Fee)
			assert.Equal(t, services.ReasonMissingCoordinates, quote.Reason)
		})
	}
}

func TestDeliveryPricer_Quote_UnconstructedPointFails(t *testing.T) {
	valid, err := kernel.NewGeoPoint(1, 1)
	require.NoError(t, err)
	var zero kernel.GeoPoint

	_, err = services.NewDeliveryPricer().Quote(&valid, &zero)
	require.Error(t, err)
}

func TestDeliveryPricer_Quote_Deterministic(t *testing.T) {
	kitchen, err := kernel.NewGeoPoint(23.8103, 90.4125)
	require.NoError(t, err)
	buyer, err := kernel.NewGeoPoint(23.7808, 90.4005)
	require.NoError(t, err)

	pricer := services.NewDeliveryPricer()
	first, err := pricer.Quote(&kitchen, &buyer)
	require.NoError(t, err)

	for range 10 {
		again, err := pricer.Quote(&kitchen, &buyer)
		require.NoError(t, err)
		assert.Equal(t, first.DistanceKM, again.DistanceKM)
		require.NotNil(t, again.Fee)
		assert.Equal(t, *first.Fee, *again.Fee)
	}
}
