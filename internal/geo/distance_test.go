package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_Zero(t *testing.T) {
	t.Parallel()

	assert.Zero(t, Distance(40.0, -74.0, 40.0, -74.0))
	assert.Zero(t, Distance(0, 0, 0, 0))
}

func TestDistance_Symmetric(t *testing.T) {
	t.Parallel()

	// New York -> London and back.
	d1 := Distance(40.7128, -74.0060, 51.5074, -0.1278)
	d2 := Distance(51.5074, -0.1278, 40.7128, -74.0060)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistance_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expectedKm             float64
		tolerance              float64
	}{
		{
			name: "New York to London",
			lat1: 40.7128, lon1: -74.0060,
			lat2: 51.5074, lon2: -0.1278,
			expectedKm: 5570, tolerance: 20,
		},
		{
			name: "Central Park to High Line",
			lat1: 40.785091, lon1: -73.968285,
			lat2: 40.7484, lon2: -74.0048,
			expectedKm: 5.1, tolerance: 0.5,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			expectedKm: 111.2, tolerance: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expectedKm, got, tt.tolerance)
		})
	}
}

func TestDistance_MonotonicWithSeparation(t *testing.T) {
	t.Parallel()

	// Points progressively further east along the equator.
	base := Distance(0, 0, 0, 1)
	further := Distance(0, 0, 0, 2)
	furthest := Distance(0, 0, 0, 10)

	assert.Less(t, base, further)
	assert.Less(t, further, furthest)
}
