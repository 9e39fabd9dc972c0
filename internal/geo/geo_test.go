package geo

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverse_KnownDistance(t *testing.T) {
	// Pebble Beach first tee to roughly 340m down the fairway line
	a := Coordinate{Lat: 36.5725, Lon: -121.9486}
	b := Destination(a, 45, 340)

	inv := Inverse(a, b)
	assert.InDelta(t, 340, inv.DistanceMeters, 0.05)
	assert.InDelta(t, 45, inv.InitialBearingDeg, 0.01)
}

func TestInverse_Symmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 36.5725, Lon: -121.9486}, {Lat: 36.5760, Lon: -121.9450}},
		{{Lat: -33.8568, Lon: 151.2153}, {Lat: -33.8650, Lon: 151.2094}},
		{{Lat: 55.6761, Lon: 12.5683}, {Lat: 55.6730, Lon: 12.5710}},
	}
	for _, p := range pairs {
		ab := Inverse(p[0], p[1])
		ba := Inverse(p[1], p[0])
		assert.InDelta(t, ab.DistanceMeters, ba.DistanceMeters, 1e-6)
	}
}

func TestInverse_DirectRoundTrip(t *testing.T) {
	a := Coordinate{Lat: 36.5725, Lon: -121.9486}
	b := Coordinate{Lat: 36.5891, Lon: -121.9340}

	inv := Inverse(a, b)
	require.Greater(t, inv.DistanceMeters, 0.0)

	back := Destination(a, inv.InitialBearingDeg, inv.DistanceMeters)
	assert.InDelta(t, b.Lat, back.Lat, 1e-6)
	assert.InDelta(t, b.Lon, back.Lon, 1e-6)
	// within a few centimeters
	assert.Less(t, Inverse(b, back).DistanceMeters, 0.05)
}

func TestInverse_CoincidentPoints(t *testing.T) {
	a := Coordinate{Lat: 36.5725, Lon: -121.9486}
	inv := Inverse(a, a)
	assert.Zero(t, inv.DistanceMeters)
	assert.Zero(t, inv.InitialBearingDeg)
}

func TestDestination_ZeroDistance(t *testing.T) {
	a := Coordinate{Lat: 36.5725, Lon: -121.9486}
	assert.Equal(t, a, Destination(a, 123, 0))
}

func TestHaversine_AgreesWithInverse(t *testing.T) {
	a := Coordinate{Lat: 36.5725, Lon: -121.9486}
	b := Destination(a, 210, 180)
	// haversine is spherical; agreement within ~0.5% is enough for
	// containment checks
	h := HaversineMeters(a, b)
	assert.InDelta(t, 180, h, 1.0)
}

func TestStandardNormalPair_Moments(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	n := 50000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		z1, z2 := StandardNormalPair(rng)
		sum += z1 + z2
		sumSq += z1*z1 + z2*z2
	}
	mean := sum / float64(2*n)
	variance := sumSq/float64(2*n) - mean*mean

	assert.InDelta(t, 0, mean, 0.02)
	assert.InDelta(t, 1, variance, 0.03)
	assert.False(t, math.IsNaN(variance))
}
