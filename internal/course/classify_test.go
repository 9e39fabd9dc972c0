package course

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fairwaylabs/roundsim/internal/geo"
)

var origin = geo.Coordinate{Lat: 36.5725, Lon: -121.9486}

func squareAround(center geo.Coordinate, halfWidthM float64) Region {
	return Polygon([]geo.Coordinate{
		geo.Destination(geo.Destination(center, 0, halfWidthM), 90, halfWidthM),
		geo.Destination(geo.Destination(center, 0, halfWidthM), 270, halfWidthM),
		geo.Destination(geo.Destination(center, 180, halfWidthM), 270, halfWidthM),
		geo.Destination(geo.Destination(center, 180, halfWidthM), 90, halfWidthM),
	})
}

func TestCircleContains(t *testing.T) {
	c := Circle(origin, 20)
	assert.True(t, c.Contains(geo.Destination(origin, 90, 15)))
	assert.False(t, c.Contains(geo.Destination(origin, 90, 25)))
}

func TestPolygonContains_EvenOdd(t *testing.T) {
	square := squareAround(origin, 30)
	assert.True(t, square.Contains(origin))
	assert.True(t, square.Contains(geo.Destination(origin, 45, 20)))
	assert.False(t, square.Contains(geo.Destination(origin, 45, 60)))
}

func TestPolygonContains_DegenerateRing(t *testing.T) {
	assert.False(t, Polygon(nil).Contains(origin))
	assert.False(t, Polygon([]geo.Coordinate{origin, origin}).Contains(origin))
}

func TestClassify_PriorityWaterOverFairway(t *testing.T) {
	p := geo.Destination(origin, 90, 10)
	g := HoleGeometry{
		Green:    Circle(geo.Destination(origin, 0, 500), 10),
		Fairways: []Region{Circle(origin, 50)},
		Water:    []Region{Circle(origin, 50)},
	}
	assert.Equal(t, LieWater, Classify(p, g))
}

func TestClassify_GreenOverBunker(t *testing.T) {
	g := HoleGeometry{
		Green:   Circle(origin, 15),
		Bunkers: []Region{Circle(origin, 20)},
	}
	assert.Equal(t, LieGreen, Classify(origin, g))
}

func TestClassify_OutOfBoundsDominates(t *testing.T) {
	far := geo.Destination(origin, 90, 500)
	g := HoleGeometry{
		Green:      Circle(origin, 15),
		Water:      []Region{Circle(far, 50)},
		Boundaries: []Region{squareAround(origin, 100)},
	}
	// inside a water region but outside every boundary polygon
	assert.Equal(t, LieOutOfBounds, Classify(far, g))
}

func TestClassify_NoBoundariesMeansEverywhereInBounds(t *testing.T) {
	far := geo.Destination(origin, 90, 5000)
	g := HoleGeometry{Green: Circle(origin, 15)}
	assert.Equal(t, LieRough, Classify(far, g))
}

func TestClassify_FairwayThenRough(t *testing.T) {
	g := HoleGeometry{
		Green:    Circle(geo.Destination(origin, 0, 300), 10),
		Fairways: []Region{Circle(origin, 25)},
	}
	assert.Equal(t, LieFairway, Classify(origin, g))
	assert.Equal(t, LieRough, Classify(geo.Destination(origin, 90, 40), g))
}
