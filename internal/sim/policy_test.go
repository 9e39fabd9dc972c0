package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/geo"
	"github.com/fairwaylabs/roundsim/internal/skill"
)

var tee = geo.Coordinate{Lat: 36.5725, Lon: -121.9486}

func newTestRng(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func openPar3(lengthM float64) HoleSpec {
	pin := geo.Destination(tee, 0, lengthM)
	return HoleSpec{
		Number:   1,
		Par:      3,
		Tee:      tee,
		Pin:      pin,
		Geometry: course.HoleGeometry{Green: course.Circle(pin, 12)},
	}
}

func TestPlayHole_OpenShortHoleBestTier(t *testing.T) {
	// 150m, no hazards, no trees: the best tier holes out in at most 4
	// strokes in nearly every seeded run
	spec := openPar3(150)

	atMostFour := 0
	runs := 200
	for seed := int64(0); seed < int64(runs); seed++ {
		runner := NewRoundRunner(skill.Named(skill.TierTour), dispersion.Identity(), seed)
		result := runner.PlayRound(RoundSpec{Holes: []HoleSpec{spec}}, Options{})
		hole := result.Holes[0]
		require.True(t, hole.Completed, "seed %d", seed)
		if hole.Strokes <= 4 {
			atMostFour++
		}
	}
	assert.GreaterOrEqual(t, float64(atMostFour)/float64(runs), 0.95)
}

func TestPlayHole_WaterPenaltyStrokeAndDistance(t *testing.T) {
	// every drive lands in a pond covering the landing zone, so the hole
	// alternates hazard shot and penalty stroke until the cap
	pin := geo.Destination(tee, 0, 300)
	pond := course.Circle(geo.Destination(tee, 0, 247), 45)
	spec := HoleSpec{
		Number: 1,
		Par:    4,
		Tee:    tee,
		Pin:    pin,
		Geometry: course.HoleGeometry{
			Green: course.Circle(pin, 10),
			Water: []course.Region{pond},
		},
	}

	sim := NewHoleSimulator(skill.Named(skill.TierTour), dispersion.Identity(), newTestRng(3))
	result := sim.PlayHole(spec, Options{})

	require.False(t, result.Completed)
	require.GreaterOrEqual(t, len(result.Shots), 4)

	// hazard shot then exactly one penalty record per incident
	for i := 0; i+1 < len(result.Shots); i += 2 {
		hazard := result.Shots[i]
		penalty := result.Shots[i+1]
		assert.Equal(t, course.LieWater, hazard.Lie, "shot %d", i)
		assert.False(t, hazard.Penalty)
		assert.True(t, penalty.Penalty, "shot %d", i+1)
		assert.Equal(t, penalty.From, penalty.To)
		assert.Equal(t, tee, penalty.From, "replay happens from the original spot")
		assert.Zero(t, penalty.ActualDistance)
	}
	assert.Equal(t, len(result.Shots), result.Strokes, "penalty strokes count toward the score")
	assert.Equal(t, 3*spec.Par, result.Strokes)
}

func TestPlayHole_ChipInsideChipRange(t *testing.T) {
	// within chip range every lie plays a capped chip, never a full swing
	spec := openPar3(25)
	sim := NewHoleSimulator(skill.Handicap(15), dispersion.Identity(), newTestRng(9))
	result := sim.PlayHole(spec, Options{})

	require.NotEmpty(t, result.Shots)
	first := result.Shots[0]
	assert.False(t, first.Putt)
	assert.LessOrEqual(t, first.IntendedDistance, chipRangeMeters)
	assert.NotEqual(t, "Driver", first.Club)
}

func TestPlayHole_TeeShotTargetsFairway(t *testing.T) {
	pin := geo.Destination(tee, 0, 380)
	fairway := course.Polygon([]geo.Coordinate{
		geo.Destination(geo.Destination(tee, 0, 90), 270, 20),
		geo.Destination(geo.Destination(tee, 0, 355), 270, 20),
		geo.Destination(geo.Destination(tee, 0, 355), 90, 20),
		geo.Destination(geo.Destination(tee, 0, 90), 90, 20),
	})
	spec := HoleSpec{
		Number: 1,
		Par:    4,
		Tee:    tee,
		Pin:    pin,
		Geometry: course.HoleGeometry{
			Green:    course.Circle(pin, 10),
			Fairways: []course.Region{fairway},
		},
	}

	sim := NewHoleSimulator(skill.Handicap(5), dispersion.Identity(), newTestRng(21))
	result := sim.PlayHole(spec, Options{})

	require.NotEmpty(t, result.Shots)
	first := result.Shots[0]
	assert.GreaterOrEqual(t, first.IntendedDistance, minTeeShotMeters)
	assert.Less(t, geo.Inverse(first.Target, pin).DistanceMeters,
		geo.Inverse(tee, pin).DistanceMeters, "tee shot aims at a landing point, not the pin")
	assert.Equal(t, course.LieFairway, course.Classify(first.Target, spec.Geometry))
}

func TestPlayHole_GimmeTapIn(t *testing.T) {
	// starting a few centimeters from the hole taps in for a single stroke
	pin := geo.Destination(tee, 0, 0.2)
	spec := HoleSpec{
		Number:   1,
		Par:      3,
		Tee:      tee,
		Pin:      pin,
		Geometry: course.HoleGeometry{Green: course.Circle(pin, 12)},
	}

	sim := NewHoleSimulator(skill.Handicap(20), dispersion.Identity(), newTestRng(1))
	result := sim.PlayHole(spec, Options{})

	require.True(t, result.Completed)
	assert.Equal(t, 1, result.Strokes)
	assert.True(t, result.Shots[0].Holed)
}

func TestPlayHole_DefaultGreenWhenMissing(t *testing.T) {
	// a hole with no authored green still resolves via the default radius
	pin := geo.Destination(tee, 0, 140)
	spec := HoleSpec{Number: 1, Par: 3, Tee: tee, Pin: pin}

	sim := NewHoleSimulator(skill.Named(skill.TierTour), dispersion.Identity(), newTestRng(5))
	result := sim.PlayHole(spec, Options{})
	assert.True(t, result.Completed)
}

func TestPlayHole_BoundariesIgnoredForUnnamedCourse(t *testing.T) {
	// with no course name the out-of-bounds test is skipped entirely
	pin := geo.Destination(tee, 0, 150)
	tinyBoundary := course.Circle(tee, 1)
	spec := HoleSpec{
		Number: 1,
		Par:    3,
		Tee:    tee,
		Pin:    pin,
		Geometry: course.HoleGeometry{
			Green:      course.Circle(pin, 12),
			Boundaries: []course.Region{tinyBoundary},
		},
	}

	sim := NewHoleSimulator(skill.Named(skill.TierTour), dispersion.Identity(), newTestRng(2))
	result := sim.PlayHole(spec, Options{})
	for _, shot := range result.Shots {
		assert.NotEqual(t, course.LieOutOfBounds, shot.Lie)
		assert.False(t, shot.Penalty)
	}
}
