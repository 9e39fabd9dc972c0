package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/geo"
	"github.com/fairwaylabs/roundsim/internal/skill"
)

func twoHoleRound() RoundSpec {
	par4Tee := geo.Destination(tee, 90, 2000)
	par4Pin := geo.Destination(par4Tee, 0, 360)
	fairway := course.Polygon([]geo.Coordinate{
		geo.Destination(geo.Destination(par4Tee, 0, 80), 270, 22),
		geo.Destination(geo.Destination(par4Tee, 0, 340), 270, 22),
		geo.Destination(geo.Destination(par4Tee, 0, 340), 90, 22),
		geo.Destination(geo.Destination(par4Tee, 0, 80), 90, 22),
	})

	return RoundSpec{
		Holes: []HoleSpec{
			openPar3(150),
			{
				Number: 2,
				Par:    4,
				Tee:    par4Tee,
				Pin:    par4Pin,
				Geometry: course.HoleGeometry{
					Green:    course.Circle(par4Pin, 11),
					Fairways: []course.Region{fairway},
				},
			},
		},
	}
}

func TestPlayRound_AggregatesFoldFromHoles(t *testing.T) {
	runner := NewRoundRunner(skill.Handicap(10), dispersion.Identity(), 42)
	result := runner.PlayRound(twoHoleRound(), Options{})

	require.Len(t, result.Holes, 2)
	assert.NotEqual(t, result.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, 7, result.TotalPar)

	strokes, putts := 0, 0
	for _, h := range result.Holes {
		strokes += h.Strokes
		putts += h.Putts
		assert.Equal(t, len(h.Shots), h.Strokes)
	}
	assert.Equal(t, strokes, result.TotalStrokes)
	assert.Equal(t, putts, result.TotalPutts)

	// only the par 4 counts as a fairway opportunity
	assert.Equal(t, 1, result.FairwayOpportunities)
	assert.LessOrEqual(t, result.FairwaysHit, result.FairwayOpportunities)
	assert.LessOrEqual(t, result.GreensInRegulation, len(result.Holes))
	assert.LessOrEqual(t, result.ScrambleSuccesses, result.ScrambleOpportunities)
}

func TestPlayRound_SameSeedIsDeterministic(t *testing.T) {
	spec := twoHoleRound()

	a := NewRoundRunner(skill.Handicap(12), dispersion.Identity(), 7).PlayRound(spec, Options{})
	b := NewRoundRunner(skill.Handicap(12), dispersion.Identity(), 7).PlayRound(spec, Options{})

	assert.Equal(t, a.TotalStrokes, b.TotalStrokes)
	assert.Equal(t, a.TotalPutts, b.TotalPutts)
	require.Equal(t, len(a.Holes), len(b.Holes))
	for i := range a.Holes {
		assert.Equal(t, a.Holes[i].Shots, b.Holes[i].Shots)
	}
}

func TestPlayRound_LooserCalibrationScoresWorse(t *testing.T) {
	// widening the dispersion scale should never make the aggregate score
	// meaningfully better over a batch of seeds
	spec := twoHoleRound()

	tight, loose := 0, 0
	for seed := int64(0); seed < 60; seed++ {
		tight += NewRoundRunner(skill.Handicap(15), dispersion.Identity(), seed).
			PlayRound(spec, Options{}).TotalStrokes
		loose += NewRoundRunner(skill.Handicap(15),
			dispersion.State{DispersionScale: 2.0, ChipMultiplierScale: 1.5}, seed).
			PlayRound(spec, Options{}).TotalStrokes
	}
	assert.GreaterOrEqual(t, loose, tight)
}
