package calibration

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// passingTiers builds a synthetic batch that satisfies every pass condition
// against the standard course rating and slope
func passingTiers() []TierStats {
	handicaps := []float64{0, 5, 10, 15, 20}
	girs := []float64{65, 52, 40, 30, 22}
	fairways := []float64{62, 55, 48, 42, 37}
	scrambling := []float64{58, 45, 35, 27, 20}

	tiers := make([]TierStats, 0, len(handicaps))
	for i, h := range handicaps {
		expected := 71.2 + h*125/113
		tiers = append(tiers, TierStats{
			Handicap:      h,
			Rounds:        200,
			AvgScore:      expected + 1,
			ExpectedScore: expected,
			GIRPct:        girs[i],
			FairwayPct:    fairways[i],
			ScramblingPct: scrambling[i],
		})
	}
	return tiers
}

func TestEvaluate_PassingBatch(t *testing.T) {
	assert.Empty(t, Evaluate(passingTiers()))
}

func TestEvaluate_RatingBandViolation(t *testing.T) {
	tiers := passingTiers()
	tiers[2].AvgScore = tiers[2].ExpectedScore + 9

	assert.Contains(t, Evaluate(tiers), FailRatingBand)
}

func TestEvaluate_BandIsAsymmetric(t *testing.T) {
	// four over is inside the band, four under is not
	over := passingTiers()
	over[1].AvgScore = over[1].ExpectedScore + 4
	assert.NotContains(t, Evaluate(over), FailRatingBand)

	under := passingTiers()
	under[1].AvgScore = under[1].ExpectedScore - 4
	assert.Contains(t, Evaluate(under), FailRatingBand)
}

func TestEvaluate_ScoreOrderViolation(t *testing.T) {
	tiers := passingTiers()
	tiers[3].AvgScore = tiers[2].AvgScore - 2

	assert.Contains(t, Evaluate(tiers), FailScoreOrder)
}

func TestEvaluate_StatTrendViolation(t *testing.T) {
	// a higher handicap scrambling markedly better than the tier below it
	tiers := passingTiers()
	tiers[4].ScramblingPct = tiers[3].ScramblingPct + 6

	assert.Contains(t, Evaluate(tiers), FailStatTrend)
}

func TestEvaluate_TrendToleratesNoise(t *testing.T) {
	tiers := passingTiers()
	tiers[4].GIRPct = tiers[3].GIRPct + 2

	assert.NotContains(t, Evaluate(tiers), FailStatTrend)
}

func TestEvaluate_ScoreGapViolation(t *testing.T) {
	tiers := passingTiers()
	for i := range tiers {
		// compress all tiers onto nearly one score
		tiers[i].AvgScore = tiers[0].AvgScore + float64(i)
	}

	assert.Contains(t, Evaluate(tiers), FailScoreGap)
}

func TestAdjust_LoosensWhenScoresTooLow(t *testing.T) {
	tiers := passingTiers()
	for i := range tiers {
		tiers[i].AvgScore = tiers[i].ExpectedScore - 6
	}

	state := dispersion.Identity()
	for i := 0; i < 3; i++ {
		next := adjust(state, tiers, []FailureKind{FailRatingBand}, 0.05)
		assert.Greater(t, next.DispersionScale, state.DispersionScale,
			"each failed attempt must loosen further")
		state = next
	}
	assert.InDelta(t, 1.15, state.DispersionScale, 1e-9)
}

func TestAdjust_TightensWithFloor(t *testing.T) {
	tiers := passingTiers()
	for i := range tiers {
		tiers[i].AvgScore = tiers[i].ExpectedScore + 8
	}

	state := dispersion.State{DispersionScale: 0.3, ChipMultiplierScale: 1.0}
	for i := 0; i < 10; i++ {
		state = adjust(state, tiers, []FailureKind{FailRatingBand}, 0.05)
	}
	assert.InDelta(t, 0.2, state.DispersionScale, 1e-9, "scale never drops below the floor")
}

func TestAdjust_TrendFailureWidensChipScale(t *testing.T) {
	state := adjust(dispersion.Identity(), passingTiers(),
		[]FailureKind{FailStatTrend}, 0.05)
	assert.InDelta(t, 1.025, state.ChipMultiplierScale, 1e-9)

	// only once per attempt even when both trend conditions fail
	state = adjust(dispersion.Identity(), passingTiers(),
		[]FailureKind{FailStatTrend, FailScoreOrder}, 0.05)
	assert.InDelta(t, 1.025, state.ChipMultiplierScale, 1e-9)
}

func TestStandardCourse(t *testing.T) {
	spec := StandardCourse()

	require.Len(t, spec.Holes, 18)
	assert.Equal(t, 72, spec.TotalPar())
	assert.Equal(t, 71.2, spec.Rating)
	assert.Equal(t, float64(125), spec.Slope)
	assert.NotEmpty(t, spec.CourseName)

	for _, h := range spec.Holes {
		assert.NotEmpty(t, h.Geometry.Green.Kind, "hole %d has a green", h.Number)
		assert.NotEmpty(t, h.Geometry.Bunkers, "hole %d has a bunker", h.Number)
		if h.Par >= 4 {
			assert.NotEmpty(t, h.Geometry.Fairways, "hole %d has a fairway", h.Number)
		}
	}
}

func TestNew_RatingSlopeOverride(t *testing.T) {
	loop := New(Config{Rating: 70, Slope: 120}, quietLogger())

	assert.Equal(t, 70.0, loop.cfg.Course.Rating)
	assert.Equal(t, 120.0, loop.cfg.Course.Slope)
	assert.InDelta(t, 70+10*120.0/113, loop.expectedScore(10), 1e-9)

	// zero values keep the course's own indices
	loop = New(Config{}, quietLogger())
	assert.Equal(t, 71.2, loop.cfg.Course.Rating)
	assert.Equal(t, 125.0, loop.cfg.Course.Slope)
}

func TestEvaluate_EmptyBatch(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Contains(t, Evaluate(nil), FailScoreGap)
	})
}

func TestRun_ExhaustsAttemptsAndLoosens(t *testing.T) {
	prev := dispersion.Snapshot()
	defer dispersion.SetState(prev)
	dispersion.SetState(dispersion.Identity())

	// an unreachably high rating keeps every tier far below the expected
	// band, so every attempt fails and loosens the dispersion scale
	loop := New(Config{
		RoundsPerTier: 2,
		MaxAttempts:   3,
		Step:          0.05,
		Workers:       2,
		BaseSeed:      5,
		Rating:        110,
	}, quietLogger())

	result, err := loop.Run()
	require.NoError(t, err)

	assert.False(t, result.Passed)
	assert.Equal(t, 3, result.Attempts)
	require.Len(t, result.Reports, 3)

	for i, report := range result.Reports {
		assert.Equal(t, i+1, report.Attempt)
		assert.False(t, report.Passed)
		assert.Contains(t, report.Failures, FailRatingBand)
		require.Len(t, report.Tiers, 5)
		assert.InDelta(t, 1.0+float64(i)*0.05, report.State.DispersionScale, 1e-9,
			"each failed too-tight attempt loosens further")
	}

	// the result carries the multipliers the next attempt would have used
	assert.InDelta(t, 1.15, result.Final.DispersionScale, 1e-9)
}

func TestRunBatch_SmallBatch(t *testing.T) {
	loop := New(Config{
		RoundsPerTier: 3,
		Workers:       2,
		BaseSeed:      11,
	}, quietLogger())

	tiers := loop.RunBatch(dispersion.Identity())

	require.Len(t, tiers, 5)
	for i, ts := range tiers {
		assert.Equal(t, 3, ts.Rounds)
		assert.Greater(t, ts.AvgScore, 50.0, "tier %v produced sane scores", ts.Handicap)
		assert.InDelta(t, 71.2+ts.Handicap*125/113, ts.ExpectedScore, 1e-9)
		if i > 0 {
			assert.GreaterOrEqual(t, ts.Handicap, tiers[i-1].Handicap)
		}
	}
}
