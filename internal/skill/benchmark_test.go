package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBenchmarkTable(t *testing.T) {
	require.NoError(t, ValidateBenchmarkTable())
}

func TestStatsForHandicap_TierExactMatch(t *testing.T) {
	stats := StatsForHandicap(10)
	assert.Equal(t, benchmarkTable[2], stats)
}

func TestStatsForHandicap_Interpolates(t *testing.T) {
	stats := StatsForHandicap(7.5)
	lo, hi := benchmarkTable[1], benchmarkTable[2]
	assert.InDelta(t, (lo.GIRPct+hi.GIRPct)/2, stats.GIRPct, 1e-9)
	assert.InDelta(t, (lo.PuttsPerRound+hi.PuttsPerRound)/2, stats.PuttsPerRound, 1e-9)
}

func TestStatsForHandicap_Clamps(t *testing.T) {
	assert.Equal(t, StatsForHandicap(0), StatsForHandicap(-8))
	assert.Equal(t, StatsForHandicap(25), StatsForHandicap(40))
}

func TestStatsForHandicap_GIRMonotone(t *testing.T) {
	for h1 := 0.0; h1 < 25; h1 += 0.5 {
		h2 := h1 + 0.5
		assert.GreaterOrEqual(t, StatsForHandicap(h1).GIRPct, StatsForHandicap(h2).GIRPct,
			"gir must not improve from handicap %.1f to %.1f", h1, h2)
	}
}

func TestMaxClubDistance_TourLongest(t *testing.T) {
	tour := MaxClubDistance(Named(TierTour))
	for h := 0.0; h <= 25; h += 5 {
		assert.Greater(t, tour, MaxClubDistance(Handicap(h)))
	}
}

func TestMaxClubDistance_ShrinksWithHandicap(t *testing.T) {
	assert.Greater(t, MaxClubDistance(Handicap(0)), MaxClubDistance(Handicap(12)))
	assert.Greater(t, MaxClubDistance(Handicap(12)), MaxClubDistance(Handicap(25)))
}

func TestClubForDistance(t *testing.T) {
	p := Handicap(0)
	assert.Equal(t, "Driver", ClubForDistance(p, 300))
	assert.Equal(t, "Driver", ClubForDistance(p, 240))
	assert.Equal(t, "Lob Wedge", ClubForDistance(p, 30))

	// the selected club's carry covers the distance whenever any club can
	club := ClubForDistance(p, 150)
	for _, c := range clubTable {
		if c.Name == club {
			assert.GreaterOrEqual(t, carryForProfile(c, p), 150.0)
		}
	}
}

func TestEffectiveHandicap(t *testing.T) {
	assert.Equal(t, -4.0, Named(TierTour).EffectiveHandicap())
	assert.Equal(t, 0.0, Named(TierScratch).EffectiveHandicap())
	assert.Equal(t, 18.0, Handicap(18).EffectiveHandicap())
}
