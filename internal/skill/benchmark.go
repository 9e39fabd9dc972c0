package skill

import "fmt"

// BenchmarkStats holds expected round statistics for a handicap level
type BenchmarkStats struct {
	FairwayPct    float64 `json:"fairway_pct"`
	GIRPct        float64 `json:"gir_pct"`
	PuttsPerRound float64 `json:"putts_per_round"`
	ThreePuttPct  float64 `json:"three_putt_pct"`
	ScramblingPct float64 `json:"scrambling_pct"`
}

// benchmarkTiers are the fixed handicap tiers the table is keyed on
var benchmarkTiers = []float64{0, 5, 10, 15, 20, 25}

// benchmarkTable maps each tier to published per-round averages. Every
// statistic must get strictly worse as the tier number increases; the
// calibration loop re-checks this at runtime.
var benchmarkTable = []BenchmarkStats{
	{FairwayPct: 63.0, GIRPct: 58.0, PuttsPerRound: 29.5, ThreePuttPct: 3.0, ScramblingPct: 58.0},
	{FairwayPct: 59.0, GIRPct: 47.0, PuttsPerRound: 30.5, ThreePuttPct: 5.0, ScramblingPct: 48.0},
	{FairwayPct: 55.0, GIRPct: 37.0, PuttsPerRound: 31.5, ThreePuttPct: 8.0, ScramblingPct: 38.0},
	{FairwayPct: 51.0, GIRPct: 28.0, PuttsPerRound: 32.5, ThreePuttPct: 11.0, ScramblingPct: 29.0},
	{FairwayPct: 47.0, GIRPct: 20.0, PuttsPerRound: 33.5, ThreePuttPct: 15.0, ScramblingPct: 21.0},
	{FairwayPct: 43.0, GIRPct: 13.0, PuttsPerRound: 34.5, ThreePuttPct: 19.0, ScramblingPct: 15.0},
}

// ClampHandicap clamps a numeric handicap to the table range [0, 25]
func ClampHandicap(h float64) float64 {
	if h < 0 {
		return 0
	}
	if h > 25 {
		return 25
	}
	return h
}

// StatsForHandicap returns benchmark statistics for a numeric handicap,
// linearly interpolated between the two bracketing tiers. An exact tier match
// returns that tier's row unmodified.
func StatsForHandicap(h float64) BenchmarkStats {
	h = ClampHandicap(h)

	for i, tier := range benchmarkTiers {
		if h == tier {
			return benchmarkTable[i]
		}
	}

	// find bracketing tiers
	hi := 1
	for hi < len(benchmarkTiers)-1 && benchmarkTiers[hi] < h {
		hi++
	}
	lo := hi - 1
	t := (h - benchmarkTiers[lo]) / (benchmarkTiers[hi] - benchmarkTiers[lo])

	a, b := benchmarkTable[lo], benchmarkTable[hi]
	lerp := func(x, y float64) float64 { return x + t*(y-x) }
	return BenchmarkStats{
		FairwayPct:    lerp(a.FairwayPct, b.FairwayPct),
		GIRPct:        lerp(a.GIRPct, b.GIRPct),
		PuttsPerRound: lerp(a.PuttsPerRound, b.PuttsPerRound),
		ThreePuttPct:  lerp(a.ThreePuttPct, b.ThreePuttPct),
		ScramblingPct: lerp(a.ScramblingPct, b.ScramblingPct),
	}
}

// ValidateBenchmarkTable verifies the monotonicity precondition: fairway, GIR
// and scrambling fall while putts and three-putt rate rise across tiers.
func ValidateBenchmarkTable() error {
	for i := 1; i < len(benchmarkTable); i++ {
		prev, cur := benchmarkTable[i-1], benchmarkTable[i]
		tier := benchmarkTiers[i]
		if cur.FairwayPct >= prev.FairwayPct {
			return fmt.Errorf("benchmark table: fairway pct not decreasing at tier %.0f", tier)
		}
		if cur.GIRPct >= prev.GIRPct {
			return fmt.Errorf("benchmark table: gir pct not decreasing at tier %.0f", tier)
		}
		if cur.ScramblingPct >= prev.ScramblingPct {
			return fmt.Errorf("benchmark table: scrambling pct not decreasing at tier %.0f", tier)
		}
		if cur.PuttsPerRound <= prev.PuttsPerRound {
			return fmt.Errorf("benchmark table: putts per round not increasing at tier %.0f", tier)
		}
		if cur.ThreePuttPct <= prev.ThreePuttPct {
			return fmt.Errorf("benchmark table: three-putt pct not increasing at tier %.0f", tier)
		}
	}
	return nil
}

// ReferenceStats returns the best-tier row, used as the reference point for
// dispersion scaling.
func ReferenceStats() BenchmarkStats {
	return benchmarkTable[0]
}
