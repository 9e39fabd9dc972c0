package putting

import (
	"math"
	"math/rand"

	"github.com/fairwaylabs/roundsim/internal/geo"
	"github.com/fairwaylabs/roundsim/internal/skill"
)

const (
	FeetPerMeter = 3.28084

	// exponential decay rate beyond the last probability band
	longPuttDecay = 0.08

	// misses leave the ball 1-3 ft from the hole at a uniform random bearing.
	// A deliberately forgiving miss model; benchmark calibration is tuned
	// against exactly this leave distance.
	missLeaveMinFeet = 1.0
	missLeaveMaxFeet = 3.0
)

// make-probability bands for the best tier, strictly decreasing by distance
var makeBands = []struct {
	maxFeet float64
	prob    float64
}{
	{3, 0.998},
	{5, 0.96},
	{9, 0.65},
	{15, 0.38},
	{20, 0.22},
	{25, 0.15},
}

// MakeProbability returns the best-tier make probability for a putt length
func MakeProbability(distanceFeet float64) float64 {
	for _, band := range makeBands {
		if distanceFeet <= band.maxFeet {
			return band.prob
		}
	}
	last := makeBands[len(makeBands)-1]
	return last.prob * math.Exp(-longPuttDecay*(distanceFeet-last.maxFeet))
}

// handicapFactor scales the best-tier curve for a numeric handicap. The curve
// stays parallel to the best-tier bands, never exceeds them, and blends back
// toward them for plus handicaps.
func handicapFactor(h float64) float64 {
	const scratchFactor = 0.97
	if h < 0 {
		blend := math.Min(1, -h/5)
		return scratchFactor + blend*(1-scratchFactor)
	}
	f := scratchFactor - 0.013*skill.ClampHandicap(h)
	return math.Max(0.55, f)
}

// MakeProbabilityFor returns the make probability for a skill profile
func MakeProbabilityFor(p skill.Profile, distanceFeet float64) float64 {
	base := MakeProbability(distanceFeet)
	if p.Kind == skill.ProfileTier && p.Tier == skill.TierTour {
		return base
	}
	return math.Min(base, base*handicapFactor(p.EffectiveHandicap()))
}

// Result is the outcome of a single putt
type Result struct {
	Holed bool
	Leave geo.Coordinate
}

// ResolvePutt resolves one putt from the given distance. A make returns the
// pin position; a miss leaves the ball 1-3 ft from the hole at a random
// bearing.
func ResolvePutt(rng *rand.Rand, prof skill.Profile, pin geo.Coordinate, distanceFeet float64) Result {
	if rng.Float64() < MakeProbabilityFor(prof, distanceFeet) {
		return Result{Holed: true, Leave: pin}
	}

	leaveFeet := missLeaveMinFeet + (missLeaveMaxFeet-missLeaveMinFeet)*rng.Float64()
	bearing := 360 * rng.Float64()
	leave := geo.Destination(pin, bearing, leaveFeet/FeetPerMeter)
	return Result{Holed: false, Leave: leave}
}
