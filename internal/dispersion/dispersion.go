package dispersion

import (
	"math"

	"github.com/fairwaylabs/roundsim/internal/skill"
)

// Params holds the Gaussian shot-outcome spread around an intended target.
// Both values are non-negative and already scaled by the calibration state.
type Params struct {
	DistanceErrorPct float64 `json:"distance_error_pct"`
	AngularErrorDeg  float64 `json:"angular_error_deg"`
}

const (
	// full-shot distance error: base + per-handicap slope, clamped
	distErrBase     = 0.01
	distErrSlope    = 0.0035
	distErrMin      = 0.025
	distErrMax      = 0.105
	// full-shot angular error in degrees, same structure
	angErrBase  = 1.0
	angErrSlope = 0.18
	angErrMin   = 1.0
	angErrMax   = 5.5

	// GIR-derived tightening: better golfers get tighter dispersion; this
	// scale can only tighten relative to the clamp range, never loosen below
	// the base.
	girScaleMin = 1.0
	girScaleMax = 1.4

	// chip multiplier from the scrambling gap to the reference tier
	chipOffset  = 1.0
	chipDivisor = 80.0

	// sand shots are erratic regardless of handicap
	bunkerDistErr = 0.16
	bunkerAngErr  = 8.0
)

// named-tier constants reflect elite play; the tour tier is tighter than any
// numeric handicap can reach, so it stays statistically best under any
// calibration scale.
var tierParams = map[skill.Tier]Params{
	skill.TierTour:    {DistanceErrorPct: 0.015, AngularErrorDeg: 0.8},
	skill.TierScratch: {DistanceErrorPct: 0.03, AngularErrorDeg: 1.3},
	skill.TierClub:    {DistanceErrorPct: 0.055, AngularErrorDeg: 2.4},
}

var tierChipMultiplier = map[skill.Tier]float64{
	skill.TierTour:    1.0,
	skill.TierScratch: 1.1,
	skill.TierClub:    1.3,
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// girScale derives the GIR-based tightening factor for a numeric handicap
func girScale(h float64) float64 {
	girPct := skill.StatsForHandicap(h).GIRPct
	if girPct <= 0 {
		return girScaleMax
	}
	return clamp(skill.ReferenceStats().GIRPct/girPct, girScaleMin, girScaleMax)
}

// FullShot maps a skill profile to full-swing dispersion under the given
// calibration state.
func FullShot(p skill.Profile, st State) Params {
	if p.Kind == skill.ProfileTier {
		base, ok := tierParams[p.Tier]
		if !ok {
			base = tierParams[skill.TierClub]
		}
		return Params{
			DistanceErrorPct: base.DistanceErrorPct * st.DispersionScale,
			AngularErrorDeg:  base.AngularErrorDeg * st.DispersionScale,
		}
	}

	h := skill.ClampHandicap(p.Handicap)
	scale := girScale(h)
	return Params{
		DistanceErrorPct: clamp(distErrBase+h*distErrSlope, distErrMin, distErrMax) * scale * st.DispersionScale,
		AngularErrorDeg:  clamp(angErrBase+h*angErrSlope, angErrMin, angErrMax) * scale * st.DispersionScale,
	}
}

// ChipMultiplier returns the chip/recovery looseness factor for a profile:
// worse scrambling means looser chips.
func ChipMultiplier(p skill.Profile, st State) float64 {
	if p.Kind == skill.ProfileTier {
		m, ok := tierChipMultiplier[p.Tier]
		if !ok {
			m = tierChipMultiplier[skill.TierClub]
		}
		return m * st.ChipMultiplierScale
	}

	h := skill.ClampHandicap(p.Handicap)
	gap := skill.ReferenceStats().ScramblingPct - skill.StatsForHandicap(h).ScramblingPct
	return (chipOffset + gap/chipDivisor) * st.ChipMultiplierScale
}

// Chip maps a skill profile to chip and recovery-shot dispersion
func Chip(p skill.Profile, st State) Params {
	full := FullShot(p, st)
	m := ChipMultiplier(p, st)
	return Params{
		DistanceErrorPct: full.DistanceErrorPct * m,
		AngularErrorDeg:  full.AngularErrorDeg * m,
	}
}

// Bunker returns the fixed, skill-independent sand dispersion
func Bunker(st State) Params {
	return Params{
		DistanceErrorPct: bunkerDistErr * st.DispersionScale,
		AngularErrorDeg:  bunkerAngErr * st.DispersionScale,
	}
}
