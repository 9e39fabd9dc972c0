package sim

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/skill"
)

// RoundRunner plays complete rounds for one skill profile. Each runner owns
// its random stream, so independent rounds can run concurrently.
type RoundRunner struct {
	profile skill.Profile
	calib   dispersion.State
	rng     *rand.Rand
}

// NewRoundRunner creates a runner with a seeded random stream and a fixed
// calibration snapshot.
func NewRoundRunner(profile skill.Profile, calib dispersion.State, seed int64) *RoundRunner {
	return &RoundRunner{
		profile: profile,
		calib:   calib,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// PlayRound resolves every hole of the spec in order and folds the per-hole
// results into aggregate counters.
func (r *RoundRunner) PlayRound(spec RoundSpec, opts Options) RoundResult {
	if opts.CourseName == "" {
		opts.CourseName = spec.CourseName
	}

	sim := NewHoleSimulator(r.profile, r.calib, r.rng)
	result := RoundResult{
		ID:    uuid.New(),
		Holes: make([]HoleResult, 0, len(spec.Holes)),
	}

	for _, hole := range spec.Holes {
		hr := sim.PlayHole(hole, opts)
		result.Holes = append(result.Holes, hr)

		result.TotalStrokes += hr.Strokes
		result.TotalPar += hr.Par
		result.TotalPutts += hr.Putts
		if hr.FairwayOpportunity {
			result.FairwayOpportunities++
		}
		if hr.FairwayHit {
			result.FairwaysHit++
		}
		if hr.GreenInRegulation {
			result.GreensInRegulation++
		}
		if hr.ThreePutt {
			result.ThreePutts++
		}
		if hr.ScrambleOpportunity {
			result.ScrambleOpportunities++
		}
		if hr.ScrambleSuccess {
			result.ScrambleSuccesses++
		}
		if !hr.Completed {
			result.IncompleteHoles++
		}
	}

	return result
}
