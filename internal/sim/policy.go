package sim

import (
	"math"
	"math/rand"

	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/dispersion"
	"github.com/fairwaylabs/roundsim/internal/geo"
	"github.com/fairwaylabs/roundsim/internal/putting"
	"github.com/fairwaylabs/roundsim/internal/skill"
	"github.com/fairwaylabs/roundsim/internal/trees"
)

const (
	gimmeMeters        = 0.35
	chipRangeMeters    = 30.0
	chipOutRangeMeters = 50.0

	bunkerMaxShotMeters  = 55.0
	bunkerFarGreenMeters = 120.0

	nearTreeClearanceMeters = 3.0
	consecutiveTreeLimit    = 3

	minTeeShotMeters        = 140.0
	teeTargetMinHoleMeters  = 250.0
	approachBufferMeters    = 10.0
	roughDistanceFactor     = 0.85
	roughDispersionLoosen   = 1.25
	defaultGreenRadiusMeter = 9.0

	clubPutter = "Putter"
)

// HoleSimulator resolves holes stroke by stroke for one skill profile under a
// fixed calibration snapshot.
type HoleSimulator struct {
	profile skill.Profile
	calib   dispersion.State
	rng     *rand.Rand
}

// NewHoleSimulator creates a simulator. The calibration state is snapshotted
// by the caller at batch start so concurrent rounds never observe a write.
func NewHoleSimulator(profile skill.Profile, calib dispersion.State, rng *rand.Rand) *HoleSimulator {
	return &HoleSimulator{profile: profile, calib: calib, rng: rng}
}

// normalizeGeometry applies the missing-data fallbacks: an absent green
// becomes a default-radius circle around the pin, and boundaries are dropped
// for unnamed courses so the out-of-bounds test is skipped.
func normalizeGeometry(spec HoleSpec, opts Options) course.HoleGeometry {
	g := spec.Geometry
	if g.Green.Kind == "" {
		g.Green = course.Circle(spec.Pin, defaultGreenRadiusMeter)
	}
	if opts.CourseName == "" {
		g.Boundaries = nil
	}
	return g
}

// effectiveDistance adjusts raw yardage for wind and slope. The adjustment
// informs club and target selection only; the physical landing-point math
// always uses real distance.
func effectiveDistance(raw, bearingDeg float64, env Environment) float64 {
	tail := env.WindSpeedMS * math.Cos((env.WindDirectionDeg-bearingDeg)*math.Pi/180)
	adjusted := raw * (1 - 0.012*tail + 0.003*env.SlopePct)
	return math.Max(0, adjusted)
}

// PlayHole runs the per-hole state machine: terminal on holed-out or the shot
// cap, with stroke-and-distance penalties for water and out-of-bounds.
func (s *HoleSimulator) PlayHole(spec HoleSpec, opts Options) HoleResult {
	geom := normalizeGeometry(spec, opts)

	shotCap := 3 * spec.Par
	if opts.ShotCap > 0 && opts.ShotCap < shotCap {
		shotCap = opts.ShotCap
	}

	result := HoleResult{Number: spec.Number, Par: spec.Par}
	pos := spec.Tee
	lastOrigin := spec.Tee
	consecutiveTreeHits := 0
	holed := false

	for len(result.Shots) < shotCap && !holed {
		toPin := geo.Inverse(pos, spec.Pin)
		distToPin := toPin.DistanceMeters

		// gimme: tap in unconditionally
		if distToPin < gimmeMeters {
			result.Shots = append(result.Shots, ShotRecord{
				From: pos, To: spec.Pin, Target: spec.Pin,
				IntendedDistance: distToPin, ActualDistance: distToPin,
				Club: clubPutter, Lie: course.LieGreen, Putt: true, Holed: true,
			})
			holed = true
			break
		}

		lie := course.Classify(pos, geom)
		isTeeShot := len(result.Shots) == 0

		switch {
		case lie == course.LieWater || lie == course.LieOutOfBounds:
			// stroke and distance: one penalty stroke, replay from the spot
			// the hazard shot was played from
			result.Shots = append(result.Shots, ShotRecord{
				From: lastOrigin, To: lastOrigin, Target: lastOrigin,
				Lie: course.Classify(lastOrigin, geom), Penalty: true,
			})
			pos = lastOrigin
			continue

		case lie == course.LieGreen:
			distFeet := distToPin * putting.FeetPerMeter
			putt := putting.ResolvePutt(s.rng, s.profile, spec.Pin, distFeet)
			rec := ShotRecord{
				From: pos, To: putt.Leave, Target: spec.Pin,
				IntendedDistance: distToPin,
				Club:             clubPutter, Putt: true, Holed: putt.Holed,
				Lie: course.LieGreen,
			}
			if putt.Holed {
				rec.To = spec.Pin
				rec.ActualDistance = distToPin
				holed = true
			} else {
				rec.ActualDistance = geo.Inverse(pos, putt.Leave).DistanceMeters
			}
			result.Shots = append(result.Shots, rec)
			lastOrigin = pos
			pos = rec.To

		case lie == course.LieBunker:
			target, intended := s.bunkerShot(pos, spec.Pin, distToPin, geom)
			rec := s.executeShot(pos, target, intended, dispersion.Bunker(s.calib), geom)
			s.applyTreeCounter(&consecutiveTreeHits, rec)
			result.Shots = append(result.Shots, rec)
			lastOrigin = pos
			pos = rec.To

		case distToPin <= chipRangeMeters:
			// close to the hole, any lie plays as a chip, never a full swing
			intended := math.Min(distToPin, chipRangeMeters)
			rec := s.executeShot(pos, spec.Pin, intended, dispersion.Chip(s.profile, s.calib), geom)
			s.applyTreeCounter(&consecutiveTreeHits, rec)
			result.Shots = append(result.Shots, rec)
			lastOrigin = pos
			pos = rec.To

		case lie == course.LieRough && !isTeeShot:
			blocked := trees.Blocks(pos, spec.Pin, geom.Trees) ||
				trees.Near(pos, geom.Trees, nearTreeClearanceMeters) ||
				consecutiveTreeHits >= consecutiveTreeLimit
			if target, ok := s.chipOutTarget(pos, geom); blocked && ok {
				intended := geo.Inverse(pos, target).DistanceMeters
				rec := s.executeShot(pos, target, intended, dispersion.Chip(s.profile, s.calib), geom)
				s.applyTreeCounter(&consecutiveTreeHits, rec)
				result.Shots = append(result.Shots, rec)
				lastOrigin = pos
				pos = rec.To
				continue
			}
			effective := effectiveDistance(distToPin, toPin.InitialBearingDeg, opts.Env)
			intended := math.Min(effective, skill.MaxClubDistance(s.profile)*roughDistanceFactor)
			params := dispersion.FullShot(s.profile, s.calib)
			params.DistanceErrorPct *= roughDispersionLoosen
			params.AngularErrorDeg *= roughDispersionLoosen
			rec := s.executeShot(pos, spec.Pin, intended, params, geom)
			s.applyTreeCounter(&consecutiveTreeHits, rec)
			result.Shots = append(result.Shots, rec)
			lastOrigin = pos
			pos = rec.To

		default: // tee or fairway, full swing
			target, intended := s.fullShot(pos, spec, distToPin, toPin.InitialBearingDeg, geom, opts, isTeeShot)
			rec := s.executeShot(pos, target, intended, dispersion.FullShot(s.profile, s.calib), geom)
			s.applyTreeCounter(&consecutiveTreeHits, rec)
			result.Shots = append(result.Shots, rec)
			lastOrigin = pos
			pos = rec.To
		}
	}

	s.fold(&result, spec, holed)
	return result
}

// bunkerShot picks the sand-shot target: chip out sideways to fairway when
// the green is out of reach, otherwise advance toward the pin capped at a
// short sand distance.
func (s *HoleSimulator) bunkerShot(pos, pin geo.Coordinate, distToPin float64, geom course.HoleGeometry) (geo.Coordinate, float64) {
	if distToPin > bunkerFarGreenMeters {
		if target, ok := s.chipOutTarget(pos, geom); ok {
			return target, geo.Inverse(pos, target).DistanceMeters
		}
	}
	return pin, math.Min(distToPin, bunkerMaxShotMeters)
}

// fullShot picks target and distance for a full swing. Tee shots on long
// par-4/par-5 holes aim at a fairway landing point rather than the pin, never
// shorter than the minimum tee-shot distance.
func (s *HoleSimulator) fullShot(pos geo.Coordinate, spec HoleSpec, distToPin, bearingToPin float64, geom course.HoleGeometry, opts Options, isTeeShot bool) (geo.Coordinate, float64) {
	maxClub := skill.MaxClubDistance(s.profile)
	effective := effectiveDistance(distToPin, bearingToPin, opts.Env)

	holeLength := geo.Inverse(spec.Tee, spec.Pin).DistanceMeters
	if isTeeShot && spec.Par >= 4 && holeLength > teeTargetMinHoleMeters {
		target, dist := s.teeTarget(pos, spec.Pin, bearingToPin, maxClub, geom)
		return target, dist
	}

	return spec.Pin, math.Min(effective, maxClub)
}

// teeTarget searches along the line to the pin for a fairway landing point,
// stepping back from the longest club. Falls back to a straight drive when no
// fairway point is found.
func (s *HoleSimulator) teeTarget(pos, pin geo.Coordinate, bearingToPin, maxClub float64, geom course.HoleGeometry) (geo.Coordinate, float64) {
	for dist := maxClub * 0.97; dist >= minTeeShotMeters; dist -= 10 {
		candidate := geo.Destination(pos, bearingToPin, dist)
		if course.Classify(candidate, geom) == course.LieFairway {
			return candidate, dist
		}
	}
	dist := math.Max(minTeeShotMeters, maxClub*0.9)
	return geo.Destination(pos, bearingToPin, dist), dist
}

// chipOutTarget finds a reachable fairway landing zone within the chip-out
// range, for escaping trouble sideways.
func (s *HoleSimulator) chipOutTarget(pos geo.Coordinate, geom course.HoleGeometry) (geo.Coordinate, bool) {
	for _, fw := range geom.Fairways {
		centroid := fw.Centroid()
		inv := geo.Inverse(pos, centroid)
		if inv.DistanceMeters == 0 {
			continue
		}
		if inv.DistanceMeters <= chipOutRangeMeters {
			return centroid, true
		}
		candidate := geo.Destination(pos, inv.InitialBearingDeg, chipOutRangeMeters*0.8)
		if course.Classify(candidate, geom) == course.LieFairway {
			return candidate, true
		}
	}
	return geo.Coordinate{}, false
}

// executeShot perturbs the intended shot by correlated Gaussian draws,
// projects the landing coordinate, and resolves tree collisions.
func (s *HoleSimulator) executeShot(pos, target geo.Coordinate, intended float64, params dispersion.Params, geom course.HoleGeometry) ShotRecord {
	inv := geo.Inverse(pos, target)
	bearing := inv.InitialBearingDeg

	z1, z2 := geo.StandardNormalPair(s.rng)
	actualDist := intended * (1 + z1*params.DistanceErrorPct)
	if actualDist < 0 {
		actualDist = 0
	}
	actualBearing := bearing + z2*params.AngularErrorDeg

	projected := geo.Destination(pos, actualBearing, actualDist)
	resolved := trees.Resolve(s.rng, pos, projected, geom.Trees)
	landing := resolved.Landing

	return ShotRecord{
		From:             pos,
		To:               landing,
		Target:           target,
		IntendedDistance: intended,
		ActualDistance:   geo.Inverse(pos, landing).DistanceMeters,
		Club:             skill.ClubForDistance(s.profile, intended),
		Lie:              course.Classify(landing, geom),
		TreeImpact:       resolved.Impact,
	}
}

func (s *HoleSimulator) applyTreeCounter(counter *int, rec ShotRecord) {
	if rec.TreeImpact != nil {
		*counter++
	} else {
		*counter = 0
	}
}

// fold derives the hole's statistics from its shot records
func (s *HoleSimulator) fold(result *HoleResult, spec HoleSpec, holed bool) {
	result.Completed = holed
	strokes := 0
	firstOnGreen := 0
	for i, shot := range result.Shots {
		strokes++
		if shot.Penalty {
			result.Penalties++
		}
		if shot.Putt {
			result.Putts++
		}
		if firstOnGreen == 0 && (shot.Lie == course.LieGreen || shot.Holed) && !shot.Penalty {
			firstOnGreen = i + 1
		}
	}
	result.Strokes = strokes

	result.FairwayOpportunity = spec.Par >= 4
	if result.FairwayOpportunity && len(result.Shots) > 0 {
		result.FairwayHit = result.Shots[0].Lie == course.LieFairway
	}

	result.GreenInRegulation = firstOnGreen > 0 && firstOnGreen <= spec.Par-2
	result.ThreePutt = result.Putts >= 3

	if !result.GreenInRegulation && result.Completed {
		result.ScrambleOpportunity = true
		result.ScrambleSuccess = result.Strokes <= spec.Par
	}
}
