package trees

import (
	"math"
	"math/rand"

	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/geo"
)

const (
	// apex of the symmetric flight parabola as a fraction of shot length
	apexFraction = 0.07

	deflectMinMeters = 2.0
	deflectMaxMeters = 7.0
)

// Result describes a resolved shot path. Impact is nil when no obstacle
// interrupts the flight, in which case Landing is the original target.
type Result struct {
	Landing geo.Coordinate
	Impact  *geo.Coordinate
}

// angleDiffDeg wraps a bearing difference into (-180, 180]
func angleDiffDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// trajectoryHeight returns ball height at forward distance x along a shot of
// total length l, modelled as a symmetric parabola.
func trajectoryHeight(x, l float64) float64 {
	if l <= 0 {
		return 0
	}
	apex := apexFraction * l
	return 4 * apex * x * (l - x) / (l * l)
}

// localFrame projects a point into the shot's 2-D frame: forward distance
// along the shot bearing and signed lateral offset.
func localFrame(from geo.Coordinate, shotBearingDeg float64, p geo.Coordinate) (forward, lateral float64) {
	inv := geo.Inverse(from, p)
	delta := angleDiffDeg(inv.InitialBearingDeg-shotBearingDeg) * math.Pi / 180
	forward = inv.DistanceMeters * math.Cos(delta)
	lateral = inv.DistanceMeters * math.Sin(delta)
	return forward, lateral
}

// circleEntry solves the forward offset at which the shot line enters a
// circular canopy. Returns the entry offset and whether the line crosses.
func circleEntry(forward, lateral, radius, length float64) (float64, bool) {
	if math.Abs(lateral) > radius {
		return 0, false
	}
	half := math.Sqrt(radius*radius - lateral*lateral)
	entry := forward - half
	if entry <= 0 {
		// shot starts inside or behind the canopy footprint; treat the first
		// in-flight crossing as the exit edge
		entry = forward + half
	}
	if entry <= 0 || entry >= length {
		return 0, false
	}
	return entry, true
}

// polygonEntry finds the first forward offset at which the shot line crosses
// the canopy ring.
func polygonEntry(from geo.Coordinate, shotBearingDeg float64, ring []geo.Coordinate, length float64) (float64, bool) {
	if len(ring) < 3 {
		return 0, false
	}

	best := math.Inf(1)
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		f1, l1 := localFrame(from, shotBearingDeg, ring[j])
		f2, l2 := localFrame(from, shotBearingDeg, ring[i])
		j = i
		if (l1 > 0) == (l2 > 0) {
			continue
		}
		t := l1 / (l1 - l2)
		crossing := f1 + t*(f2-f1)
		if crossing > 0 && crossing < length && crossing < best {
			best = crossing
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

// Resolve checks a straight-line shot from one coordinate to another against a
// set of tree obstacles. The nearest canopy the parabolic trajectory cannot
// clear deflects the ball: the path is cut at the impact point and a short
// random deflection becomes the new landing. The impact position is recorded
// for rendering and commentary by external collaborators.
func Resolve(rng *rand.Rand, from, to geo.Coordinate, obstacles []course.Tree) Result {
	if len(obstacles) == 0 {
		return Result{Landing: to}
	}

	inv := geo.Inverse(from, to)
	length := inv.DistanceMeters
	if length <= 0 {
		return Result{Landing: to}
	}
	bearing := inv.InitialBearingDeg

	bestEntry := math.Inf(1)
	for _, tree := range obstacles {
		var entry float64
		var crosses bool

		switch tree.Canopy.Kind {
		case course.ShapeCircle:
			forward, lateral := localFrame(from, bearing, tree.Canopy.Center)
			entry, crosses = circleEntry(forward, lateral, tree.Canopy.RadiusMeters, length)
		case course.ShapePolygon:
			entry, crosses = polygonEntry(from, bearing, tree.Canopy.Ring, length)
		default:
			continue
		}
		if !crosses {
			continue
		}
		if trajectoryHeight(entry, length) > tree.CanopyHeightMeters {
			// ball clears the canopy at this point
			continue
		}
		if entry < bestEntry {
			bestEntry = entry
		}
	}

	if math.IsInf(bestEntry, 1) {
		return Result{Landing: to}
	}

	impact := geo.Destination(from, bearing, bestEntry)
	side := 1.0
	if rng.Float64() < 0.5 {
		side = -1.0
	}
	deflectBearing := bearing + side*(45+90*rng.Float64())
	deflectDistance := deflectMinMeters + (deflectMaxMeters-deflectMinMeters)*rng.Float64()
	landing := geo.Destination(impact, deflectBearing, deflectDistance)

	return Result{Landing: landing, Impact: &impact}
}

// Blocks reports whether the straight line between two coordinates passes
// through any canopy the parabola cannot clear. Used by the shot policy to
// decide on a chip-out without resolving a deflection.
func Blocks(from, to geo.Coordinate, obstacles []course.Tree) bool {
	if len(obstacles) == 0 {
		return false
	}
	inv := geo.Inverse(from, to)
	length := inv.DistanceMeters
	if length <= 0 {
		return false
	}
	for _, tree := range obstacles {
		var entry float64
		var crosses bool
		switch tree.Canopy.Kind {
		case course.ShapeCircle:
			forward, lateral := localFrame(from, inv.InitialBearingDeg, tree.Canopy.Center)
			entry, crosses = circleEntry(forward, lateral, tree.Canopy.RadiusMeters, length)
		case course.ShapePolygon:
			entry, crosses = polygonEntry(from, inv.InitialBearingDeg, tree.Canopy.Ring, length)
		default:
			continue
		}
		if crosses && trajectoryHeight(entry, length) <= tree.CanopyHeightMeters {
			return true
		}
	}
	return false
}

// Near reports whether a position sits within clearance meters of any canopy
// edge, which constrains the swing.
func Near(p geo.Coordinate, obstacles []course.Tree, clearanceMeters float64) bool {
	for _, tree := range obstacles {
		switch tree.Canopy.Kind {
		case course.ShapeCircle:
			if geo.HaversineMeters(p, tree.Canopy.Center) <= tree.Canopy.RadiusMeters+clearanceMeters {
				return true
			}
		case course.ShapePolygon:
			if tree.Canopy.Contains(p) {
				return true
			}
			for _, v := range tree.Canopy.Ring {
				if geo.HaversineMeters(p, v) <= clearanceMeters {
					return true
				}
			}
		}
	}
	return false
}
