package course

import (
	"github.com/fairwaylabs/roundsim/internal/geo"
)

// Lie represents the ground condition under a ball position
type Lie string

const (
	LieOutOfBounds Lie = "out_of_bounds"
	LieWater       Lie = "water"
	LieGreen       Lie = "green"
	LieBunker      Lie = "bunker"
	LieFairway     Lie = "fairway"
	LieRough       Lie = "rough"
)

// Classify returns the lie for a point under strict priority:
// out-of-bounds > water > green > bunker > fairway > rough. A point inside
// several overlapping regions resolves to the highest-priority label. The OOB
// test only applies when at least one boundary polygon is defined.
func Classify(p geo.Coordinate, g HoleGeometry) Lie {
	if len(g.Boundaries) > 0 {
		inBounds := false
		for _, b := range g.Boundaries {
			if b.Contains(p) {
				inBounds = true
				break
			}
		}
		if !inBounds {
			return LieOutOfBounds
		}
	}

	for _, w := range g.Water {
		if w.Contains(p) {
			return LieWater
		}
	}
	if g.Green.Contains(p) {
		return LieGreen
	}
	for _, b := range g.Bunkers {
		if b.Contains(p) {
			return LieBunker
		}
	}
	for _, f := range g.Fairways {
		if f.Contains(p) {
			return LieFairway
		}
	}
	return LieRough
}
