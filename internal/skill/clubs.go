package skill

// clubCarry holds typical carry distances in meters per benchmark tier,
// longest club first.
type clubCarry struct {
	Name    string
	Carries [6]float64 // indexed like benchmarkTiers
	Tour    float64    // fixed carry for the tour tier
}

var clubTable = []clubCarry{
	{"Driver", [6]float64{240, 225, 210, 195, 180, 165}, 275},
	{"3 Wood", [6]float64{220, 207, 193, 180, 165, 150}, 250},
	{"Hybrid", [6]float64{205, 192, 178, 165, 152, 138}, 230},
	{"4 Iron", [6]float64{190, 178, 165, 152, 140, 126}, 212},
	{"5 Iron", [6]float64{180, 168, 156, 144, 132, 118}, 200},
	{"6 Iron", [6]float64{170, 158, 146, 134, 122, 109}, 188},
	{"7 Iron", [6]float64{158, 147, 136, 124, 112, 100}, 176},
	{"8 Iron", [6]float64{146, 136, 125, 114, 103, 91}, 164},
	{"9 Iron", [6]float64{134, 124, 114, 104, 94, 83}, 152},
	{"Pitching Wedge", [6]float64{120, 111, 102, 93, 84, 74}, 138},
	{"Gap Wedge", [6]float64{105, 97, 89, 81, 73, 64}, 122},
	{"Sand Wedge", [6]float64{90, 83, 76, 69, 62, 54}, 105},
	{"Lob Wedge", [6]float64{70, 64, 59, 53, 47, 41}, 85},
}

// carryForProfile returns the typical carry for one club under a profile.
// Numeric handicaps interpolate between tier columns; named tiers use fixed
// columns.
func carryForProfile(c clubCarry, p Profile) float64 {
	if p.Kind == ProfileTier {
		switch p.Tier {
		case TierTour:
			return c.Tour
		case TierScratch:
			return c.Carries[0]
		default:
			return c.Carries[2]
		}
	}

	h := ClampHandicap(p.Handicap)
	for i, tier := range benchmarkTiers {
		if h == tier {
			return c.Carries[i]
		}
	}
	hi := 1
	for hi < len(benchmarkTiers)-1 && benchmarkTiers[hi] < h {
		hi++
	}
	lo := hi - 1
	t := (h - benchmarkTiers[lo]) / (benchmarkTiers[hi] - benchmarkTiers[lo])
	return c.Carries[lo] + t*(c.Carries[hi]-c.Carries[lo])
}

// MaxClubDistance returns the profile's longest typical carry (the driver)
func MaxClubDistance(p Profile) float64 {
	return carryForProfile(clubTable[0], p)
}

// ClubForDistance selects, for commentary and UI purposes, the club for an
// intended shot distance: the shortest club whose typical carry covers the
// distance, or the driver when nothing reaches.
func ClubForDistance(p Profile, distanceMeters float64) string {
	selected := clubTable[0].Name
	for _, c := range clubTable {
		if carryForProfile(c, p) >= distanceMeters {
			selected = c.Name
		}
	}
	return selected
}
