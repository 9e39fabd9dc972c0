package skill

// ProfileKind discriminates numeric-handicap and named-tier skill profiles
type ProfileKind string

const (
	ProfileHandicap ProfileKind = "handicap"
	ProfileTier     ProfileKind = "tier"
)

// Tier names a discrete skill level with its own fixed club-distance table.
// TierTour is tighter than any numeric handicap can reach.
type Tier string

const (
	TierTour    Tier = "tour"
	TierScratch Tier = "scratch"
	TierClub    Tier = "club"
)

// Profile represents golfer skill as either a numeric handicap (continuous,
// clamped to [0,25] for table lookups) or a named tier. Consumers switch on
// Kind rather than sniffing strings.
type Profile struct {
	Kind     ProfileKind `json:"kind"`
	Handicap float64     `json:"handicap,omitempty"`
	Tier     Tier        `json:"tier,omitempty"`
}

// Handicap builds a numeric-handicap profile
func Handicap(h float64) Profile {
	return Profile{Kind: ProfileHandicap, Handicap: h}
}

// Named builds a named-tier profile
func Named(t Tier) Profile {
	return Profile{Kind: ProfileTier, Tier: t}
}

// EffectiveHandicap maps the profile to a numeric handicap for table lookups.
// Named tiers map onto fixed points of the scale.
func (p Profile) EffectiveHandicap() float64 {
	switch p.Kind {
	case ProfileTier:
		switch p.Tier {
		case TierTour:
			return -4
		case TierScratch:
			return 0
		default:
			return 10
		}
	default:
		return p.Handicap
	}
}
