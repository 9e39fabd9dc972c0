package sim

import (
	"github.com/google/uuid"

	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/geo"
)

// ShotRecord captures one stroke. The ordered sequence for a hole is immutable
// once the hole is resolved.
type ShotRecord struct {
	From             geo.Coordinate  `json:"from"`
	To               geo.Coordinate  `json:"to"`
	Target           geo.Coordinate  `json:"target"`
	IntendedDistance float64         `json:"intended_distance_m"`
	ActualDistance   float64         `json:"actual_distance_m"`
	Club             string          `json:"club"`
	Lie              course.Lie      `json:"lie"` // lie at landing
	Putt             bool            `json:"putt"`
	Penalty          bool            `json:"penalty"`
	Holed            bool            `json:"holed"`
	TreeImpact       *geo.Coordinate `json:"tree_impact,omitempty"`
}

// Environment holds optional conditions applied only to effective yardage
// before club and target selection, never to the landing-point math.
type Environment struct {
	WindSpeedMS      float64 `json:"wind_speed_ms"`
	WindDirectionDeg float64 `json:"wind_direction_deg"` // direction the wind blows toward
	SlopePct         float64 `json:"slope_pct"`          // positive is uphill to the pin
}

// HoleSpec describes one hole to simulate
type HoleSpec struct {
	Number   int                 `json:"number"`
	Par      int                 `json:"par"`
	Tee      geo.Coordinate      `json:"tee"`
	Pin      geo.Coordinate      `json:"pin"`
	Geometry course.HoleGeometry `json:"geometry"`
}

// Options tunes a single simulated hole
type Options struct {
	// ShotCap bounds strokes per hole; the effective cap is
	// min(ShotCap, 3*par), or 3*par when zero.
	ShotCap int `json:"shot_cap,omitempty"`
	// CourseName gates the out-of-bounds test: boundary polygons are only
	// consulted for named courses.
	CourseName string      `json:"course_name,omitempty"`
	Env        Environment `json:"env,omitempty"`
}

// HoleResult is the resolved outcome of one hole
type HoleResult struct {
	Number              int          `json:"number"`
	Par                 int          `json:"par"`
	Strokes             int          `json:"strokes"`
	Putts               int          `json:"putts"`
	Penalties           int          `json:"penalties"`
	FairwayOpportunity  bool         `json:"fairway_opportunity"`
	FairwayHit          bool         `json:"fairway_hit"`
	GreenInRegulation   bool         `json:"green_in_regulation"`
	ScrambleOpportunity bool         `json:"scramble_opportunity"`
	ScrambleSuccess     bool         `json:"scramble_success"`
	ThreePutt           bool         `json:"three_putt"`
	Completed           bool         `json:"completed"`
	Shots               []ShotRecord `json:"shots"`
}

// RoundSpec describes the 18 holes of a course plus its difficulty indices
type RoundSpec struct {
	CourseName string     `json:"course_name,omitempty"`
	Rating     float64    `json:"rating,omitempty"`
	Slope      float64    `json:"slope,omitempty"`
	Holes      []HoleSpec `json:"holes"`
}

// TotalPar sums par over the round
func (r RoundSpec) TotalPar() int {
	total := 0
	for _, h := range r.Holes {
		total += h.Par
	}
	return total
}

// RoundResult aggregates per-hole results; built purely by folding over
// ShotRecords and never mutated after construction.
type RoundResult struct {
	ID                    uuid.UUID    `json:"id"`
	TotalStrokes          int          `json:"total_strokes"`
	TotalPar              int          `json:"total_par"`
	FairwaysHit           int          `json:"fairways_hit"`
	FairwayOpportunities  int          `json:"fairway_opportunities"`
	GreensInRegulation    int          `json:"greens_in_regulation"`
	TotalPutts            int          `json:"total_putts"`
	ThreePutts            int          `json:"three_putts"`
	ScrambleSuccesses     int          `json:"scramble_successes"`
	ScrambleOpportunities int          `json:"scramble_opportunities"`
	IncompleteHoles       int          `json:"incomplete_holes"`
	Holes                 []HoleResult `json:"holes"`
}

// FairwayPct returns the fairways-hit rate in percent
func (r RoundResult) FairwayPct() float64 {
	if r.FairwayOpportunities == 0 {
		return 0
	}
	return 100 * float64(r.FairwaysHit) / float64(r.FairwayOpportunities)
}

// GIRPct returns the greens-in-regulation rate in percent
func (r RoundResult) GIRPct() float64 {
	if len(r.Holes) == 0 {
		return 0
	}
	return 100 * float64(r.GreensInRegulation) / float64(len(r.Holes))
}

// ScramblingPct returns the up-and-down success rate in percent
func (r RoundResult) ScramblingPct() float64 {
	if r.ScrambleOpportunities == 0 {
		return 0
	}
	return 100 * float64(r.ScrambleSuccesses) / float64(r.ScrambleOpportunities)
}
