package calibration

import (
	"github.com/fairwaylabs/roundsim/internal/course"
	"github.com/fairwaylabs/roundsim/internal/geo"
	"github.com/fairwaylabs/roundsim/internal/sim"
)

// verification course origin; any stretch of coastline works, the geometry is
// synthetic
var courseOrigin = geo.Coordinate{Lat: 36.5725, Lon: -121.9486}

type holePlan struct {
	par        int
	lengthM    float64
	bearingDeg float64
	pond       bool
	trees      bool
}

// 18 holes, par 72
var standardPlan = []holePlan{
	{4, 350, 10, false, false},
	{5, 490, 80, false, true},
	{4, 365, 150, false, false},
	{3, 160, 220, false, false},
	{4, 380, 290, true, false},
	{4, 340, 0, false, true},
	{3, 175, 70, false, false},
	{5, 505, 140, false, false},
	{4, 395, 210, true, false},
	{4, 360, 280, false, false},
	{4, 330, 350, false, true},
	{3, 150, 60, false, false},
	{4, 385, 130, false, false},
	{5, 475, 200, true, false},
	{4, 345, 270, false, true},
	{3, 185, 340, false, false},
	{4, 400, 50, false, false},
	{5, 520, 120, false, false},
}

// corridor builds a rectangular fairway polygon along the hole line
func corridor(tee geo.Coordinate, bearing, fromM, toM, halfWidthM float64) course.Region {
	near := geo.Destination(tee, bearing, fromM)
	far := geo.Destination(tee, bearing, toM)
	return course.Polygon([]geo.Coordinate{
		geo.Destination(near, bearing-90, halfWidthM),
		geo.Destination(far, bearing-90, halfWidthM),
		geo.Destination(far, bearing+90, halfWidthM),
		geo.Destination(near, bearing+90, halfWidthM),
	})
}

// StandardCourse builds the synthetic 18-hole course the calibration loop
// verifies against. Geometry is deterministic so seeded batches reproduce.
func StandardCourse() sim.RoundSpec {
	spec := sim.RoundSpec{
		CourseName: "calibration-links",
		Rating:     71.2,
		Slope:      125,
	}

	// spread tees on a coarse grid so holes never overlap
	for i, plan := range standardPlan {
		tee := geo.Destination(courseOrigin, 90, float64(i)*1200)
		pin := geo.Destination(tee, plan.bearingDeg, plan.lengthM)

		geom := course.HoleGeometry{
			Green: course.Circle(pin, 10),
		}
		if plan.par >= 4 {
			geom.Fairways = []course.Region{
				corridor(tee, plan.bearingDeg, 90, plan.lengthM-25, 18),
			}
		}

		// greenside bunker short-right of every green
		bunkerCenter := geo.Destination(geo.Destination(pin, plan.bearingDeg+180, 16), plan.bearingDeg+90, 12)
		geom.Bunkers = []course.Region{course.Circle(bunkerCenter, 5)}

		if plan.pond {
			pondCenter := geo.Destination(geo.Destination(tee, plan.bearingDeg, plan.lengthM*0.6), plan.bearingDeg-90, 30)
			geom.Water = []course.Region{course.Circle(pondCenter, 22)}
		}
		if plan.trees {
			for _, side := range []float64{-1, 1} {
				canopy := geo.Destination(geo.Destination(tee, plan.bearingDeg, plan.lengthM*0.45), plan.bearingDeg+side*90, 26)
				geom.Trees = append(geom.Trees, course.Tree{
					Canopy:             course.Circle(canopy, 6),
					CanopyHeightMeters: 13,
				})
			}
		}

		spec.Holes = append(spec.Holes, sim.HoleSpec{
			Number:   i + 1,
			Par:      plan.par,
			Tee:      tee,
			Pin:      pin,
			Geometry: geom,
		})
	}

	return spec
}
