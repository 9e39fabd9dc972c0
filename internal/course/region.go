package course

import (
	"github.com/fairwaylabs/roundsim/internal/geo"
)

// ShapeKind discriminates the two region shapes
type ShapeKind string

const (
	ShapeCircle  ShapeKind = "circle"
	ShapePolygon ShapeKind = "polygon"
)

// Region represents a course feature as either a circle (center + radius) or a
// polygon (ordered ring, implicitly closed). Consumers switch exhaustively on
// Kind.
type Region struct {
	Kind         ShapeKind        `json:"kind"`
	Center       geo.Coordinate   `json:"center,omitempty"`
	RadiusMeters float64          `json:"radius_meters,omitempty"`
	Ring         []geo.Coordinate `json:"ring,omitempty"`
}

// Circle builds a circular region
func Circle(center geo.Coordinate, radiusMeters float64) Region {
	return Region{Kind: ShapeCircle, Center: center, RadiusMeters: radiusMeters}
}

// Polygon builds a polygonal region from an ordered ring of coordinates
func Polygon(ring []geo.Coordinate) Region {
	return Region{Kind: ShapePolygon, Ring: ring}
}

// Contains reports whether the point lies inside the region. Circles use
// great-circle distance; polygons use even-odd ray casting on the closed ring.
func (r Region) Contains(p geo.Coordinate) bool {
	switch r.Kind {
	case ShapeCircle:
		return geo.HaversineMeters(r.Center, p) <= r.RadiusMeters
	case ShapePolygon:
		return pointInRing(p, r.Ring)
	default:
		return false
	}
}

// Centroid returns a representative interior coordinate for the region
func (r Region) Centroid() geo.Coordinate {
	switch r.Kind {
	case ShapeCircle:
		return r.Center
	case ShapePolygon:
		if len(r.Ring) == 0 {
			return geo.Coordinate{}
		}
		var lat, lon float64
		for _, v := range r.Ring {
			lat += v.Lat
			lon += v.Lon
		}
		n := float64(len(r.Ring))
		return geo.Coordinate{Lat: lat / n, Lon: lon / n}
	default:
		return geo.Coordinate{}
	}
}

// pointInRing implements the even-odd rule over the implicitly closed ring.
// Lat/lon are treated as planar, which holds at hole scale.
func pointInRing(p geo.Coordinate, ring []geo.Coordinate) bool {
	if len(ring) < 3 {
		return false
	}
	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		vi, vj := ring[i], ring[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			x := vj.Lon + (p.Lat-vj.Lat)/(vi.Lat-vj.Lat)*(vi.Lon-vj.Lon)
			if p.Lon < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Tree represents a tree obstacle: a circular or polygonal canopy footprint
// plus its height above the ground.
type Tree struct {
	Canopy             Region  `json:"canopy"`
	CanopyHeightMeters float64 `json:"canopy_height_meters"`
}

// HoleGeometry describes the static features of one hole. Exactly one green is
// expected; the other feature lists may be empty. An empty Boundaries list
// means everywhere is in bounds.
type HoleGeometry struct {
	Green      Region   `json:"green"`
	Fairways   []Region `json:"fairways,omitempty"`
	Bunkers    []Region `json:"bunkers,omitempty"`
	Water      []Region `json:"water,omitempty"`
	Trees      []Tree   `json:"trees,omitempty"`
	Boundaries []Region `json:"boundaries,omitempty"`
}
