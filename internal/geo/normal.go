package geo

import (
	"math"
	"math/rand"
)

// StandardNormalPair produces two independent samples from N(0,1) using the
// Box-Muller transform. Callers that correlate a distance-error draw with an
// angle-error draw take both values from a single call.
func StandardNormalPair(rng *rand.Rand) (float64, float64) {
	var u1 float64
	for {
		u1 = rng.Float64()
		if u1 > 0 {
			break
		}
	}
	u2 := rng.Float64()

	r := math.Sqrt(-2 * math.Log(u1))
	z1 := r * math.Cos(2*math.Pi*u2)
	z2 := r * math.Sin(2*math.Pi*u2)
	return z1, z2
}
