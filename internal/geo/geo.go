package geo

import "math"

// WGS-84 ellipsoid constants
const (
	SemiMajorAxis = 6378137.0
	Flattening    = 1.0 / 298.257223563

	semiMinorAxis = SemiMajorAxis * (1 - Flattening)
	earthRadius   = 6371000.0

	convergenceThreshold = 1e-12
	maxIterations        = 100
)

// Coordinate represents a geographic coordinate (WGS 84)
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// InverseResult holds the ellipsoidal inverse solution between two coordinates
type InverseResult struct {
	DistanceMeters    float64
	InitialBearingDeg float64
	FinalBearingDeg   float64
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// normalizeBearing wraps a bearing into [0, 360)
func normalizeBearing(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Inverse computes the ellipsoidal inverse solution: distance and bearings
// between two coordinates. Coincident or numerically degenerate inputs return
// a zero result rather than an error; callers tolerate zero distance.
func Inverse(a, b Coordinate) InverseResult {
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return InverseResult{}
	}

	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	bigL := toRadians(b.Lon - a.Lon)

	tanU1 := (1 - Flattening) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1
	tanU2 := (1 - Flattening) * math.Tan(phi2)
	cosU2 := 1 / math.Sqrt(1+tanU2*tanU2)
	sinU2 := tanU2 * cosU2

	lambda := bigL
	var sinLambda, cosLambda float64
	var sinSigma, cosSigma, sigma float64
	var sinAlpha, cosSqAlpha, cos2SigmaM float64

	converged := false
	for i := 0; i < maxIterations; i++ {
		sinLambda = math.Sin(lambda)
		cosLambda = math.Cos(lambda)

		sinSqSigma := (cosU2*sinLambda)*(cosU2*sinLambda) +
			(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda)
		sinSigma = math.Sqrt(sinSqSigma)
		if sinSigma == 0 {
			// coincident points
			return InverseResult{}
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha = cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			// equatorial line
			cos2SigmaM = 0
		}

		c := Flattening / 16 * cosSqAlpha * (4 + Flattening*(4-3*cosSqAlpha))
		lambdaPrev := lambda
		lambda = bigL + (1-c)*Flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-lambdaPrev) < convergenceThreshold {
			converged = true
			break
		}
	}
	if !converged {
		return InverseResult{}
	}

	uSq := cosSqAlpha * (SemiMajorAxis*SemiMajorAxis - semiMinorAxis*semiMinorAxis) /
		(semiMinorAxis * semiMinorAxis)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
		(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
			bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	distance := semiMinorAxis * bigA * (sigma - deltaSigma)

	initialBearing := math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)
	finalBearing := math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)

	return InverseResult{
		DistanceMeters:    distance,
		InitialBearingDeg: normalizeBearing(toDegrees(initialBearing)),
		FinalBearingDeg:   normalizeBearing(toDegrees(finalBearing)),
	}
}

// Destination computes the ellipsoidal direct solution: the coordinate reached
// by travelling distanceMeters from start along bearingDeg. Returns start
// unchanged if the iteration fails to converge.
func Destination(start Coordinate, bearingDeg, distanceMeters float64) Coordinate {
	if distanceMeters == 0 {
		return start
	}

	phi1 := toRadians(start.Lat)
	alpha1 := toRadians(bearingDeg)
	sinAlpha1 := math.Sin(alpha1)
	cosAlpha1 := math.Cos(alpha1)

	tanU1 := (1 - Flattening) * math.Tan(phi1)
	cosU1 := 1 / math.Sqrt(1+tanU1*tanU1)
	sinU1 := tanU1 * cosU1

	sigma1 := math.Atan2(tanU1, cosAlpha1)
	sinAlpha := cosU1 * sinAlpha1
	cosSqAlpha := 1 - sinAlpha*sinAlpha

	uSq := cosSqAlpha * (SemiMajorAxis*SemiMajorAxis - semiMinorAxis*semiMinorAxis) /
		(semiMinorAxis * semiMinorAxis)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))

	sigma := distanceMeters / (semiMinorAxis * bigA)
	var sinSigma, cosSigma, cos2SigmaM float64

	converged := false
	for i := 0; i < maxIterations; i++ {
		cos2SigmaM = math.Cos(2*sigma1 + sigma)
		sinSigma = math.Sin(sigma)
		cosSigma = math.Cos(sigma)
		deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*
			(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
				bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
		sigmaPrev := sigma
		sigma = distanceMeters/(semiMinorAxis*bigA) + deltaSigma
		if math.Abs(sigma-sigmaPrev) < convergenceThreshold {
			converged = true
			break
		}
	}
	if !converged {
		return start
	}

	tmp := sinU1*sinSigma - cosU1*cosSigma*cosAlpha1
	phi2 := math.Atan2(sinU1*cosSigma+cosU1*sinSigma*cosAlpha1,
		(1-Flattening)*math.Sqrt(sinAlpha*sinAlpha+tmp*tmp))
	lambda := math.Atan2(sinSigma*sinAlpha1, cosU1*cosSigma-sinU1*sinSigma*cosAlpha1)
	c := Flattening / 16 * cosSqAlpha * (4 + Flattening*(4-3*cosSqAlpha))
	bigL := lambda - (1-c)*Flattening*sinAlpha*
		(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

	return Coordinate{
		Lat: toDegrees(phi2),
		Lon: start.Lon + toDegrees(bigL),
	}
}

// HaversineMeters computes the great-circle distance between two coordinates.
// Used for containment checks where centimeter precision is unnecessary.
func HaversineMeters(a, b Coordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	dPhi := toRadians(b.Lat - a.Lat)
	dLambda := toRadians(b.Lon - a.Lon)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
