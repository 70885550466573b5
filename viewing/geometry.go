// Package viewing provides observation geometry for spaceborne
// sensing: ECEF positions, Earth occlusion, elevation and view zenith
// angles as typed quantities, slant range and TLE/SGP4 propagation.
// Positions stay in kilometres as orbital tooling expects; the typed
// outputs feed the formula namespaces directly.
package viewing

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/quantity"
)

// EarthRadiusKm is the mean Earth radius used by the occlusion and
// geometry helpers (kilometres).
const EarthRadiusKm = 6371.0

// Vec3 is an ECEF position in kilometres.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norm returns the Euclidean norm of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// DistanceTo returns the straight-line distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Norm()
}

// HasLineOfSight reports whether the straight segment between two
// ECEF points clears the Earth sphere. A segment that touches or
// crosses the sphere is blocked, so an observer sitting exactly on
// the sphere never has line of sight; real stations carry altitude.
func HasLineOfSight(p1, p2 Vec3) bool {
	v := p2.Sub(p1)
	a := v.Dot(v)
	if a == 0 {
		// Same point: blocked only when it sits inside the sphere.
		return p1.Dot(p1) > EarthRadiusKm*EarthRadiusKm
	}

	// Closest approach of the segment to the Earth's centre.
	t := -p1.Dot(v) / a
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := Vec3{X: p1.X + v.X*t, Y: p1.Y + v.Y*t, Z: p1.Z + v.Z*t}

	return closest.Dot(closest) > EarthRadiusKm*EarthRadiusKm
}

// zenithRad returns the angle between the observer's local zenith and
// the direction to the target. Degenerate geometry (zero separation,
// observer at the origin) reads as overhead.
func zenithRad(observer, target Vec3) float64 {
	v := target.Sub(observer)
	vNorm := v.Norm()
	r := observer.Norm()
	if vNorm == 0 || r == 0 {
		return 0
	}
	cosGamma := v.Dot(observer) / (vNorm * r)
	if cosGamma > 1 {
		cosGamma = 1
	} else if cosGamma < -1 {
		cosGamma = -1
	}
	return math.Acos(cosGamma)
}

// ElevationAngle returns the elevation of the target above the
// observer's geometric horizon. Directly overhead is pi/2; targets
// below the horizon come out negative.
func ElevationAngle(observer, target Vec3) (quantity.Quantity, error) {
	return quantity.ElevationAngle(math.Pi/2 - zenithRad(observer, target))
}

// ViewZenithAngle returns the angle between the observer's local
// zenith and the target direction, the theta the thermal and
// scattering formulas take. An exactly overhead target sits on the
// open end of the radial angle domain.
func ViewZenithAngle(observer, target Vec3) (quantity.Quantity, error) {
	return quantity.RadialAngle(zenithRad(observer, target))
}

// SlantRange returns the observer-target distance in metres.
func SlantRange(observer, target Vec3) (quantity.Quantity, error) {
	return quantity.Distance(observer.DistanceTo(target) * 1000)
}
