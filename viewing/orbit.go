package viewing

import (
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/ifndefJOSH/rustysensor/quantity"
)

// Propagator produces ECEF positions for a platform described by a
// two-line element set, using SGP4 with WGS72 gravity.
type Propagator struct {
	sat satellite.Satellite
}

// NewPropagatorFromTLE constructs a propagator from TLE lines.
func NewPropagatorFromTLE(line1, line2 string) *Propagator {
	return &Propagator{sat: satellite.TLEToSat(line1, line2, satellite.GravityWGS72)}
}

// PositionAt propagates the platform to the given instant and returns
// its ECEF position in kilometres.
func (p *Propagator) PositionAt(at time.Time) Vec3 {
	at = at.UTC()
	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	posECI, _ := satellite.Propagate(p.sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	posECEF := satellite.ECIToECEF(posECI, gmst)

	return Vec3{X: posECEF.X, Y: posECEF.Y, Z: posECEF.Z}
}

// View describes the geometry of a propagated platform as seen from a
// fixed observer at one instant.
type View struct {
	Position  Vec3 // ECEF, km
	Visible   bool
	Elevation quantity.Quantity
	Range     quantity.Quantity
}

// ViewAt propagates the platform and evaluates the observation
// geometry from the observer's position.
func (p *Propagator) ViewAt(observer Vec3, at time.Time) (View, error) {
	pos := p.PositionAt(at)
	elev, err := ElevationAngle(observer, pos)
	if err != nil {
		return View{}, err
	}
	rng, err := SlantRange(observer, pos)
	if err != nil {
		return View{}, err
	}
	return View{
		Position:  pos,
		Visible:   HasLineOfSight(observer, pos),
		Elevation: elev,
		Range:     rng,
	}, nil
}
