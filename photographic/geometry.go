package photographic

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// Point2 is a point on the image plane with the origin at the
// principal point, not the top-left corner.
type Point2 struct {
	X, Y float64
}

// Point3 is a point in object space, in the same length unit as the
// image plane coordinates.
type Point3 struct {
	X, Y, Z float64
}

// DefaultDistortionSlope is the lens distortion slope assumed when a
// caller has no calibration figure. Positive slopes produce barrel
// distortion, negative slopes pincushion.
const DefaultDistortionSlope = 0.1

var specRadialDistort = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.radial_distort",
	Params: []contract.Param{
		{Name: "x", Kind: quantity.KindCoordinate},
		{Name: "y", Kind: quantity.KindCoordinate},
		{Name: "slope", Kind: quantity.KindRatio},
	},
	Returns: []contract.Param{
		{Name: "x_d", Kind: quantity.KindCoordinate},
		{Name: "y_d", Kind: quantity.KindCoordinate},
	},
	Body: func(in contract.Values) ([]float64, error) {
		x, y, m := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2)
		lr := 1 + m*math.Sqrt(x*x+y*y)
		return []float64{x + lr, y + lr}, nil
	},
})

// RadialDistort displaces a point by the lens distortion function
// L(r) = 1 + slope*r. Pass DefaultDistortionSlope when no calibration
// is available; slope may be negative.
func RadialDistort(p Point2, slope float64) (Point2, error) {
	x, err := quantity.Coordinate(p.X)
	if err != nil {
		return Point2{}, err
	}
	y, err := quantity.Coordinate(p.Y)
	if err != nil {
		return Point2{}, err
	}
	m, err := quantity.Ratio(slope)
	if err != nil {
		return Point2{}, err
	}
	out, err := specRadialDistort.Eval(x, y, m)
	if err != nil {
		return Point2{}, err
	}
	return Point2{X: out.Magnitude(0), Y: out.Magnitude(1)}, nil
}

var specImageLocation = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.image_location",
	Params: []contract.Param{
		{Name: "camera_x", Kind: quantity.KindCoordinate},
		{Name: "camera_y", Kind: quantity.KindCoordinate},
		{Name: "camera_z", Kind: quantity.KindCoordinate},
		{Name: "object_x", Kind: quantity.KindCoordinate},
		{Name: "object_y", Kind: quantity.KindCoordinate},
		{Name: "object_z", Kind: quantity.KindCoordinate},
		{Name: "f_len", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{
		{Name: "u", Kind: quantity.KindCoordinate},
		{Name: "v", Kind: quantity.KindCoordinate},
	},
	Pre: []contract.Contract{
		contract.Requires("f_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(6) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		xPr := in.Magnitude(3) - in.Magnitude(0)
		yPr := in.Magnitude(4) - in.Magnitude(1)
		zPr := in.Magnitude(5) - in.Magnitude(2)
		// An object in the camera plane makes both outputs x/0.
		f := in.Magnitude(6)
		return []float64{f * xPr / zPr, f * yPr / zPr}, nil
	},
})

// ImageLocation projects an object point onto the image plane of a
// pinhole camera at the given location.
func ImageLocation(camera, object Point3, focalLen quantity.Quantity) (Point2, error) {
	in, err := coordinates(camera.X, camera.Y, camera.Z, object.X, object.Y, object.Z)
	if err != nil {
		return Point2{}, err
	}
	out, err := specImageLocation.Eval(append(in, focalLen)...)
	if err != nil {
		return Point2{}, err
	}
	return Point2{X: out.Magnitude(0), Y: out.Magnitude(1)}, nil
}

var specFindCoordinate = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.find_coordinate",
	Params: []contract.Param{
		{Name: "u1", Kind: quantity.KindCoordinate},
		{Name: "v1", Kind: quantity.KindCoordinate},
		{Name: "u2", Kind: quantity.KindCoordinate},
		{Name: "v2", Kind: quantity.KindCoordinate},
		{Name: "b_x", Kind: quantity.KindCoordinate},
		{Name: "b_y", Kind: quantity.KindCoordinate},
		{Name: "f_len", Kind: quantity.KindDistance},
		{Name: "height", Kind: quantity.KindCoordinate},
	},
	Returns: []contract.Param{
		{Name: "x", Kind: quantity.KindCoordinate},
		{Name: "y", Kind: quantity.KindCoordinate},
		{Name: "z", Kind: quantity.KindCoordinate},
	},
	Pre: []contract.Contract{
		contract.Requires("f_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(6) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		u1, v1 := in.Magnitude(0), in.Magnitude(1)
		u2, v2 := in.Magnitude(2), in.Magnitude(3)
		bx, by := in.Magnitude(4), in.Magnitude(5)
		// Zero parallax along the baseline makes c infinite.
		c := (bx*bx + by*by) / ((u1-u2)*bx + (v1-v2)*by)
		return []float64{c * u1, c * v1, in.Magnitude(7) + in.Magnitude(6)*c}, nil
	},
})

// FindCoordinate recovers the object-space coordinate of a point seen
// in two overlapping exposures a known baseline apart. The height is
// the reference height of the camera stations.
func FindCoordinate(img1, img2 Point2, focalLen quantity.Quantity, displacement Point2, height float64) (Point3, error) {
	in, err := coordinates(img1.X, img1.Y, img2.X, img2.Y, displacement.X, displacement.Y)
	if err != nil {
		return Point3{}, err
	}
	h, err := quantity.Coordinate(height)
	if err != nil {
		return Point3{}, err
	}
	out, err := specFindCoordinate.Eval(append(in, focalLen, h)...)
	if err != nil {
		return Point3{}, err
	}
	return Point3{X: out.Magnitude(0), Y: out.Magnitude(1), Z: out.Magnitude(2)}, nil
}

func coordinates(vals ...float64) ([]quantity.Quantity, error) {
	out := make([]quantity.Quantity, len(vals))
	for i, v := range vals {
		q, err := quantity.Coordinate(v)
		if err != nil {
			return nil, err
		}
		out[i] = q
	}
	return out, nil
}
