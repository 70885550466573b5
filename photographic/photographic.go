// Package photographic covers photographic and photogrammetric
// systems: optics of a single-lens camera, image geometry of vertical
// objects, stereo coordinate recovery and image contrast. Every
// exposed formula evaluates through a registered contract spec.
package photographic

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

var specDistanceFromResolution = contract.MustRegister(&contract.FormulaSpec{
	Name:    "photographic.distance_from_resolution",
	Params:  []contract.Param{{Name: "res", Kind: quantity.KindSpatialFrequency}},
	Returns: []contract.Param{{Name: "d", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("res_positive", "resolution must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{1 / (2 * in.Magnitude(0))}, nil
	},
})

// DistanceFromResolution returns the resolvable ground distance
// d = 1/(2r). ResolutionFromDistance is its exact inverse.
func DistanceFromResolution(res quantity.Quantity) (quantity.Quantity, error) {
	return specDistanceFromResolution.Eval1(res)
}

var specResolutionFromDistance = contract.MustRegister(&contract.FormulaSpec{
	Name:    "photographic.resolution_from_distance",
	Params:  []contract.Param{{Name: "d", Kind: quantity.KindDistance}},
	Returns: []contract.Param{{Name: "res", Kind: quantity.KindSpatialFrequency}},
	Pre: []contract.Contract{
		contract.Requires("d_positive", "distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{1 / (2 * in.Magnitude(0))}, nil
	},
})

// ResolutionFromDistance returns the spatial resolution r = 1/(2d).
func ResolutionFromDistance(d quantity.Quantity) (quantity.Quantity, error) {
	return specResolutionFromDistance.Eval1(d)
}

var specModulation = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.modulation",
	Params: []contract.Param{
		{Name: "i_max", Kind: quantity.KindRadiance},
		{Name: "i_min", Kind: quantity.KindRadiance},
	},
	Returns: []contract.Param{{Name: "m", Kind: quantity.KindRatio}},
	Pre: []contract.Contract{
		contract.Requires("sum_positive", "intensity sum must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0)+in.Magnitude(1) > 0 }),
		contract.Requires("max_gt_min", "max intensity must exceed min intensity",
			func(in contract.Values) bool { return in.Magnitude(0) > in.Magnitude(1) }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		mx, mn := in.Magnitude(0), in.Magnitude(1)
		return []float64{(mx - mn) / (mx + mn)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("m_positive", "modulation must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// Modulation returns (Imax - Imin)/(Imax + Imin).
func Modulation(iMax, iMin quantity.Quantity) (quantity.Quantity, error) {
	return specModulation.Eval1(iMax, iMin)
}

var specFocalLength = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.focal_len",
	Params: []contract.Param{
		{Name: "obj_dist", Kind: quantity.KindDistance},
		{Name: "image_dist", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "f", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("obj_dist_positive", "object distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("image_dist_positive", "image distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{1 / (1/in.Magnitude(0) + 1/in.Magnitude(1))}, nil
	},
})

// FocalLength returns the thin-lens focal length from object and
// image distances: 1/f = 1/o + 1/i.
func FocalLength(objDist, imageDist quantity.Quantity) (quantity.Quantity, error) {
	return specFocalLength.Eval1(objDist, imageDist)
}

var specActualDistance = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.actual_dist",
	Params: []contract.Param{
		{Name: "image_dist", Kind: quantity.KindDistance},
		{Name: "focal_len", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "obj_dist", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("image_dist_positive", "image distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("focal_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		// Image at the focal plane makes this 1/0.
		return []float64{1 / (1/in.Magnitude(1) - 1/in.Magnitude(0))}, nil
	},
})

// ActualDistance inverts FocalLength for the object distance:
// 1/o = 1/f - 1/i. An image distance inside the focal length yields a
// virtual object and fails the output domain.
func ActualDistance(imageDist, focalLen quantity.Quantity) (quantity.Quantity, error) {
	return specActualDistance.Eval1(imageDist, focalLen)
}

var specFilmIlluminance = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.film_illuminance",
	Params: []contract.Param{
		{Name: "f_num", Kind: quantity.KindRatio},
		{Name: "luminance", Kind: quantity.KindRadiance},
	},
	Returns: []contract.Param{{Name: "e", Kind: quantity.KindIrradiance}},
	Pre: []contract.Contract{
		contract.Requires("f_num_positive", "f-number must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("luminance_positive", "incident luminance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		n := in.Magnitude(0)
		return []float64{math.Pi * n * n * in.Magnitude(1) / 4}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("e_positive", "film illuminance must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// FilmIlluminance returns pi*N^2*L/4 for a lens of f-number N and
// incident luminance L.
func FilmIlluminance(fNum, luminance quantity.Quantity) (quantity.Quantity, error) {
	return specFilmIlluminance.Eval1(fNum, luminance)
}

var specPrinciplePointDistance = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.principle_point_distance",
	Params: []contract.Param{
		{Name: "f_len", Kind: quantity.KindDistance},
		{Name: "ground_dist", Kind: quantity.KindDistance},
		{Name: "camera_height", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "d", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("f_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("ground_dist_positive", "ground distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("camera_height_positive", "camera height must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(0) * in.Magnitude(1) / in.Magnitude(2)}, nil
	},
})

// PrincipalPointDistance returns the on-image distance f*d/H of a
// ground point from the principal point. GroundDistance is its exact
// inverse.
func PrincipalPointDistance(focalLen, groundDist, cameraHeight quantity.Quantity) (quantity.Quantity, error) {
	return specPrinciplePointDistance.Eval1(focalLen, groundDist, cameraHeight)
}

var specGroundDistance = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.ground_dist",
	Params: []contract.Param{
		{Name: "f_len", Kind: quantity.KindDistance},
		{Name: "princ_pt_dist", Kind: quantity.KindDistance},
		{Name: "camera_height", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "d", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("f_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("princ_pt_dist_positive", "principal point distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("camera_height_positive", "camera height must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(1) * in.Magnitude(2) / in.Magnitude(0)}, nil
	},
})

// GroundDistance returns the ground distance p*H/f imaged at
// principal point distance p.
func GroundDistance(focalLen, princPtDist, cameraHeight quantity.Quantity) (quantity.Quantity, error) {
	return specGroundDistance.Eval1(focalLen, princPtDist, cameraHeight)
}

var specReliefDisplacement = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.relief_displacement",
	Params: []contract.Param{
		{Name: "f_len", Kind: quantity.KindDistance},
		{Name: "ground_dist", Kind: quantity.KindDistance},
		{Name: "camera_height", Kind: quantity.KindDistance},
		{Name: "object_height", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "d", Kind: quantity.KindDistance}},
	Pre: []contract.Contract{
		contract.Requires("f_len_positive", "focal length must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("ground_dist_positive", "ground distance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("camera_above_object", "camera height must exceed a positive object height",
			func(in contract.Values) bool { return in.Magnitude(2) > in.Magnitude(3) && in.Magnitude(3) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		f, gd, height, obj := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2), in.Magnitude(3)
		ptDist := f * gd / height
		return []float64{obj * ptDist / (height - obj)}, nil
	},
})

// ReliefDisplacement returns the on-image radial displacement of the
// top of a vertical object of the given height.
func ReliefDisplacement(focalLen, groundDist, cameraHeight, objectHeight quantity.Quantity) (quantity.Quantity, error) {
	return specReliefDisplacement.Eval1(focalLen, groundDist, cameraHeight, objectHeight)
}

var specOverlapSize = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.overlap_size",
	Params: []contract.Param{
		{Name: "height", Kind: quantity.KindDistance},
		{Name: "focal_len", Kind: quantity.KindDistance},
		{Name: "baseline", Kind: quantity.KindDistance},
		{Name: "film_width", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "overlap", Kind: quantity.KindCoordinate}},
	Body: func(in contract.Values) ([]float64, error) {
		h, f, b, w := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2), in.Magnitude(3)
		return []float64{w*h/f - b}, nil
	},
})

// OverlapSize returns the ground overlap w*H/f - B of two exposures a
// baseline B apart. A negative overlap means the frames do not share
// ground.
func OverlapSize(height, focalLen, baseline, filmWidth quantity.Quantity) (quantity.Quantity, error) {
	return specOverlapSize.Eval1(height, focalLen, baseline, filmWidth)
}

var specContrast = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.contrast",
	Params: []contract.Param{
		{Name: "r_max", Kind: quantity.KindRadiance},
		{Name: "r_min", Kind: quantity.KindRadiance},
	},
	Returns: []contract.Param{{Name: "c", Kind: quantity.KindRatio}},
	Pre: []contract.Contract{
		contract.Requires("max_gte_min", "max radiance must not be below min radiance",
			func(in contract.Values) bool { return in.Magnitude(0) >= in.Magnitude(1) }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		mx, mn := in.Magnitude(0), in.Magnitude(1)
		// Both zero makes this 0/0.
		return []float64{(mx - mn) / (mx + mn)}, nil
	},
})

// Contrast returns (Rmax - Rmin)/(Rmax + Rmin).
func Contrast(rMax, rMin quantity.Quantity) (quantity.Quantity, error) {
	return specContrast.Eval1(rMax, rMin)
}

var specImgContrast = contract.MustRegister(&contract.FormulaSpec{
	Name: "photographic.img_contrast",
	Params: []contract.Param{
		{Name: "rows", Kind: quantity.KindCount},
		{Name: "min_cols", Kind: quantity.KindCount},
		{Name: "max_cols", Kind: quantity.KindCount},
	},
	Returns: []contract.Param{{Name: "c", Kind: quantity.KindRatio}},
	Pre: []contract.Contract{
		contract.Requires("rows_positive", "image must have at least one row",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("cols_positive", "image rows must not be empty",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("rows_rectangular", "all image rows must have equal length",
			func(in contract.Values) bool { return in.Magnitude(1) == in.Magnitude(2) }),
	},
})

// ImgContrast returns the contrast between the brightest and darkest
// pixels of a grayscale image given as rows of equal length.
func ImgContrast(img [][]float64) (quantity.Quantity, error) {
	minCols, maxCols := 0, 0
	for i, row := range img {
		if i == 0 || len(row) < minCols {
			minCols = len(row)
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	rows, err := quantity.Count(float64(len(img)))
	if err != nil {
		return quantity.Quantity{}, err
	}
	mn, err := quantity.Count(float64(minCols))
	if err != nil {
		return quantity.Quantity{}, err
	}
	mx, err := quantity.Count(float64(maxCols))
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specImgContrast.EvalWith1(func(in contract.Values) ([]float64, error) {
		rmax, rmin := img[0][0], img[0][0]
		for _, row := range img {
			for _, v := range row {
				if v > rmax {
					rmax = v
				} else if v < rmin {
					rmin = v
				}
			}
		}
		return []float64{(rmax - rmin) / (rmax + rmin)}, nil
	}, rows, mn, mx)
}
