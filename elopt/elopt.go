// Package elopt covers electro-optical sensing: grating diffraction,
// band lookup for the ASTER, MODIS and OCM-2 instruments, and the
// thermal-infrared surface temperature suite. Every exposed formula
// evaluates through a registered contract spec.
package elopt

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

var specDiffractionAngle = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.diffraction_angle",
	Params: []contract.Param{
		{Name: "n", Kind: quantity.KindCount},
		{Name: "lambda", Kind: quantity.KindWavelength},
		{Name: "d", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "theta", Kind: quantity.KindAngle}},
	Pre: []contract.Contract{
		contract.Requires("lambda_positive", "wavelength must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("d_in_range", "observation distance must be nonzero and below one metre",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 && in.Magnitude(2) < 1 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		// asin goes NaN when n*lambda exceeds d.
		return []float64{math.Asin(in.Magnitude(0) * in.Magnitude(1) / in.Magnitude(2))}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("theta_positive", "diffraction angle must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// DiffractionAngle returns the first-order grating angle
// asin(n*lambda/d) for n slits at observation distance d.
func DiffractionAngle(n, lambda, d quantity.Quantity) (quantity.Quantity, error) {
	return specDiffractionAngle.Eval1(n, lambda, d)
}
