package muwave

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// AntennaType selects the half-power beamwidth model.
type AntennaType int

const (
	AntennaMonopole       AntennaType = iota // Simple monopole, isotropic in azimuth
	AntennaShortDipole                       // Dipole much shorter than the operating wavelength
	AntennaHalfWaveDipole                    // Dipole sized at half the operating wavelength
	AntennaYagiUdaSix                        // Yagi-Uda array with six horizontal rods
	AntennaRectangular                       // Rectangular aperture, size is the side length
	AntennaParaboloid                        // Circular paraboloid dish, size is the diameter
)

func (a AntennaType) String() string {
	switch a {
	case AntennaMonopole:
		return "monopole"
	case AntennaShortDipole:
		return "short dipole"
	case AntennaHalfWaveDipole:
		return "half-wave dipole"
	case AntennaYagiUdaSix:
		return "yagi-uda six"
	case AntennaRectangular:
		return "rectangular"
	case AntennaParaboloid:
		return "paraboloid"
	}
	return "unknown"
}

// PowerPattern is a normalised antenna power pattern P(theta, phi),
// theta measured from boresight, phi the azimuth.
type PowerPattern func(theta, phi float64) float64

// TemperatureField is a directional brightness temperature
// distribution T_B(theta, phi) in kelvin.
type TemperatureField func(theta, phi float64) float64

var specHPBW = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.hpbw",
	Params: []contract.Param{
		{Name: "lambda", Kind: quantity.KindWavelength},
		{Name: "size", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "beamwidth", Kind: quantity.KindBeamwidthDegrees}},
})

// HalfPowerBeamwidth returns the HPBW in degrees for this antenna
// type. The size parameter is the side length for rectangular
// apertures and the diameter for paraboloids; the fixed-beamwidth
// types ignore it.
func (a AntennaType) HalfPowerBeamwidth(lambda, size quantity.Quantity) (quantity.Quantity, error) {
	return specHPBW.EvalWith1(func(in contract.Values) ([]float64, error) {
		switch a {
		case AntennaMonopole:
			return []float64{0}, nil
		case AntennaShortDipole, AntennaHalfWaveDipole:
			return []float64{90}, nil
		case AntennaYagiUdaSix:
			return []float64{42}, nil
		case AntennaRectangular:
			return []float64{51 * in.Magnitude(0) / in.Magnitude(1)}, nil
		default:
			return []float64{72 * in.Magnitude(0) / in.Magnitude(1)}, nil
		}
	}, lambda, size)
}

var specDirectivity = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.directivity",
	Params:  []contract.Param{{Name: "bsa", Kind: quantity.KindSolidAngle}},
	Returns: []contract.Param{{Name: "d", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{4 * math.Pi / in.Magnitude(0)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("d_gte_one", "directivity must be at least one",
			func(in, out contract.Values) bool { return out.Magnitude(0) >= 1 }),
	},
})

// Directivity returns D = 4*pi/Omega for a beam solid angle Omega.
func Directivity(bsa quantity.Quantity) (quantity.Quantity, error) {
	return specDirectivity.Eval1(bsa)
}

var specBeamSolidAngle = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.beam_solid_angle",
	Params:  []contract.Param{{Name: "step", Kind: quantity.KindStep}},
	Returns: []contract.Param{{Name: "bsa", Kind: quantity.KindSolidAngle}},
	Pre: []contract.Contract{
		contract.Requires("step_positive", "integration step must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
})

// integratePattern sums f(theta, phi)*sin(theta) over the upper
// hemisphere with square cells of side h.
func integratePattern(f func(theta, phi float64) float64, h float64) float64 {
	h2 := h * h
	sum := 0.0
	for theta := 0.0; theta < math.Pi/2; theta += h {
		for phi := 0.0; phi < 2*math.Pi; phi += h {
			sum += h2 * f(theta, phi) * math.Sin(theta)
		}
	}
	return sum
}

// BeamSolidAngle integrates a power pattern over the upper hemisphere:
// Omega = sum P(theta, phi) sin(theta) dtheta dphi. A step <= 0
// selects the default 0.01 rad.
func BeamSolidAngle(p PowerPattern, step float64) (quantity.Quantity, error) {
	if step <= 0 {
		step = defaultIntegrationStep
	}
	s, err := quantity.Step(step)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specBeamSolidAngle.EvalWith1(func(in contract.Values) ([]float64, error) {
		return []float64{integratePattern(p, in.Magnitude(0))}, nil
	}, s)
}

var specAntennaTemp = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.antenna_temp",
	Params:  []contract.Param{{Name: "step", Kind: quantity.KindStep}},
	Returns: []contract.Param{{Name: "temp", Kind: quantity.KindTemperature}},
	Pre: []contract.Contract{
		contract.Requires("step_positive", "integration step must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
})

// AntennaTemperature returns the pattern-weighted mean of a brightness
// temperature field: T_A = integral(T_B*P*sin) / integral(P*sin). A
// step <= 0 selects the default 0.01 rad.
func AntennaTemperature(tb TemperatureField, p PowerPattern, step float64) (quantity.Quantity, error) {
	if step <= 0 {
		step = defaultIntegrationStep
	}
	s, err := quantity.Step(step)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specAntennaTemp.EvalWith1(func(in contract.Values) ([]float64, error) {
		h := in.Magnitude(0)
		bsa := integratePattern(p, h)
		weighted := integratePattern(func(theta, phi float64) float64 {
			return tb(theta, phi) * p(theta, phi)
		}, h)
		// A null pattern makes this 0/0.
		return []float64{weighted / bsa}, nil
	}, s)
}

var specForwardGain = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.forward_gain",
	Params:  []contract.Param{{Name: "efficiency", Kind: quantity.KindEfficiency}},
	Returns: []contract.Param{{Name: "g", Kind: quantity.KindRatio}},
})

// ForwardGain returns G = efficiency * 4*pi/Omega with Omega
// integrated from the pattern at the default step.
func ForwardGain(efficiency quantity.Quantity, p PowerPattern) (quantity.Quantity, error) {
	return specForwardGain.EvalWith1(func(in contract.Values) ([]float64, error) {
		bsa := integratePattern(p, defaultIntegrationStep)
		return []float64{in.Magnitude(0) * 4 * math.Pi / bsa}, nil
	}, efficiency)
}

var specEffectiveArea = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.effective_area",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "area", Kind: quantity.KindArea}},
	Pre: []contract.Contract{
		contract.Requires("lambda_positive", "wavelength must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
})

// EffectiveArea returns the effective aperture lambda^2/Omega with
// Omega integrated from the pattern at the default step.
func EffectiveArea(lambda quantity.Quantity, p PowerPattern) (quantity.Quantity, error) {
	return specEffectiveArea.EvalWith1(func(in contract.Values) ([]float64, error) {
		bsa := integratePattern(p, defaultIntegrationStep)
		lam := in.Magnitude(0)
		return []float64{lam * lam / bsa}, nil
	}, lambda)
}
