// Package em covers electromagnetic radiation in free space: spectral
// conversions, photon energetics, Doppler shift, Rayleigh-Jeans and
// Stefan-Boltzmann radiometry. Every exposed formula evaluates through
// a registered contract spec.
package em

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// RadianceDistribution is a directional radiance field L(theta, phi) in
// W/(m^2 sr), theta measured from zenith, phi the azimuth.
type RadianceDistribution func(theta, phi float64) float64

// defaultIntegrationStep is used when callers pass step <= 0.
const defaultIntegrationStep = 0.01

var specAngularFrequency = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.angular_frequency",
	Params:  []contract.Param{{Name: "f", Kind: quantity.KindFrequency}},
	Returns: []contract.Param{{Name: "omega", Kind: quantity.KindAngularFrequency}},
	Pre: []contract.Contract{
		contract.Requires("f_positive", "frequency must be greater than zero Hz",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{2 * math.Pi * in.Magnitude(0)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("omega_positive", "angular frequency must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// AngularFrequency returns omega = 2*pi*f.
func AngularFrequency(f quantity.Quantity) (quantity.Quantity, error) {
	return specAngularFrequency.Eval1(f)
}

var specWavelength = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.wavelength",
	Params:  []contract.Param{{Name: "f", Kind: quantity.KindFrequency}},
	Returns: []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Pre: []contract.Contract{
		contract.Requires("f_positive", "frequency must be greater than zero Hz",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{SpeedOfLight / in.Magnitude(0)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("lambda_positive", "wavelength must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// Wavelength returns the free-space wavelength c/f of an EM wave.
// Frequency is its exact inverse.
func Wavelength(f quantity.Quantity) (quantity.Quantity, error) {
	return specWavelength.Eval1(f)
}

var specFrequency = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.frequency",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "f", Kind: quantity.KindFrequency}},
	Pre: []contract.Contract{
		contract.Requires("lambda_positive", "wavelength must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{SpeedOfLight / in.Magnitude(0)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("f_positive", "frequency must be greater than zero Hz",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// Frequency returns the free-space frequency c/lambda of an EM wave.
func Frequency(lambda quantity.Quantity) (quantity.Quantity, error) {
	return specFrequency.Eval1(lambda)
}

var specWaveNumber = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.wave_number",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "k", Kind: quantity.KindWaveNumber}},
	Pre: []contract.Contract{
		contract.Requires("lambda_positive", "wavelength must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		// Whole-cycle count: the fractional part is truncated.
		return []float64{math.Trunc(2 * math.Pi / in.Magnitude(0))}, nil
	},
})

// WaveNumber returns the truncated angular wave number 2*pi/lambda.
func WaveNumber(lambda quantity.Quantity) (quantity.Quantity, error) {
	return specWaveNumber.Eval1(lambda)
}

var specPhotonEnergy = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.photon_energy",
	Params:  []contract.Param{{Name: "f", Kind: quantity.KindFrequency}},
	Returns: []contract.Param{{Name: "e", Kind: quantity.KindEnergy}},
	Pre: []contract.Contract{
		contract.Requires("f_positive", "frequency must be greater than zero Hz",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{Planck * in.Magnitude(0)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("e_positive", "photon energy must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// PhotonEnergy returns E = h*f in joules.
func PhotonEnergy(f quantity.Quantity) (quantity.Quantity, error) {
	return specPhotonEnergy.Eval1(f)
}

// Amplitudes may be negative; they are squared in the body.
var specFluxDensity = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.flux_density",
	Params:  []contract.Param{{Name: "amplitude", Kind: quantity.KindAmplitude}},
	Returns: []contract.Param{{Name: "s", Kind: quantity.KindFluxDensity}},
	Body: func(in contract.Values) ([]float64, error) {
		a := in.Magnitude(0)
		return []float64{a * a / (2 * Z0)}, nil
	},
})

// FluxDensity returns the time-averaged power flux a^2/(2*Z0) carried by
// a wave of the given field amplitude.
func FluxDensity(amplitude quantity.Quantity) (quantity.Quantity, error) {
	return specFluxDensity.Eval1(amplitude)
}

var specDopplerRatio = contract.MustRegister(&contract.FormulaSpec{
	Name: "em.doppler_ratio",
	Params: []contract.Param{
		{Name: "velocity", Kind: quantity.KindSpeed},
		{Name: "angle", Kind: quantity.KindRadialAngle},
	},
	Returns: []contract.Param{{Name: "ratio", Kind: quantity.KindRatio}},
	Pre: []contract.Contract{
		contract.Requires("velocity_nonnegative", "velocity must be greater than or equal to zero m/s",
			func(in contract.Values) bool { return in.Magnitude(0) >= 0 }),
		contract.Requires("velocity_sublight", "velocity must be below the speed of light",
			func(in contract.Values) bool { return in.Magnitude(0) < SpeedOfLight }),
		contract.Requires("angle_in_range", "angle in radians must be between 0 and 2*pi",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 && in.Magnitude(1) < 2*math.Pi }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		v, theta := in.Magnitude(0), in.Magnitude(1)
		beta := v / SpeedOfLight
		return []float64{math.Sqrt(1-beta*beta) / (1 - beta*math.Cos(theta))}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("ratio_positive", "doppler ratio must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// DopplerRatio returns the relativistic frequency ratio f_observed/f_rest
// for an emitter moving at the given speed, angle between velocity and
// line of sight.
func DopplerRatio(velocity, angle quantity.Quantity) (quantity.Quantity, error) {
	return specDopplerRatio.Eval1(velocity, angle)
}

var specIrradiance = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.irradiance",
	Params:  []contract.Param{{Name: "step", Kind: quantity.KindStep}},
	Returns: []contract.Param{{Name: "e", Kind: quantity.KindIrradiance}},
	Pre: []contract.Contract{
		contract.Requires("step_positive", "integration step must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
})

// Irradiance integrates a radiance distribution over the upper
// hemisphere: E = sum L(theta, phi) cos(theta) sin(theta) dtheta dphi.
// With incoming L it yields the irradiance, with outgoing L the radiant
// exitance. A step <= 0 selects the default 0.01 rad.
func Irradiance(L RadianceDistribution, step float64) (quantity.Quantity, error) {
	if step <= 0 {
		step = defaultIntegrationStep
	}
	s, err := quantity.Step(step)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specIrradiance.EvalWith1(func(in contract.Values) ([]float64, error) {
		h := in.Magnitude(0)
		h2 := h * h
		sum := 0.0
		for theta := 0.0; theta < math.Pi/2; theta += h {
			for phi := 0.0; phi < 2*math.Pi; phi += h {
				sum += h2 * L(theta, phi) * math.Cos(theta) * math.Sin(theta)
			}
		}
		return []float64{sum}, nil
	}, s)
}

var specSpectralRadianceWavelength = contract.MustRegister(&contract.FormulaSpec{
	Name: "em.spectral_radiance_wavelength",
	Params: []contract.Param{
		{Name: "temp", Kind: quantity.KindTemperature},
		{Name: "lambda", Kind: quantity.KindWavelength},
	},
	Returns: []contract.Param{{Name: "l", Kind: quantity.KindSpectralRadiance}},
	Pre: []contract.Contract{
		contract.Requires("temp_positive", "temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("lambda_positive", "wavelength must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		temp, lambda := in.Magnitude(0), in.Magnitude(1)
		l2 := lambda * lambda
		return []float64{2 * Boltzmann * temp * SpeedOfLight / (l2 * l2)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("l_positive", "spectral radiance must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// SpectralRadianceWavelength returns the Rayleigh-Jeans approximation
// L_lambda = 2*k*T*c/lambda^4.
func SpectralRadianceWavelength(temp, lambda quantity.Quantity) (quantity.Quantity, error) {
	return specSpectralRadianceWavelength.Eval1(temp, lambda)
}

var specSpectralRadianceFrequency = contract.MustRegister(&contract.FormulaSpec{
	Name: "em.spectral_radiance_frequency",
	Params: []contract.Param{
		{Name: "temp", Kind: quantity.KindTemperature},
		{Name: "f", Kind: quantity.KindFrequency},
	},
	Returns: []contract.Param{{Name: "l", Kind: quantity.KindSpectralRadiance}},
	Pre: []contract.Contract{
		contract.Requires("temp_positive", "temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("f_positive", "frequency must be greater than zero Hz",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		temp, f := in.Magnitude(0), in.Magnitude(1)
		return []float64{2 * Boltzmann * temp * f * f / (SpeedOfLight * SpeedOfLight)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("l_positive", "spectral radiance must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// SpectralRadianceFrequency returns the Rayleigh-Jeans approximation
// L_f = 2*k*T*f^2/c^2.
func SpectralRadianceFrequency(temp, f quantity.Quantity) (quantity.Quantity, error) {
	return specSpectralRadianceFrequency.Eval1(temp, f)
}

var specBlackbodyRadiation = contract.MustRegister(&contract.FormulaSpec{
	Name:    "em.bb_radiation",
	Params:  []contract.Param{{Name: "temp", Kind: quantity.KindTemperature}},
	Returns: []contract.Param{{Name: "m", Kind: quantity.KindIrradiance}},
	Pre: []contract.Contract{
		contract.Requires("temp_positive", "temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		t := in.Magnitude(0)
		return []float64{StefanBoltzmann * t * t * t * t}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("m_positive", "radiant exitance must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// BlackbodyRadiation returns the total blackbody radiant exitance
// sigma*T^4.
func BlackbodyRadiation(temp quantity.Quantity) (quantity.Quantity, error) {
	return specBlackbodyRadiation.Eval1(temp)
}
