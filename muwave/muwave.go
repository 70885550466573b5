// Package muwave covers passive microwave radiometry: antenna pattern
// integrals, noise and sensitivity, Rayleigh-Jeans brightness, the
// polarization/gradient sea ice ratios, and channel tables for the
// SSM/I and MSMR instruments. Every exposed formula evaluates through
// a registered contract spec.
package muwave

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/em"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// defaultIntegrationStep is used when callers pass step <= 0.
const defaultIntegrationStep = 0.01

// Radiometer sensitivity defaults for Sensitivity.
const (
	defaultSensitivityConst = 5.0
	defaultIntegrationTime  = 0.01
	defaultBandwidthHz      = 0.01
)

var specJohnsonNoisePower = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.jnoise_power",
	Params: []contract.Param{
		{Name: "antenna_temp", Kind: quantity.KindTemperature},
		{Name: "band_size", Kind: quantity.KindBandwidth},
	},
	Returns: []contract.Param{{Name: "p", Kind: quantity.KindPower}},
	Pre: []contract.Contract{
		contract.Requires("temp_positive", "antenna temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("band_positive", "band size must be greater than zero Hz",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{em.Boltzmann * in.Magnitude(0) * in.Magnitude(1)}, nil
	},
})

// JohnsonNoisePower returns the Johnson/Nyquist noise power k*T*B
// collected by an antenna of the given temperature over a band.
func JohnsonNoisePower(antennaTemp, bandSize quantity.Quantity) (quantity.Quantity, error) {
	return specJohnsonNoisePower.Eval1(antennaTemp, bandSize)
}

var specSpectralRadiance = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.spectral_radiance",
	Params: []contract.Param{
		{Name: "tb", Kind: quantity.KindTemperature},
		{Name: "lambda", Kind: quantity.KindWavelength},
	},
	Returns: []contract.Param{{Name: "l", Kind: quantity.KindSpectralRadiance}},
	Body: func(in contract.Values) ([]float64, error) {
		lam := in.Magnitude(1)
		return []float64{2 * em.Boltzmann * in.Magnitude(0) / (lam * lam)}, nil
	},
})

// SpectralRadiance returns the microwave Rayleigh-Jeans radiance
// 2*k*T_B/lambda^2 of a brightness temperature.
func SpectralRadiance(tb, lambda quantity.Quantity) (quantity.Quantity, error) {
	return specSpectralRadiance.Eval1(tb, lambda)
}

var specSpectralFluxDensity = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.spectral_flux_density",
	Params: []contract.Param{
		{Name: "tb", Kind: quantity.KindTemperature},
		{Name: "lambda", Kind: quantity.KindWavelength},
		{Name: "small_angle", Kind: quantity.KindSolidAngle},
	},
	Returns: []contract.Param{{Name: "s", Kind: quantity.KindFluxDensity}},
	Body: func(in contract.Values) ([]float64, error) {
		lam := in.Magnitude(1)
		return []float64{2 * em.Boltzmann * in.Magnitude(0) * in.Magnitude(2) / (lam * lam)}, nil
	},
})

// SpectralFluxDensity returns 2*k*T_B*Omega/lambda^2, the flux from a
// source subtending a small solid angle.
func SpectralFluxDensity(tb, lambda, smallAngle quantity.Quantity) (quantity.Quantity, error) {
	return specSpectralFluxDensity.Eval1(tb, lambda, smallAngle)
}

var specSensitivity = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.sensitivity",
	Params: []contract.Param{
		{Name: "sys_temp", Kind: quantity.KindTemperature},
		{Name: "c", Kind: quantity.KindCalibrationConstant},
		{Name: "delta_t", Kind: quantity.KindDuration},
		{Name: "delta_f", Kind: quantity.KindBandwidth},
	},
	Returns: []contract.Param{{Name: "delta_temp", Kind: quantity.KindTemperature}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(1) * in.Magnitude(0) / math.Sqrt(in.Magnitude(2)*in.Magnitude(3))}, nil
	},
})

// Sensitivity returns the radiometer temperature resolution
// c*T_sys/sqrt(deltaT*deltaF). Arguments <= 0 select the defaults
// c = 5, deltaT = 0.01 s, deltaF = 0.01 Hz.
func Sensitivity(sysTemp quantity.Quantity, c, deltaT, deltaF float64) (quantity.Quantity, error) {
	if c <= 0 {
		c = defaultSensitivityConst
	}
	if deltaT <= 0 {
		deltaT = defaultIntegrationTime
	}
	if deltaF <= 0 {
		deltaF = defaultBandwidthHz
	}
	cq, err := quantity.CalibrationConstant(c)
	if err != nil {
		return quantity.Quantity{}, err
	}
	tq, err := quantity.Duration(deltaT)
	if err != nil {
		return quantity.Quantity{}, err
	}
	fq, err := quantity.Bandwidth(deltaF)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specSensitivity.Eval1(sysTemp, cq, tq, fq)
}

var specXPGR = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.xpgr",
	Params: []contract.Param{
		{Name: "t_19h", Kind: quantity.KindTemperature},
		{Name: "t_37v", Kind: quantity.KindTemperature},
	},
	Returns: []contract.Param{{Name: "r", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		a, b := in.Magnitude(0), in.Magnitude(1)
		return []float64{(a - b) / (a + b)}, nil
	},
})

// XPGR returns the cross-polarized gradient ratio
// (T19H - T37V)/(T19H + T37V) used in sea ice classification.
func XPGR(t19h, t37v quantity.Quantity) (quantity.Quantity, error) {
	return specXPGR.Eval1(t19h, t37v)
}

var specPolarizationRatio = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.polarization_ratio",
	Params: []contract.Param{
		{Name: "t_19h", Kind: quantity.KindTemperature},
		{Name: "t_19v", Kind: quantity.KindTemperature},
	},
	Returns: []contract.Param{{Name: "r", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		h, v := in.Magnitude(0), in.Magnitude(1)
		return []float64{(v - h) / (v + h)}, nil
	},
})

// PolarizationRatio returns (T19V - T19H)/(T19V + T19H).
func PolarizationRatio(t19h, t19v quantity.Quantity) (quantity.Quantity, error) {
	return specPolarizationRatio.Eval1(t19h, t19v)
}

var specGradientRatio = contract.MustRegister(&contract.FormulaSpec{
	Name: "muwave.gradient_ratio",
	Params: []contract.Param{
		{Name: "t_19v", Kind: quantity.KindTemperature},
		{Name: "t_37v", Kind: quantity.KindTemperature},
	},
	Returns: []contract.Param{{Name: "r", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		a, b := in.Magnitude(0), in.Magnitude(1)
		return []float64{(b - a) / (b + a)}, nil
	},
})

// GradientRatio returns (T37V - T19V)/(T37V + T19V).
func GradientRatio(t19v, t37v quantity.Quantity) (quantity.Quantity, error) {
	return specGradientRatio.Eval1(t19v, t37v)
}

var specUpwellingComponent = contract.MustRegister(&contract.FormulaSpec{
	Name:    "muwave.upwelling_component",
	Params:  []contract.Param{{Name: "tau", Kind: quantity.KindOpticalDepth}},
	Returns: []contract.Param{{Name: "tb", Kind: quantity.KindTemperature}},
})

// UpwellingComponent returns the upwelling brightness contribution
// profile(1 - exp(-tau)) of an atmosphere of optical depth tau, where
// profile maps emitted fraction to brightness temperature.
func UpwellingComponent(tau quantity.Quantity, profile func(float64) float64) (quantity.Quantity, error) {
	return specUpwellingComponent.EvalWith1(func(in contract.Values) ([]float64, error) {
		return []float64{profile(1 - math.Exp(-in.Magnitude(0)))}, nil
	}, tau)
}
