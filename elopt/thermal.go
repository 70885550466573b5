package elopt

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/em"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// SplitWindowCoeffs holds split-window regression coefficients, fitted
// externally by linear least squares against ground truth.
type SplitWindowCoeffs struct {
	A0 float64
	A1 float64
	A2 float64
}

// DefaultSplitWindowCoeffs returns untrained coefficients that average
// the two band temperatures.
func DefaultSplitWindowCoeffs() SplitWindowCoeffs {
	return SplitWindowCoeffs{A0: 0, A1: 0.5, A2: 0.5}
}

var specSurfaceTempSplitWindow = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.surface_temp_split_window",
	Params: []contract.Param{
		{Name: "temp_b1", Kind: quantity.KindTemperature},
		{Name: "temp_b2", Kind: quantity.KindTemperature},
	},
	Returns: []contract.Param{{Name: "temp_surface", Kind: quantity.KindTemperature}},
})

// SurfaceTemp applies the split-window approximation
// a0 + a1*Tb1 + a2*Tb2 with this coefficient set.
func (c SplitWindowCoeffs) SurfaceTemp(tempB1, tempB2 quantity.Quantity) (quantity.Quantity, error) {
	return specSurfaceTempSplitWindow.EvalWith1(func(in contract.Values) ([]float64, error) {
		return []float64{c.A0 + c.A1*in.Magnitude(0) + c.A2*in.Magnitude(1)}, nil
	}, tempB1, tempB2)
}

var specSurfaceTemp = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.surface_temp",
	Params: []contract.Param{
		{Name: "temp_b1", Kind: quantity.KindTemperature},
		{Name: "temp_b2", Kind: quantity.KindTemperature},
		{Name: "temp_air", Kind: quantity.KindTemperature},
		{Name: "theta", Kind: quantity.KindRadialAngle},
	},
	Returns: []contract.Param{
		{Name: "temp_surface", Kind: quantity.KindTemperature},
		{Name: "tau", Kind: quantity.KindOpticalDepth},
	},
	Pre: []contract.Contract{
		contract.Requires("theta_in_range", "angle in radians must be between 0 and 6.28",
			func(in contract.Values) bool { return in.Magnitude(3) > 0 && in.Magnitude(3) < 6.28 }),
		contract.Requires("temps_positive", "all temperatures must be greater than zero K",
			func(in contract.Values) bool {
				return in.Magnitude(0) > 0 && in.Magnitude(1) > 0 && in.Magnitude(2) > 0
			}),
		contract.Requires("temps_same_side", "band temperatures must lie on the same side of the air temperature",
			func(in contract.Values) bool {
				return (in.Magnitude(1) > in.Magnitude(2)) == (in.Magnitude(0) > in.Magnitude(2))
			}),
	},
	Body: func(in contract.Values) ([]float64, error) {
		tb1, tb2, ta, theta := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2), in.Magnitude(3)
		tau := math.Cos(theta) * math.Log((tb2-ta)/(tb1-ta))
		expMinusTau := math.Exp(-tau)
		return []float64{(tb1 - ta*(1-expMinusTau)) / expMinusTau, tau}, nil
	},
})

// SurfaceTemp resolves the true surface temperature from two band
// brightness temperatures taken at nadir and at zenith angle theta,
// given the air temperature.
func SurfaceTemp(tempB1, tempB2, tempAir, theta quantity.Quantity) (quantity.Quantity, error) {
	temp, _, err := SurfaceTempTau(tempB1, tempB2, tempAir, theta)
	return temp, err
}

// SurfaceTempTau is SurfaceTemp but also returns the atmospheric
// optical depth tau recovered from the two-angle measurement. Tau
// solves Tb1 = T0*exp(-tau) + Ta*(1 - exp(-tau)) against the slant
// path Tb2, giving tau = cos(theta)*ln((Tb2-Ta)/(Tb1-Ta)).
func SurfaceTempTau(tempB1, tempB2, tempAir, theta quantity.Quantity) (quantity.Quantity, quantity.Quantity, error) {
	out, err := specSurfaceTemp.Eval(tempB1, tempB2, tempAir, theta)
	if err != nil {
		return quantity.Quantity{}, quantity.Quantity{}, err
	}
	return out[0], out[1], nil
}

var specAvgSpectralRadiance = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.avg_spectral_radiance",
	Params: []contract.Param{
		{Name: "k1", Kind: quantity.KindCalibrationConstant},
		{Name: "k2", Kind: quantity.KindCalibrationConstant},
		{Name: "temp", Kind: quantity.KindTemperature},
	},
	Returns: []contract.Param{{Name: "l", Kind: quantity.KindSpectralRadiance}},
	Pre: []contract.Contract{
		contract.Requires("k_positive", "calibration constants must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 && in.Magnitude(1) > 0 }),
		contract.Requires("temp_positive", "temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		k1, k2, temp := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2)
		return []float64{k1 / (math.Exp(k2/temp) - 1)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("l_positive", "average spectral radiance must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// AvgSpectralRadiance returns the band-averaged radiance
// K1/(exp(K2/T) - 1) for a sensor with calibration constants K1, K2.
// EarthSurfaceTemp is its inverse.
func AvgSpectralRadiance(k1, k2, temp quantity.Quantity) (quantity.Quantity, error) {
	return specAvgSpectralRadiance.Eval1(k1, k2, temp)
}

var specEarthSurfaceTemp = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.earth_surface_temp",
	Params: []contract.Param{
		{Name: "k1", Kind: quantity.KindCalibrationConstant},
		{Name: "k2", Kind: quantity.KindCalibrationConstant},
		{Name: "avg_radiance", Kind: quantity.KindSpectralRadiance},
	},
	Returns: []contract.Param{{Name: "temp", Kind: quantity.KindTemperature}},
	Pre: []contract.Contract{
		contract.Requires("k_positive", "calibration constants must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 && in.Magnitude(1) > 0 }),
		contract.Requires("radiance_positive", "average radiance must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		k1, k2, l := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2)
		return []float64{k2 / math.Log(k1/l+1)}, nil
	},
})

// EarthSurfaceTemp inverts AvgSpectralRadiance: T = K2/ln(K1/L + 1).
func EarthSurfaceTemp(k1, k2, avgRadiance quantity.Quantity) (quantity.Quantity, error) {
	return specEarthSurfaceTemp.Eval1(k1, k2, avgRadiance)
}

var specThermalInertia = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.thermal_inertia",
	Params: []contract.Param{
		{Name: "heat_capacity", Kind: quantity.KindHeatCapacity},
		{Name: "density", Kind: quantity.KindDensity},
		{Name: "conductivity", Kind: quantity.KindThermalConductivity},
	},
	Returns: []contract.Param{{Name: "p", Kind: quantity.KindThermalInertia}},
	Pre: []contract.Contract{
		contract.Requires("heat_capacity_positive", "heat capacity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("density_positive", "density must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("conductivity_positive", "thermal conductivity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{math.Sqrt(in.Magnitude(0) * in.Magnitude(1) * in.Magnitude(2))}, nil
	},
})

// ThermalInertia returns P = sqrt(c*rho*k), the resistance of a
// material to day/night temperature swings.
func ThermalInertia(heatCapacity, density, conductivity quantity.Quantity) (quantity.Quantity, error) {
	return specThermalInertia.Eval1(heatCapacity, density, conductivity)
}

var specThermalWaveSpeed = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.thermal_wave_speed",
	Params: []contract.Param{
		{Name: "heat_capacity", Kind: quantity.KindHeatCapacity},
		{Name: "density", Kind: quantity.KindDensity},
		{Name: "conductivity", Kind: quantity.KindThermalConductivity},
		{Name: "omega", Kind: quantity.KindAngularFrequency},
	},
	Returns: []contract.Param{{Name: "v", Kind: quantity.KindSpeed}},
	Pre: []contract.Contract{
		contract.Requires("heat_capacity_positive", "heat capacity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("density_positive", "density must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("conductivity_positive", "thermal conductivity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
		contract.Requires("omega_positive", "angular frequency must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(3) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		c, rho, k, omega := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2), in.Magnitude(3)
		return []float64{math.Sqrt(2 * k * omega / (c * rho))}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("v_positive", "thermal wave speed must be greater than zero",
			func(in, out contract.Values) bool { return out.Magnitude(0) > 0 }),
	},
})

// ThermalWaveSpeed returns the propagation speed sqrt(2*k*omega/(c*rho))
// of a periodic heating wave of angular frequency omega.
func ThermalWaveSpeed(heatCapacity, density, conductivity, omega quantity.Quantity) (quantity.Quantity, error) {
	return specThermalWaveSpeed.Eval1(heatCapacity, density, conductivity, omega)
}

var specThermalDiffusivity = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.thermal_diffusivity",
	Params: []contract.Param{
		{Name: "heat_capacity", Kind: quantity.KindHeatCapacity},
		{Name: "density", Kind: quantity.KindDensity},
		{Name: "conductivity", Kind: quantity.KindThermalConductivity},
	},
	Returns: []contract.Param{{Name: "kappa", Kind: quantity.KindThermalDiffusivity}},
	Pre: []contract.Contract{
		contract.Requires("heat_capacity_positive", "heat capacity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
		contract.Requires("density_positive", "density must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("conductivity_positive", "thermal conductivity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(2) / (in.Magnitude(0) * in.Magnitude(1))}, nil
	},
})

// ThermalDiffusivity returns kappa = k/(c*rho).
func ThermalDiffusivity(heatCapacity, density, conductivity quantity.Quantity) (quantity.Quantity, error) {
	return specThermalDiffusivity.Eval1(heatCapacity, density, conductivity)
}

var specUpwardHeatFluxWeight = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.upward_heat_flux_weight",
	Params: []contract.Param{
		{Name: "mean_temp", Kind: quantity.KindTemperature},
		{Name: "emissivity", Kind: quantity.KindEmissivity},
	},
	Returns: []contract.Param{{Name: "alpha", Kind: quantity.KindHeatFluxWeight}},
	Pre: []contract.Contract{
		contract.Requires("emissivity_positive", "emissivity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("mean_temp_positive", "mean temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		mean := in.Magnitude(0)
		return []float64{4 * in.Magnitude(1) * em.StefanBoltzmann * mean * mean * mean}, nil
	},
})

// UpwardHeatFluxWeight returns alpha = 4*epsilon*sigma*Tmean^3, the
// linearised radiative transfer coefficient about the mean temperature.
func UpwardHeatFluxWeight(meanTemp, emissivity quantity.Quantity) (quantity.Quantity, error) {
	return specUpwardHeatFluxWeight.Eval1(meanTemp, emissivity)
}

var specUpwardHeatFlux = contract.MustRegister(&contract.FormulaSpec{
	Name: "elopt.upward_heat_flux",
	Params: []contract.Param{
		{Name: "temp", Kind: quantity.KindTemperature},
		{Name: "mean_temp", Kind: quantity.KindTemperature},
		{Name: "emissivity", Kind: quantity.KindEmissivity},
	},
	Returns: []contract.Param{{Name: "q", Kind: quantity.KindHeatFlux}},
	Pre: []contract.Contract{
		contract.Requires("emissivity_positive", "emissivity must be greater than zero",
			func(in contract.Values) bool { return in.Magnitude(2) > 0 }),
		contract.Requires("mean_temp_positive", "mean temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(1) > 0 }),
		contract.Requires("temp_positive", "temperature must be greater than zero K",
			func(in contract.Values) bool { return in.Magnitude(0) > 0 }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		temp, mean, emissivity := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2)
		alpha := 4 * emissivity * em.StefanBoltzmann * mean * mean * mean
		return []float64{alpha * (temp - mean)}, nil
	},
})

// UpwardHeatFlux returns alpha*(T - Tmean). Negative flux means the
// surface is cooler than the mean and radiating downward on balance.
func UpwardHeatFlux(temp, meanTemp, emissivity quantity.Quantity) (quantity.Quantity, error) {
	return specUpwardHeatFlux.Eval1(temp, meanTemp, emissivity)
}
