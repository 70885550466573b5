// Package ranged covers active ranged and scattered systems: pulse
// timing and range accuracy, pulse-repetition ambiguity, surface
// scattering descriptors and a free-space link budget. Every exposed
// formula evaluates through a registered contract spec.
package ranged

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// Airborne-system defaults assumed when a caller passes a
// non-positive optional argument.
const (
	defaultRiseTime    = 5.0e-9 // s
	defaultSNR         = 1.0
	defaultPlatformV   = 50.0   // m/s
	defaultHeight      = 200.0  // m
	defaultPulseRate   = 1000.0 // Hz
	defaultPulsePeriod = 1000.0 // s
	defaultDivergence  = 0.001  // rad
)

var specTravelTime = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.travel_time",
	Params: []contract.Param{
		{Name: "range", Kind: quantity.KindDistance},
		{Name: "group_velocity", Kind: quantity.KindSpeed},
	},
	Returns: []contract.Param{{Name: "t", Kind: quantity.KindDuration}},
	Body: func(in contract.Values) ([]float64, error) {
		// A zero group velocity makes this 2R/0.
		return []float64{2 * in.Magnitude(0) / in.Magnitude(1)}, nil
	},
})

// TravelTime returns the two-way pulse travel time 2R/vg.
func TravelTime(rng, groupVelocity quantity.Quantity) (quantity.Quantity, error) {
	return specTravelTime.Eval1(rng, groupVelocity)
}

var specAveragingRMSSNR = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.averaging_rms_snr",
	Params: []contract.Param{
		{Name: "n_signal", Kind: quantity.KindCount},
		{Name: "n_noise", Kind: quantity.KindCount},
	},
	Returns: []contract.Param{{Name: "snr", Kind: quantity.KindRatio}},
	Pre: []contract.Contract{
		contract.Requires("lengths_match", "signal and noise must have the same sample count",
			func(in contract.Values) bool { return in.Magnitude(0) == in.Magnitude(1) }),
	},
	Post: []contract.Contract{
		contract.Ensures("snr_nonneg", "an RMS ratio cannot be negative",
			func(in, out contract.Values) bool { return out.Magnitude(0) >= 0 }),
	},
})

// AveragingRMSSNR returns the root of the mean-square signal over the
// mean-square noise for two equally long sample records. Empty records
// and an all-zero noise record surface as numeric failures.
func AveragingRMSSNR(signal, noise []float64) (quantity.Quantity, error) {
	nSig, err := quantity.Count(float64(len(signal)))
	if err != nil {
		return quantity.Quantity{}, err
	}
	nNoise, err := quantity.Count(float64(len(noise)))
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specAveragingRMSSNR.EvalWith1(func(in contract.Values) ([]float64, error) {
		var msSignal, msNoise float64
		for _, s := range signal {
			msSignal += s * s
		}
		msSignal /= float64(len(signal))
		for _, n := range noise {
			msNoise += n * n
		}
		msNoise /= float64(len(noise))
		return []float64{math.Sqrt(msSignal / msNoise)}, nil
	}, nSig, nNoise)
}

var specTimingAccuracy = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.accuracy",
	Params: []contract.Param{
		{Name: "rise_time", Kind: quantity.KindDuration},
		{Name: "snr", Kind: quantity.KindRatio},
	},
	Returns: []contract.Param{{Name: "accuracy", Kind: quantity.KindDuration}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(0) / in.Magnitude(1)}, nil
	},
})

// TimingAccuracy returns the timing accuracy tr/SNR of an edge
// detected against noise.
func TimingAccuracy(riseTime, snr quantity.Quantity) (quantity.Quantity, error) {
	return specTimingAccuracy.Eval1(riseTime, snr)
}

var specRangeAccuracy = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.range_accuracy",
	Params: []contract.Param{
		{Name: "group_velocity", Kind: quantity.KindSpeed},
		{Name: "rise_time", Kind: quantity.KindDuration},
		{Name: "snr", Kind: quantity.KindRatio},
		{Name: "platform_velocity", Kind: quantity.KindSpeed},
		{Name: "height", Kind: quantity.KindDistance},
		{Name: "pulse_rate", Kind: quantity.KindFrequency},
		{Name: "beam_divergence", Kind: quantity.KindRadialAngle},
	},
	Returns: []contract.Param{{Name: "accuracy", Kind: quantity.KindDistance}},
	Body: func(in contract.Values) ([]float64, error) {
		vg, tr, s := in.Magnitude(0), in.Magnitude(1), in.Magnitude(2)
		v, h, p, delTheta := in.Magnitude(3), in.Magnitude(4), in.Magnitude(5), in.Magnitude(6)
		return []float64{vg * tr / (2 * s) * math.Sqrt(v/(p*h*delTheta))}, nil
	},
})

// RangeAccuracy returns the achievable range accuracy
// vg*tr/(2s) * sqrt(v/(p*h*dTheta)) of an airborne profiling system.
// Non-positive optional arguments take the airborne defaults
// (tr = 5 ns, s = 1, v = 50 m/s, h = 200 m, p = 1 kHz, dTheta = 1 mrad).
func RangeAccuracy(groupVelocity quantity.Quantity, riseTime, snr, platformV, height, pulseRate, beamDivergence float64) (quantity.Quantity, error) {
	if riseTime <= 0 {
		riseTime = defaultRiseTime
	}
	if snr <= 0 {
		snr = defaultSNR
	}
	if platformV <= 0 {
		platformV = defaultPlatformV
	}
	if height <= 0 {
		height = defaultHeight
	}
	if pulseRate <= 0 {
		pulseRate = defaultPulseRate
	}
	if beamDivergence <= 0 {
		beamDivergence = defaultDivergence
	}
	tr, err := quantity.Duration(riseTime)
	if err != nil {
		return quantity.Quantity{}, err
	}
	s, err := quantity.Ratio(snr)
	if err != nil {
		return quantity.Quantity{}, err
	}
	v, err := quantity.Speed(platformV)
	if err != nil {
		return quantity.Quantity{}, err
	}
	h, err := quantity.Distance(height)
	if err != nil {
		return quantity.Quantity{}, err
	}
	p, err := quantity.Frequency(pulseRate)
	if err != nil {
		return quantity.Quantity{}, err
	}
	dt, err := quantity.RadialAngle(beamDivergence)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specRangeAccuracy.Eval1(groupVelocity, tr, s, v, h, p, dt)
}

var specRangeAmbiguity = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.range_ambiguity",
	Params: []contract.Param{
		{Name: "group_velocity", Kind: quantity.KindSpeed},
		{Name: "period", Kind: quantity.KindDuration},
	},
	Returns: []contract.Param{{Name: "range", Kind: quantity.KindDistance}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(0) / 2 * in.Magnitude(1)}, nil
	},
})

// RangeAmbiguity returns the unambiguous range vg*p/2 of a pulse
// train with inter-pulse period p. A non-positive period takes the
// default of 1000 s.
func RangeAmbiguity(groupVelocity quantity.Quantity, period float64) (quantity.Quantity, error) {
	if period <= 0 {
		period = defaultPulsePeriod
	}
	p, err := quantity.Duration(period)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specRangeAmbiguity.Eval1(groupVelocity, p)
}

var specLongestPeriod = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.longest_period",
	Params: []contract.Param{
		{Name: "group_velocity", Kind: quantity.KindSpeed},
		{Name: "height", Kind: quantity.KindDistance},
	},
	Returns: []contract.Param{{Name: "period", Kind: quantity.KindDuration}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{in.Magnitude(0) / 2 * in.Magnitude(1)}, nil
	},
})

// LongestPeriod returns the longest usable inter-pulse period for a
// platform at the given height. A non-positive height takes the
// airborne default of 200 m.
func LongestPeriod(groupVelocity quantity.Quantity, height float64) (quantity.Quantity, error) {
	if height <= 0 {
		height = defaultHeight
	}
	h, err := quantity.Distance(height)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return specLongestPeriod.Eval1(groupVelocity, h)
}

// IsIdealPeriod reports whether the given inter-pulse period stays
// under the longest usable period for the height.
func IsIdealPeriod(period float64, groupVelocity quantity.Quantity, height float64) (bool, error) {
	longest, err := LongestPeriod(groupVelocity, height)
	if err != nil {
		return false, err
	}
	return period < longest.Magnitude(), nil
}

//
// ---------- Scattered systems ----------
//

var specBRDF = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.brdf_basic",
	Params: []contract.Param{
		{Name: "radiance", Kind: quantity.KindRadiance},
		{Name: "irradiance", Kind: quantity.KindIrradiance},
	},
	Returns: []contract.Param{{Name: "brdf", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		// Zero irradiance makes this L/0.
		return []float64{in.Magnitude(0) / in.Magnitude(1)}, nil
	},
})

// BRDF returns the basic bidirectional reflectance distribution
// R = L/E.
func BRDF(radiance, irradiance quantity.Quantity) (quantity.Quantity, error) {
	return specBRDF.Eval1(radiance, irradiance)
}

var specBistatic = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.bistatic_scattering_coefficient",
	Params: []contract.Param{
		{Name: "brdf", Kind: quantity.KindRatio},
		{Name: "angle", Kind: quantity.KindRadialAngle},
	},
	Returns: []contract.Param{{Name: "gamma", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{4 * math.Pi * in.Magnitude(0) * math.Cos(in.Magnitude(1))}, nil
	},
})

// BistaticScatteringCoefficient returns 4*pi*R*cos(theta) for a known
// BRDF. The coefficient goes negative past a quarter turn.
func BistaticScatteringCoefficient(brdf, angle quantity.Quantity) (quantity.Quantity, error) {
	return specBistatic.Eval1(brdf, angle)
}

var specBistaticBasic = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.bistatic_scattering_coefficient_basic",
	Params: []contract.Param{
		{Name: "radiance", Kind: quantity.KindRadiance},
		{Name: "irradiance", Kind: quantity.KindIrradiance},
		{Name: "angle", Kind: quantity.KindRadialAngle},
	},
	Returns: []contract.Param{{Name: "gamma", Kind: quantity.KindRatio}},
	Body: func(in contract.Values) ([]float64, error) {
		r := in.Magnitude(0) / in.Magnitude(1)
		return []float64{4 * math.Pi * r * math.Cos(in.Magnitude(2))}, nil
	},
})

// BistaticScatteringCoefficientBasic composes BRDF and
// BistaticScatteringCoefficient from raw radiance and irradiance.
func BistaticScatteringCoefficientBasic(radiance, irradiance, angle quantity.Quantity) (quantity.Quantity, error) {
	return specBistaticBasic.Eval1(radiance, irradiance, angle)
}
