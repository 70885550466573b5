// Package quantity implements the typed physical values the formula
// packages compute with. Every value is a Quantity: a magnitude bound to
// a Kind, admitted only if it is finite and inside the kind's domain.
// Construction is the single gate; a Quantity in hand is always valid.
package quantity

import (
	"errors"
	"fmt"
	"math"
)

// speedOfLight duplicates em.SpeedOfLight so the KindSpeed domain can be
// expressed here without importing the formula packages.
const speedOfLight = 299792458.0 // m/s

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

var ErrDomain = errors.New("magnitude outside admissible domain")

//
// ---------- Kinds ----------
//

// Kind identifies the physical kind of a Quantity. Each kind fixes an
// admissible Interval; all angular kinds are radians unless the name
// says otherwise.
type Kind int

const (
	KindUnknown Kind = iota // Default/unset; admits nothing
	KindWavelength
	KindFrequency
	KindAngularFrequency
	KindAngle            // zenith-style angle, [0, pi/2]
	KindRadialAngle      // full-turn angle, (0, 2*pi)
	KindElevationAngle   // signed elevation above horizon, [-pi/2, pi/2]
	KindAngleDegrees     // degree twin of KindAngle, [0, 90]
	KindBeamwidthDegrees // half-power beamwidths, [0, 360]
	KindSolidAngle
	KindReflectance
	KindEmissivity
	KindEfficiency
	KindRadiance
	KindSpectralRadiance
	KindIrradiance
	KindFluxDensity
	KindTemperature
	KindDistance
	KindArea
	KindCoordinate // signed image/ground coordinate
	KindSpeed
	KindEnergy
	KindPower
	KindAmplitude // signed field amplitude
	KindWaveNumber
	KindSpatialFrequency
	KindBandwidth
	KindDuration
	KindHeatCapacity
	KindDensity
	KindThermalConductivity
	KindThermalInertia
	KindThermalDiffusivity
	KindHeatFlux       // signed: negative means downward
	KindHeatFluxWeight // alpha in alpha*(T - Tmean)
	KindOpticalDepth
	KindCalibrationConstant
	KindDecibel
	KindStep // numerical integration step
	KindCount
	KindBandIndex // 1-based sensor band index
	KindRatio     // dimensionless, any finite value
)

// kindInfo carries the display name, unit and admissible domain per Kind.
var kindInfo = [...]struct {
	name   string
	unit   string
	domain Interval
}{
	KindUnknown:             {"unknown", "", Interval{Min: posInf, Max: negInf}},
	KindWavelength:          {"wavelength", "m", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindFrequency:           {"frequency", "Hz", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindAngularFrequency:    {"angular frequency", "rad/s", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindAngle:               {"angle", "rad", Interval{Min: 0, Max: math.Pi / 2}},
	KindRadialAngle:         {"radial angle", "rad", Interval{Min: 0, Max: 2 * math.Pi, OpenMin: true, OpenMax: true}},
	KindElevationAngle:      {"elevation angle", "rad", Interval{Min: -math.Pi / 2, Max: math.Pi / 2}},
	KindAngleDegrees:        {"angle", "deg", Interval{Min: 0, Max: 90}},
	KindBeamwidthDegrees:    {"beamwidth", "deg", Interval{Min: 0, Max: 360}},
	KindSolidAngle:          {"solid angle", "sr", Interval{Min: 0, Max: 4 * math.Pi, OpenMin: true}},
	KindReflectance:         {"reflectance", "", Interval{Min: 0, Max: 1}},
	KindEmissivity:          {"emissivity", "", Interval{Min: 0, Max: 1, OpenMin: true}},
	KindEfficiency:          {"efficiency", "", Interval{Min: 0, Max: 1, OpenMin: true}},
	KindRadiance:            {"radiance", "W/(m^2 sr)", Interval{Min: 0, Max: posInf}},
	KindSpectralRadiance:    {"spectral radiance", "W/(m^2 sr um)", Interval{Min: 0, Max: posInf}},
	KindIrradiance:          {"irradiance", "W/m^2", Interval{Min: 0, Max: posInf}},
	KindFluxDensity:         {"flux density", "W/m^2", Interval{Min: 0, Max: posInf}},
	KindTemperature:         {"temperature", "K", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindDistance:            {"distance", "m", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindArea:                {"area", "m^2", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindCoordinate:          {"coordinate", "m", Interval{Min: negInf, Max: posInf}},
	KindSpeed:               {"speed", "m/s", Interval{Min: 0, Max: speedOfLight, OpenMax: true}},
	KindEnergy:              {"energy", "J", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindPower:               {"power", "W", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindAmplitude:           {"amplitude", "", Interval{Min: negInf, Max: posInf}},
	KindWaveNumber:          {"wave number", "rad/m", Interval{Min: 0, Max: posInf}},
	KindSpatialFrequency:    {"spatial frequency", "1/m", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindBandwidth:           {"bandwidth", "Hz", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindDuration:            {"duration", "s", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindHeatCapacity:        {"heat capacity", "J/(kg K)", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindDensity:             {"density", "kg/m^3", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindThermalConductivity: {"thermal conductivity", "W/(m K)", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindThermalInertia:      {"thermal inertia", "J/(m^2 K s^0.5)", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindThermalDiffusivity:  {"thermal diffusivity", "m^2/s", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindHeatFlux:            {"heat flux", "W/m^2", Interval{Min: negInf, Max: posInf}},
	KindHeatFluxWeight:      {"heat flux weight", "W/(m^2 K)", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindOpticalDepth:        {"optical depth", "", Interval{Min: negInf, Max: posInf}},
	KindCalibrationConstant: {"calibration constant", "", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindDecibel:             {"decibel value", "dB", Interval{Min: negInf, Max: posInf}},
	KindStep:                {"integration step", "", Interval{Min: 0, Max: posInf, OpenMin: true}},
	KindCount:               {"count", "", Interval{Min: 0, Max: posInf}},
	KindBandIndex:           {"band index", "", Interval{Min: 1, Max: posInf}},
	KindRatio:               {"ratio", "", Interval{Min: negInf, Max: posInf}},
}

// Valid reports whether k names a known kind (KindUnknown is not one).
func (k Kind) Valid() bool {
	return k > KindUnknown && int(k) < len(kindInfo)
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindInfo) {
		return kindInfo[k].name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Unit returns the conventional unit string for the kind, empty for
// dimensionless kinds.
func (k Kind) Unit() string {
	if k >= 0 && int(k) < len(kindInfo) {
		return kindInfo[k].unit
	}
	return ""
}

// Domain returns the admissible magnitude interval for the kind.
func (k Kind) Domain() Interval {
	if k >= 0 && int(k) < len(kindInfo) {
		return kindInfo[k].domain
	}
	return Interval{Min: posInf, Max: negInf}
}

//
// ---------- Intervals ----------
//

// Interval is an admissible magnitude range. Either bound may be open
// (excluded); infinite bounds are always treated as open.
type Interval struct {
	Min, Max         float64
	OpenMin, OpenMax bool
}

// Contains reports whether x lies inside the interval. NaN is never
// contained.
func (iv Interval) Contains(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if iv.OpenMin || math.IsInf(iv.Min, -1) {
		if x <= iv.Min {
			return false
		}
	} else if x < iv.Min {
		return false
	}
	if iv.OpenMax || math.IsInf(iv.Max, 1) {
		if x >= iv.Max {
			return false
		}
	} else if x > iv.Max {
		return false
	}
	return true
}

func (iv Interval) String() string {
	lo, hi := "[", "]"
	if iv.OpenMin || math.IsInf(iv.Min, -1) {
		lo = "("
	}
	if iv.OpenMax || math.IsInf(iv.Max, 1) {
		hi = ")"
	}
	return fmt.Sprintf("%s%g, %g%s", lo, iv.Min, iv.Max, hi)
}

//
// ---------- Construction ----------
//

// DomainReason says why a magnitude was rejected.
type DomainReason string

const (
	DomainReasonNotFinite  DomainReason = "not finite"
	DomainReasonOutOfRange DomainReason = "out of range"
)

// DomainError reports a rejected Quantity construction: the magnitude was
// NaN/Inf or fell outside the kind's admissible domain. It matches
// errors.Is(err, ErrDomain).
type DomainError struct {
	Kind      Kind
	Magnitude float64
	Reason    DomainReason
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s magnitude %g %s: admissible domain %s",
		e.Kind, e.Magnitude, e.Reason, e.Kind.Domain())
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// Quantity is an immutable magnitude bound to a Kind. The zero Quantity
// has KindUnknown and is not obtainable from New.
type Quantity struct {
	kind      Kind
	magnitude float64
}

// New constructs a Quantity of the given kind, rejecting non-finite and
// out-of-domain magnitudes with a *DomainError.
func New(kind Kind, magnitude float64) (Quantity, error) {
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return Quantity{}, &DomainError{Kind: kind, Magnitude: magnitude, Reason: DomainReasonNotFinite}
	}
	if !kind.Valid() || !kind.Domain().Contains(magnitude) {
		return Quantity{}, &DomainError{Kind: kind, Magnitude: magnitude, Reason: DomainReasonOutOfRange}
	}
	return Quantity{kind: kind, magnitude: magnitude}, nil
}

// MustNew is New for values known to be valid; it panics on rejection.
// Intended for fixed tables and tests.
func MustNew(kind Kind, magnitude float64) Quantity {
	q, err := New(kind, magnitude)
	if err != nil {
		panic(err)
	}
	return q
}

// Kind returns the physical kind of the quantity.
func (q Quantity) Kind() Kind { return q.kind }

// Magnitude returns the numeric value in the kind's conventional unit.
func (q Quantity) Magnitude() float64 { return q.magnitude }

func (q Quantity) String() string {
	if unit := q.kind.Unit(); unit != "" {
		return fmt.Sprintf("%s %g %s", q.kind, q.magnitude, unit)
	}
	return fmt.Sprintf("%s %g", q.kind, q.magnitude)
}

//
// ---------- Per-kind constructors ----------
//

// The constructors below are the typed entry points callers are expected
// to use; each is New with the kind fixed.

func Wavelength(meters float64) (Quantity, error) { return New(KindWavelength, meters) }

func Frequency(hertz float64) (Quantity, error) { return New(KindFrequency, hertz) }

func AngularFrequency(radPerS float64) (Quantity, error) {
	return New(KindAngularFrequency, radPerS)
}

func Angle(radians float64) (Quantity, error) { return New(KindAngle, radians) }

func RadialAngle(radians float64) (Quantity, error) { return New(KindRadialAngle, radians) }

func ElevationAngle(radians float64) (Quantity, error) { return New(KindElevationAngle, radians) }

func AngleDegrees(degrees float64) (Quantity, error) { return New(KindAngleDegrees, degrees) }

func SolidAngle(steradians float64) (Quantity, error) { return New(KindSolidAngle, steradians) }

func Reflectance(x float64) (Quantity, error) { return New(KindReflectance, x) }

func Emissivity(x float64) (Quantity, error) { return New(KindEmissivity, x) }

func Efficiency(x float64) (Quantity, error) { return New(KindEfficiency, x) }

func Radiance(wPerM2Sr float64) (Quantity, error) { return New(KindRadiance, wPerM2Sr) }

func SpectralRadiance(w float64) (Quantity, error) { return New(KindSpectralRadiance, w) }

func Irradiance(wPerM2 float64) (Quantity, error) { return New(KindIrradiance, wPerM2) }

func FluxDensity(wPerM2 float64) (Quantity, error) { return New(KindFluxDensity, wPerM2) }

func Temperature(kelvin float64) (Quantity, error) { return New(KindTemperature, kelvin) }

func Distance(meters float64) (Quantity, error) { return New(KindDistance, meters) }

func Coordinate(meters float64) (Quantity, error) { return New(KindCoordinate, meters) }

func Speed(mPerS float64) (Quantity, error) { return New(KindSpeed, mPerS) }

func Energy(joules float64) (Quantity, error) { return New(KindEnergy, joules) }

func Amplitude(x float64) (Quantity, error) { return New(KindAmplitude, x) }

func SpatialFrequency(perMeter float64) (Quantity, error) {
	return New(KindSpatialFrequency, perMeter)
}

func Bandwidth(hertz float64) (Quantity, error) { return New(KindBandwidth, hertz) }

func Duration(seconds float64) (Quantity, error) { return New(KindDuration, seconds) }

func HeatCapacity(jPerKgK float64) (Quantity, error) { return New(KindHeatCapacity, jPerKgK) }

func Density(kgPerM3 float64) (Quantity, error) { return New(KindDensity, kgPerM3) }

func ThermalConductivity(wPerMK float64) (Quantity, error) {
	return New(KindThermalConductivity, wPerMK)
}

func OpticalDepth(tau float64) (Quantity, error) { return New(KindOpticalDepth, tau) }

func CalibrationConstant(x float64) (Quantity, error) {
	return New(KindCalibrationConstant, x)
}

func Decibel(dB float64) (Quantity, error) { return New(KindDecibel, dB) }

func Step(x float64) (Quantity, error) { return New(KindStep, x) }

func Count(n float64) (Quantity, error) { return New(KindCount, n) }

func Ratio(x float64) (Quantity, error) { return New(KindRatio, x) }
