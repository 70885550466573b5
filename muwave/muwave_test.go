package muwave

import (
	"errors"
	"math"
	"testing"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/em"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

func TestJohnsonNoisePower(t *testing.T) {
	temp := mustQ(t, quantity.Temperature(290))
	band := mustQ(t, quantity.Bandwidth(1e6))
	p, err := JohnsonNoisePower(temp, band)
	if err != nil {
		t.Fatalf("JohnsonNoisePower: %v", err)
	}
	if !withinRel(p.Magnitude(), em.Boltzmann*290*1e6, 1e-12) {
		t.Errorf("P = %g, want %g", p.Magnitude(), em.Boltzmann*290*1e6)
	}
}

func TestSpectralRadiance(t *testing.T) {
	tb := mustQ(t, quantity.Temperature(300))
	lambda := mustQ(t, quantity.Wavelength(0.21))
	l, err := SpectralRadiance(tb, lambda)
	if err != nil {
		t.Fatalf("SpectralRadiance: %v", err)
	}
	want := 2 * em.Boltzmann * 300 / (0.21 * 0.21)
	if !withinRel(l.Magnitude(), want, 1e-12) {
		t.Errorf("L = %g, want %g", l.Magnitude(), want)
	}
}

// TestSpectralFluxDensityScalesRadiance verifies S = L*Omega for a
// small source.
func TestSpectralFluxDensityScalesRadiance(t *testing.T) {
	tb := mustQ(t, quantity.Temperature(300))
	lambda := mustQ(t, quantity.Wavelength(0.21))
	omega := mustQ(t, quantity.SolidAngle(1e-4))

	l, err := SpectralRadiance(tb, lambda)
	if err != nil {
		t.Fatalf("SpectralRadiance: %v", err)
	}
	s, err := SpectralFluxDensity(tb, lambda, omega)
	if err != nil {
		t.Fatalf("SpectralFluxDensity: %v", err)
	}
	if !withinRel(s.Magnitude(), l.Magnitude()*1e-4, 1e-12) {
		t.Errorf("S = %g, want L*Omega = %g", s.Magnitude(), l.Magnitude()*1e-4)
	}
}

func TestSensitivityDefaults(t *testing.T) {
	sys := mustQ(t, quantity.Temperature(500))
	defaulted, err := Sensitivity(sys, 0, 0, 0)
	if err != nil {
		t.Fatalf("Sensitivity(defaults): %v", err)
	}
	explicit, err := Sensitivity(sys, 5, 0.01, 0.01)
	if err != nil {
		t.Fatalf("Sensitivity(explicit): %v", err)
	}
	if defaulted.Magnitude() != explicit.Magnitude() {
		t.Errorf("default result %g differs from explicit %g",
			defaulted.Magnitude(), explicit.Magnitude())
	}
	if !withinRel(defaulted.Magnitude(), 250000, 1e-9) {
		t.Errorf("deltaT = %g, want 2.5e5", defaulted.Magnitude())
	}
}

func TestSeaIceRatios(t *testing.T) {
	t19h := mustQ(t, quantity.Temperature(150))
	t19v := mustQ(t, quantity.Temperature(200))
	t37v := mustQ(t, quantity.Temperature(210))

	xpgr, err := XPGR(t19h, t37v)
	if err != nil {
		t.Fatalf("XPGR: %v", err)
	}
	if !withinRel(xpgr.Magnitude(), (150.0-210)/(150+210), 1e-12) {
		t.Errorf("XPGR = %g, want %g", xpgr.Magnitude(), (150.0-210)/(150+210))
	}

	pr, err := PolarizationRatio(t19h, t19v)
	if err != nil {
		t.Fatalf("PolarizationRatio: %v", err)
	}
	if !withinRel(pr.Magnitude(), (200.0-150)/(200+150), 1e-12) {
		t.Errorf("PR = %g, want %g", pr.Magnitude(), (200.0-150)/(200+150))
	}

	gr, err := GradientRatio(t19v, t37v)
	if err != nil {
		t.Fatalf("GradientRatio: %v", err)
	}
	if !withinRel(gr.Magnitude(), (210.0-200)/(210+200), 1e-12) {
		t.Errorf("GR = %g, want %g", gr.Magnitude(), (210.0-200)/(210+200))
	}
}

func TestUpwellingComponent(t *testing.T) {
	tau := mustQ(t, quantity.OpticalDepth(0.5))
	tb, err := UpwellingComponent(tau, func(fraction float64) float64 {
		return 280 * fraction
	})
	if err != nil {
		t.Fatalf("UpwellingComponent: %v", err)
	}
	want := 280 * (1 - math.Exp(-0.5))
	if !withinRel(tb.Magnitude(), want, 1e-12) {
		t.Errorf("T_b = %g, want %g", tb.Magnitude(), want)
	}
}

// TestUpwellingComponentNegativeDepth verifies a negative optical
// depth drives a linear profile below zero kelvin and fails the
// output domain.
func TestUpwellingComponentNegativeDepth(t *testing.T) {
	tau := mustQ(t, quantity.OpticalDepth(-0.5))
	_, err := UpwellingComponent(tau, func(fraction float64) float64 {
		return 280 * fraction
	})
	if !errors.Is(err, contract.ErrPostcondition) {
		t.Fatalf("error = %v, want ErrPostcondition match", err)
	}
}

// TestFormulasRegistered verifies this package's specs land in the
// default registry under their dotted names.
func TestFormulasRegistered(t *testing.T) {
	for _, name := range []string{
		"muwave.jnoise_power",
		"muwave.hpbw",
		"muwave.directivity",
		"muwave.beam_solid_angle",
		"muwave.antenna_temp",
		"muwave.forward_gain",
		"muwave.spectral_radiance",
		"muwave.spectral_flux_density",
		"muwave.effective_area",
		"muwave.sensitivity",
		"muwave.xpgr",
		"muwave.polarization_ratio",
		"muwave.gradient_ratio",
		"muwave.upwelling_component",
	} {
		if contract.Lookup(name) == nil {
			t.Errorf("formula %q not registered", name)
		}
	}
}
