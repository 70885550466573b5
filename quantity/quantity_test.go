package quantity

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// TestNewAcceptsInDomainMagnitudes verifies that representative valid
// magnitudes construct, including closed boundary values.
func TestNewAcceptsInDomainMagnitudes(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		mag  float64
	}{
		{"green wavelength", KindWavelength, 500e-9},
		{"Ku band frequency", KindFrequency, 12e9},
		{"zero angle", KindAngle, 0},
		{"right angle", KindAngle, math.Pi / 2},
		{"zero reflectance", KindReflectance, 0},
		{"full reflectance", KindReflectance, 1},
		{"unit emissivity", KindEmissivity, 1},
		{"zero radiance", KindRadiance, 0},
		{"zero speed", KindSpeed, 0},
		{"negative coordinate", KindCoordinate, -12.5},
		{"negative heat flux", KindHeatFlux, -40},
		{"negative elevation", KindElevationAngle, -math.Pi / 4},
	}
	for _, tc := range cases {
		q, err := New(tc.kind, tc.mag)
		if err != nil {
			t.Errorf("%s: New(%v, %g) failed: %v", tc.name, tc.kind, tc.mag, err)
			continue
		}
		if q.Kind() != tc.kind || q.Magnitude() != tc.mag {
			t.Errorf("%s: got %v %g, want %v %g", tc.name, q.Kind(), q.Magnitude(), tc.kind, tc.mag)
		}
	}
}

// TestNewRejectsOutOfDomainMagnitudes verifies that out-of-domain
// magnitudes fail with a DomainError, including open boundary values.
func TestNewRejectsOutOfDomainMagnitudes(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		mag  float64
	}{
		{"zero wavelength", KindWavelength, 0},
		{"negative wavelength", KindWavelength, -1e-9},
		{"negative angle", KindAngle, -0.1},
		{"angle past zenith", KindAngle, math.Pi/2 + 1e-9},
		{"zero radial angle", KindRadialAngle, 0},
		{"full-turn radial angle", KindRadialAngle, 2 * math.Pi},
		{"reflectance above one", KindReflectance, 1.5},
		{"reflectance just above one", KindReflectance, 1 + 1e-12},
		{"negative reflectance", KindReflectance, -0.01},
		{"zero emissivity", KindEmissivity, 0},
		{"zero kelvin", KindTemperature, 0},
		{"superluminal speed", KindSpeed, 299792458.0},
		{"negative radiance", KindRadiance, -1},
		{"band index zero", KindBandIndex, 0},
		{"unknown kind", KindUnknown, 1},
	}
	for _, tc := range cases {
		_, err := New(tc.kind, tc.mag)
		if err == nil {
			t.Errorf("%s: New(%v, %g) unexpectedly succeeded", tc.name, tc.kind, tc.mag)
			continue
		}
		if !errors.Is(err, ErrDomain) {
			t.Errorf("%s: error %v does not match ErrDomain", tc.name, err)
		}
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%s: error %v is not a *DomainError", tc.name, err)
			continue
		}
		if de.Reason != DomainReasonOutOfRange {
			t.Errorf("%s: reason %q, want %q", tc.name, de.Reason, DomainReasonOutOfRange)
		}
	}
}

// TestNewRejectsNonFinite verifies NaN and infinities are refused for
// every kind, even the unbounded ones.
func TestNewRejectsNonFinite(t *testing.T) {
	for _, mag := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		for _, kind := range []Kind{KindRatio, KindCoordinate, KindDecibel, KindWavelength} {
			_, err := New(kind, mag)
			if err == nil {
				t.Fatalf("New(%v, %g) unexpectedly succeeded", kind, mag)
			}
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("New(%v, %g): error %v is not a *DomainError", kind, mag, err)
			}
			if de.Reason != DomainReasonNotFinite {
				t.Errorf("New(%v, %g): reason %q, want %q", kind, mag, de.Reason, DomainReasonNotFinite)
			}
		}
	}
}

// TestTypedConstructorsMatchNew spot-checks that the per-kind helpers
// bind the kind they advertise.
func TestTypedConstructorsMatchNew(t *testing.T) {
	q, err := Wavelength(632.8e-9)
	if err != nil {
		t.Fatalf("Wavelength: %v", err)
	}
	if q.Kind() != KindWavelength {
		t.Errorf("Wavelength kind = %v, want %v", q.Kind(), KindWavelength)
	}

	if _, err := Angle(-0.1); err == nil {
		t.Errorf("Angle(-0.1) unexpectedly succeeded")
	}
	if _, err := Reflectance(1.5); err == nil {
		t.Errorf("Reflectance(1.5) unexpectedly succeeded")
	}
}

func TestMustNewPanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustNew(KindReflectance, 2) did not panic")
		}
	}()
	MustNew(KindReflectance, 2)
}

// TestIntervalContains exercises the open/closed bound combinations
// directly.
func TestIntervalContains(t *testing.T) {
	closed := Interval{Min: 0, Max: 1}
	open := Interval{Min: 0, Max: 1, OpenMin: true, OpenMax: true}

	if !closed.Contains(0) || !closed.Contains(1) {
		t.Errorf("closed [0,1] should contain its endpoints")
	}
	if open.Contains(0) || open.Contains(1) {
		t.Errorf("open (0,1) should exclude its endpoints")
	}
	if !open.Contains(0.5) {
		t.Errorf("open (0,1) should contain 0.5")
	}
	if closed.Contains(math.NaN()) {
		t.Errorf("NaN must never be contained")
	}

	unbounded := Interval{Min: 0, Max: math.Inf(1)}
	if !unbounded.Contains(1e300) {
		t.Errorf("[0,+Inf) should contain 1e300")
	}
	if unbounded.Contains(math.Inf(1)) {
		t.Errorf("infinite bounds are open: +Inf must not be contained")
	}
}

func TestIntervalString(t *testing.T) {
	got := Interval{Min: 0, Max: 1}.String()
	if got != "[0, 1]" {
		t.Errorf("closed interval string = %q, want %q", got, "[0, 1]")
	}
	got = Interval{Min: 0, Max: math.Inf(1), OpenMin: true}.String()
	if got != "(0, +Inf)" {
		t.Errorf("unbounded interval string = %q, want %q", got, "(0, +Inf)")
	}
}

// TestDomainErrorMessage verifies the rendered error names the kind, the
// magnitude and the admissible domain so failures are diagnosable
// without reading source.
func TestDomainErrorMessage(t *testing.T) {
	_, err := Reflectance(1.5)
	if err == nil {
		t.Fatalf("Reflectance(1.5) unexpectedly succeeded")
	}
	msg := err.Error()
	for _, want := range []string{"reflectance", "1.5", "[0, 1]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}
