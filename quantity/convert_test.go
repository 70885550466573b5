package quantity

import (
	"errors"
	"math"
	"testing"
)

const roundTripRelTol = 1e-9

// TestDegreesRadiansRoundTrip verifies the conversion pair inverts
// within relative tolerance across the admissible range.
func TestDegreesRadiansRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 1, 30, 45, 60, 89.9999, 90} {
		d := MustNew(KindAngleDegrees, deg)
		r, err := DegreesToRadians(d)
		if err != nil {
			t.Fatalf("DegreesToRadians(%g): %v", deg, err)
		}
		back, err := RadiansToDegrees(r)
		if err != nil {
			t.Fatalf("RadiansToDegrees(%g rad): %v", r.Magnitude(), err)
		}
		if !withinRel(back.Magnitude(), deg, roundTripRelTol) {
			t.Errorf("round trip %g deg -> %g rad -> %g deg exceeds tolerance",
				deg, r.Magnitude(), back.Magnitude())
		}
	}
}

// TestDegreesToRadiansKnownValues pins a few conversions exactly enough
// to catch a factor slip.
func TestDegreesToRadiansKnownValues(t *testing.T) {
	r, err := DegreesToRadians(MustNew(KindAngleDegrees, 90))
	if err != nil {
		t.Fatalf("DegreesToRadians(90): %v", err)
	}
	if !withinRel(r.Magnitude(), math.Pi/2, 1e-12) {
		t.Errorf("90 deg = %g rad, want %g", r.Magnitude(), math.Pi/2)
	}
	if r.Kind() != KindAngle {
		t.Errorf("result kind = %v, want %v", r.Kind(), KindAngle)
	}
}

func TestConversionRejectsWrongKind(t *testing.T) {
	q := MustNew(KindAngle, 0.5)
	if _, err := DegreesToRadians(q); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("DegreesToRadians(radian input) error = %v, want ErrKindMismatch", err)
	}
	d := MustNew(KindAngleDegrees, 45)
	if _, err := RadiansToDegrees(d); !errors.Is(err, ErrKindMismatch) {
		t.Errorf("RadiansToDegrees(degree input) error = %v, want ErrKindMismatch", err)
	}
}

func withinRel(got, want, tol float64) bool {
	if want == 0 {
		return math.Abs(got) <= tol
	}
	return math.Abs(got-want) <= tol*math.Abs(want)
}
