package quantity

import (
	"errors"
	"fmt"
	"math"
)

var ErrKindMismatch = errors.New("quantity kind mismatch")

// DegreesToRadians converts a KindAngleDegrees quantity to KindAngle.
// The conversion is pure and re-validated: the result goes back through
// New, so a degree value whose radian twin would fall outside [0, pi/2]
// is rejected rather than smuggled in.
func DegreesToRadians(q Quantity) (Quantity, error) {
	if q.Kind() != KindAngleDegrees {
		return Quantity{}, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, q.Kind(), KindAngleDegrees)
	}
	return New(KindAngle, q.Magnitude()*math.Pi/180)
}

// RadiansToDegrees converts a KindAngle quantity to KindAngleDegrees.
func RadiansToDegrees(q Quantity) (Quantity, error) {
	if q.Kind() != KindAngle {
		return Quantity{}, fmt.Errorf("%w: got %s, want %s", ErrKindMismatch, q.Kind(), KindAngle)
	}
	return New(KindAngleDegrees, q.Magnitude()*180/math.Pi)
}
