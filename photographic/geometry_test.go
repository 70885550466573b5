package photographic

import (
	"errors"
	"testing"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

func TestRadialDistortBarrel(t *testing.T) {
	got, err := RadialDistort(Point2{X: 3, Y: 4}, DefaultDistortionSlope)
	if err != nil {
		t.Fatalf("RadialDistort: %v", err)
	}
	// r = 5, L = 1.5
	if got.X != 4.5 || got.Y != 5.5 {
		t.Errorf("distorted point = %+v, want {4.5 5.5}", got)
	}
}

// TestRadialDistortPincushion verifies a negative slope is admitted
// and pulls the point the other way.
func TestRadialDistortPincushion(t *testing.T) {
	got, err := RadialDistort(Point2{X: 3, Y: 4}, -0.1)
	if err != nil {
		t.Fatalf("RadialDistort: %v", err)
	}
	if got.X != 3.5 || got.Y != 4.5 {
		t.Errorf("distorted point = %+v, want {3.5 4.5}", got)
	}
}

// TestRadialDistortOrigin pins the additive form: L(0) = 1 shifts even
// the principal point.
func TestRadialDistortOrigin(t *testing.T) {
	got, err := RadialDistort(Point2{}, DefaultDistortionSlope)
	if err != nil {
		t.Fatalf("RadialDistort: %v", err)
	}
	if got.X != 1 || got.Y != 1 {
		t.Errorf("distorted origin = %+v, want {1 1}", got)
	}
}

func TestImageLocation(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	got, err := ImageLocation(Point3{}, Point3{X: 10, Y: 20, Z: 100}, f)
	if err != nil {
		t.Fatalf("ImageLocation: %v", err)
	}
	if !withinRel(got.X, 0.01, 1e-12) || !withinRel(got.Y, 0.02, 1e-12) {
		t.Errorf("image point = %+v, want {0.01 0.02}", got)
	}
}

// TestImageLocationTranslationInvariant verifies only the offset
// between camera and object matters.
func TestImageLocationTranslationInvariant(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	base, err := ImageLocation(Point3{}, Point3{X: 10, Y: 20, Z: 100}, f)
	if err != nil {
		t.Fatalf("ImageLocation: %v", err)
	}
	shifted, err := ImageLocation(
		Point3{X: -5, Y: 3, Z: 40},
		Point3{X: 5, Y: 23, Z: 140},
		f,
	)
	if err != nil {
		t.Fatalf("ImageLocation: %v", err)
	}
	if shifted != base {
		t.Errorf("shifted projection = %+v, want %+v", shifted, base)
	}
}

// TestImageLocationCameraPlane verifies a point in the camera plane
// (zero depth) cannot be projected.
func TestImageLocationCameraPlane(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	_, err := ImageLocation(Point3{Z: 50}, Point3{X: 10, Y: 20, Z: 50}, f)
	if !errors.Is(err, contract.ErrNumeric) {
		t.Fatalf("error = %v, want ErrNumeric match", err)
	}
}

func TestFindCoordinate(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	got, err := FindCoordinate(
		Point2{X: 0.01, Y: 0.02},
		Point2{X: 0.005, Y: 0.02},
		f,
		Point2{X: 10},
		0,
	)
	if err != nil {
		t.Fatalf("FindCoordinate: %v", err)
	}
	// c = 100/0.05 = 2000
	want := Point3{X: 20, Y: 40, Z: 200}
	if !withinRel(got.X, want.X, 1e-9) || !withinRel(got.Y, want.Y, 1e-9) || !withinRel(got.Z, want.Z, 1e-9) {
		t.Errorf("coordinate = %+v, want %+v", got, want)
	}
}

// TestFindCoordinateReferenceHeight verifies the reference height
// offsets z and nothing else.
func TestFindCoordinateReferenceHeight(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	img1 := Point2{X: 0.01, Y: 0.02}
	img2 := Point2{X: 0.005, Y: 0.02}
	base, err := FindCoordinate(img1, img2, f, Point2{X: 10}, 0)
	if err != nil {
		t.Fatalf("FindCoordinate: %v", err)
	}
	raised, err := FindCoordinate(img1, img2, f, Point2{X: 10}, 150)
	if err != nil {
		t.Fatalf("FindCoordinate: %v", err)
	}
	if raised.X != base.X || raised.Y != base.Y {
		t.Errorf("x,y changed with reference height: %+v vs %+v", raised, base)
	}
	if !withinRel(raised.Z-base.Z, 150, 1e-9) {
		t.Errorf("z offset = %g, want 150", raised.Z-base.Z)
	}
}

// TestFindCoordinateZeroParallax verifies a point with identical image
// coordinates in both exposures has no recoverable depth.
func TestFindCoordinateZeroParallax(t *testing.T) {
	f := mustQ(t, quantity.Distance(0.1))
	p := Point2{X: 0.01, Y: 0.02}
	_, err := FindCoordinate(p, p, f, Point2{X: 10}, 0)
	if !errors.Is(err, contract.ErrNumeric) {
		t.Fatalf("error = %v, want ErrNumeric match", err)
	}
}
