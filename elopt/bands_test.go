package elopt

import (
	"errors"
	"testing"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

func TestASTERBandLookup(t *testing.T) {
	cases := []struct {
		lambda float64
		index  int
	}{
		{0.55e-6, 1},
		{0.65e-6, 2},
		{0.8e-6, 3},
		{1.65e-6, 4},
		{2.2e-6, 6},
		{2.4e-6, 9},
	}
	for _, c := range cases {
		b, err := ASTERBand(mustQ(t, quantity.Wavelength(c.lambda)))
		if err != nil {
			t.Errorf("ASTERBand(%g): %v", c.lambda, err)
			continue
		}
		if b.Index != c.index {
			t.Errorf("ASTERBand(%g) = band %d, want %d", c.lambda, b.Index, c.index)
		}
	}
}

// TestASTERBandSharedBoundary verifies a wavelength on the 5/6 band
// boundary resolves to the lower band, the first match in table order.
func TestASTERBandSharedBoundary(t *testing.T) {
	b, err := ASTERBand(mustQ(t, quantity.Wavelength(2.185e-6)))
	if err != nil {
		t.Fatalf("ASTERBand: %v", err)
	}
	if b.Index != 5 {
		t.Errorf("band = %d, want 5", b.Index)
	}
}

// TestASTERBandGap verifies a wavelength inside the ASTER region but
// between listed bands fails the in_band precondition instead of
// being misassigned.
func TestASTERBandGap(t *testing.T) {
	_, err := ASTERBand(mustQ(t, quantity.Wavelength(0.7e-6)))
	if !errors.Is(err, contract.ErrPrecondition) {
		t.Fatalf("error = %v, want ErrPrecondition match", err)
	}
	var ee *contract.EvalError
	if !errors.As(err, &ee) || ee.Violation.Contract != "in_band" {
		t.Errorf("violation = %+v, want in_band", ee.Violation)
	}
}

func TestASTERBandOutsideRegion(t *testing.T) {
	_, err := ASTERBand(mustQ(t, quantity.Wavelength(3e-6)))
	var ee *contract.EvalError
	if !errors.As(err, &ee) || ee.Violation.Contract != "in_region" {
		t.Fatalf("error = %v, want in_region violation", err)
	}
}

func TestMODISBandLookup(t *testing.T) {
	cases := []struct {
		lambda float64
		index  int
	}{
		{6.5e-7, 1},
		{8.6e-7, 2},
		{4.1e-7, 8},
		{1.24e-6, 5},
		{2.12e-6, 7},
		{9.5e-7, 19},
	}
	for _, c := range cases {
		b, err := MODISBand(mustQ(t, quantity.Wavelength(c.lambda)))
		if err != nil {
			t.Errorf("MODISBand(%g): %v", c.lambda, err)
			continue
		}
		if b.Index != c.index {
			t.Errorf("MODISBand(%g) = band %d, want %d", c.lambda, b.Index, c.index)
		}
	}
}

// TestMODISBandOverlapPrefersEighteen verifies the 931-941 nm band 18
// wins over the 915-965 nm band 19 that encloses it.
func TestMODISBandOverlapPrefersEighteen(t *testing.T) {
	b, err := MODISBand(mustQ(t, quantity.Wavelength(9.35e-7)))
	if err != nil {
		t.Fatalf("MODISBand: %v", err)
	}
	if b.Index != 18 {
		t.Errorf("band = %d, want 18", b.Index)
	}
}

func TestOCM2BandLookup(t *testing.T) {
	cases := []struct {
		lambda float64
		index  int
	}{
		{4.1e-7, 1},
		{5.1e-7, 4},
		{6.2e-7, 6},
		{7.4e-7, 7},
	}
	for _, c := range cases {
		b, err := OCM2Band(mustQ(t, quantity.Wavelength(c.lambda)))
		if err != nil {
			t.Errorf("OCM2Band(%g): %v", c.lambda, err)
			continue
		}
		if b.Index != c.index {
			t.Errorf("OCM2Band(%g) = band %d, want %d", c.lambda, b.Index, c.index)
		}
	}
}

// TestOCM2BandTopBand verifies the highest listed band is reachable up
// to its upper bound.
func TestOCM2BandTopBand(t *testing.T) {
	b, err := OCM2Band(mustQ(t, quantity.Wavelength(8.85e-7)))
	if err != nil {
		t.Fatalf("OCM2Band: %v", err)
	}
	if b.Index != 8 {
		t.Errorf("band = %d, want 8", b.Index)
	}
}

func TestBandwidth(t *testing.T) {
	if bw := ASTERBands[1].Bandwidth(); !withinRel(bw, 6e-8, 1e-9) {
		t.Errorf("ASTER band 2 bandwidth = %g, want 6e-8", bw)
	}
	if bw := OCM2Bands[3].Bandwidth(); !withinRel(bw, 2e-8, 1e-9) {
		t.Errorf("OCM-2 band 4 bandwidth = %g, want 2e-8", bw)
	}
}
