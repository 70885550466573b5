package elopt

import (
	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// Band is one spectral channel of an instrument table, bounds in
// metres.
type Band struct {
	Index int
	Lower float64
	Upper float64
}

// Bandwidth returns the spectral width Upper - Lower in metres.
func (b Band) Bandwidth() float64 {
	return b.Upper - b.Lower
}

// bandFor scans a table in declaration order and returns the first
// band containing lambda. Declaration order matters: MODIS band 18
// lies inside band 19 and wins.
func bandFor(table []Band, lambda float64) (Band, bool) {
	for _, b := range table {
		if lambda >= b.Lower && lambda <= b.Upper {
			return b, true
		}
	}
	return Band{}, false
}

//
// ---------- ASTER ----------
//

// ASTERBands lists the ASTER VNIR/SWIR channels.
var ASTERBands = [9]Band{
	{Index: 1, Lower: 0, Upper: 0.6e-6},
	{Index: 2, Lower: 0.63e-6, Upper: 0.69e-6},
	{Index: 3, Lower: 0.76e-6, Upper: 0.86e-6},
	{Index: 4, Lower: 1.6e-6, Upper: 1.7e-6},
	{Index: 5, Lower: 2.145e-6, Upper: 2.185e-6},
	{Index: 6, Lower: 2.185e-6, Upper: 2.225e-6},
	{Index: 7, Lower: 2.235e-6, Upper: 2.285e-6},
	{Index: 8, Lower: 2.295e-6, Upper: 2.365e-6},
	{Index: 9, Lower: 2.365e-6, Upper: 2.430e-6},
}

var specASTERBand = contract.MustRegister(&contract.FormulaSpec{
	Name:    "elopt.aster_band",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "band", Kind: quantity.KindBandIndex}},
	Pre: []contract.Contract{
		contract.Requires("in_region", "wavelength must be in the ASTER VNIR/SWIR region",
			func(in contract.Values) bool { return in.Magnitude(0) >= 0.52e-6 && in.Magnitude(0) <= 2.43e-6 }),
		contract.Requires("in_band", "wavelength must fall inside a listed ASTER band",
			func(in contract.Values) bool { _, ok := bandFor(ASTERBands[:], in.Magnitude(0)); return ok }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		b, _ := bandFor(ASTERBands[:], in.Magnitude(0))
		return []float64{float64(b.Index)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("index_in_table", "band index must be between 1 and 9",
			func(in, out contract.Values) bool { return out.Magnitude(0) >= 1 && out.Magnitude(0) <= 9 }),
	},
})

// ASTERBand returns the ASTER band containing the given wavelength.
// Wavelengths in the gaps between listed bands fail the in_band
// precondition.
func ASTERBand(lambda quantity.Quantity) (Band, error) {
	idx, err := specASTERBand.Eval1(lambda)
	if err != nil {
		return Band{}, err
	}
	return ASTERBands[int(idx.Magnitude())-1], nil
}

//
// ---------- MODIS ----------
//

// MODISBands lists the MODIS land/ocean channels 1-19.
var MODISBands = [19]Band{
	{Index: 1, Lower: 6.2e-7, Upper: 6.7e-7},
	{Index: 2, Lower: 8.41e-7, Upper: 8.76e-7},
	{Index: 3, Lower: 4.59e-7, Upper: 4.79e-7},
	{Index: 4, Lower: 5.45e-7, Upper: 5.65e-7},
	{Index: 5, Lower: 1.23e-6, Upper: 1.25e-6},
	{Index: 6, Lower: 1.628e-6, Upper: 1.652e-6},
	{Index: 7, Lower: 2.105e-6, Upper: 2.155e-6},
	{Index: 8, Lower: 4.05e-7, Upper: 4.2e-7},
	{Index: 9, Lower: 4.38e-7, Upper: 4.48e-7},
	{Index: 10, Lower: 4.84e-7, Upper: 4.93e-7},
	{Index: 11, Lower: 5.26e-7, Upper: 5.36e-7},
	{Index: 12, Lower: 5.46e-7, Upper: 5.56e-7},
	{Index: 13, Lower: 6.62e-7, Upper: 6.72e-7},
	{Index: 14, Lower: 6.73e-7, Upper: 6.83e-7},
	{Index: 15, Lower: 7.43e-7, Upper: 7.53e-7},
	{Index: 16, Lower: 8.62e-7, Upper: 8.77e-7},
	{Index: 17, Lower: 8.9e-7, Upper: 9.2e-7},
	{Index: 18, Lower: 9.31e-7, Upper: 9.41e-7},
	{Index: 19, Lower: 9.15e-7, Upper: 9.65e-7},
}

var specMODISBand = contract.MustRegister(&contract.FormulaSpec{
	Name:    "elopt.modis_band",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "band", Kind: quantity.KindBandIndex}},
	Pre: []contract.Contract{
		contract.Requires("in_region", "wavelength must be in the MODIS reflective region",
			func(in contract.Values) bool { return in.Magnitude(0) >= 4.05e-7 && in.Magnitude(0) <= 2.155e-6 }),
		contract.Requires("in_band", "wavelength must fall inside a listed MODIS band",
			func(in contract.Values) bool { _, ok := bandFor(MODISBands[:], in.Magnitude(0)); return ok }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		b, _ := bandFor(MODISBands[:], in.Magnitude(0))
		return []float64{float64(b.Index)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("index_in_table", "band index must be between 1 and 19",
			func(in, out contract.Values) bool { return out.Magnitude(0) >= 1 && out.Magnitude(0) <= 19 }),
	},
})

// MODISBand returns the MODIS band containing the given wavelength.
func MODISBand(lambda quantity.Quantity) (Band, error) {
	idx, err := specMODISBand.Eval1(lambda)
	if err != nil {
		return Band{}, err
	}
	return MODISBands[int(idx.Magnitude())-1], nil
}

//
// ---------- OCM-2 ----------
//

// OCM2Bands lists the Ocean Colour Monitor 2 channels.
var OCM2Bands = [8]Band{
	{Index: 1, Lower: 4.04e-7, Upper: 4.24e-7},
	{Index: 2, Lower: 4.31e-7, Upper: 4.51e-7},
	{Index: 3, Lower: 4.76e-7, Upper: 4.96e-7},
	{Index: 4, Lower: 5e-7, Upper: 5.2e-7},
	{Index: 5, Lower: 5.46e-7, Upper: 5.66e-7},
	{Index: 6, Lower: 6.1e-7, Upper: 6.3e-7},
	{Index: 7, Lower: 7.25e-7, Upper: 7.55e-7},
	{Index: 8, Lower: 8.45e-7, Upper: 8.85e-7},
}

var specOCM2Band = contract.MustRegister(&contract.FormulaSpec{
	Name:    "elopt.ocm2_band",
	Params:  []contract.Param{{Name: "lambda", Kind: quantity.KindWavelength}},
	Returns: []contract.Param{{Name: "band", Kind: quantity.KindBandIndex}},
	Pre: []contract.Contract{
		contract.Requires("in_region", "wavelength must be in the OCM-2 region",
			func(in contract.Values) bool { return in.Magnitude(0) >= 4.04e-7 && in.Magnitude(0) <= 8.85e-7 }),
		contract.Requires("in_band", "wavelength must fall inside a listed OCM-2 band",
			func(in contract.Values) bool { _, ok := bandFor(OCM2Bands[:], in.Magnitude(0)); return ok }),
	},
	Body: func(in contract.Values) ([]float64, error) {
		b, _ := bandFor(OCM2Bands[:], in.Magnitude(0))
		return []float64{float64(b.Index)}, nil
	},
	Post: []contract.Contract{
		contract.Ensures("index_in_table", "band index must be between 1 and 8",
			func(in, out contract.Values) bool { return out.Magnitude(0) >= 1 && out.Magnitude(0) <= 8 }),
	},
})

// OCM2Band returns the OCM-2 band containing the given wavelength.
func OCM2Band(lambda quantity.Quantity) (Band, error) {
	idx, err := specOCM2Band.Eval1(lambda)
	if err != nil {
		return Band{}, err
	}
	return OCM2Bands[int(idx.Magnitude())-1], nil
}
