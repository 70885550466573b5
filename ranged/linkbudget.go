package ranged

import (
	"math"

	"github.com/ifndefJOSH/rustysensor/contract"
	"github.com/ifndefJOSH/rustysensor/quantity"
)

// LinkQuality is a coarse, human-readable classification of link
// health derived from an SNR estimate.
type LinkQuality string

const (
	LinkQualityDown      LinkQuality = "down"
	LinkQualityPoor      LinkQuality = "poor"
	LinkQualityFair      LinkQuality = "fair"
	LinkQualityGood      LinkQuality = "good"
	LinkQualityExcellent LinkQuality = "excellent"
)

// Nominal link-budget defaults assumed for zero-valued LinkBudget
// fields.
const (
	defaultTxPowerDBW    = 40.0
	defaultGainDBi       = 30.0
	defaultNoiseFloorDBW = -120.0
)

// LinkBudget carries the RF parameters of one sensor downlink. The
// zero value evaluates with conservative nominal figures: 40 dBW
// transmit power, 30 dBi gains and a -120 dBW noise floor.
type LinkBudget struct {
	TxPowerDBW    float64
	TxGainDBi     float64
	RxGainDBi     float64
	NoiseFigureDB float64
	NoiseFloorDBW float64
}

var specFreeSpacePathLoss = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.free_space_path_loss",
	Params: []contract.Param{
		{Name: "distance", Kind: quantity.KindDistance},
		{Name: "frequency", Kind: quantity.KindFrequency},
	},
	Returns: []contract.Param{{Name: "fspl", Kind: quantity.KindDecibel}},
	Body: func(in contract.Values) ([]float64, error) {
		return []float64{pathLossDB(in.Magnitude(0)/1000, in.Magnitude(1)/1e9)}, nil
	},
})

// pathLossDB is the free-space path loss 92.45 + 20 log10(d_km) +
// 20 log10(f_GHz).
func pathLossDB(distKm, fGHz float64) float64 {
	return 92.45 + 20*math.Log10(distKm) + 20*math.Log10(fGHz)
}

// FreeSpacePathLoss returns the free-space path loss between isotropic
// antennas a given distance apart. Sub-metre distances and sub-GHz
// frequencies yield negative decibel values.
func FreeSpacePathLoss(distance, frequency quantity.Quantity) (quantity.Quantity, error) {
	return specFreeSpacePathLoss.Eval1(distance, frequency)
}

var specLinkSNR = contract.MustRegister(&contract.FormulaSpec{
	Name: "ranged.link_snr",
	Params: []contract.Param{
		{Name: "distance", Kind: quantity.KindDistance},
		{Name: "frequency", Kind: quantity.KindFrequency},
	},
	Returns: []contract.Param{{Name: "snr", Kind: quantity.KindDecibel}},
})

// SNR estimates the link signal-to-noise ratio over a path of the
// given length at the given carrier frequency. The model is a plain
// free-space budget: received power pt + gt + gr - FSPL against a
// fixed noise floor raised by the system noise figure. It is meant to
// rank geometries, not to replace an engineering-grade budget.
// Distances under a kilometre are treated as one kilometre.
func (b LinkBudget) SNR(distance, frequency quantity.Quantity) (quantity.Quantity, error) {
	return specLinkSNR.EvalWith1(func(in contract.Values) ([]float64, error) {
		distKm := in.Magnitude(0) / 1000
		if distKm < 1 {
			distKm = 1
		}
		fspl := pathLossDB(distKm, in.Magnitude(1)/1e9)

		pt := b.TxPowerDBW
		if pt == 0 {
			pt = defaultTxPowerDBW
		}
		gt := b.TxGainDBi
		if gt == 0 {
			gt = defaultGainDBi
		}
		gr := b.RxGainDBi
		if gr == 0 {
			gr = defaultGainDBi
		}
		floor := b.NoiseFloorDBW
		if floor == 0 {
			floor = defaultNoiseFloorDBW
		}

		pr := pt + gt + gr - fspl
		return []float64{pr - (floor + b.NoiseFigureDB)}, nil
	}, distance, frequency)
}

// QualityForSNR classifies an SNR estimate into a coarse link
// quality. Thresholds are intentionally soft.
func QualityForSNR(snrDB float64) LinkQuality {
	switch {
	case snrDB < 0:
		return LinkQualityDown
	case snrDB < 5:
		return LinkQualityPoor
	case snrDB < 10:
		return LinkQualityFair
	case snrDB < 20:
		return LinkQualityGood
	default:
		return LinkQualityExcellent
	}
}

// NominalRateMbps returns the indicative data rate a link of this
// quality sustains.
func (q LinkQuality) NominalRateMbps() float64 {
	switch q {
	case LinkQualityPoor:
		return 10
	case LinkQualityFair:
		return 50
	case LinkQualityGood:
		return 200
	case LinkQualityExcellent:
		return 1000
	default:
		return 0
	}
}
