package muwave

// Polarization is the polarization sense of an instrument channel.
type Polarization string

const (
	PolarizationH Polarization = "H" // horizontal
	PolarizationV Polarization = "V" // vertical
	PolarizationR Polarization = "R" // right circular
	PolarizationL Polarization = "L" // left circular
)

// Band is one radiometer band: its frequency range, noise figure and
// ground footprint.
type Band struct {
	FMinGHz      float64
	FMaxGHz      float64
	BandwidthMHz float64
	Polarization Polarization
	DeltaTK      float64 // radiometric resolution
	ResXKm       int     // along-scan footprint
	ResYKm       int     // along-track footprint
}

// CenterGHz returns the band center frequency.
func (b Band) CenterGHz() float64 {
	return (b.FMinGHz + b.FMaxGHz) / 2
}

// Channel is one numbered channel of a multi-frequency radiometer.
type Channel struct {
	Channel      int
	FMinGHz      float64
	FMaxGHz      float64
	BandwidthMHz float64
	Polarization Polarization
	Band         int // frequency band group, 1-based
	DeltaTK      float64
}

// CenterGHz returns the channel center frequency.
func (c Channel) CenterGHz() float64 {
	return (c.FMinGHz + c.FMaxGHz) / 2
}

// SSMIBands lists the seven DMSP SSM/I radiometer bands.
var SSMIBands = [7]Band{
	{FMinGHz: 19.23, FMaxGHz: 19.47, BandwidthMHz: 240, Polarization: PolarizationV, DeltaTK: 0.45, ResXKm: 69, ResYKm: 43},
	{FMinGHz: 19.23, FMaxGHz: 19.47, BandwidthMHz: 240, Polarization: PolarizationH, DeltaTK: 0.42, ResXKm: 69, ResYKm: 43},
	{FMinGHz: 22.115, FMaxGHz: 22.355, BandwidthMHz: 240, Polarization: PolarizationV, DeltaTK: 0.74, ResXKm: 60, ResYKm: 40},
	{FMinGHz: 36.55, FMaxGHz: 37.45, BandwidthMHz: 900, Polarization: PolarizationV, DeltaTK: 0.37, ResXKm: 37, ResYKm: 28},
	{FMinGHz: 36.55, FMaxGHz: 37.45, BandwidthMHz: 900, Polarization: PolarizationH, DeltaTK: 0.38, ResXKm: 37, ResYKm: 29},
	{FMinGHz: 84.8, FMaxGHz: 86.2, BandwidthMHz: 1400, Polarization: PolarizationV, DeltaTK: 0.73, ResXKm: 15, ResYKm: 13},
	{FMinGHz: 84.8, FMaxGHz: 86.2, BandwidthMHz: 1400, Polarization: PolarizationH, DeltaTK: 0.69, ResXKm: 15, ResYKm: 13},
}

// MSMRChannels lists the eight Oceansat MSMR channels in ascending
// frequency, vertical polarization first within each band group.
var MSMRChannels = [8]Channel{
	{Channel: 1, FMinGHz: 6.425, FMaxGHz: 6.775, BandwidthMHz: 350, Polarization: PolarizationV, Band: 1, DeltaTK: 1},
	{Channel: 2, FMinGHz: 6.425, FMaxGHz: 6.775, BandwidthMHz: 350, Polarization: PolarizationH, Band: 1, DeltaTK: 1},
	{Channel: 3, FMinGHz: 10.6, FMaxGHz: 10.7, BandwidthMHz: 100, Polarization: PolarizationV, Band: 2, DeltaTK: 1},
	{Channel: 4, FMinGHz: 10.6, FMaxGHz: 10.7, BandwidthMHz: 100, Polarization: PolarizationH, Band: 2, DeltaTK: 1},
	{Channel: 5, FMinGHz: 17.9, FMaxGHz: 18.1, BandwidthMHz: 200, Polarization: PolarizationV, Band: 3, DeltaTK: 1},
	{Channel: 6, FMinGHz: 17.9, FMaxGHz: 18.1, BandwidthMHz: 200, Polarization: PolarizationH, Band: 3, DeltaTK: 1},
	{Channel: 7, FMinGHz: 20.8, FMaxGHz: 21.2, BandwidthMHz: 400, Polarization: PolarizationV, Band: 4, DeltaTK: 1},
	{Channel: 8, FMinGHz: 20.8, FMaxGHz: 21.2, BandwidthMHz: 400, Polarization: PolarizationH, Band: 4, DeltaTK: 1},
}

// SSMIBandsAt returns the SSM/I bands whose frequency range contains
// freqGHz.
func SSMIBandsAt(freqGHz float64) []Band {
	var out []Band
	for _, b := range SSMIBands {
		if freqGHz >= b.FMinGHz && freqGHz <= b.FMaxGHz {
			out = append(out, b)
		}
	}
	return out
}

// MSMRChannelsAt returns the MSMR channels whose frequency range
// contains freqGHz.
func MSMRChannelsAt(freqGHz float64) []Channel {
	var out []Channel
	for _, c := range MSMRChannels {
		if freqGHz >= c.FMinGHz && freqGHz <= c.FMaxGHz {
			out = append(out, c)
		}
	}
	return out
}
