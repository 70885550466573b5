package em

import "math"

// Free-space and radiation constants, SI units unless the EV suffix
// says otherwise.
const (
	SpeedOfLight = 299792458.0 // m/s

	Mu0        = 1.25663706212e-6 // N/A^2, vacuum permeability
	Epsilon0SI = 8.8541878128e-12 // F/m, vacuum permittivity
	Epsilon0EV = 55.26349406      // e^2 GeV^-1 fm^-1

	Boltzmann       = 1.380649e-23 // J/K
	StefanBoltzmann = 5.670367e-8  // W m^-2 K^-4

	Planck   = 6.62607015e-34  // J s
	PlanckEV = 4.135667696e-15 // eV s

	// EarthIrradiance is the Earth blackbody irradiance;
	// ExoatmosphericRadiance the mean exoatmospheric value.
	EarthIrradiance        = 1.37e3 // W/m^2
	ExoatmosphericRadiance = 2.02e7
)

// Derived free-space constants.
var (
	Z0        = math.Sqrt(Mu0 / Epsilon0SI)      // ohm, impedance of free space
	CoulombSI = 1 / (4 * math.Pi * Epsilon0SI)   // N m^2 C^-2
	CoulombEV = 1 / (4 * math.Pi * Epsilon0EV)
)
