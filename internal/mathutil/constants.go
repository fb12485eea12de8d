package mathutil

// Bessel series constants
const (
	besselSeriesQuarter = 4.0   // (x/2)² = x²/4
	besselSeriesEpsilon = 1e-17 // relative size of the last term kept
	besselMaxTerms      = 500   // hard stop for pathological arguments
)

// Kaiser window formula constants
// From Kaiser & Schafer's empirical formulas
const (
	// Attenuation thresholds for β calculation
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	// Kaiser β formula coefficients
	kaiserBetaHighCoeff1 = 0.1102 // Coefficient for high attenuation
	kaiserBetaHighOffset = 8.7    // Offset for high attenuation

	kaiserBetaMediumCoeff1 = 0.5842  // Primary coefficient for medium attenuation
	kaiserBetaMediumPower  = 0.4     // Power for medium attenuation formula
	kaiserBetaMediumCoeff2 = 0.07886 // Secondary coefficient for medium attenuation
)

// Kaiser's filter length formula: N ≈ (att - 7.95) / (14.36 · Δf)
const (
	kaiserLengthOffset     = 7.95
	kaiserLengthMultiplier = 14.36
)
