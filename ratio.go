package samplerate

import "math"

// IsValidRatio reports whether ratio (output rate / input rate) can be
// converted. Ratios outside [MinRatio, MaxRatio], NaN and infinities are
// rejected; they are never clamped.
func IsValidRatio(ratio float64) bool {
	if math.IsNaN(ratio) {
		return false
	}
	return ratio >= minRatioFactor && ratio <= maxRatioFactor
}

// ratioFromRates derives the conversion ratio for a pair of sample rates.
func ratioFromRates(fromRate, toRate int) (float64, error) {
	if fromRate <= 0 || toRate <= 0 {
		return 0, errorf(ErrBadSrcRatio, "sample rates must be positive, got %d -> %d", fromRate, toRate)
	}
	ratio := float64(toRate) / float64(fromRate)
	if !IsValidRatio(ratio) {
		return 0, errorf(ErrBadSrcRatio, "%d -> %d gives ratio %g", fromRate, toRate, ratio)
	}
	return ratio, nil
}
