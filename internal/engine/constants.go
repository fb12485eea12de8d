package engine

import (
	"github.com/tphakala/go-samplerate/internal/filter"
)

// Ratio constants
const (
	// Smallest ratio difference treated as a ramp; below it the previous
	// ratio is kept as is.
	minRatioDiff = 1e-20

	// Largest ratio magnitude the history must be sized for. A ratio of
	// 1/maxRatioFactor stretches the sinc filter by this factor.
	maxRatioFactor = 256.0

	// Tolerance when comparing the read position with the end of input.
	positionEpsilon = 1e-9
)

// Linear and zero-order hold constants
const (
	// Look-ahead of the two-point interpolators, in input frames.
	stepLatencyFrames = 1

	// Taps reported for the linear interpolator.
	linearTaps = 2

	// Taps reported for the zero-order hold.
	holdTaps = 1
)

// Sinc constants
const (
	// Extra history beyond the two filter wings so input can be absorbed
	// ahead of the read position.
	sincHistorySlack = 4096

	// Wings on each side of the read position.
	sincWings = 2
)

// Memory constants
const (
	bytesPerFloat64 = 8

	// Upper bound for the state of a single interpolator. Larger requests are
	// refused before anything is allocated.
	maxStateBytes = 1 << 31
)

// sincPresets maps each quality to its filter prototype. Attenuation and
// bandwidth follow the published figures of each preset: 144 dB at 96%,
// 121 dB at 90% and 97 dB at 80% of the Nyquist band.
var sincPresets = [...]filter.SincParams{
	SincBest: {
		ZeroCrossings: 128,
		Increment:     2048,
		Cutoff:        0.96,
		Attenuation:   144,
	},
	SincMedium: {
		ZeroCrossings: 40,
		Increment:     512,
		Cutoff:        0.90,
		Attenuation:   121,
	},
	SincFastest: {
		ZeroCrossings: 16,
		Increment:     128,
		Cutoff:        0.80,
		Attenuation:   97,
	},
}
