package samplerate

// Ratio limits
const (
	minRatioFactor = 1.0 / 256.0 // Smallest conversion ratio (1/256)
	maxRatioFactor = 256.0       // Largest conversion ratio (256x)
)

// MinRatio and MaxRatio bound every conversion ratio, inclusive.
const (
	MinRatio = minRatioFactor
	MaxRatio = maxRatioFactor
)

// One-shot conversion constants
const (
	// Output frames added whenever a one-shot conversion fills its buffer.
	convertGrowFrames = 64
)

// Channel constants
const (
	stereoChannels = 2 // Stereo channel count (used by interleave functions)
)

// Callback converter constants
const (
	// Consecutive empty producer chunks tolerated before Read gives up and
	// reports what it has.
	maxEmptyCallbackReads = 16
)
