// Package filter designs and analyses the windowed-sinc prototypes behind the
// band-limited interpolators.
package filter

import (
	"math"

	"github.com/tphakala/go-samplerate/internal/mathutil"
)

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Frequency response defaults
	defaultResponsePoints = 512

	// Magnitude floor for dB conversion
	minMagnitude = 1e-20
	dbMultiplier = 20.0
)

// KaiserWindow generates a discrete Kaiser window of the specified length and β parameter.
//
// The window is symmetric, w[i] = w[length-1-i], and peaks at 1 in the middle.
// A single-sample window is {1}.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	for n := range length {
		window[n] = mathutil.KaiserWindow((float64(n)-alpha)/alpha, beta)
	}
	return window
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64
}

// ComputeFrequencyResponse evaluates the DTFT magnitude of a FIR filter at
// numPoints frequencies evenly spaced over [0, 0.5).
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(windowNormalizationFactor*numPoints)
		response.Frequencies[k] = freq
		response.Magnitude[k] = MagnitudeAt(coeffs, freq)
	}

	return response
}

// MagnitudeAt returns |H(f)| for a FIR filter at normalized frequency f.
func MagnitudeAt(coeffs []float64, freq float64) float64 {
	var realPart, imagPart float64
	omega := windowNormalizationFactor * math.Pi * freq
	for n, h := range coeffs {
		angle := omega * float64(n)
		realPart += h * math.Cos(angle)
		imagPart -= h * math.Sin(angle)
	}
	return math.Hypot(realPart, imagPart)
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
