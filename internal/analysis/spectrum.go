// Package analysis measures converter output in the frequency domain.
//
// Signals are windowed with a Kaiser window whose side lobes sit far below
// the stop band of the best converter, so leakage from a test tone never
// masks the aliases being measured.
package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-samplerate/internal/filter"
)

const (
	// Kaiser β of the analysis window. Side lobes fall below -180 dB.
	windowBeta = 20.0

	// Half width of a tone's main lobe in bins, with margin.
	lobeBins = 10

	// Smallest signal the spectrum accepts, in samples.
	minSamples = 4 * lobeBins

	// Floor for dB conversion.
	minPower = 1e-30
)

// ErrTooShort is returned for signals too short to resolve a tone.
var ErrTooShort = errors.New("signal too short for analysis")

// Spectrum is the one-sided spectrum of a windowed real signal.
type Spectrum struct {
	rate  float64
	n     int
	power []float64 // |X_k|^2 for k in [0, n/2]

	// Normalisers mapping bin values to sine amplitudes.
	windowSum   float64 // Σw
	windowPower float64 // Σw²
}

// Analyze windows signal, transforms it and returns its spectrum. rate is the
// sample rate in Hz.
func Analyze(signal []float64, rate float64) (*Spectrum, error) {
	n := len(signal)
	if n < minSamples {
		return nil, ErrTooShort
	}

	window := filter.KaiserWindow(n, windowBeta)
	windowed := make([]float64, n)
	floats.MulTo(windowed, window, signal)

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, windowed)

	power := make([]float64, len(coeffs))
	for k, c := range coeffs {
		re, im := real(c), imag(c)
		power[k] = re*re + im*im
	}

	return &Spectrum{
		rate:        rate,
		n:           n,
		power:       power,
		windowSum:   floats.Sum(window),
		windowPower: floats.Dot(window, window),
	}, nil
}

// AnalyzeFloat32 is Analyze for float32 samples.
func AnalyzeFloat32(signal []float32, rate float64) (*Spectrum, error) {
	wide := make([]float64, len(signal))
	for i, s := range signal {
		wide[i] = float64(s)
	}
	return Analyze(wide, rate)
}

// Bins returns the number of bins, from DC to Nyquist inclusive.
func (s *Spectrum) Bins() int { return len(s.power) }

// BinWidth returns the frequency spacing of bins in Hz.
func (s *Spectrum) BinWidth() float64 { return s.rate / float64(s.n) }

// Frequency returns the centre frequency of bin k in Hz.
func (s *Spectrum) Frequency(k int) float64 { return float64(k) * s.BinWidth() }

// Bin returns the bin nearest to freq, clamped to the spectrum.
func (s *Spectrum) Bin(freq float64) int {
	k := int(math.Round(freq / s.BinWidth()))
	return min(max(k, 0), len(s.power)-1)
}

// lobe returns the bin range covering the main lobe of a tone at freq.
func (s *Spectrum) lobe(freq float64) (lo, hi int) {
	k := s.Bin(freq)
	return max(k-lobeBins, 0), min(k+lobeBins, len(s.power)-1)
}

// ToneAmplitude estimates the amplitude of a sine at freq from the energy in
// its main lobe. Unlike a peak reading it does not depend on where the tone
// falls between bins.
func (s *Spectrum) ToneAmplitude(freq float64) float64 {
	lo, hi := s.lobe(freq)
	energy := floats.Sum(s.power[lo : hi+1])
	return 2 * math.Sqrt(energy/(float64(s.n)*s.windowPower))
}

// ToneDB is ToneAmplitude in dB relative to full scale.
func (s *Spectrum) ToneDB(freq float64) float64 {
	return 20 * math.Log10(max(s.ToneAmplitude(freq), math.Sqrt(minPower)))
}

// PeakDB returns the strongest bin between lo and hi Hz and its level in dB
// relative to a full-scale sine.
func (s *Spectrum) PeakDB(lo, hi float64) (freq, db float64) {
	a, b := s.Bin(lo), s.Bin(hi)
	if b < a {
		a, b = b, a
	}
	k := a + floats.MaxIdx(s.power[a:b+1])
	amp := 2 * math.Sqrt(s.power[k]) / s.windowSum
	return s.Frequency(k), 20 * math.Log10(max(amp, math.Sqrt(minPower)))
}

// SNR returns the ratio in dB between the energy of a tone at freq and the
// energy of everything else except DC.
func (s *Spectrum) SNR(freq float64) float64 {
	lo, hi := s.lobe(freq)
	signal := floats.Sum(s.power[lo : hi+1])

	var noise float64
	if lo > lobeBins+1 {
		noise += floats.Sum(s.power[lobeBins+1 : lo])
	}
	if hi+1 < len(s.power) {
		noise += floats.Sum(s.power[hi+1:])
	}
	return 10 * math.Log10(max(signal, minPower)/max(noise, minPower))
}
