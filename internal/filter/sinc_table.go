package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-samplerate/internal/mathutil"
	"github.com/tphakala/go-samplerate/internal/simdops"
)

const (
	// Guard entries past the last designed point, kept at zero so that
	// interpolation at the very edge never reads out of range.
	sincTableGuard = 2

	// Allowed overshoot of the stop band edge past Nyquist.
	nyquistSlack = 1e-3

	sincZeroThreshold = 1e-12
	nyquist           = 0.5
)

// SincParams describes a Kaiser-windowed sinc prototype.
type SincParams struct {
	// ZeroCrossings is the number of sinc zero crossings on each side of the
	// centre. Longer filters give steeper transitions.
	ZeroCrossings int

	// Increment is the number of table points per zero crossing.
	Increment int

	// Cutoff is the -6 dB point as a fraction of the input Nyquist frequency.
	Cutoff float64

	// Attenuation is the stop band attenuation, in dB, used to pick the
	// Kaiser β.
	Attenuation float64
}

// Validate checks the parameters and that the transition band of the
// resulting filter ends before Nyquist.
func (p *SincParams) Validate() error {
	if p.ZeroCrossings < 1 {
		return fmt.Errorf("sinc filter needs at least one zero crossing, got %d", p.ZeroCrossings)
	}
	if p.Increment < 1 {
		return fmt.Errorf("sinc table increment must be positive, got %d", p.Increment)
	}
	if p.Cutoff <= 0 || p.Cutoff > 1 {
		return fmt.Errorf("invalid cutoff: %f (must be in (0, 1])", p.Cutoff)
	}
	if p.Attenuation <= 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}
	if edge := p.StopbandEdge(); edge > nyquist+nyquistSlack {
		return fmt.Errorf("stop band edge %.4f lies past Nyquist: lower the cutoff or add zero crossings", edge)
	}
	return nil
}

// TransitionWidth is the width of the transition band in cycles per input sample.
func (p *SincParams) TransitionWidth() float64 {
	return mathutil.TransitionWidth(p.Attenuation, 2*p.ZeroCrossings)
}

// PassbandEdge is the highest frequency, in cycles per input sample, passed
// at full gain.
func (p *SincParams) PassbandEdge() float64 {
	return (p.Cutoff - p.TransitionWidth()) / windowNormalizationFactor
}

// StopbandEdge is the lowest frequency, in cycles per input sample, attenuated
// by the full amount.
func (p *SincParams) StopbandEdge() float64 {
	return (p.Cutoff + p.TransitionWidth()) / windowNormalizationFactor
}

// SincTable is one wing of a symmetric windowed-sinc filter sampled at
// Increment points per input sample. It is immutable once built and safe to
// share between goroutines.
type SincTable struct {
	params SincParams
	coeffs []float64
	length int // designed points, guard excluded
}

// NewSincTable designs the table for p. The wing is normalised so that the
// filter sampled at whole input samples has unity DC gain.
func NewSincTable(p SincParams) (*SincTable, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	length := p.ZeroCrossings*p.Increment + 1
	coeffs := make([]float64, length+sincTableGuard)
	beta := mathutil.KaiserBeta(p.Attenuation)
	span := float64(p.ZeroCrossings)
	step := 1 / float64(p.Increment)

	for i := range length {
		x := float64(i) * step
		coeffs[i] = p.Cutoff * sinc(p.Cutoff*x) * mathutil.KaiserWindow(x/span, beta)
	}

	// DC gain at integer spacing: centre tap plus both wings.
	ops := simdops.For[float64]()
	wing := make([]float64, 0, p.ZeroCrossings)
	for i := p.Increment; i < length; i += p.Increment {
		wing = append(wing, coeffs[i])
	}
	gain := coeffs[0] + windowNormalizationFactor*ops.Sum(wing)
	ops.Scale(coeffs[:length], coeffs[:length], 1/gain)

	return &SincTable{params: p, coeffs: coeffs, length: length}, nil
}

// At returns the wing value at pos, measured in table points from the centre
// (pos = |offset in input samples| * Increment). Values between points are
// linearly interpolated; anything past the end of the wing is zero.
func (t *SincTable) At(pos float64) float64 {
	idx := int(pos)
	if idx >= t.length {
		return 0
	}
	frac := pos - float64(idx)
	c0 := t.coeffs[idx]
	return c0 + frac*(t.coeffs[idx+1]-c0)
}

// Impulse samples the full filter at whole input samples around a centre
// offset by frac (0 <= frac < 1), with the cutoff scaled by scale (0 < scale <= 1)
// the way the interpolator applies it when downsampling. Taps are returned
// oldest first.
func (t *SincTable) Impulse(frac, scale float64) []float64 {
	half := t.HalfWidth(scale)
	taps := make([]float64, 2*half)
	step := scale * float64(t.params.Increment)
	for i := range taps {
		d := math.Abs(float64(i-half+1) - frac)
		taps[i] = scale * t.At(d*step)
	}
	return taps
}

// HalfWidth returns the number of input samples on each side of the centre
// that the filter touches once its cutoff is scaled by scale.
func (t *SincTable) HalfWidth(scale float64) int {
	return int(math.Ceil(float64(t.params.ZeroCrossings)/scale)) + 1
}

// Params returns the design parameters.
func (t *SincTable) Params() SincParams { return t.params }

// Increment returns the number of table points per input sample.
func (t *SincTable) Increment() int { return t.params.Increment }

// Len returns the number of designed points in the wing.
func (t *SincTable) Len() int { return t.length }

// MemoryUsage returns the approximate size of the table in bytes.
func (t *SincTable) MemoryUsage() int64 {
	return int64(len(t.coeffs)) * bytesPerFloat64
}

const bytesPerFloat64 = 8

// sinc is the normalized sinc function sin(πx)/(πx).
func sinc(x float64) float64 {
	if math.Abs(x) < sincZeroThreshold {
		return 1
	}
	px := math.Pi * x
	return math.Sin(px) / px
}
