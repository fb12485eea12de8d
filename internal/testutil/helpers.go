// Package testutil provides reusable test helpers for the converter tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	SampleTolerance  = 1e-6
	DBTolerance      = 0.01
)

// Sample is the constraint for the sample slices the helpers accept.
type Sample interface {
	float32 | float64
}

// Sine returns frames of an interleaved sine at freq Hz sampled at rate Hz,
// written identically to every channel.
func Sine(frames, channels int, freq, rate, amplitude float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		v := float32(amplitude * math.Sin(2*math.Pi*freq*float64(i)/rate))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// Ramp returns an interleaved ramp where channel c of frame i holds
// start + i*step + c.
func Ramp(frames, channels int, start, step float64) []float32 {
	out := make([]float32, frames*channels)
	for i := range frames {
		for c := range channels {
			out[i*channels+c] = float32(start + float64(i)*step + float64(c))
		}
	}
	return out
}

// Noise returns deterministic pseudo random samples in [-1, 1].
func Noise(n int, seed uint32) []float32 {
	out := make([]float32, n)
	state := seed | 1
	for i := range out {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		out[i] = float32(state)/float32(math.MaxUint32)*2 - 1
	}
	return out
}

// Channel extracts one channel from an interleaved buffer.
func Channel[F Sample](interleaved []F, channels, channel int) []F {
	out := make([]F, 0, len(interleaved)/channels)
	for i := channel; i < len(interleaved); i += channels {
		out = append(out, interleaved[i])
	}
	return out
}

// MaxAbsDiff returns the largest absolute difference between a[i] and b[i]
// over the common prefix of both slices.
func MaxAbsDiff[F Sample](a, b []F) float64 {
	n := min(len(a), len(b))
	var worst float64
	for i := range n {
		worst = max(worst, math.Abs(float64(a[i])-float64(b[i])))
	}
	return worst
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf[F Sample](t *testing.T, s []F, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange[F Sample](t *testing.T, s []F, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if float64(v) < minVal || float64(v) > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, float64(v), minVal, maxVal)
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}
