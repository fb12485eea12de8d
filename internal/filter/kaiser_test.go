package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-samplerate/internal/mathutil"
	"github.com/tphakala/go-samplerate/internal/testutil"
)

const (
	windowTolerance = 1e-12

	testWindowLength11 = 11
	testWindowLength21 = 21
	testWindowLength51 = 51
	testBeta5          = 5.0
	testBeta8          = 8.653728
	testBeta10         = 10.0
)

// TestKaiserWindow_Symmetry verifies that Kaiser window is symmetric.
func TestKaiserWindow_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_11_beta_5", testWindowLength11, testBeta5},
		{"length_21_beta_8", testWindowLength21, testBeta8},
		{"length_51_beta_10", testWindowLength51, testBeta10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, tt.beta)
			require.Len(t, window, tt.length)
			testutil.AssertSymmetric(t, window, windowTolerance)
			assert.InDelta(t, 1.0, window[tt.length/2], windowTolerance)
			assert.InDelta(t, 1/mathutil.BesselI0(tt.beta), window[0], windowTolerance)
		})
	}
}

func TestKaiserWindow_EdgeCases(t *testing.T) {
	assert.Empty(t, KaiserWindow(0, testBeta5))
	assert.Empty(t, KaiserWindow(-3, testBeta5))
	assert.Equal(t, []float64{1}, KaiserWindow(1, testBeta5))

	// β = 0 degenerates to a rectangular window.
	for _, v := range KaiserWindow(testWindowLength11, 0) {
		assert.InDelta(t, 1.0, v, windowTolerance)
	}
}

func TestComputeFrequencyResponse(t *testing.T) {
	// Two-tap average: |H(f)| = |cos(πf)|.
	resp := ComputeFrequencyResponse([]float64{0.5, 0.5}, 4)
	require.Len(t, resp.Frequencies, 4)
	assert.Equal(t, []float64{0, 0.125, 0.25, 0.375}, resp.Frequencies)
	assert.InDelta(t, 1.0, resp.Magnitude[0], 1e-12)
	assert.InDelta(t, 0.7071067811865476, resp.Magnitude[2], 1e-12)

	resp = ComputeFrequencyResponse([]float64{1}, 0)
	assert.Len(t, resp.Magnitude, defaultResponsePoints)
}

func TestMagnitudeDB(t *testing.T) {
	assert.InDelta(t, 0.0, MagnitudeDB(1), testutil.DBTolerance)
	assert.InDelta(t, -20.0, MagnitudeDB(0.1), testutil.DBTolerance)
	assert.InDelta(t, -6.0206, MagnitudeDB(0.5), testutil.DBTolerance)
	assert.InDelta(t, -400.0, MagnitudeDB(0), testutil.DBTolerance)
}

func BenchmarkKaiserWindow(b *testing.B) {
	for b.Loop() {
		_ = KaiserWindow(testWindowLength51, testBeta10)
	}
}
