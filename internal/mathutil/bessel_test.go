package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-samplerate/internal/testutil"
)

// TestBesselI0 tests BesselI0 against known values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"Zero", 0.0, 1.0},
		{"Small positive", 0.5, 1.0634833707413236},
		{"One", 1.0, 1.2660658777520082},
		{"Two", 2.0, 2.2795853023360673},
		{"Three", 3.0, 4.880792585865024},
		{"Five", 5.0, 27.239871823604442},
		{"Ten", 10.0, 2815.716628466254},
		{"Twenty", 20.0, 4.355828255955353e7},
		{"Small negative", -0.5, 1.0634833707413236},
		{"Negative one", -1.0, 1.2660658777520082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := BesselI0(tt.x)
			testutil.AssertRelativeError(t, tt.expected, result, 1e-12)
		})
	}
}

// TestBesselI0_Monotonic tests I₀(x) is monotonically increasing for x > 0.
func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 20.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev,
			"BesselI0 not monotonically increasing at x=%v: %v <= %v", x, curr, prev)
		prev = curr
	}
}

// TestKaiserBeta tests Kaiser beta calculation.
func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expectedMin float64
		expectedMax float64
	}{
		{"20dB", 20.0, 0.0, 0.1},
		{"50dB", 50.0, 4.5, 4.6},
		{"97dB", 97.0, 9.7, 9.8},
		{"121dB", 121.0, 12.3, 12.4},
		{"144dB", 144.0, 14.9, 15.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beta := KaiserBeta(tt.attenuation)
			testutil.AssertInRange(t, beta, tt.expectedMin, tt.expectedMax)
		})
	}
}

// TestKaiserBeta_Monotonic tests KaiserBeta is monotonically increasing.
func TestKaiserBeta_Monotonic(t *testing.T) {
	prevBeta := KaiserBeta(20.0)
	for att := 25.0; att <= 150.0; att += 5.0 {
		beta := KaiserBeta(att)
		assert.GreaterOrEqual(t, beta, prevBeta,
			"KaiserBeta not monotonic at att=%v: %v < %v", att, beta, prevBeta)
		prevBeta = beta
	}
}

func TestKaiserWindow(t *testing.T) {
	beta := KaiserBeta(121)

	assert.InDelta(t, 1.0, KaiserWindow(0, beta), 1e-15)
	assert.Zero(t, KaiserWindow(1.5, beta))
	assert.Zero(t, KaiserWindow(-1.01, beta))
	assert.InDelta(t, 1/BesselI0(beta), KaiserWindow(1, beta), 1e-18)

	for x := 0.05; x <= 1; x += 0.05 {
		assert.InDelta(t, KaiserWindow(x, beta), KaiserWindow(-x, beta), 1e-15)
		assert.Less(t, KaiserWindow(x, beta), KaiserWindow(x-0.05, beta))
	}
}

func TestTransitionWidth(t *testing.T) {
	// The sinc presets rely on these widths fitting inside the band left above
	// their cutoff.
	assert.InDelta(t, 0.0370, TransitionWidth(144, 256), 1e-3)
	assert.InDelta(t, 0.0984, TransitionWidth(121, 80), 1e-3)
	assert.InDelta(t, 0.1938, TransitionWidth(97, 32), 1e-3)

	assert.True(t, math.IsInf(TransitionWidth(100, 0), 1))
	assert.Zero(t, TransitionWidth(5, 64))
}

func BenchmarkBesselI0(b *testing.B) {
	x := 14.9
	for b.Loop() {
		_ = BesselI0(x)
	}
}
