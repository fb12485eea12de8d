package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-samplerate/internal/testutil"
)

// =============================================================================
// Linear and zero-order hold
// =============================================================================

func TestLinear_KnownValues(t *testing.T) {
	l, err := NewLinear[float32](1)
	require.NoError(t, err)

	out := make([]float32, 16)
	res, err := l.Process(&Block[float32]{
		In:        []float32{0, 1, 2, 3},
		Out:       out,
		InFrames:  4,
		OutFrames: 16,
	}, Ramp{From: 2, To: 2, Span: 16})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Used)
	assert.Equal(t, 8, res.Generated)
	assert.Equal(t, 2.0, res.Ratio)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 1, 1.5, 2, 2.5}, out[:8])

	// The next call continues from the carried frame.
	res, err = l.Process(&Block[float32]{
		In:        []float32{4, 5},
		Out:       out,
		InFrames:  2,
		OutFrames: 16,
	}, Ramp{From: 2, To: 2, Span: 16})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Used)
	assert.Equal(t, []float32{3, 3.5, 4, 4.5}, out[:res.Generated])
}

func TestZeroOrderHold_KnownValues(t *testing.T) {
	z, err := NewZeroOrderHold[float32](1)
	require.NoError(t, err)

	out := make([]float32, 16)
	res, err := z.Process(&Block[float32]{
		In:        []float32{1, 2, 3},
		Out:       out,
		InFrames:  3,
		OutFrames: 16,
	}, Ramp{From: 2, To: 2, Span: 16})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Used)
	assert.Equal(t, []float32{1, 1, 1, 1, 2, 2}, out[:res.Generated])
}

func TestStepper_ZeroInputIsNoop(t *testing.T) {
	l, err := NewLinear[float32](2)
	require.NoError(t, err)

	res, err := l.Process(&Block[float32]{Out: make([]float32, 8), OutFrames: 4}, Ramp{From: 1.5, To: 1.5, Span: 4})
	require.NoError(t, err)
	assert.Zero(t, res.Used)
	assert.Zero(t, res.Generated)
	assert.Equal(t, 1.5, res.Ratio)
}

func TestStepper_OutputFullLeavesInput(t *testing.T) {
	l, err := NewLinear[float32](1)
	require.NoError(t, err)

	out := make([]float32, 3)
	res, err := l.Process(&Block[float32]{
		In:        testutil.Ramp(100, 1, 0, 1),
		Out:       out,
		InFrames:  100,
		OutFrames: 3,
	}, Ramp{From: 0.5, To: 0.5, Span: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Generated)
	// Outputs at positions 0, 2 and 4; the position then sits at 6, so the
	// frames up to there are consumed.
	assert.Equal(t, 6, res.Used)
	assert.Equal(t, []float32{0, 1, 3}, out)
}

func TestStepper_ChunkingIsBitIdentical(t *testing.T) {
	const channels = 2
	in := testutil.Noise(3000*channels, 7)

	tests := []struct {
		name  string
		ratio float64
		newFn func() Interpolator[float32]
	}{
		{"linear up", 1.37, func() Interpolator[float32] { l, _ := NewLinear[float32](channels); return l }},
		{"linear down", 0.61, func() Interpolator[float32] { l, _ := NewLinear[float32](channels); return l }},
		{"linear extreme down", 1.0 / 256, func() Interpolator[float32] { l, _ := NewLinear[float32](channels); return l }},
		{"hold up", 3.3, func() Interpolator[float32] { z, _ := NewZeroOrderHold[float32](channels); return z }},
		{"hold down", 0.25, func() Interpolator[float32] { z, _ := NewZeroOrderHold[float32](channels); return z }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, refRead := drive(t, tt.newFn(), in, channels, tt.ratio, whole(3000), whole(20000))
			got, gotRead := drive(t, tt.newFn(), in, channels, tt.ratio, irregular, []int{5, 1, 300, 17})

			assert.Equal(t, 3000, refRead)
			assert.Equal(t, 3000, gotRead)
			require.Len(t, got, len(ref))
			assert.Equal(t, ref, got)

			frames := len(ref) / channels
			expected := int(math.Ceil(3000 * tt.ratio))
			assert.InDelta(t, expected, frames, 1, "output frames")
		})
	}
}

func TestLinear_RampSpreadsRatioChange(t *testing.T) {
	l, err := NewLinear[float32](1)
	require.NoError(t, err)

	const span = 200
	out := make([]float32, span)
	res, err := l.Process(&Block[float32]{
		In:        testutil.Ramp(1000, 1, 0, 0.01),
		Out:       out,
		InFrames:  1000,
		OutFrames: span,
	}, Ramp{From: 1, To: 2, Span: span})
	require.NoError(t, err)

	require.Equal(t, span, res.Generated)
	assert.InDelta(t, 1.995, res.Ratio, 1e-12)
	assert.Less(t, res.Used, 1000)

	// On a linear ramp every step of the output is the position advance,
	// 1/ratio, scaled by the slope.
	for k := 2; k < span; k++ {
		want := 0.01 / (1 + float64(k-1)/span)
		assert.InDelta(t, want, float64(out[k]-out[k-1]), 1e-5, "step %d", k)
	}
}

func TestStepper_DCIsPreserved(t *testing.T) {
	in := make([]float32, 500)
	for i := range in {
		in[i] = 0.25
	}
	for _, ratio := range []float64{1.0 / 256, 0.3, 1, 2.7, 256} {
		l, _ := NewLinear[float32](1)
		out, _ := drive(t, l, in, 1, ratio, irregular, []int{64})
		testutil.AssertAllInRange(t, out, 0.25, 0.25)

		z, _ := NewZeroOrderHold[float32](1)
		out, _ = drive(t, z, in, 1, ratio, irregular, []int{64})
		testutil.AssertAllInRange(t, out, 0.25, 0.25)
	}
}

func TestStepper_ResetAndClone(t *testing.T) {
	in := testutil.Noise(400, 3)

	l, err := NewLinear[float32](1)
	require.NoError(t, err)
	first, _ := feed(t, l, in[:200], 1, 1.7, whole(200), whole(1000))

	c := l.Clone()
	a, _ := drive(t, l, in[200:], 1, 1.7, irregular, whole(1000))
	b, _ := drive(t, c, in[200:], 1, 1.7, whole(200), []int{9})
	assert.Equal(t, a, b)

	l.Reset()
	again, _ := feed(t, l, in[:200], 1, 1.7, whole(200), whole(1000))
	assert.Equal(t, first, again)
}

func TestStepper_InputAfterEnd(t *testing.T) {
	for _, hold := range []bool{false, true} {
		var p Interpolator[float32]
		if hold {
			p, _ = NewZeroOrderHold[float32](1)
		} else {
			p, _ = NewLinear[float32](1)
		}

		out := make([]float32, 64)
		res, err := p.Process(&Block[float32]{
			In: []float32{1, 2, 3}, InFrames: 3, Out: out, OutFrames: 64, EndOfInput: true,
		}, Ramp{From: 1, To: 1, Span: 64})
		require.NoError(t, err)
		require.Equal(t, 3, res.Used)

		_, err = p.Process(&Block[float32]{In: []float32{4}, InFrames: 1, Out: out, OutFrames: 64}, Ramp{From: 1, To: 1, Span: 64})
		require.ErrorIs(t, err, ErrInputAfterEnd, "hold=%v", hold)

		// Draining with no input stays legal.
		res, err = p.Process(&Block[float32]{Out: out, OutFrames: 64, EndOfInput: true}, Ramp{From: 1, To: 1, Span: 64})
		require.NoError(t, err)
		assert.Zero(t, res.Generated)

		p.Reset()
		res, err = p.Process(&Block[float32]{In: []float32{4}, InFrames: 1, Out: out, OutFrames: 64}, Ramp{From: 1, To: 1, Span: 64})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Used)
	}
}

func TestStepper_StatsAndLatency(t *testing.T) {
	l, _ := NewLinear[float32](3)
	z, _ := NewZeroOrderHold[float32](3)

	assert.Equal(t, Stats{FilterLength: 2, MemoryUsage: 24}, l.Stats())
	assert.Equal(t, Stats{FilterLength: 1, MemoryUsage: 24}, z.Stats())
	assert.Equal(t, 1, l.Latency(2))
	assert.Equal(t, 1, z.Latency(0.5))
}

func TestStepper_StateTooLarge(t *testing.T) {
	_, err := NewLinear[float32](1 << 29)
	require.ErrorIs(t, err, ErrStateTooLarge)
}

func BenchmarkLinear_Stereo(b *testing.B) {
	in := testutil.Noise(4096*2, 1)
	out := make([]float32, 8192*2)
	l, _ := NewLinear[float32](2)
	for b.Loop() {
		_, _ = l.Process(&Block[float32]{In: in, Out: out, InFrames: 4096, OutFrames: 8192}, Ramp{From: 48000.0 / 44100, To: 48000.0 / 44100, Span: 8192})
	}
}
