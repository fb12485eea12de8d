package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RoundsCapacity(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, minCapacity},
		{minCapacity, minCapacity},
		{17, 32},
		{1000, 1024},
		{4096, 4096},
	}
	for _, tt := range tests {
		h := New[float64](2, tt.requested)
		assert.Equal(t, tt.want, h.Capacity(), "requested %d", tt.requested)
		assert.Equal(t, SizeFor(2, tt.requested), h.MemoryUsage())
	}

	assert.Equal(t, int64(2*2*16*4), New[float32](2, 16).MemoryUsage())
}

func TestHistory_WindowBeforeStartIsSilent(t *testing.T) {
	h := New[float64](1, 16)
	h.Push([]float64{1})
	h.Push([]float64{2})

	assert.Equal(t, []float64{0, 0, 0, 1, 2}, h.Window(0, -3, 5))
	assert.Equal(t, int64(2), h.Written())
}

func TestHistory_WindowIsContiguousAcrossWrap(t *testing.T) {
	h := New[float64](2, 16)
	for i := range 40 {
		h.Push([]float64{float64(i), float64(-i)})
	}

	// Frames 24..39 are retained; a window straddling the physical end of the
	// ring must still come back in order.
	left := h.Window(0, 28, 10)
	right := h.Window(1, 28, 10)
	for i := range 10 {
		assert.Equal(t, float64(28+i), left[i])
		assert.Equal(t, float64(-(28 + i)), right[i])
	}

	full := h.Window(0, 24, 16)
	require.Len(t, full, 16)
	assert.Equal(t, 24.0, full[0])
	assert.Equal(t, 39.0, full[15])
}

func TestHistory_PushZeroAndClear(t *testing.T) {
	h := New[float32](1, 16)
	h.Push([]float32{5})
	h.PushZero()
	h.Push([]float32{7})
	assert.Equal(t, []float32{5, 0, 7}, h.Window(0, 0, 3))

	h.Clear()
	assert.Zero(t, h.Written())
	assert.Equal(t, []float32{0, 0, 0}, h.Window(0, -1, 3))
}

func TestHistory_Clone(t *testing.T) {
	h := New[float64](1, 16)
	h.Push([]float64{1})
	h.Push([]float64{2})

	c := h.Clone()
	h.Push([]float64{3})
	c.Push([]float64{9})

	assert.Equal(t, []float64{1, 2, 3}, h.Window(0, 0, 3))
	assert.Equal(t, []float64{1, 2, 9}, c.Window(0, 0, 3))
}

func BenchmarkHistory_Push(b *testing.B) {
	h := New[float64](2, 4096)
	frame := []float64{0.25, -0.25}
	for b.Loop() {
		h.Push(frame)
	}
}
