package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// drive feeds in through p with input and output chunk sizes taken in turn
// from inChunks and outChunks, then drains it with end of input set. It
// returns the output and the total input frames consumed.
func drive(t *testing.T, p Interpolator[float32], in []float32, channels int, ratio float64, inChunks, outChunks []int) ([]float32, int) {
	t.Helper()

	out, read := feed(t, p, in, channels, ratio, inChunks, outChunks)

	for call := 0; ; call++ {
		outFrames := outChunks[call%len(outChunks)]
		buf := make([]float32, outFrames*channels)
		blk := &Block[float32]{Out: buf, OutFrames: outFrames, EndOfInput: true}
		res, err := p.Process(blk, Ramp{From: ratio, To: ratio, Span: outFrames})
		require.NoError(t, err)
		if res.Generated == 0 {
			break
		}
		out = append(out, buf[:res.Generated*channels]...)
	}
	return out, read
}

// feed is drive without the drain: the stream stays open.
func feed(t *testing.T, p Interpolator[float32], in []float32, channels int, ratio float64, inChunks, outChunks []int) ([]float32, int) {
	t.Helper()

	var out []float32
	frames := len(in) / channels
	read := 0

	for call := 0; read < frames; call++ {
		n := min(inChunks[call%len(inChunks)], frames-read)
		outFrames := outChunks[call%len(outChunks)]
		buf := make([]float32, outFrames*channels)
		blk := &Block[float32]{
			In:        in[read*channels : (read+n)*channels],
			Out:       buf,
			InFrames:  n,
			OutFrames: outFrames,
		}
		res, err := p.Process(blk, Ramp{From: ratio, To: ratio, Span: outFrames})
		require.NoError(t, err)
		require.True(t, res.Used > 0 || res.Generated > 0, "no progress at frame %d", read)
		out = append(out, buf[:res.Generated*channels]...)
		read += res.Used
	}
	return out, read
}

// whole passes everything in one chunk.
func whole(n int) []int { return []int{n} }

// irregular cycles through chunk sizes that land boundaries on many phases.
var irregular = []int{1, 7, 64, 3, 129, 2, 511, 13}
