// Package engine implements the interpolation algorithms behind a converter.
//
// Every algorithm is a streaming state machine: it is handed a block of
// interleaved input and a block of output space and reports how much of each
// it used. Running out of either is a normal stop, never an error.
package engine

import (
	"errors"
	"math"

	"github.com/tphakala/go-samplerate/internal/simdops"
)

var (
	// ErrInvariant reports corrupted interpolator state. The interpolator must
	// not be used again until it is reset.
	ErrInvariant = errors.New("interpolator invariant violated")

	// ErrInputAfterEnd reports input supplied after end of input was signalled.
	ErrInputAfterEnd = errors.New("input supplied after end of input")

	// ErrStateTooLarge reports that the requested state would exceed the
	// allocation bound.
	ErrStateTooLarge = errors.New("interpolator state too large")
)

// Block is one conversion request over interleaved buffers.
type Block[F simdops.Float] struct {
	In  []F
	Out []F

	// InFrames and OutFrames are the frames available in In and the frames of
	// space in Out. The buffers hold at least that many frames.
	InFrames  int
	OutFrames int

	// EndOfInput marks In as the last input of the stream.
	EndOfInput bool
}

// Result reports what a Process call did.
type Result struct {
	Used      int // input frames consumed
	Generated int // output frames written

	// Ratio is the ratio in effect after the last generated frame.
	Ratio float64
}

// Ramp spreads a ratio change linearly over the output frames of one call.
type Ramp struct {
	From float64
	To   float64
	Span int // output frames of the call
}

// At returns the ratio for the output frame with index generated.
func (r Ramp) At(generated int) float64 {
	if r.Span <= 0 || math.Abs(r.To-r.From) <= minRatioDiff {
		return r.From
	}
	return r.From + float64(generated)*(r.To-r.From)/float64(r.Span)
}

// Stats describes the resources an interpolator holds.
type Stats struct {
	FilterLength int   // taps per output frame at ratio 1
	MemoryUsage  int64 // bytes of per-instance state
}

// Interpolator is implemented by Linear, ZeroOrderHold and Sinc only.
type Interpolator[F simdops.Float] interface {
	// Process converts as much of blk as possible, ramping from ramp.From to
	// ramp.To.
	Process(blk *Block[F], ramp Ramp) (Result, error)

	// Reset returns the interpolator to its freshly constructed state.
	Reset()

	// Clone returns an independent copy including all stream state.
	Clone() Interpolator[F]

	// Latency returns the input frames of look-ahead needed at ratio.
	Latency(ratio float64) int

	Stats() Stats

	sealed()
}
