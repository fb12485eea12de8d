package engine

import (
	"github.com/tphakala/go-samplerate/internal/simdops"
)

// ZeroOrderHold repeats the most recent input frame until the read position
// moves past the next one.
type ZeroOrderHold[F simdops.Float] struct {
	stepper[F]
}

// NewZeroOrderHold creates a zero-order hold for channels channels.
func NewZeroOrderHold[F simdops.Float](channels int) (*ZeroOrderHold[F], error) {
	s, err := newStepper[F](channels)
	if err != nil {
		return nil, err
	}
	return &ZeroOrderHold[F]{stepper: s}, nil
}

// Process implements Interpolator.
func (z *ZeroOrderHold[F]) Process(blk *Block[F], ramp Ramp) (Result, error) {
	return z.run(blk, ramp, true)
}

// Reset implements Interpolator.
func (z *ZeroOrderHold[F]) Reset() { z.reset() }

// Clone implements Interpolator.
func (z *ZeroOrderHold[F]) Clone() Interpolator[F] {
	return &ZeroOrderHold[F]{stepper: z.clone()}
}

// Latency implements Interpolator.
func (z *ZeroOrderHold[F]) Latency(float64) int { return stepLatencyFrames }

// Stats implements Interpolator.
func (z *ZeroOrderHold[F]) Stats() Stats {
	return Stats{FilterLength: holdTaps, MemoryUsage: z.memoryUsage()}
}

func (z *ZeroOrderHold[F]) sealed() {}
