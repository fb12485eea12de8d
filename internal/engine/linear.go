package engine

import (
	"github.com/tphakala/go-samplerate/internal/simdops"
)

// Linear interpolates linearly between neighbouring input frames.
// Very fast, poor quality: there is no anti-aliasing at all.
type Linear[F simdops.Float] struct {
	stepper[F]
}

// NewLinear creates a linear interpolator for channels channels.
func NewLinear[F simdops.Float](channels int) (*Linear[F], error) {
	s, err := newStepper[F](channels)
	if err != nil {
		return nil, err
	}
	return &Linear[F]{stepper: s}, nil
}

// Process implements Interpolator.
func (l *Linear[F]) Process(blk *Block[F], ramp Ramp) (Result, error) {
	return l.run(blk, ramp, false)
}

// Reset implements Interpolator.
func (l *Linear[F]) Reset() { l.reset() }

// Clone implements Interpolator.
func (l *Linear[F]) Clone() Interpolator[F] {
	return &Linear[F]{stepper: l.clone()}
}

// Latency implements Interpolator.
func (l *Linear[F]) Latency(float64) int { return stepLatencyFrames }

// Stats implements Interpolator.
func (l *Linear[F]) Stats() Stats {
	return Stats{FilterLength: linearTaps, MemoryUsage: l.memoryUsage()}
}

func (l *Linear[F]) sealed() {}
