package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-samplerate/internal/simdops"
)

// stepper is the shared state machine of the two-point interpolators.
//
// The read position pos is measured in input frames from the carried frame
// prev, the last frame consumed by an earlier call (or, before any input was
// consumed, a copy of the first frame ever seen). The next frame is always
// the first unconsumed input frame.
type stepper[F simdops.Float] struct {
	channels int
	last     []float64
	primed   bool
	pos      float64
	ended    bool // end of input reached and every frame consumed
}

func newStepper[F simdops.Float](channels int) (stepper[F], error) {
	if int64(channels)*bytesPerFloat64 > maxStateBytes {
		return stepper[F]{}, fmt.Errorf("%w: %d channels", ErrStateTooLarge, channels)
	}
	return stepper[F]{channels: channels, last: make([]float64, channels)}, nil
}

// run converts blk. With hold set the output is the carried frame, otherwise
// it is interpolated towards the next frame.
func (s *stepper[F]) run(blk *Block[F], ramp Ramp, hold bool) (Result, error) {
	res := Result{Ratio: ramp.From}
	if blk.InFrames > 0 && s.ended {
		return res, ErrInputAfterEnd
	}
	if blk.InFrames <= 0 {
		s.ended = s.ended || blk.EndOfInput
		return res, nil
	}

	ch := s.channels
	in, out := blk.In, blk.Out
	if len(in) < blk.InFrames*ch || len(out) < blk.OutFrames*ch {
		return res, fmt.Errorf("%w: buffers shorter than declared frames", ErrInvariant)
	}

	if !s.primed {
		for c := range ch {
			s.last[c] = float64(in[c])
		}
		s.primed = true
	}

	used, gen := 0, 0
	pos := s.pos
	for gen < blk.OutFrames {
		if pos >= 1 {
			whole := math.Floor(pos)
			if used+int(whole) > blk.InFrames {
				break
			}
			used += int(whole)
			pos -= whole
		}
		if used >= blk.InFrames {
			break
		}

		ratio := ramp.At(gen)
		frame := out[gen*ch : (gen+1)*ch]
		for c := range ch {
			prev := s.last[c]
			if used > 0 {
				prev = float64(in[(used-1)*ch+c])
			}
			if hold {
				frame[c] = F(prev)
				continue
			}
			next := float64(in[used*ch+c])
			frame[c] = F(prev + pos*(next-prev))
		}

		res.Ratio = ratio
		gen++
		pos += 1 / ratio
	}

	// Consume the frames the position has already moved past.
	if pos >= 1 {
		whole := min(math.Floor(pos), float64(blk.InFrames-used))
		used += int(whole)
		pos -= whole
	}

	if used > 0 {
		for c := range ch {
			s.last[c] = float64(in[(used-1)*ch+c])
		}
	}
	s.pos = pos
	if blk.EndOfInput && used == blk.InFrames {
		s.ended = true
	}

	res.Used = used
	res.Generated = gen
	return res, nil
}

func (s *stepper[F]) reset() {
	clear(s.last)
	s.primed = false
	s.pos = 0
	s.ended = false
}

func (s *stepper[F]) clone() stepper[F] {
	c := *s
	c.last = append([]float64(nil), s.last...)
	return c
}

func (s *stepper[F]) memoryUsage() int64 {
	return int64(len(s.last)) * bytesPerFloat64
}
