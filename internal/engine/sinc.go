package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/tphakala/go-samplerate/internal/filter"
	"github.com/tphakala/go-samplerate/internal/ringbuf"
	"github.com/tphakala/go-samplerate/internal/simdops"
)

// SincQuality selects one of the windowed-sinc filter prototypes.
type SincQuality int

const (
	SincBest SincQuality = iota
	SincMedium
	SincFastest
)

// sincTables designs each prototype once, on first use. Tables are immutable
// and shared by every interpolator of that quality.
var sincTables = [...]func() (*filter.SincTable, error){
	SincBest:    sync.OnceValues(func() (*filter.SincTable, error) { return filter.NewSincTable(sincPresets[SincBest]) }),
	SincMedium:  sync.OnceValues(func() (*filter.SincTable, error) { return filter.NewSincTable(sincPresets[SincMedium]) }),
	SincFastest: sync.OnceValues(func() (*filter.SincTable, error) { return filter.NewSincTable(sincPresets[SincFastest]) }),
}

// SincTable returns the shared filter table for q.
func SincTable(q SincQuality) (*filter.SincTable, error) {
	if q < SincBest || q > SincFastest {
		return nil, fmt.Errorf("%w: unknown sinc quality %d", ErrInvariant, q)
	}
	return sincTables[q]()
}

// Sinc is a band-limited interpolator. Every output frame is the dot product
// of a windowed-sinc filter, centred on the fractional read position, with
// the surrounding input frames. When downsampling the filter is stretched by
// 1/ratio, lowering its cutoff to the output Nyquist frequency.
type Sinc[F simdops.Float] struct {
	table *filter.SincTable
	ops   *simdops.Ops[float64]
	hist  *ringbuf.History[float64]

	channels int
	maxHalf  int       // widest filter wing, at the smallest ratio
	coeffs   []float64 // per output frame filter taps
	frame    []float64 // one input frame widened to float64

	// Read position: whole input frames plus fraction in [0, 1).
	posInt int64
	frac   float64

	// Index one past the last real input frame, or -1 until end of input has
	// been reached.
	realEnd int64
}

// NewSinc creates a sinc interpolator of quality q for channels channels.
// The history is sized for the full ratio range so ratio changes never
// allocate.
func NewSinc[F simdops.Float](q SincQuality, channels int) (*Sinc[F], error) {
	if q < SincBest || q > SincFastest {
		return nil, fmt.Errorf("%w: unknown sinc quality %d", ErrInvariant, q)
	}

	p := sincPresets[q]
	maxHalf := int(math.Ceil(float64(p.ZeroCrossings)*maxRatioFactor)) + 1
	capacity := sincWings*maxHalf + sincHistorySlack
	size := ringbuf.SizeFor(channels, capacity) + int64(sincWings*maxHalf+channels)*bytesPerFloat64
	if size > maxStateBytes {
		return nil, fmt.Errorf("%w: %d channels need %d bytes of history", ErrStateTooLarge, channels, size)
	}

	table, err := SincTable(q)
	if err != nil {
		return nil, err
	}

	return &Sinc[F]{
		table:    table,
		ops:      simdops.For[float64](),
		hist:     ringbuf.New[float64](channels, capacity),
		channels: channels,
		maxHalf:  maxHalf,
		coeffs:   make([]float64, sincWings*maxHalf),
		frame:    make([]float64, channels),
		realEnd:  -1,
	}, nil
}

// Process implements Interpolator.
func (s *Sinc[F]) Process(blk *Block[F], ramp Ramp) (Result, error) {
	res := Result{Ratio: ramp.From}
	if blk.InFrames > 0 && s.realEnd >= 0 {
		return res, ErrInputAfterEnd
	}

	ch := s.channels
	if len(blk.In) < blk.InFrames*ch || len(blk.Out) < blk.OutFrames*ch {
		return res, fmt.Errorf("%w: buffers shorter than declared frames", ErrInvariant)
	}

	used, gen := 0, 0
	for gen < blk.OutFrames {
		s.absorb(blk, &used)
		s.markEnd(blk, used)

		ratio := ramp.At(gen)
		inc := 1 / ratio
		scale := min(ratio, 1)
		half := s.table.HalfWidth(scale)
		if half > s.maxHalf {
			res.Used, res.Generated = used, gen
			return res, fmt.Errorf("%w: filter wing %d exceeds history %d", ErrInvariant, half, s.maxHalf)
		}

		newest := s.posInt + int64(half)
		if s.realEnd >= 0 {
			if float64(s.posInt-s.realEnd)+s.frac+inc > positionEpsilon {
				break
			}
			for s.hist.Written() <= newest {
				s.hist.PushZero()
			}
		} else if s.hist.Written() <= newest {
			break
		}

		s.emit(blk.Out[gen*ch:(gen+1)*ch], half, scale)
		res.Ratio = ratio
		gen++

		s.frac += inc
		if s.frac >= 1 {
			whole := math.Floor(s.frac)
			s.posInt += int64(whole)
			s.frac -= whole
		}
	}

	s.absorb(blk, &used)
	s.markEnd(blk, used)

	res.Used = used
	res.Generated = gen
	return res, nil
}

// absorb moves input frames into the history while the oldest frame any
// future output can still need stays retained.
func (s *Sinc[F]) absorb(blk *Block[F], used *int) {
	limit := s.posInt - int64(s.maxHalf) + 1 + int64(s.hist.Capacity())
	ch := s.channels
	for *used < blk.InFrames && s.hist.Written() < limit {
		base := *used * ch
		for c := range ch {
			s.frame[c] = float64(blk.In[base+c])
		}
		s.hist.Push(s.frame)
		*used++
	}
}

// markEnd records where the real input ends once the final block is absorbed.
func (s *Sinc[F]) markEnd(blk *Block[F], used int) {
	if blk.EndOfInput && used == blk.InFrames && s.realEnd < 0 {
		s.realEnd = s.hist.Written()
	}
}

// emit writes one output frame for the current read position.
func (s *Sinc[F]) emit(out []F, half int, scale float64) {
	n := sincWings * half
	coeffs := s.coeffs[:n]
	step := scale * float64(s.table.Increment())

	// Frames at or before posInt, oldest first.
	for i := range half {
		coeffs[i] = s.table.At((s.frac + float64(half-1-i)) * step)
	}
	// Frames after posInt.
	for i := half; i < n; i++ {
		coeffs[i] = s.table.At((float64(i-half+1) - s.frac) * step)
	}

	start := s.posInt - int64(half) + 1
	for c := range s.channels {
		acc := s.ops.DotProductUnsafe(coeffs, s.hist.Window(c, start, n))
		out[c] = F(acc * scale)
	}
}

// Reset implements Interpolator.
func (s *Sinc[F]) Reset() {
	s.hist.Clear()
	s.posInt = 0
	s.frac = 0
	s.realEnd = -1
}

// Clone implements Interpolator.
func (s *Sinc[F]) Clone() Interpolator[F] {
	c := *s
	c.hist = s.hist.Clone()
	c.coeffs = make([]float64, len(s.coeffs))
	c.frame = make([]float64, len(s.frame))
	return &c
}

// Latency implements Interpolator.
func (s *Sinc[F]) Latency(ratio float64) int {
	return s.table.HalfWidth(min(ratio, 1))
}

// Stats implements Interpolator.
func (s *Sinc[F]) Stats() Stats {
	return Stats{
		FilterLength: sincWings * s.table.HalfWidth(1),
		MemoryUsage: s.hist.MemoryUsage() +
			int64(len(s.coeffs)+len(s.frame))*bytesPerFloat64,
	}
}

func (s *Sinc[F]) sealed() {}
