package samplerate

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"go.uber.org/zap"

	"github.com/tphakala/go-samplerate/internal/engine"
	"github.com/tphakala/go-samplerate/internal/simdops"
)

// Converter converts a stream of interleaved float32 frames from one sample
// rate to another. Input may be supplied in chunks of any size, including a
// single frame; output is identical to converting the whole stream at once.
//
// A Converter is not safe for concurrent use. Distinct converters share only
// immutable filter tables and may run on different goroutines.
type Converter struct {
	typ      ConverterType
	channels int
	interp   engine.Interpolator[float32]
	logger   *zap.Logger

	ratio     float64 // target ratio for the next call
	lastRatio float64 // ratio in effect after the previous call

	// failed holds the error that poisoned the converter, if any.
	failed error
}

// Info describes a converter instance.
type Info struct {
	// Name and Description are the converter type's public strings.
	Name        string
	Description string

	Channels int
	Ratio    float64

	// FilterLength is the number of filter taps per output frame at ratio 1.
	FilterLength int

	// Latency is the delay between input and output in output frames.
	Latency int

	// MemoryUsage is the approximate per-instance state in bytes, excluding
	// shared filter tables.
	MemoryUsage int64

	// SIMDType describes the SIMD instruction set in use.
	SIMDType string
}

// New creates a converter of type t for channels interleaved channels at the
// given ratio (output rate / input rate).
//
// Arguments are checked in order: converter type, channel count, ratio and
// finally the size of the state to allocate. Nothing is allocated when any
// check fails.
func New(t ConverterType, channels int, ratio float64, opts ...Option) (*Converter, error) {
	if !t.IsValid() {
		return nil, errorf(ErrBadConverter, "converter type %d", int(t))
	}
	if channels < 1 {
		return nil, errorf(ErrBadChannelCount, "got %d channels", channels)
	}
	if !IsValidRatio(ratio) {
		return nil, errorf(ErrBadSrcRatio, "ratio %g", ratio)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	interp, err := newInterpolator(t, channels)
	if err != nil {
		return nil, mapEngineError(err)
	}

	c := &Converter{
		typ:       t,
		channels:  channels,
		interp:    interp,
		logger:    o.logger,
		ratio:     ratio,
		lastRatio: ratio,
	}

	stats := interp.Stats()
	c.logger.Debug("converter created",
		zap.String("type", t.String()),
		zap.Int("channels", channels),
		zap.Float64("ratio", ratio),
		zap.Int("taps", stats.FilterLength),
		zap.Int("latency", c.Latency()),
		zap.Int64("memory_bytes", stats.MemoryUsage))

	return c, nil
}

// NewFromRates creates a converter for fromRate -> toRate conversion.
func NewFromRates(t ConverterType, channels, fromRate, toRate int, opts ...Option) (*Converter, error) {
	if !t.IsValid() {
		return nil, errorf(ErrBadConverter, "converter type %d", int(t))
	}
	if channels < 1 {
		return nil, errorf(ErrBadChannelCount, "got %d channels", channels)
	}
	ratio, err := ratioFromRates(fromRate, toRate)
	if err != nil {
		return nil, err
	}
	return New(t, channels, ratio, opts...)
}

// Process converts as much of in as fits into out and reports the frames
// read from in and written to out. Frame counts are len/Channels; a trailing
// partial frame is ignored. Running out of input or output space is not an
// error: call again with the remaining input and fresh output space.
func (c *Converter) Process(in, out []float32) (read, written int, err error) {
	return c.run(in, out, false)
}

// Finalize is Process with in marked as the last input of the stream.
// Repeat it, advancing both slices, until it writes nothing; the converter
// then holds no more output. Finalize on a drained stream returns (0, 0, nil).
// Once the last input frame has been read, any further input is rejected
// with ErrInputAfterEnd until Reset, whatever the converter type.
func (c *Converter) Finalize(in, out []float32) (read, written int, err error) {
	return c.run(in, out, true)
}

// run is the single dispatch point into the interpolator.
func (c *Converter) run(in, out []float32, end bool) (read, written int, err error) {
	if c.failed != nil {
		return 0, 0, c.failed
	}

	ch := c.channels
	blk := engine.Block[float32]{
		In:         in,
		Out:        out,
		InFrames:   len(in) / ch,
		OutFrames:  len(out) / ch,
		EndOfInput: end,
	}
	if overlaps(in[:blk.InFrames*ch], out[:blk.OutFrames*ch]) {
		return 0, 0, errorf(ErrDataOverlap, "input and output share memory")
	}
	if !IsValidRatio(c.lastRatio) || !IsValidRatio(c.ratio) {
		return 0, 0, c.poison(fmt.Errorf("%w: ratio state %g -> %g", engine.ErrInvariant, c.lastRatio, c.ratio))
	}

	res, err := c.interp.Process(&blk, engine.Ramp{From: c.lastRatio, To: c.ratio, Span: blk.OutFrames})
	if err != nil {
		return 0, 0, c.mapProcessError(err)
	}
	if res.Used < 0 || res.Used > blk.InFrames || res.Generated < 0 || res.Generated > blk.OutFrames {
		return 0, 0, c.poison(fmt.Errorf("%w: used %d of %d, generated %d of %d",
			engine.ErrInvariant, res.Used, blk.InFrames, res.Generated, blk.OutFrames))
	}

	c.lastRatio = res.Ratio
	return res.Used, res.Generated, nil
}

// SetRatio changes the target ratio. The change is spread linearly over the
// output frames of the next call, avoiding an audible step.
func (c *Converter) SetRatio(ratio float64) error {
	if !IsValidRatio(ratio) {
		return errorf(ErrBadSrcRatio, "ratio %g", ratio)
	}
	c.logger.Debug("ratio changed",
		zap.Float64("from", c.ratio),
		zap.Float64("to", ratio),
		zap.Bool("ramped", true))
	c.ratio = ratio
	return nil
}

// ForceRatio changes the ratio with immediate effect, without ramping.
func (c *Converter) ForceRatio(ratio float64) error {
	if !IsValidRatio(ratio) {
		return errorf(ErrBadSrcRatio, "ratio %g", ratio)
	}
	c.logger.Debug("ratio changed",
		zap.Float64("from", c.ratio),
		zap.Float64("to", ratio),
		zap.Bool("ramped", false))
	c.ratio = ratio
	c.lastRatio = ratio
	return nil
}

// Ratio returns the target ratio.
func (c *Converter) Ratio() float64 { return c.ratio }

// Channels returns the channel count.
func (c *Converter) Channels() int { return c.channels }

// Type returns the converter type.
func (c *Converter) Type() ConverterType { return c.typ }

// Reset discards all stream state, including end of input and any error that
// poisoned the converter. The ratio is kept and takes effect without a ramp.
func (c *Converter) Reset() {
	c.interp.Reset()
	c.lastRatio = c.ratio
	c.failed = nil
}

// Clone returns an independent converter with a copy of the stream state.
// Both continue identically when given identical input.
func (c *Converter) Clone() *Converter {
	clone := *c
	clone.interp = c.interp.Clone()
	return &clone
}

// Latency returns the delay between input and output in output frames at the
// target ratio.
func (c *Converter) Latency() int {
	return int(math.Ceil(float64(c.interp.Latency(c.ratio)) * c.ratio))
}

// Info describes the converter.
func (c *Converter) Info() Info {
	stats := c.interp.Stats()
	return Info{
		Name:         c.typ.Name(),
		Description:  c.typ.Description(),
		Channels:     c.channels,
		Ratio:        c.ratio,
		FilterLength: stats.FilterLength,
		Latency:      c.Latency(),
		MemoryUsage:  stats.MemoryUsage,
		SIMDType:     simdops.Describe(),
	}
}

// mapProcessError translates an interpolator failure into an ErrorCode.
func (c *Converter) mapProcessError(err error) error {
	if errors.Is(err, engine.ErrInputAfterEnd) {
		return fmt.Errorf("%w: %w", ErrInputAfterEnd, err)
	}
	return c.poison(err)
}

// poison records err so every later call fails the same way until Reset.
func (c *Converter) poison(err error) error {
	c.failed = fmt.Errorf("%w: %w", ErrInternalInvariant, err)
	c.logger.Error("converter state corrupt",
		zap.String("type", c.typ.String()),
		zap.Int("channels", c.channels),
		zap.Error(err))
	return c.failed
}

// mapEngineError translates a construction failure into an ErrorCode.
func mapEngineError(err error) error {
	switch {
	case errors.Is(err, engine.ErrStateTooLarge):
		return fmt.Errorf("%w: %w", ErrAllocationFailed, err)
	case errors.Is(err, ErrBadConverter):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrInternalInvariant, err)
	}
}

// overlaps reports whether a and b share any memory.
func overlaps(a, b []float32) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	size := unsafe.Sizeof(a[0])
	aStart := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	bStart := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	aEnd := aStart + uintptr(len(a))*size
	bEnd := bStart + uintptr(len(b))*size
	return aStart < bEnd && bStart < aEnd
}
