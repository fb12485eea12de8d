package samplerate

import (
	"errors"
	"fmt"
	"io"
)

// InputFunc supplies the next chunk of interleaved input. Returning io.EOF,
// with or without a final chunk, marks the end of the stream. The returned
// slice must stay untouched until the function is called again. Trailing
// partial frames are dropped.
type InputFunc func() ([]float32, error)

// CallbackConverter is a pull-mode Converter: Read asks the InputFunc for
// input whenever the converter needs more.
type CallbackConverter struct {
	conv  *Converter
	input InputFunc

	pending []float32 // unread part of the last chunk
	eof     bool      // the producer reported io.EOF
	drained bool      // all output has been read
}

// NewCallback creates a pull-mode converter fed by input.
func NewCallback(t ConverterType, channels int, ratio float64, input InputFunc, opts ...Option) (*CallbackConverter, error) {
	if input == nil {
		return nil, errorf(ErrNullCallback, "input function is nil")
	}
	conv, err := New(t, channels, ratio, opts...)
	if err != nil {
		return nil, err
	}
	return &CallbackConverter{conv: conv, input: input}, nil
}

// Read fills out with converted frames and returns the number of frames
// written. It returns io.EOF once the stream is drained and nothing was
// written. Errors from the InputFunc other than io.EOF are returned wrapped,
// together with the frames written before the failure.
func (cc *CallbackConverter) Read(out []float32) (int, error) {
	if cc.drained {
		return 0, io.EOF
	}

	ch := cc.conv.channels
	capacity := len(out) / ch
	written := 0
	empty := 0

	for written < capacity {
		if len(cc.pending) < ch && !cc.eof {
			chunk, err := cc.input()
			switch {
			case errors.Is(err, io.EOF):
				cc.eof = true
			case err != nil:
				return written, fmt.Errorf("input callback: %w", err)
			}
			cc.pending = chunk
			if len(chunk) < ch && !cc.eof {
				empty++
				if empty > maxEmptyCallbackReads {
					return written, nil
				}
				continue
			}
		}

		dst := out[written*ch : capacity*ch]
		var (
			r, w int
			err  error
		)
		if cc.eof {
			r, w, err = cc.conv.Finalize(cc.pending, dst)
		} else {
			r, w, err = cc.conv.Process(cc.pending, dst)
		}
		if err != nil {
			return written, err
		}
		cc.pending = cc.pending[r*ch:]
		written += w

		if cc.eof && w == 0 && len(cc.pending) < ch {
			cc.drained = true
			break
		}
		if r == 0 && w == 0 && len(cc.pending) >= ch {
			return written, errorf(ErrInternalInvariant, "no progress with %d pending frames", len(cc.pending)/ch)
		}
	}

	if written == 0 && cc.drained {
		return 0, io.EOF
	}
	return written, nil
}

// SetRatio changes the target ratio with a ramp, like Converter.SetRatio.
func (cc *CallbackConverter) SetRatio(ratio float64) error {
	return cc.conv.SetRatio(ratio)
}

// Reset discards all stream state, including buffered input, so the
// converter can be reused for a new stream from the same InputFunc.
func (cc *CallbackConverter) Reset() {
	cc.conv.Reset()
	cc.pending = nil
	cc.eof = false
	cc.drained = false
}

// Converter returns the underlying converter for introspection.
func (cc *CallbackConverter) Converter() *Converter {
	return cc.conv
}
