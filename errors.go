package samplerate

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode identifies the class of a conversion failure. Every error returned
// by this package wraps exactly one ErrorCode, so callers can test with
// errors.Is(err, samplerate.ErrBadSrcRatio) or extract it with CodeOf.
type ErrorCode int

const (
	// ErrBadSrcRatio reports a conversion ratio outside [MinRatio, MaxRatio].
	ErrBadSrcRatio ErrorCode = iota + 1

	// ErrBadChannelCount reports a channel count below one.
	ErrBadChannelCount

	// ErrDataOverlap reports input and output buffers sharing memory.
	ErrDataOverlap

	// ErrAllocationFailed reports converter state that would exceed the
	// allocation bound.
	ErrAllocationFailed

	// ErrInternalInvariant reports corrupted converter state. The converter
	// refuses further work until Reset.
	ErrInternalInvariant

	// ErrBadConverter reports an unknown converter type.
	ErrBadConverter

	// ErrInputAfterEnd reports input supplied after end of input without an
	// intervening Reset.
	ErrInputAfterEnd

	// ErrNullCallback reports a callback converter created without a
	// producer.
	ErrNullCallback
)

var errorDescriptions = map[ErrorCode]string{
	ErrBadSrcRatio:       "SRC ratio outside [1/256, 256] range",
	ErrBadChannelCount:   "channel count must be at least one",
	ErrDataOverlap:       "input and output data arrays overlap",
	ErrAllocationFailed:  "converter state exceeds allocation limit",
	ErrInternalInvariant: "internal error, converter state is corrupt",
	ErrBadConverter:      "bad converter type",
	ErrInputAfterEnd:     "input supplied after end of input",
	ErrNullCallback:      "callback converter needs an input function",
}

// Error implements the error interface.
func (e ErrorCode) Error() string {
	if desc, ok := errorDescriptions[e]; ok {
		return desc
	}
	return "unknown error code " + strconv.Itoa(int(e))
}

// CodeOf returns the ErrorCode wrapped by err, or 0 when err is nil or did not
// originate in this package.
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return 0
}

// errorf wraps code with formatted context.
func errorf(code ErrorCode, format string, args ...any) error {
	return fmt.Errorf("%w: %s", code, fmt.Sprintf(format, args...))
}
