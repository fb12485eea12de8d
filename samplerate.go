package samplerate

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-samplerate/internal/engine"
)

// ConverterType enumerates the available interpolation algorithms, best
// quality first.
type ConverterType int

const (
	// SincBestQuality is a band-limited interpolator with 144 dB stop-band
	// attenuation and 96% bandwidth. Highest quality, highest cost.
	SincBestQuality ConverterType = iota

	// SincMediumQuality is a band-limited interpolator with 121 dB stop-band
	// attenuation and 90% bandwidth.
	SincMediumQuality

	// SincFastest is a band-limited interpolator with 97 dB stop-band
	// attenuation and 80% bandwidth.
	SincFastest

	// ZeroOrderHold repeats the most recent input frame. Very fast, poor
	// quality.
	ZeroOrderHold

	// Linear interpolates between neighbouring input frames. Very fast, poor
	// quality.
	Linear
)

type converterTypeInfo struct {
	key         string
	name        string
	description string
}

var converterTypeInfos = [...]converterTypeInfo{
	SincBestQuality: {
		key:         "sinc-best",
		name:        "Best Sinc Interpolator",
		description: "Band limited sinc interpolation, best quality, 144dB SNR, 96% BW.",
	},
	SincMediumQuality: {
		key:         "sinc-medium",
		name:        "Medium Sinc Interpolator",
		description: "Band limited sinc interpolation, medium quality, 121dB SNR, 90% BW.",
	},
	SincFastest: {
		key:         "sinc-fastest",
		name:        "Fastest Sinc Interpolator",
		description: "Band limited sinc interpolation, fastest, 97dB SNR, 80% BW.",
	},
	ZeroOrderHold: {
		key:         "zoh",
		name:        "ZOH Interpolator",
		description: "Zero order hold interpolator, very fast, poor quality.",
	},
	Linear: {
		key:         "linear",
		name:        "Linear Interpolator",
		description: "Linear interpolator, very fast, poor quality.",
	},
}

// ConverterTypes returns every converter type, best quality first.
func ConverterTypes() []ConverterType {
	return []ConverterType{SincBestQuality, SincMediumQuality, SincFastest, ZeroOrderHold, Linear}
}

// IsValid reports whether t names a known converter.
func (t ConverterType) IsValid() bool {
	return t >= SincBestQuality && t <= Linear
}

// Name returns the human readable name of the converter.
func (t ConverterType) Name() string {
	if !t.IsValid() {
		return ""
	}
	return converterTypeInfos[t].name
}

// Description returns a one-line description of the converter's quality.
func (t ConverterType) Description() string {
	if !t.IsValid() {
		return ""
	}
	return converterTypeInfos[t].description
}

// String returns the short key accepted by ParseConverterType.
func (t ConverterType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("ConverterType(%d)", int(t))
	}
	return converterTypeInfos[t].key
}

// ParseConverterType resolves a short key such as "sinc-best" or "linear".
// Matching ignores case and surrounding white space.
func ParseConverterType(s string) (ConverterType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, t := range ConverterTypes() {
		if converterTypeInfos[t].key == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrBadConverter, s)
}

// newInterpolator builds the engine behind t.
func newInterpolator(t ConverterType, channels int) (engine.Interpolator[float32], error) {
	switch t {
	case SincBestQuality:
		return engine.NewSinc[float32](engine.SincBest, channels)
	case SincMediumQuality:
		return engine.NewSinc[float32](engine.SincMedium, channels)
	case SincFastest:
		return engine.NewSinc[float32](engine.SincFastest, channels)
	case ZeroOrderHold:
		return engine.NewZeroOrderHold[float32](channels)
	case Linear:
		return engine.NewLinear[float32](channels)
	default:
		return nil, ErrBadConverter
	}
}
