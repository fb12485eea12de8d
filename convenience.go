package samplerate

// Common sample rates for convenience functions.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes88 is the high-resolution 2x CD sample rate.
	RateHiRes88 = 88200

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000

	// RateHiRes176 is the very high resolution 4x CD sample rate.
	RateHiRes176 = 176400

	// RateHiRes192 is the very high resolution 4x DAT sample rate.
	RateHiRes192 = 192000

	// RateTelephony is the telephony (PSTN narrowband) sample rate.
	RateTelephony = 8000

	// RateVoIP is the VoIP wideband sample rate.
	RateVoIP = 16000

	// RateSpeech is the speech recognition common sample rate.
	RateSpeech = 22050
)

// NewCDtoDAT creates a stereo converter for CD (44.1kHz) to DAT (48kHz)
// conversion.
func NewCDtoDAT(t ConverterType, opts ...Option) (*Converter, error) {
	return NewFromRates(t, stereoChannels, RateCD, RateDAT, opts...)
}

// NewDATtoCD creates a stereo converter for DAT (48kHz) to CD (44.1kHz)
// conversion.
func NewDATtoCD(t ConverterType, opts ...Option) (*Converter, error) {
	return NewFromRates(t, stereoChannels, RateDAT, RateCD, opts...)
}

// Interleave merges planar channels into one interleaved buffer:
// [c0[0], c1[0], ..., c0[1], c1[1], ...]. Channels longer than the shortest
// one are truncated.
func Interleave(planes ...[]float32) []float32 {
	if len(planes) == 0 {
		return nil
	}
	frames := len(planes[0])
	for _, p := range planes[1:] {
		frames = min(frames, len(p))
	}

	ch := len(planes)
	result := make([]float32, frames*ch)
	for c, p := range planes {
		for i := range frames {
			result[i*ch+c] = p[i]
		}
	}
	return result
}

// Deinterleave splits an interleaved buffer into channels planes. A trailing
// partial frame is dropped.
func Deinterleave(interleaved []float32, channels int) [][]float32 {
	if channels < 1 {
		return nil
	}
	frames := len(interleaved) / channels
	planes := make([][]float32, channels)
	for c := range planes {
		plane := make([]float32, frames)
		for i := range frames {
			plane[i] = interleaved[i*channels+c]
		}
		planes[c] = plane
	}
	return planes
}
