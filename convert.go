package samplerate

import "math"

// Convert converts a complete interleaved buffer from fromRate to toRate in
// one call and returns the converted frames. A trailing partial frame in
// input is ignored.
func Convert(t ConverterType, channels, fromRate, toRate int, input []float32, opts ...Option) ([]float32, error) {
	c, err := NewFromRates(t, channels, fromRate, toRate, opts...)
	if err != nil {
		return nil, err
	}

	frames := len(input) / channels
	capacity := int(math.Ceil(float64(frames) * float64(toRate) / float64(fromRate)))
	out := make([]float32, capacity*channels)

	read, written := 0, 0
	for {
		if written*channels == len(out) {
			out = append(out, make([]float32, convertGrowFrames*channels)...)
		}

		r, w, err := c.Finalize(input[read*channels:], out[written*channels:])
		if err != nil {
			return nil, err
		}
		read += r
		written += w

		if w == 0 && read >= frames {
			break
		}
		if r == 0 && w == 0 {
			return nil, errorf(ErrInternalInvariant, "no progress with %d input frames left", frames-read)
		}
	}

	return out[:written*channels], nil
}
