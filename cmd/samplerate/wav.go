package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var errUnsupportedBitDepth = errors.New("unsupported bit depth")

// wavInput holds validated input file information.
type wavInput struct {
	file        *os.File
	decoder     *wav.Decoder
	format      *audio.Format
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
}

// openWAVInput opens and validates a WAV file.
func openWAVInput(path string) (*wavInput, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)
	if _, err := scaleFor(bitDepth); err != nil {
		_ = inputFile.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Duration is only used for progress reporting
	var totalFrames int64
	if duration, err := decoder.Duration(); err == nil {
		totalFrames = int64(duration.Seconds() * float64(format.SampleRate))
	}

	return &wavInput{
		file:        inputFile,
		decoder:     decoder,
		format:      format,
		rate:        format.SampleRate,
		channels:    format.NumChannels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
	}, nil
}

// Close closes the input file.
func (w *wavInput) Close() error {
	return w.file.Close()
}

// wavOutput wraps the output file and its encoder.
type wavOutput struct {
	file    *os.File
	encoder *wav.Encoder
	scale   pcmScale
	buf     *audio.IntBuffer
	clipped int64
}

// createWAVOutput creates the output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutput, error) {
	scale, err := scaleFor(bitDepth)
	if err != nil {
		return nil, err
	}

	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutput{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, wavFormatPCM),
		scale:   scale,
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

// WriteFloat quantises interleaved samples into scratch and encodes them.
// scratch must be at least as long as samples.
func (w *wavOutput) WriteFloat(samples []float32, scratch []int) error {
	if len(samples) == 0 {
		return nil
	}
	data := scratch[:len(samples)]
	w.clipped += int64(w.scale.fromFloat(data, samples))
	w.buf.Data = data
	if err := w.encoder.Write(w.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	return nil
}

// Close finalises the WAV header and closes the file.
func (w *wavOutput) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalise WAV: %w", err)
	}
	return w.file.Close()
}

// pcmScale maps integer PCM of one bit depth to float32 in [-1, 1] and back.
type pcmScale struct {
	max    float64
	offset int
}

func scaleFor(bitDepth int) (pcmScale, error) {
	switch bitDepth {
	case bitsPerSample8:
		return pcmScale{max: maxInt8, offset: uint8Midpoint}, nil
	case bitsPerSample16:
		return pcmScale{max: maxInt16}, nil
	case bitsPerSample24:
		return pcmScale{max: maxInt24}, nil
	case bitsPerSample32:
		return pcmScale{max: maxInt32}, nil
	default:
		return pcmScale{}, fmt.Errorf("%w: %d", errUnsupportedBitDepth, bitDepth)
	}
}

func (s pcmScale) toFloat(dst []float32, src []int) {
	inv := 1.0 / s.max
	for i, v := range src {
		dst[i] = float32(float64(v-s.offset) * inv)
	}
}

// fromFloat rounds and clips src into dst, returning the number of clipped samples.
func (s pcmScale) fromFloat(dst []int, src []float32) int {
	lo, hi := -s.max-1, s.max
	clipped := 0
	for i, v := range src {
		x := math.Round(float64(v) * s.max)
		switch {
		case x > hi:
			x = hi
			clipped++
		case x < lo:
			x = lo
			clipped++
		}
		dst[i] = int(x) + s.offset
	}
	return clipped
}
