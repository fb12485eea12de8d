package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"go.uber.org/zap"

	samplerate "github.com/tphakala/go-samplerate"
)

// convertJob describes one WAV conversion.
type convertJob struct {
	inputPath   string
	outputPath  string
	targetRate  int
	converter   samplerate.ConverterType
	chunkFrames int
	bitDepth    int // 0 keeps the input depth
}

type convertStats struct {
	inputRate      int
	outputRate     int
	channels       int
	inputBitDepth  int
	outputBitDepth int
	inputFrames    int64
	outputFrames   int64
	clipped        int64
}

// progressTracker logs progress every progressInterval percent.
type progressTracker struct {
	logger       *zap.Logger
	totalFrames  int64
	lastProgress int
}

func (p *progressTracker) report(frames int64) {
	if p.totalFrames == 0 {
		return
	}
	progress := int(float64(frames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		p.logger.Debug("progress", zap.Int("percent", progress))
		p.lastProgress = progress
	}
}

// convertWAV streams a WAV file through a Converter chunk by chunk.
func convertWAV(ctx context.Context, logger *zap.Logger, job convertJob) (stats *convertStats, err error) {
	input, err := openWAVInput(job.inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	channels := input.channels
	conv, err := samplerate.NewFromRates(job.converter, channels, input.rate, job.targetRate,
		samplerate.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create converter: %w", err)
	}
	inScale, err := scaleFor(input.bitDepth)
	if err != nil {
		return nil, err
	}

	outBits := job.bitDepth
	if outBits == 0 {
		outBits = input.bitDepth
	}
	output, err := createWAVOutput(job.outputPath, job.targetRate, outBits, channels)
	if err != nil {
		return nil, err
	}
	// Close errors matter on the success path: the encoder patches the header there
	defer func() {
		if closeErr := output.Close(); err == nil && closeErr != nil {
			stats, err = nil, closeErr
		}
	}()

	logger.Info("converting",
		zap.String("input", job.inputPath),
		zap.String("output", job.outputPath),
		zap.Int("from", input.rate),
		zap.Int("to", job.targetRate),
		zap.Int("channels", channels),
		zap.Stringer("converter", job.converter))

	ratio := float64(job.targetRate) / float64(input.rate)
	outFrames := int(math.Ceil(float64(job.chunkFrames)*ratio)) + outputBufferMargin
	intBuf := &audio.IntBuffer{Data: make([]int, job.chunkFrames*channels), Format: input.format}
	inF := make([]float32, job.chunkFrames*channels)
	outF := make([]float32, outFrames*channels)
	outInt := make([]int, outFrames*channels)

	stats = &convertStats{
		inputRate:      input.rate,
		outputRate:     job.targetRate,
		channels:       channels,
		inputBitDepth:  input.bitDepth,
		outputBitDepth: outBits,
	}
	progress := &progressTracker{logger: logger, totalFrames: input.totalFrames}

	emit := func(written int) error {
		stats.outputFrames += int64(written)
		return output.WriteFloat(outF[:written*channels], outInt)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		intBuf.Data = intBuf.Data[:cap(intBuf.Data)]
		n, readErr := input.decoder.PCMBuffer(intBuf)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", readErr)
		}
		frames := n / channels
		if frames > 0 {
			pending := inF[:frames*channels]
			inScale.toFloat(pending, intBuf.Data[:frames*channels])
			stats.inputFrames += int64(frames)

			for len(pending) >= channels {
				read, written, err := conv.Process(pending, outF)
				if err != nil {
					return nil, fmt.Errorf("convert: %w", err)
				}
				if read == 0 && written == 0 {
					return nil, fmt.Errorf("convert: %w: no progress", samplerate.ErrInternalInvariant)
				}
				if err := emit(written); err != nil {
					return nil, err
				}
				pending = pending[read*channels:]
			}
			progress.report(stats.inputFrames)
		}
		if n == 0 || readErr != nil {
			break
		}
	}

	for {
		_, written, err := conv.Finalize(nil, outF)
		if err != nil {
			return nil, fmt.Errorf("drain: %w", err)
		}
		if written == 0 {
			break
		}
		if err := emit(written); err != nil {
			return nil, err
		}
	}

	stats.clipped = output.clipped
	if stats.clipped > 0 {
		logger.Warn("output clipped", zap.Int64("samples", stats.clipped))
	}
	return stats, nil
}
