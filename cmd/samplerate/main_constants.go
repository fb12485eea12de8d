package main

const (
	// Sample format constants
	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt8       = 127.0
	maxInt16      = 32767.0
	maxInt24      = 8388607.0
	maxInt32      = 2147483647.0
	uint8Midpoint = 128 // 8-bit WAV samples are unsigned

	// WAV audio format tag for integer PCM
	wavFormatPCM = 1

	// Output buffer margin, in frames, on top of chunk * ratio
	outputBufferMargin = 64

	// Progress is logged every N percent
	progressInterval = 10
	percentScale     = 100

	// analyze defaults
	defaultFromRate  = 44100
	defaultToRate    = 48000
	defaultToneHz    = 1000.0
	toneAmplitude    = 0.5
	analysisFrames   = 8192 // output frames handed to the spectrum analyser
	analysisSegments = 4    // output is at least this many analysis windows long
	stopBandPosition = 0.4  // tone position between the output and input Nyquist
	stopBandWindow   = 0.01 // half-width of the alias search window, fraction of output rate
	designPoints     = 2048 // frequencies evaluated per designed filter
	bytesPerKiB      = 1024

	// Required positional arguments for convert
	convertArgs = 2
)
