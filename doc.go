// Package samplerate converts interleaved float32 audio between sample rates
// in pure Go.
//
// A converter is fed a stream of interleaved frames in chunks of any size and
// produces the same output it would for the whole stream at once. The ratio
// (output rate / input rate) may lie anywhere in [MinRatio, MaxRatio] and can
// change while the stream runs.
//
// # Converters
//
// Five algorithms are available, best quality first:
//
//   - [SincBestQuality]: band-limited windowed-sinc, 144 dB stop band, 96% bandwidth.
//   - [SincMediumQuality]: band-limited windowed-sinc, 121 dB stop band, 90% bandwidth.
//   - [SincFastest]: band-limited windowed-sinc, 97 dB stop band, 80% bandwidth.
//   - [ZeroOrderHold]: repeats the previous frame. Very fast, poor quality.
//   - [Linear]: interpolates between neighbouring frames. Very fast, poor quality.
//
// The sinc converters share one immutable coefficient table per preset,
// designed with a Kaiser window on first use. Their per-sample dot products
// run on SIMD kernels from github.com/tphakala/simd when the CPU supports them.
//
// # Quick Start
//
// For one-shot conversion of a complete buffer:
//
//	out, err := samplerate.Convert(samplerate.SincBestQuality, 2, 44100, 48000, in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For streaming, feed chunks through Process and drain with Finalize:
//
//	c, err := samplerate.New(samplerate.SincMediumQuality, 2, 48000.0/44100.0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out := make([]float32, 4096*2)
//	for chunk := range chunks {
//	    for len(chunk) > 0 {
//	        read, written, err := c.Process(chunk, out)
//	        if err != nil {
//	            log.Fatal(err)
//	        }
//	        writeOutput(out[:written*2])
//	        chunk = chunk[read*2:]
//	    }
//	}
//
//	for {
//	    _, written, err := c.Finalize(nil, out)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if written == 0 {
//	        break
//	    }
//	    writeOutput(out[:written*2])
//	}
//
// # Ratio Changes
//
// [Converter.SetRatio] spreads a new ratio linearly over the output frames of
// the next call, which keeps variable-rate playback free of clicks.
// [Converter.ForceRatio] applies it at once.
//
// # Pull Mode
//
// [CallbackConverter] inverts control: [CallbackConverter.Read] asks an
// [InputFunc] for input whenever it needs more and drains the converter once
// the function returns io.EOF.
//
// # Errors
//
// Every error wraps one [ErrorCode]. Test for a class with errors.Is:
//
//	if errors.Is(err, samplerate.ErrBadSrcRatio) { ... }
//
// A converter that detects corrupt internal state returns
// [ErrInternalInvariant] from every call until [Converter.Reset].
//
// # Thread Safety
//
// A [Converter] must be used by one goroutine at a time. Independent
// converters can run concurrently; they share nothing mutable.
package samplerate
