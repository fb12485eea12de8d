package main

import (
	"fmt"
	"math"

	samplerate "github.com/tphakala/go-samplerate"
	"github.com/tphakala/go-samplerate/internal/analysis"
	"github.com/tphakala/go-samplerate/internal/engine"
	"github.com/tphakala/go-samplerate/internal/filter"
)

// analysisRow is one converter's measurements.
type analysisRow struct {
	converter samplerate.ConverterType
	taps      int
	latency   int
	toneDB    float64
	snr       float64
	stopBand  float64 // worst alias in dBFS, NaN when not downsampling
}

// analyzeConverters converts a test tone from one rate to another with every
// converter type and measures the result.
func analyzeConverters(fromRate, toRate int, freq float64) ([]analysisRow, error) {
	if !samplerate.IsValidRatio(float64(toRate) / float64(fromRate)) {
		return nil, fmt.Errorf("%w: %d -> %d", samplerate.ErrBadSrcRatio, fromRate, toRate)
	}
	nyquist := float64(min(fromRate, toRate)) / 2
	if freq <= 0 || freq >= nyquist {
		return nil, fmt.Errorf("tone frequency %.1f Hz must lie in (0, %.1f)", freq, nyquist)
	}

	inFrames := max(2*fromRate,
		int(math.Ceil(analysisSegments*analysisFrames*float64(fromRate)/float64(toRate))))
	passTone := tone(inFrames, float64(fromRate), freq)

	var stopFreq, alias float64
	downsampling := toRate < fromRate
	var stopTone []float32
	if downsampling {
		stopFreq, alias = stopBandFrequencies(float64(fromRate), float64(toRate))
		stopTone = tone(inFrames, float64(fromRate), stopFreq)
	}

	types := samplerate.ConverterTypes()
	rows := make([]analysisRow, 0, len(types))
	for _, typ := range types {
		c, err := samplerate.NewFromRates(typ, 1, fromRate, toRate)
		if err != nil {
			return nil, err
		}
		info := c.Info()
		row := analysisRow{
			converter: typ,
			taps:      info.FilterLength,
			latency:   info.Latency,
			stopBand:  math.NaN(),
		}

		s, err := measure(typ, fromRate, toRate, passTone)
		if err != nil {
			return nil, err
		}
		row.toneDB = s.ToneDB(freq)
		row.snr = s.SNR(freq)

		if downsampling {
			s, err := measure(typ, fromRate, toRate, stopTone)
			if err != nil {
				return nil, err
			}
			w := stopBandWindow * float64(toRate)
			_, row.stopBand = s.PeakDB(alias-w, alias+w)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// designRow is the designed response of one sinc converter's filter.
type designRow struct {
	converter samplerate.ConverterType
	report    filter.TableReport
}

var sincQualities = []struct {
	converter samplerate.ConverterType
	quality   engine.SincQuality
}{
	{samplerate.SincBestQuality, engine.SincBest},
	{samplerate.SincMediumQuality, engine.SincMedium},
	{samplerate.SincFastest, engine.SincFastest},
}

// designedFilters reports the pass band and stop band each sinc filter table
// was designed to reach.
func designedFilters(points int) ([]designRow, error) {
	rows := make([]designRow, 0, len(sincQualities))
	for _, s := range sincQualities {
		table, err := engine.SincTable(s.quality)
		if err != nil {
			return nil, err
		}
		rows = append(rows, designRow{converter: s.converter, report: filter.Report(table, points)})
	}
	return rows, nil
}

// measure converts signal and analyses the middle of the output.
func measure(typ samplerate.ConverterType, fromRate, toRate int, signal []float32) (*analysis.Spectrum, error) {
	out, err := samplerate.Convert(typ, 1, fromRate, toRate, signal)
	if err != nil {
		return nil, err
	}
	if len(out) < analysisFrames {
		return nil, fmt.Errorf("%w: %d frames", analysis.ErrTooShort, len(out))
	}
	start := (len(out) - analysisFrames) / 2
	return analysis.AnalyzeFloat32(out[start:start+analysisFrames], float64(toRate))
}

// stopBandFrequencies picks a tone between the output and input Nyquist
// frequencies and returns it with the frequency it aliases to after decimation.
func stopBandFrequencies(fromRate, toRate float64) (freq, alias float64) {
	freq = toRate/2 + stopBandPosition*(fromRate/2-toRate/2)
	alias = math.Mod(freq, toRate)
	if alias > toRate/2 {
		alias = toRate - alias
	}
	return freq, alias
}

// tone generates a mono sine at toneAmplitude.
func tone(frames int, rate, freq float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = float32(toneAmplitude * math.Sin(2*math.Pi*freq*float64(i)/rate))
	}
	return out
}
