// Command samplerate converts WAV files between sample rates and reports on
// the available converters.
//
// Usage:
//
//	samplerate convert --rate 48000 input.wav output.wav
//	samplerate convert --rate 16000 --converter sinc-best --bits 24 speech.wav speech_16k.wav
//	samplerate list
//	samplerate analyze --from 48000 --to 16000 --freq 1000
//	samplerate --log-level debug --config samplerate.yaml convert --rate 96000 in.wav out.wav
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	samplerate "github.com/tphakala/go-samplerate"
	"github.com/tphakala/go-samplerate/internal/config"
	"github.com/tphakala/go-samplerate/internal/logging"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// app carries state resolved by the root command's Before hook.
type app struct {
	out    io.Writer
	conf   *config.Config
	logger *zap.Logger
}

func newApp(out io.Writer) *cli.Command {
	a := &app{out: out, logger: zap.NewNop()}

	return &cli.Command{
		Name:   "samplerate",
		Usage:  "sample-rate conversion for WAV audio",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "YAML configuration file",
				Sources: cli.EnvVars("SAMPLERATE_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Sources: cli.EnvVars(logging.EnvLevel),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "console or json",
				Sources: cli.EnvVars(logging.EnvFormat),
			},
		},
		Before: a.setup,
		After: func(context.Context, *cli.Command) error {
			logging.Sync(a.logger)
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "convert",
				Usage:     "convert a WAV file to another sample rate",
				ArgsUsage: "input.wav output.wav",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "rate",
						Usage:    "target sample rate in Hz",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "converter",
						Usage: "converter type, see the list command",
					},
					&cli.IntFlag{
						Name:  "chunk",
						Usage: "frames per processing call",
					},
					&cli.IntFlag{
						Name:  "bits",
						Usage: "output bit depth (8, 16, 24 or 32), default keeps the input depth",
					},
				},
				Action: a.convert,
			},
			{
				Name:   "list",
				Usage:  "list the converter types",
				Action: a.list,
			},
			{
				Name:  "analyze",
				Usage: "measure every converter type on a test tone",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "from", Usage: "input sample rate in Hz", Value: defaultFromRate},
					&cli.IntFlag{Name: "to", Usage: "output sample rate in Hz", Value: defaultToRate},
					&cli.FloatFlag{Name: "freq", Usage: "test tone frequency in Hz", Value: defaultToneHz},
				},
				Action: a.analyze,
			},
		},
	}
}

// setup loads the configuration and builds the logger. Flags override the file.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	conf, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	conf.Logging = logging.Config{
		Level:  cmd.String("log-level"),
		Format: cmd.String("log-format"),
	}.Merge(conf.Logging)

	logger, err := logging.New(conf.Logging)
	if err != nil {
		return ctx, err
	}
	a.conf = conf
	a.logger = logger
	return ctx, nil
}

func (a *app) convert(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != convertArgs {
		return fmt.Errorf("convert needs an input and an output path, got %d arguments", cmd.Args().Len())
	}

	conf := *a.conf
	if cmd.IsSet("converter") {
		conf.Converter = cmd.String("converter")
	}
	if cmd.IsSet("chunk") {
		conf.ChunkFrames = cmd.Int("chunk")
	}
	if cmd.IsSet("bits") {
		conf.BitDepth = cmd.Int("bits")
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	typ, err := conf.ConverterType()
	if err != nil {
		return err
	}

	job := convertJob{
		inputPath:   cmd.Args().Get(0),
		outputPath:  cmd.Args().Get(1),
		targetRate:  cmd.Int("rate"),
		converter:   typ,
		chunkFrames: conf.ChunkFrames,
		bitDepth:    conf.BitDepth,
	}

	start := time.Now()
	stats, err := convertWAV(ctx, a.logger, job)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(a.out, "Converted %s -> %s\n", filepath.Base(job.inputPath), filepath.Base(job.outputPath))
	fmt.Fprintf(a.out, "  %d Hz -> %d Hz (%d channels, %d-bit -> %d-bit, %s)\n",
		stats.inputRate, stats.outputRate, stats.channels,
		stats.inputBitDepth, stats.outputBitDepth, typ)
	fmt.Fprintf(a.out, "  %d frames -> %d frames\n", stats.inputFrames, stats.outputFrames)
	if stats.clipped > 0 {
		fmt.Fprintf(a.out, "  %d samples clipped\n", stats.clipped)
	}
	if secs := elapsed.Seconds(); secs > 0 && stats.inputRate > 0 {
		fmt.Fprintf(a.out, "  Duration: %.2fs, Speed: %.1fx realtime\n",
			secs, float64(stats.inputFrames)/float64(stats.inputRate)/secs)
	}
	return nil
}

func (a *app) list(_ context.Context, _ *cli.Command) error {
	for _, t := range samplerate.ConverterTypes() {
		fmt.Fprintf(a.out, "%-13s %-26s %s\n", t, t.Name(), t.Description())
	}
	return nil
}

func (a *app) analyze(_ context.Context, cmd *cli.Command) error {
	from, to, freq := cmd.Int("from"), cmd.Int("to"), cmd.Float("freq")
	a.logger.Debug("analyzing", zap.Int("from", from), zap.Int("to", to), zap.Float64("freq", freq))

	rows, err := analyzeConverters(from, to, freq)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d Hz -> %d Hz, %.1f Hz tone\n", from, to, freq)
	fmt.Fprintf(a.out, "%-13s %6s %8s %10s %8s %15s\n", "converter", "taps", "latency", "tone dBFS", "SNR dB", "stop-band dBFS")
	for _, r := range rows {
		stop := "-"
		if !math.IsNaN(r.stopBand) {
			stop = fmt.Sprintf("%.1f", r.stopBand)
		}
		fmt.Fprintf(a.out, "%-13s %6d %8d %10.2f %8.1f %15s\n",
			r.converter, r.taps, r.latency, r.toneDB, r.snr, stop)
	}

	designs, err := designedFilters(designPoints)
	if err != nil {
		return err
	}
	// The filter's cutoff follows the lower of the two rates.
	rate := float64(min(from, to))
	fmt.Fprintf(a.out, "\ndesigned filters\n")
	fmt.Fprintf(a.out, "%-13s %6s %7s %9s %9s %9s %10s %13s\n",
		"converter", "zero-x", "points", "table KiB", "pass Hz", "stop Hz", "ripple dB", "stop-band dB")
	for _, d := range designs {
		r := d.report
		fmt.Fprintf(a.out, "%-13s %6d %7d %9.0f %9.0f %9.0f %10.4f %13.1f\n",
			d.converter, r.Params.ZeroCrossings, r.Points, float64(r.MemoryUsage)/bytesPerKiB,
			r.PassbandEdge*rate, r.StopbandEdge*rate, r.RippleDB, r.StopbandDB)
	}
	return nil
}
