package samplerate

import "go.uber.org/zap"

// Option configures a Converter.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// WithLogger routes the converter's diagnostics to logger. Converters are
// silent by default. Nothing is logged per sample; construction and ratio
// changes log at Debug and state corruption at Error.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
