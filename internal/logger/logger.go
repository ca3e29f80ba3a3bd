package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the log format.
type Options struct {
	JSON  bool
	Debug bool
	// Color enables colored levels in console output.
	Color bool
}

// Config returns the zap configuration for opts. Reports are printed to stdout, so log lines go to stderr.
func Config(opts Options) zap.Config {
	level := zapcore.InfoLevel
	if opts.Debug {
		level = zapcore.DebugLevel
	}

	encoding := "console"
	encodeLevel := zapcore.LowercaseLevelEncoder
	switch {
	case opts.JSON:
		encoding = "json"
	case opts.Color:
		encodeLevel = zapcore.LowercaseColorLevelEncoder
	}

	return zap.Config{
		Encoding:          encoding,
		Level:             zap.NewAtomicLevelAt(level),
		DisableStacktrace: !opts.Debug,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey:  "step",
			LevelKey:    "level",
			EncodeLevel: encodeLevel,
			TimeKey:     "time",
			EncodeTime:  zapcore.RFC3339TimeEncoder,
			// Durations of stages and retries read better as strings.
			EncodeDuration: zapcore.StringDurationEncoder,
			CallerKey:      "caller",
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}
}

// New builds the application logger.
func New(opts Options) (*zap.Logger, error) {
	return Config(opts).Build()
}
