// Package logging builds the process zap logger.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options controls logger construction.
type Options struct {
	Level       string // debug, info, warn, error; empty means info
	Development bool   // console encoder with caller and stack traces
	Verbose     bool   // forces debug regardless of Level
}

// New builds a production JSON logger, or a development console logger
// when opts.Development is set.
func New(opts Options) (*zap.Logger, error) {
	level, err := parseLevel(opts)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger, nil
}

// NewWriter builds a JSON logger writing to w, used by commands that
// redirect diagnostics to their error stream.
func NewWriter(w io.Writer, opts Options) (*zap.Logger, error) {
	level, err := parseLevel(opts)
	if err != nil {
		return nil, err
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder = zapcore.NewJSONEncoder(encCfg)
	if opts.Development {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

func parseLevel(opts Options) (zapcore.Level, error) {
	if opts.Verbose {
		return zapcore.DebugLevel, nil
	}
	if opts.Level == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("log level: %w", err)
	}
	return level, nil
}
