package main

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns the logger of the program and a function to flush it.
// Verbose enables the debug output of the stack and the cache.
func newLogger(verbose, silent bool) (logr.Logger, func(), error) {
	if silent {
		return logr.Discard(), func() {}, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		// logr V(2) is zap level -2
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-2))
	}
	cfg.OutputPaths = []string{"stderr"}

	z, err := cfg.Build()
	if err != nil {
		return logr.Logger{}, nil, err
	}
	return zapr.NewLogger(z).WithName(progName), func() { _ = z.Sync() }, nil
}
