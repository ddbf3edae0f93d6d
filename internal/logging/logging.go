// Package logging builds the service's zap loggers. The daemon and the
// setup commands write to separate rotated files: setup commands may run
// while a daemon instance is live and must not interleave into its log.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects the log destination and verbosity.
type Options struct {
	File       string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// New creates a logger writing JSON to the rotated file and
// human-readable lines to stderr.
func New(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)

	fileWriter := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB, // megabytes
		MaxBackups: opts.MaxBackups,
		MaxAge:     28, // days
		Compress:   true,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	// Setup commands are driven by installers and scripts; diagnostics
	// belong on stderr, stdout stays clean for usage hints.
	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.AddSync(fileWriter), level),
		zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
