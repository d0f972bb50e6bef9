// Package logging constructs the structured logger shared by the
// sampleatlas engines: a console core for operators, optionally teed with a
// JSON file core for machine-readable run logs.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the pipeline logger. Console output goes to stderr so command
// stdout stays clean for tables and summaries. When logFile is non-empty, a
// JSON core appends structured entries to that file. verbose lowers the
// level to debug on both cores.
func New(verbose bool, logFile string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	if logFile == "" {
		return zap.New(consoleCore), nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", logFile, err)
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.TimeKey = "timestamp"
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(jsonCfg),
		zapcore.AddSync(f),
		level,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore)), nil
}

// Nop returns a no-op logger for tests and library callers that discard
// logging.
func Nop() *zap.Logger { return zap.NewNop() }
