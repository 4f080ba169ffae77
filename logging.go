package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logFormats maps a logging.format value onto the zap preset it starts from.
var logFormats = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// loggerConfig turns cfg into a zap config. Output goes to stderr in every format:
// stdout carries the game text and the MCP stdio stream.
func loggerConfig(cfg LoggingConfig) (zap.Config, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	preset, ok := logFormats[cfg.Format]
	if !ok {
		return zap.Config{}, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zc := preset()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.InitialFields = map[string]any{"app": serverName}
	return zc, nil
}

// NewLogger builds the process logger. Every game and MCP session derives from it with
// its own fields.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	zc, err := loggerConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
