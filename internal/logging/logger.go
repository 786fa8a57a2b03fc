// Package logging builds the application's zap logger
package logging

import (
	"os"
	"path/filepath"

	"github.com/andy/garagebill/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// PathOff disables logging
const PathOff = "off"

// New creates a structured logger from the log section of the config.
// The TUI owns the terminal, so stdout is never a valid destination.
// The returned cleanup closes the log file and must be called after the last write.
func New(cfg config.LogConfig) (*zap.Logger, func(), error) {
	if cfg.Path == PathOff || cfg.Path == "" {
		return zap.NewNop(), func() {}, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Path != "stderr" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, nil, err
		}
	}
	writeSyncer, cleanup, err := zap.Open(cfg.Path)
	if err != nil {
		return nil, nil, err
	}

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), cleanup, nil
}
