// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration
type Config struct {
	Level      string
	File       string // stdout when empty
	MaxSize    int    // megabytes
	MaxAge     int    // days
	MaxBackups int
	Compress   bool
}

// DefaultConfig returns default logging configuration
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSize:    100,
		MaxAge:     30,
		MaxBackups: 5,
		Compress:   true,
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// ParseLevel maps a level name onto a zap level
func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("parsing log level: %w", err)
	}
	return level, nil
}

// NewCore builds a JSON core writing to w at the configured level
func NewCore(cfg Config, w io.Writer) (zapcore.Core, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	return zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(w),
		level,
	), nil
}

// NewHandler returns an slog handler backed by core
func NewHandler(core zapcore.Core) slog.Handler {
	return zapslog.NewHandler(core,
		zapslog.WithCaller(true),
		zapslog.AddStacktraceAt(slog.LevelError),
	)
}

// Setup installs a zap-backed slog default logger and returns a function
// that flushes it
func Setup(cfg Config) (func(), error) {
	var w io.Writer = os.Stdout
	var rotator *lumberjack.Logger
	if cfg.File != "" {
		// Create logs directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}

		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.Compress,
		}
		w = rotator
	}

	core, err := NewCore(cfg, w)
	if err != nil {
		return nil, err
	}

	// zap's own logger shares the core for libraries that take a *zap.Logger
	zap.ReplaceGlobals(zap.New(core, zap.AddCaller()))
	slog.SetDefault(slog.New(NewHandler(core)))

	return func() {
		_ = core.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}, nil
}
