package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var defaultLogger *zap.Logger

// Init builds the global logger. Level comes from LOG_LEVEL (debug, info,
// warn, error), format defaults to JSON unless LOG_FORMAT=console.
func Init() *zap.Logger {
	level := zapcore.InfoLevel
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	if os.Getenv("LOG_FORMAT") == "console" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}

	defaultLogger = l
	zap.ReplaceGlobals(l)
	return l
}

// Get returns the global logger, initializing it on first use.
func Get() *zap.Logger {
	if defaultLogger == nil {
		return Init()
	}
	return defaultLogger
}
