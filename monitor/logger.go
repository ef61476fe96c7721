// Package monitor provides structured logging built on zap, with file
// rotation via lumberjack when configured.
package monitor

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/skumarhv16/ai-powered-mysql-assistant/core"
)

// Logger implements core.Logger over a zap sugared logger.
type Logger struct {
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

// NewLogger builds a logger from configuration. A nil config yields console
// output at info level.
func NewLogger(cfg *core.LogConfig) (*Logger, error) {
	if cfg == nil {
		cfg = &core.LogConfig{Level: "info", Format: "console", Output: "stdout"}
	}

	level := parseLevel(cfg.Level)
	encoder := buildEncoder(cfg.Format)
	sink := buildSink(cfg)

	zapCore := zapcore.NewCore(encoder, sink, level)
	base := zap.New(zapCore, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{sugar: base.Sugar(), base: base}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func buildEncoder(format string) zapcore.Encoder {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if strings.ToLower(format) == "json" {
		return zapcore.NewJSONEncoder(encoderCfg)
	}
	return zapcore.NewConsoleEncoder(encoderCfg)
}

func buildSink(cfg *core.LogConfig) zapcore.WriteSyncer {
	if strings.ToLower(cfg.Output) == "file" && cfg.FilePath != "" {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    orDefault(cfg.MaxSize, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAge, 28),
			Compress:   true,
		})
	}
	return zapcore.AddSync(os.Stdout)
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

// Debug logs at debug level with key-value pairs.
func (l *Logger) Debug(msg string, fields ...any) { l.sugar.Debugw(msg, fields...) }

// Info logs at info level with key-value pairs.
func (l *Logger) Info(msg string, fields ...any) { l.sugar.Infow(msg, fields...) }

// Warn logs at warn level with key-value pairs.
func (l *Logger) Warn(msg string, fields ...any) { l.sugar.Warnw(msg, fields...) }

// Error logs at error level with key-value pairs.
func (l *Logger) Error(msg string, fields ...any) { l.sugar.Errorw(msg, fields...) }

// With returns a child logger carrying the given key-value pairs.
func (l *Logger) With(fields ...any) *Logger {
	sugar := l.sugar.With(fields...)
	return &Logger{sugar: sugar, base: sugar.Desugar()}
}

// Sync flushes buffered entries. Call before process exit.
func (l *Logger) Sync() error {
	return l.base.Sync()
}
