// Package logger provides structured logging for tokmint.
package logger

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// zapLogger adapts a zap.SugaredLogger to Logger.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func newZapLogger(cfg Config) (*zapLogger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "msg"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "text", "console":
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default: // json
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(output), globalLevel),
	}

	if cfg.File.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), globalLevel))
	}

	core := &redactCore{Core: zapcore.NewTee(cores...)}

	var opts []zap.Option
	if cfg.AddSource {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}

	return &zapLogger{sugar: zap.New(core, opts...).Sugar()}, nil
}

func (l *zapLogger) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *zapLogger) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *zapLogger) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *zapLogger) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{sugar: l.sugar.With(args...)}
}

// WithContext attaches the request and trace IDs carried by ctx.
func (l *zapLogger) WithContext(ctx context.Context) Logger {
	var args []any
	if id := RequestIDFromContext(ctx); id != "" {
		args = append(args, "request_id", id)
	}
	if id := TraceIDFromContext(ctx); id != "" {
		args = append(args, "trace_id", id)
	}
	if len(args) == 0 {
		return l
	}
	return l.With(args...)
}

// redactCore masks sensitive fields before they reach the encoder.
type redactCore struct {
	zapcore.Core
}

func (c *redactCore) With(fields []zapcore.Field) zapcore.Core {
	return &redactCore{Core: c.Core.With(redactFields(fields))}
}

func (c *redactCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *redactCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.Core.Write(ent, redactFields(fields))
}
