package logger

import (
	"ecofin-advisor/internal/application/port/output"

	"go.uber.org/zap"
)

var _ output.LoggerPort = (*LoggerAdapter)(nil)

type LoggerAdapter struct {
	base  *zap.Logger
	sugar *zap.SugaredLogger
}

func NewLoggerAdapter(opts Options) (*LoggerAdapter, error) {
	base, err := New(opts)
	if err != nil {
		return nil, err
	}
	return FromZap(base), nil
}

func FromZap(base *zap.Logger) *LoggerAdapter {
	return &LoggerAdapter{
		base:  base,
		sugar: base.Sugar(),
	}
}

// NewNopLogger returns a logger that drops everything. Used by tests.
func NewNopLogger() *LoggerAdapter {
	return FromZap(zap.NewNop())
}

func (l *LoggerAdapter) Zap() *zap.Logger {
	return l.base
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.sugar.Debugw(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.sugar.Infow(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.sugar.Warnw(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.sugar.Errorw(msg, args...)
}

func (l *LoggerAdapter) With(args ...any) output.LoggerPort {
	sugar := l.sugar.With(args...)
	return &LoggerAdapter{
		base:  sugar.Desugar(),
		sugar: sugar,
	}
}

func (l *LoggerAdapter) Named(name string) output.LoggerPort {
	base := l.base.Named(name)
	return &LoggerAdapter{
		base:  base,
		sugar: base.Sugar(),
	}
}

// Close flushes buffered entries. Sync errors on terminals (EINVAL/ENOTTY) are ignored.
func (l *LoggerAdapter) Close() error {
	_ = l.base.Sync()
	return nil
}
