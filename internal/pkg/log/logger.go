package log

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapLogger is the default implementation of the Logger interface.
// It is a wrapped zap.SugaredLogger.
type zapLogger struct {
	sugar  *zap.SugaredLogger
	prefix string
}

// NewLogger wraps a zap logger.
func NewLogger(logger *zap.Logger) Logger {
	return &zapLogger{sugar: logger.Sugar()}
}

// NewServiceLogger creates a production JSON logger for service processes.
func NewServiceLogger(level zapcore.Level) Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return NewLogger(logger)
}

// NewNopLogger creates a logger that discards all messages.
func NewNopLogger() Logger {
	return NewLogger(zap.NewNop())
}

func (l *zapLogger) Debug(message string) { l.sugar.Debug(l.msg(message)) }
func (l *zapLogger) Info(message string)  { l.sugar.Info(l.msg(message)) }
func (l *zapLogger) Warn(message string)  { l.sugar.Warn(l.msg(message)) }
func (l *zapLogger) Error(message string) { l.sugar.Error(l.msg(message)) }

func (l *zapLogger) Debugf(template string, args ...any) {
	l.sugar.Debugf(l.msg(template), args...)
}

func (l *zapLogger) Infof(template string, args ...any) {
	l.sugar.Infof(l.msg(template), args...)
}

func (l *zapLogger) Warnf(template string, args ...any) {
	l.sugar.Warnf(l.msg(template), args...)
}

func (l *zapLogger) Errorf(template string, args ...any) {
	l.sugar.Errorf(l.msg(template), args...)
}

func (l *zapLogger) AddPrefix(prefix string) Logger {
	clone := *l
	clone.prefix = strings.TrimRight(l.prefix+prefix, " ") + " "
	return &clone
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}

func (l *zapLogger) msg(message string) string {
	return l.prefix + message
}
