// Package log wraps the zap logger with the small interface the project
// actually needs, plus a memory logger for assertions in tests.
package log

import (
	"go.uber.org/zap/zapcore"
)

const (
	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
)

type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)

	Debugf(template string, args ...any)
	Infof(template string, args ...any)
	Warnf(template string, args ...any)
	Errorf(template string, args ...any)

	// AddPrefix returns a clone of the logger, each message is prefixed,
	// for example "[store]".
	AddPrefix(prefix string) Logger

	Sync() error
}
