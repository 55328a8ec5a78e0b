package log

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap/zapcore"
)

// DebugLogger keeps all messages in memory, so tests can assert on them.
type DebugLogger interface {
	Logger
	Truncate()
	AllMessages() string
	DebugMessages() string
	InfoMessages() string
	WarnMessages() string
	ErrorMessages() string
}

type memoryLogger struct {
	lock    *sync.Mutex
	records *[]record
	prefix  string
}

type record struct {
	level   zapcore.Level
	message string
}

// NewDebugLogger creates a logger that records all messages in memory.
func NewDebugLogger() DebugLogger {
	return &memoryLogger{lock: &sync.Mutex{}, records: &[]record{}}
}

func (l *memoryLogger) Debug(message string) { l.log(DebugLevel, message) }
func (l *memoryLogger) Info(message string)  { l.log(InfoLevel, message) }
func (l *memoryLogger) Warn(message string)  { l.log(WarnLevel, message) }
func (l *memoryLogger) Error(message string) { l.log(ErrorLevel, message) }

func (l *memoryLogger) Debugf(template string, args ...any) {
	l.log(DebugLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Infof(template string, args ...any) {
	l.log(InfoLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Warnf(template string, args ...any) {
	l.log(WarnLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) Errorf(template string, args ...any) {
	l.log(ErrorLevel, fmt.Sprintf(template, args...))
}

func (l *memoryLogger) AddPrefix(prefix string) Logger {
	clone := *l
	clone.prefix = strings.TrimRight(l.prefix+prefix, " ") + " "
	return &clone
}

func (l *memoryLogger) Sync() error {
	return nil
}

func (l *memoryLogger) Truncate() {
	l.lock.Lock()
	defer l.lock.Unlock()
	*l.records = nil
}

func (l *memoryLogger) AllMessages() string {
	return l.messages(func(zapcore.Level) bool { return true })
}

func (l *memoryLogger) DebugMessages() string {
	return l.messages(func(v zapcore.Level) bool { return v == DebugLevel })
}

func (l *memoryLogger) InfoMessages() string {
	return l.messages(func(v zapcore.Level) bool { return v == InfoLevel })
}

func (l *memoryLogger) WarnMessages() string {
	return l.messages(func(v zapcore.Level) bool { return v == WarnLevel })
}

func (l *memoryLogger) ErrorMessages() string {
	return l.messages(func(v zapcore.Level) bool { return v == ErrorLevel })
}

func (l *memoryLogger) log(level zapcore.Level, message string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	*l.records = append(*l.records, record{level: level, message: l.prefix + message})
}

func (l *memoryLogger) messages(match func(zapcore.Level) bool) string {
	l.lock.Lock()
	defer l.lock.Unlock()
	var out strings.Builder
	for _, r := range *l.records {
		if match(r.level) {
			out.WriteString(strings.ToUpper(r.level.String()))
			out.WriteString("  ")
			out.WriteString(r.message)
			out.WriteString("\n")
		}
	}
	return out.String()
}
