// Package logger provides leveled, field-based logging for wren runs.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelSilent
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSilent:
		return "SILENT"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config value such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "silent", "off":
		return LevelSilent, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Logger writes leveled messages with structured fields
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	SetLevel(level Level)
}

// Field is a key/value pair attached to a log line
type Field struct {
	Key   string
	Value any
}

// F builds a Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// sink is shared between a logger and the children created with With so
// that SetLevel on the root applies everywhere.
type sink struct {
	mu    sync.Mutex
	out   io.Writer
	level Level
	now   func() time.Time
}

type lineLogger struct {
	sink   *sink
	fields []Field
}

// New creates a logger writing to out at the given level.
// A nil writer falls back to stderr so stdout stays free for command output.
func New(level Level, out io.Writer) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &lineLogger{sink: &sink{out: out, level: level, now: time.Now}}
}

// NewSilent returns a logger that drops everything
func NewSilent() Logger {
	return New(LevelSilent, io.Discard)
}

func (l *lineLogger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

func (l *lineLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &lineLogger{sink: l.sink, fields: merged}
}

func (l *lineLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *lineLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *lineLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *lineLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *lineLogger) log(level Level, msg string, fields []Field) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if level < l.sink.level {
		return
	}

	var b strings.Builder
	b.WriteString(l.sink.now().Format("2006-01-02 15:04:05"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("] ")
	b.WriteString(msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, f := range l.fields {
			writeField(&b, f)
		}
		for _, f := range fields {
			writeField(&b, f)
		}
	}
	b.WriteByte('\n')

	_, _ = io.WriteString(l.sink.out, b.String())
}

// writeField quotes values containing spaces so lines stay splittable
func writeField(b *strings.Builder, f Field) {
	v := fmt.Sprintf("%v", f.Value)
	if strings.ContainsAny(v, " \t\n\"") {
		v = fmt.Sprintf("%q", v)
	}
	fmt.Fprintf(b, " %s=%s", f.Key, v)
}

var defaultLogger = New(LevelInfo, nil)

// SetDefault replaces the package-level logger
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the package-level logger
func Default() Logger {
	return defaultLogger
}
