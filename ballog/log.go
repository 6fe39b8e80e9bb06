// Package ballog is the logging façade the translator and engine call
// into. It mirrors the teacher's stdlib *log.Logger usage, adding the
// two-tier severity filter (a build-time ceiling plus a per-Logger runtime
// minimum) the original logging contract specifies.
package ballog

import (
	"io"
	"log"
	"os"
)

// Level is a log severity, ordered from most to least severe.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	case LevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// MaxLevel is the build-time ceiling: no Logger, regardless of its own
// MinLevel, emits anything more verbose than this. Production builds can
// lower it to compile out TRACE/DEBUG call sites' formatting cost; the
// default here keeps everything available.
var MaxLevel = LevelTrace

// Logger filters by both MaxLevel and its own MinLevel before formatting or
// calling out to the underlying *log.Logger.
type Logger struct {
	MinLevel Level
	out      *log.Logger
}

// New wraps w with the teacher's Ltime|Lmicroseconds|Lshortfile flag set and
// the given prefix, filtering to minLevel and below.
func New(w io.Writer, prefix string, minLevel Level) *Logger {
	return &Logger{
		MinLevel: minLevel,
		out:      log.New(w, prefix, log.Ltime|log.Lmicroseconds|log.Lshortfile),
	}
}

// Default returns a Logger writing to stderr at LevelInfo, the same
// destination and flag set the teacher's debug loggers use.
func Default() *Logger {
	return New(os.Stderr, "", LevelInfo)
}

// Discard returns a Logger that drops every message; used where the caller
// supplies no logger.
func Discard() *Logger {
	return New(io.Discard, "", LevelError)
}

// Log emits format/args at level if level passes both MaxLevel and l's
// MinLevel. A nil Logger is a no-op, so callers may hold an unset *Logger
// field safely.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil || level > MaxLevel || level > l.MinLevel {
		return
	}
	l.out.Printf("["+level.String()+"] "+format, args...)
}

func (l *Logger) Errorf(format string, args ...any) { l.Log(LevelError, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.Log(LevelWarn, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.Log(LevelInfo, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.Log(LevelDebug, format, args...) }
func (l *Logger) Tracef(format string, args ...any) { l.Log(LevelTrace, format, args...) }
