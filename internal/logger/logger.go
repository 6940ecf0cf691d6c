// Package logger provides leveled logging on top of the standard log package.
package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// ParseLevel converts a level name (ERROR, WARN, INFO, DEBUG) to a LogLevel.
// Unknown names yield LogLevelInfo and false.
func ParseLevel(s string) (LogLevel, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError, true
	case "WARN", "WARNING":
		return LogLevelWarn, true
	case "INFO":
		return LogLevelInfo, true
	case "DEBUG":
		return LogLevelDebug, true
	}
	return LogLevelInfo, false
}

// Logger provides leveled logging
type Logger struct {
	level LogLevel
	out   *log.Logger
}

// New creates a logger writing to w with the specified level
func New(w io.Writer, level LogLevel) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// NewDefault creates a stderr logger based on the LOG_LEVEL environment variable
func NewDefault() *Logger {
	level, _ := ParseLevel(os.Getenv("LOG_LEVEL"))
	return New(os.Stderr, level)
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LogLevelError, "[ERROR] ", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LogLevelWarn, "[WARN] ", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LogLevelInfo, "[INFO] ", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LogLevelDebug, "[DEBUG] ", format, args...)
}

// Level returns the current log level
func (l *Logger) Level() LogLevel {
	return l.level
}

func (l *Logger) logf(level LogLevel, prefix, format string, args ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	l.out.Printf(prefix+format, args...)
}
