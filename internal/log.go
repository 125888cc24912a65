package internal

import (
	"log"
	"os"
)

// LogLevel controls which messages a Logger emits.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var levelNames = map[string]LogLevel{
	"ERROR": LogLevelError,
	"WARN":  LogLevelWarn,
	"INFO":  LogLevelInfo,
	"DEBUG": LogLevelDebug,
}

// Logger writes leveled messages through the standard log package.
// Assessment runs log at Info; per-risk and per-stage detail at Debug.
type Logger struct {
	level LogLevel
}

func NewLogger(level LogLevel) *Logger {
	return &Logger{level: level}
}

// NewDefaultLogger reads LOG_LEVEL from the environment, defaulting to Info.
// Unrecognized values fall back to the default.
func NewDefaultLogger() *Logger {
	level := LogLevelInfo
	if parsed, ok := levelNames[os.Getenv("LOG_LEVEL")]; ok {
		level = parsed
	}
	return &Logger{level: level}
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(LogLevelError, "[ERROR] ", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(LogLevelWarn, "[WARN] ", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(LogLevelInfo, "[INFO] ", format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(LogLevelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) emit(level LogLevel, tag, format string, args ...interface{}) {
	if l.level >= level {
		log.Printf(tag+format, args...)
	}
}

// DefaultLogger is the process-wide logger shared by the CLI and services.
var DefaultLogger = NewDefaultLogger()
