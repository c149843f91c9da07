package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger provides centralized logging with level control
type Logger struct {
	mu       sync.RWMutex
	minLevel LogLevel
	output   io.Writer
}

// NewLogger creates a new logger with the specified minimum level
func NewLogger(minLevel LogLevel, output io.Writer) *Logger {
	return &Logger{
		minLevel: minLevel,
		output:   output,
	}
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = output
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LogLevelDebug, "DEBUG", format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LogLevelInfo, "INFO", format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LogLevelWarn, "WARN", format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LogLevelError, "ERROR", format, args...)
}

// log writes a log message if it meets the minimum level
func (l *Logger) log(level LogLevel, prefix string, format string, args ...interface{}) {
	l.mu.RLock()
	minLevel := l.minLevel
	output := l.output
	l.mu.RUnlock()

	if level >= minLevel {
		fmt.Fprintf(output, "%s: %s\n", prefix, fmt.Sprintf(format, args...))
	}
}

// LogLevelFromString converts a string to LogLevel, defaulting to WARN
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelWarn
	}
}

// Global logger instance
var globalLogger = NewLogger(LogLevelWarn, os.Stderr)

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(level string) {
	globalLogger = NewLogger(LogLevelFromString(level), os.Stderr)
}

func logDebug(format string, args ...interface{}) { globalLogger.Debug(format, args...) }
func logInfo(format string, args ...interface{})  { globalLogger.Info(format, args...) }
func logWarn(format string, args ...interface{})  { globalLogger.Warn(format, args...) }
