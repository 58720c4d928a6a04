// Package logging provides the leveled logger shared by the bridge binaries.
package logging

import (
	"fmt"
	"log"
)

// Logger defines the contract for logging operations with different severity levels.
type Logger interface {
	// Info logs an informational message with optional formatted arguments.
	Info(msg string, args ...interface{})
	// Error logs an error message with optional formatted arguments.
	Error(msg string, args ...interface{})
}

// StdLogger implements Logger on top of the standard log package.
type StdLogger struct {
	logger *log.Logger
}

// Info logs with an INFO prefix.
func (l *StdLogger) Info(msg string, args ...interface{}) {
	l.logger.Printf("INFO: %s", fmt.Sprintf(msg, args...))
}

// Error logs with an ERROR prefix.
func (l *StdLogger) Error(msg string, args ...interface{}) {
	l.logger.Printf("ERROR: %s", fmt.Sprintf(msg, args...))
}

// NewStdLogger wraps the provided standard logger.
func NewStdLogger(l *log.Logger) *StdLogger {
	return &StdLogger{l}
}
