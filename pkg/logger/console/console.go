// Package console provides a logger backend that writes human-readable
// output to stderr via charmbracelet/log.
package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleLogger adapts charmbracelet/log to the logger.LoggerInstance
// interface.
type ConsoleLogger struct {
	logger *log.Logger
}

// ConsoleLoggerParams configures a ConsoleLogger. With Debug set, DEBUG
// level messages are printed too.
type ConsoleLoggerParams struct {
	Debug bool
}

// NewConsoleLogger builds a console backend writing timestamped lines to
// stderr.
func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	return &ConsoleLogger{
		logger: logger,
	}
}

// Log prints at the default level.
func (c *ConsoleLogger) Log(message string, keyvals ...any) {
	c.logger.Print(message, keyvals...)
}

// Info prints at INFO level.
func (c *ConsoleLogger) Info(message string, keyvals ...any) {
	c.logger.Info(message, keyvals...)
}

// Warn prints at WARN level.
func (c *ConsoleLogger) Warn(message string, keyvals ...any) {
	c.logger.Warn(message, keyvals...)
}

// Error prints at ERROR level.
func (c *ConsoleLogger) Error(message string, keyvals ...any) {
	c.logger.Error(message, keyvals...)
}

// Debug prints at DEBUG level.
func (c *ConsoleLogger) Debug(message string, keyvals ...any) {
	c.logger.Debug(message, keyvals...)
}

// Fatal prints at FATAL level and exits the process.
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) {
	c.logger.Fatal(message, keyvals...)
}
