// Package logger provides the global logger for rfireport.
package logger

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

var globalLogger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
})

// SetLevel sets the global log level from its string name
// (debug, info, warn, error). The default level is info.
func SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("unknown log level %q", level)
	}
	globalLogger.SetLevel(lvl)
	return nil
}

// Info logs an info message.
func Info(format string, v ...interface{}) {
	globalLogger.Infof(format, v...)
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) {
	globalLogger.Debugf(format, v...)
}

// Warn logs a warning message.
func Warn(format string, v ...interface{}) {
	globalLogger.Warnf(format, v...)
}

// Error logs an error message.
func Error(format string, v ...interface{}) {
	globalLogger.Errorf(format, v...)
}
