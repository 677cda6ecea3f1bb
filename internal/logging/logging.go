// Package logging exposes the process-wide structured logger.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

var singleton *log.Logger

func getLogger() *log.Logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.RFC3339,
			Prefix:          "cadgen",
		})
		l.SetLevel(log.InfoLevel)
		singleton = l
	})
	return singleton
}

// SetLevel sets the global log level from a name ("debug", "info", "warn",
// "error"). Unknown names leave the level unchanged.
func SetLevel(name string) {
	if lvl, err := log.ParseLevel(name); err == nil {
		getLogger().SetLevel(lvl)
	}
}

// Debug logs at debug level with printf formatting.
func Debug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

// Info logs at info level with printf formatting.
func Info(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

// Warn logs at warn level with printf formatting.
func Warn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

// Error logs at error level with printf formatting.
func Error(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}
