package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetDebug toggles debug output
func SetDebug(enabled bool) {
	if enabled {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetLevel(logrus.InfoLevel)
}

// DebugEnabled reports whether debug output is on
func DebugEnabled() bool {
	return log.IsLevelEnabled(logrus.DebugLevel)
}

// Debugf prints messages only when debug is enabled
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof prints messages always
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf prints warnings
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// WithField returns an entry carrying one structured field
func WithField(key string, value interface{}) *logrus.Entry {
	return log.WithField(key, value)
}

// Logger exposes the underlying logger, e.g. for redirecting output in tests
func Logger() *logrus.Logger {
	return log
}
