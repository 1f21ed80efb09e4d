// Package log provides loggers for synth sinks.
package log

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// DebugEnv is an environment variable which enables debug logging.
const DebugEnv = "SYNTH_DEBUG"

var debug bool

// Logger is a global interface for synth loggers.
type Logger interface {
	Debug(...interface{})
	Info(...interface{})
}

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv(DebugEnv))
	if err != nil {
		debug = false
	}
}

// GetLogger returns a new logger instance.
func GetLogger() *logrus.Logger {
	l := logrus.New()
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// WithID returns a logger which attaches id field to every entry.
func WithID(l Logger, id string) Logger {
	if fl, ok := l.(logrus.FieldLogger); ok {
		return fl.WithField("id", id)
	}
	return l
}

// Discard returns a logger which drops every entry.
func Discard() Logger {
	return discard{}
}

type discard struct{}

func (discard) Debug(...interface{}) {}
func (discard) Info(...interface{})  {}
