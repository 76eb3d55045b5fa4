package dlog

import (
	"io"
	"log"
	"os"
)

// Logger is the leveled logging sink consumed by the service components.
// Every component accepts a nil Logger and degrades to the no-op
// implementation, so logging never affects core behaviour.
type Logger interface {
	Errorf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Debugf(format string, v ...interface{})
	// Verbosef is reserved for high-volume diagnostics such as raw
	// response bodies; implementations may discard it independently
	// of Debugf.
	Verbosef(format string, v ...interface{})
}

// StdLogger is a simple wrapper around the default Go log package that
// satisfies Logger. Debug and verbose output are disabled by default and
// can be enabled with options.
type StdLogger struct {
	*log.Logger
	debug   bool
	verbose bool
}

type LoggerOption struct {
	f func(*StdLogger)
}

// NewLogger builds a StdLogger writing to stderr with standard flags,
// modified by the supplied options.
func NewLogger(options ...LoggerOption) *StdLogger {
	l := &StdLogger{Logger: log.New(os.Stderr, "", log.LstdFlags)}

	for _, option := range options {
		option.f(l)
	}

	return l
}

func LoggerSetOutput(w io.Writer) LoggerOption {
	return LoggerOption{
		func(l *StdLogger) {
			l.SetOutput(w)
		},
	}
}

func LoggerSetPrefix(p string) LoggerOption {
	return LoggerOption{
		func(l *StdLogger) {
			l.SetPrefix(p)
		},
	}
}

func LoggerSetFlags(flag int) LoggerOption {
	return LoggerOption{
		func(l *StdLogger) {
			l.SetFlags(flag)
		},
	}
}

func LoggerEnableDebug() LoggerOption {
	return LoggerOption{
		func(l *StdLogger) {
			l.debug = true
		},
	}
}

// LoggerEnableVerbose enables verbose output; it implies debug.
func LoggerEnableVerbose() LoggerOption {
	return LoggerOption{
		func(l *StdLogger) {
			l.debug = true
			l.verbose = true
		},
	}
}

func (l *StdLogger) Errorf(format string, v ...interface{}) {
	l.Printf("ERROR "+format, v...)
}

func (l *StdLogger) Warnf(format string, v ...interface{}) {
	l.Printf("WARN "+format, v...)
}

func (l *StdLogger) Infof(format string, v ...interface{}) {
	l.Printf("INFO "+format, v...)
}

func (l *StdLogger) Debugf(format string, v ...interface{}) {
	if !l.debug {
		return
	}
	l.Printf("DEBUG "+format, v...)
}

func (l *StdLogger) Verbosef(format string, v ...interface{}) {
	if !l.verbose {
		return
	}
	l.Printf("VERBOSE "+format, v...)
}
