package pagedb

import "github.com/sirupsen/logrus"

// Logger is the polymorphic logging capability consumed by Database and its
// sub-components (spec.md §9 "polymorphic logger"): Info/Debug/Error only,
// no structured fields required.
type Logger interface {
	Info(msg string)
	Debug(msg string)
	Error(msg string)
}

// NoopLogger discards everything. It is the default when no logger is
// supplied, mirroring original_source's util::EmptyLogger.
type NoopLogger struct{}

func (NoopLogger) Info(string)  {}
func (NoopLogger) Debug(string) {}
func (NoopLogger) Error(string) {}

// logrusLogger adapts a *logrus.Logger (or logrus.FieldLogger) to Logger.
type logrusLogger struct {
	entry logrus.FieldLogger
}

// NewLogrusLogger wraps l as a Logger.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLogger{entry: l}
}

func (l *logrusLogger) Info(msg string)  { l.entry.Info(msg) }
func (l *logrusLogger) Debug(msg string) { l.entry.Debug(msg) }
func (l *logrusLogger) Error(msg string) { l.entry.Error(msg) }
