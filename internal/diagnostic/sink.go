package diagnostic

import (
	"go.uber.org/zap"
)

// DefaultPrefix tags every logged diagnostic so console output can be
// filtered by source.
const DefaultPrefix = "[AutoAssigner]"

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d Diagnostic)
}

// Collector is a Sink that keeps every diagnostic.
type Collector struct {
	Diagnostics
}

// Report implements Sink.
func (c *Collector) Report(d Diagnostic) {
	c.Add(d)
}

// Reset drops everything collected so far.
func (c *Collector) Reset() {
	c.Diagnostics = Diagnostics{}
}

// LogSink writes diagnostics to a zap logger.
type LogSink struct {
	logger *zap.Logger
	prefix string
}

// NewLogSink returns a sink logging through logger. An empty prefix selects
// DefaultPrefix.
func NewLogSink(logger *zap.Logger, prefix string) *LogSink {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &LogSink{logger: logger, prefix: prefix}
}

// Report implements Sink.
func (s *LogSink) Report(d Diagnostic) {
	fields := make([]zap.Field, 0, 3)
	if d.Code != "" {
		fields = append(fields, zap.String("code", d.Code))
	}

	if d.Owner != "" {
		fields = append(fields, zap.String("owner", d.Owner))
	}

	if d.Field != "" {
		fields = append(fields, zap.String("field", d.Field))
	}

	msg := s.prefix + " " + d.Message

	switch d.Severity {
	case DiagnosticError:
		s.logger.Error(msg, fields...)
	case DiagnosticWarning:
		s.logger.Warn(msg, fields...)
	default:
		s.logger.Info(msg, fields...)
	}
}

// Tee fans every diagnostic out to several sinks.
type Tee []Sink

// Report implements Sink.
func (t Tee) Report(d Diagnostic) {
	for _, s := range t {
		if s != nil {
			s.Report(d)
		}
	}
}

// Discard drops every diagnostic.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(Diagnostic) {}
