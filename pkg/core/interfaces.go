package core

import (
	"fmt"
	"io"
)

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// WriterLogger writes log lines to an io.Writer
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{w: w}
}

// Printf implements Logger
func (l *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(l.w, format, args...)
}

// DiscardLogger drops every message. Useful in tests.
var DiscardLogger Logger = NewWriterLogger(io.Discard)
