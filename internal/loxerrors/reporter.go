package loxerrors

import (
	"fmt"
	"io"
	"strings"
)

// ErrReporter is the single channel scan, parse and runtime failures are reported through.
type ErrReporter interface {
	ReportPanic(err error)
	ReportError(err error)
}

type errReporter struct {
	w io.Writer
}

func NewErrReporter(w io.Writer) ErrReporter {
	return &errReporter{w: w}
}

// ReportPanic implements ErrReporter.
func (e *errReporter) ReportPanic(err error) {
	DefaultReportPanic(e.w, err)
}

// ReportError implements ErrReporter.
func (e *errReporter) ReportError(err error) {
	DefaultReportError(e.w, err)
}

// DefaultReportPanic is the default implementation of ErrReporter.ReportPanic.
func DefaultReportPanic(w io.Writer, err error) {
	fmt.Fprintf(w, "FATAL %s\n", message(err))
}

// DefaultReportError is the default implementation of ErrReporter.ReportError.
// Joined errors are written as one message, one cause per line.
func DefaultReportError(w io.Writer, err error) {
	fmt.Fprintf(w, "ERROR %s\n", message(err))
}

func message(err error) string {
	if err == nil {
		return "<nil>"
	}
	return strings.TrimRight(err.Error(), "\n")
}

var _ ErrReporter = (*errReporter)(nil)
