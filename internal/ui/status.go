package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const lineTerminatorConstant = "\n"

type lineSeverity int

const (
	severityProgress lineSeverity = iota
	severityWarning
	severitySuccess
)

// StatusPrinter writes operator-facing status lines with a color per severity.
type StatusPrinter struct {
	writer   io.Writer
	progress *color.Color
	warning  *color.Color
	success  *color.Color
}

// NewStatusPrinter constructs a printer that writes to the provided writer.
func NewStatusPrinter(writer io.Writer) *StatusPrinter {
	if writer == nil {
		writer = io.Discard
	}
	return &StatusPrinter{
		writer:   writer,
		progress: color.New(color.FgBlue),
		warning:  color.New(color.FgYellow),
		success:  color.New(color.FgWhite, color.Bold),
	}
}

// WithoutColor disables escape sequences for this printer only.
func (printer *StatusPrinter) WithoutColor() *StatusPrinter {
	if printer == nil {
		return nil
	}
	printer.progress.DisableColor()
	printer.warning.DisableColor()
	printer.success.DisableColor()
	return printer
}

// Progress reports a pipeline step that is about to run.
func (printer *StatusPrinter) Progress(format string, arguments ...any) {
	printer.write(severityProgress, format, arguments...)
}

// Warning reports a condition that needs the operator's attention.
func (printer *StatusPrinter) Warning(format string, arguments ...any) {
	printer.write(severityWarning, format, arguments...)
}

// Success reports a completed task.
func (printer *StatusPrinter) Success(format string, arguments ...any) {
	printer.write(severitySuccess, format, arguments...)
}

// Plain writes an uncolored line.
func (printer *StatusPrinter) Plain(format string, arguments ...any) {
	if printer == nil {
		return
	}
	fmt.Fprintf(printer.writer, format+lineTerminatorConstant, arguments...)
}

func (printer *StatusPrinter) write(severity lineSeverity, format string, arguments ...any) {
	if printer == nil {
		return
	}
	var lineColor *color.Color
	switch severity {
	case severityWarning:
		lineColor = printer.warning
	case severitySuccess:
		lineColor = printer.success
	default:
		lineColor = printer.progress
	}
	lineColor.Fprintf(printer.writer, format+lineTerminatorConstant, arguments...)
}
