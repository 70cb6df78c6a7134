// Package ui provides helpers for formatting human-readable console output.
//
// Command lifecycle events are rendered through ConsoleCommandEventLogger,
// which honors the configured stream visibility, while StatusPrinter emits
// the colored progress, warning and success lines of a release run.
package ui
