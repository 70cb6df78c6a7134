package sdk

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func commandContext(command *cobra.Command) context.Context {
	if command == nil || command.Context() == nil {
		return context.Background()
	}
	return command.Context()
}

func flushMirror(mirror io.Writer) {
	if flushable, supportsFlush := mirror.(interface{ Flush() error }); supportsFlush {
		_ = flushable.Flush()
	}
}
