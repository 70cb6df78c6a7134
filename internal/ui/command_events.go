package ui

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/execshell"
)

// Stream names accepted by NewStreamVisibility.
const (
	StreamRunningConstant        = "running"
	StreamStandardOutputConstant = "stdout"
	StreamStandardErrorConstant  = "stderr"
)

// StreamVisibility selects which parts of external command activity reach the console.
type StreamVisibility struct {
	ShowRunning        bool
	ShowStandardOutput bool
	ShowStandardError  bool
}

// NewStreamVisibility hides the named streams unless verbose output was requested.
func NewStreamVisibility(hiddenStreams []string, verbose bool) StreamVisibility {
	visibility := StreamVisibility{ShowRunning: true, ShowStandardOutput: true, ShowStandardError: true}
	if verbose {
		return visibility
	}
	for _, streamName := range hiddenStreams {
		switch strings.ToLower(strings.TrimSpace(streamName)) {
		case StreamRunningConstant:
			visibility.ShowRunning = false
		case StreamStandardOutputConstant:
			visibility.ShowStandardOutput = false
		case StreamStandardErrorConstant:
			visibility.ShowStandardError = false
		}
	}
	return visibility
}

// ConsoleCommandEventLogger renders command lifecycle events using a zap logger configured for human-readable output.
// Failures are always reported; start and success notices follow the running stream visibility.
type ConsoleCommandEventLogger struct {
	logger     *zap.Logger
	formatter  execshell.CommandMessageFormatter
	visibility StreamVisibility
}

// NewConsoleCommandEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleCommandEventLogger(logger *zap.Logger, visibility StreamVisibility) *ConsoleCommandEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleCommandEventLogger{logger: logger, formatter: execshell.CommandMessageFormatter{}, visibility: visibility}
}

// CommandStarted implements execshell.CommandEventObserver by logging command start notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil || !eventLogger.visibility.ShowRunning {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver by logging command completion notifications.
func (eventLogger *ConsoleCommandEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		if eventLogger.visibility.ShowRunning {
			eventLogger.logger.Info(eventLogger.formatter.BuildCompletionMessage(command, result))
		}
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging unexpected execution failures.
func (eventLogger *ConsoleCommandEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
