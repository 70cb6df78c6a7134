package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/pubrelease/internal/execshell"
	"github.com/temirov/pubrelease/internal/ui"
)

const (
	testCommandWorkingDirectoryConstant    = "/tmp/project"
	testExecutionFailureReasonConstant     = "execution failed"
	testStandardErrorMessageConstant       = "fatal: remote error"
	testStartMessageExpectationConstant    = "Fetching from public in /tmp/project"
	testSuccessMessageExpectationConstant  = "Fetched from public in /tmp/project"
	testFailureMessageExpectationConstant  = "Failed to fetch from public in /tmp/project (exit code 1: " + testStandardErrorMessageConstant + ")"
	testExecutionFailureMessageExpectation = "Unable to fetch from public in /tmp/project: " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"fetch", "public", "--prune"},
			WorkingDirectory: testCommandWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		visibility      ui.StreamVisibility
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
		expectSilence   bool
	}{
		{
			name:       "command_started",
			visibility: ui.StreamVisibility{ShowRunning: true},
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name:       "command_started_hidden",
			visibility: ui.StreamVisibility{},
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectSilence: true,
		},
		{
			name:       "command_completed_success",
			visibility: ui.StreamVisibility{ShowRunning: true},
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name:       "command_completed_failure_while_hidden",
			visibility: ui.StreamVisibility{},
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 1, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name:       "command_execution_failure",
			visibility: ui.StreamVisibility{},
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger, testCase.visibility)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			if testCase.expectSilence {
				require.Empty(testInstance, entries)
				return
			}
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNewStreamVisibility(testInstance *testing.T) {
	testCases := []struct {
		name          string
		hiddenStreams []string
		verbose       bool
		expected      ui.StreamVisibility
	}{
		{
			name:          "default_hidden_streams",
			hiddenStreams: []string{"stdout", "stderr", "running"},
			expected:      ui.StreamVisibility{},
		},
		{
			name:          "verbose_reveals_everything",
			hiddenStreams: []string{"stdout", "stderr", "running"},
			verbose:       true,
			expected:      ui.StreamVisibility{ShowRunning: true, ShowStandardOutput: true, ShowStandardError: true},
		},
		{
			name:          "partial_and_mixed_case",
			hiddenStreams: []string{" STDOUT ", "unknown"},
			expected:      ui.StreamVisibility{ShowRunning: true, ShowStandardError: true},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, ui.NewStreamVisibility(testCase.hiddenStreams, testCase.verbose))
		})
	}
}
