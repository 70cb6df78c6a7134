package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	commandNameGitConstant                = "git"
	loggerNotConfiguredMessageConstant    = "shell executor requires a logger"
	runnerNotConfiguredMessageConstant    = "shell executor requires a command runner"
	executableNameRequiredMessageConstant = "executable name must be provided"
	commandFailedErrorTemplateConstant    = "%s"
	commandExecutionErrorTemplateConstant = "%s: %v"
	logFieldCommandConstant               = "command"
	logFieldArgumentsConstant             = "arguments"
	logFieldWorkingDirectoryConstant      = "working_directory"
	logFieldExitCodeConstant              = "exit_code"
	logFieldStandardErrorConstant         = "stderr"
	logFieldStandardOutputLengthConstant  = "stdout_bytes"
)

// CommandName identifies the executable invoked by the shell executor.
type CommandName string

// Known executables.
const (
	CommandGit CommandName = CommandName(commandNameGitConstant)
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(runnerNotConfiguredMessageConstant)

// ErrExecutableNameRequired indicates an arbitrary tool invocation omitted the executable.
var ErrExecutableNameRequired = errors.New(executableNameRequiredMessageConstant)

// CommandDetails describes arguments and process settings for a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand pairs an executable with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes shell commands.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// CommandEventObserver is notified around every command the executor runs, such as a console renderer.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process could not be started or awaited, so no result exists.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type silentObserver struct{}

func (silentObserver) CommandStarted(ShellCommand) {}

func (silentObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (silentObserver) CommandExecutionFailed(ShellCommand, error) {}

// CommandFailedError reports a command that finished with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command together with its exit code and stderr.
func (failure CommandFailedError) Error() string {
	return fmt.Sprintf(commandFailedErrorTemplateConstant, CommandMessageFormatter{}.BuildFailureMessage(failure.Command, failure.Result))
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, CommandMessageFormatter{}.formatCommandLabel(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutor runs external commands with structured logging and lifecycle notifications.
type ShellExecutor struct {
	logger    *zap.Logger
	runner    CommandRunner
	observer  CommandEventObserver
	formatter CommandMessageFormatter
}

// NewShellExecutor constructs a ShellExecutor that reports only through the diagnostic logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithObserver(logger, runner, silentObserver{})
}

// NewShellExecutorWithObserver constructs a ShellExecutor that also notifies the provided observer.
func NewShellExecutorWithObserver(logger *zap.Logger, runner CommandRunner, observer CommandEventObserver) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}
	if observer == nil {
		observer = silentObserver{}
	}
	return &ShellExecutor{logger: logger, runner: runner, observer: observer, formatter: CommandMessageFormatter{}}, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteTool runs an arbitrary executable, such as a project build wrapper.
func (executor *ShellExecutor) ExecuteTool(executionContext context.Context, executable string, details CommandDetails) (ExecutionResult, error) {
	trimmedExecutable := strings.TrimSpace(executable)
	if len(trimmedExecutable) == 0 {
		return ExecutionResult{}, ErrExecutableNameRequired
	}
	return executor.Execute(executionContext, ShellCommand{Name: CommandName(trimmedExecutable), Details: details})
}

// Execute runs the command and converts non-zero exit codes into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandFields := []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	}

	executor.logger.Debug(executor.formatter.BuildStartedMessage(command), commandFields...)
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError), commandFields...)
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		failureFields := append(commandFields,
			zap.Int(logFieldExitCodeConstant, executionResult.ExitCode),
			zap.String(logFieldStandardErrorConstant, strings.TrimSpace(executionResult.StandardError)),
		)
		executor.logger.Warn(executor.formatter.BuildFailureMessage(command, executionResult), failureFields...)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	successFields := append(commandFields, zap.Int(logFieldStandardOutputLengthConstant, len(executionResult.StandardOutput)))
	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), successFields...)
	return executionResult, nil
}
