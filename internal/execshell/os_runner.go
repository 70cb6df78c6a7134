package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const (
	environmentAssignmentSeparatorConstant = "="
	environmentAssignmentTemplateConstant  = "%s%s%s"
)

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct {
	outputMirror io.Writer
	errorMirror  io.Writer
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// NewMirroringOSCommandRunner constructs a runner that copies process output to the supplied writers while it runs.
func NewMirroringOSCommandRunner(outputMirror io.Writer, errorMirror io.Writer) *OSCommandRunner {
	return &OSCommandRunner{outputMirror: outputMirror, errorMirror: errorMirror}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	if len(command.Details.EnvironmentVariables) > 0 {
		mergedEnvironment := append([]string{}, os.Environ()...)
		for environmentKey, environmentValue := range command.Details.EnvironmentVariables {
			mergedEnvironment = append(mergedEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, environmentKey, environmentAssignmentSeparatorConstant, environmentValue))
		}
		executable.Env = mergedEnvironment
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = mirrorWriter(&standardOutputBuffer, runner.outputMirror)
	executable.Stderr = mirrorWriter(&standardErrorBuffer, runner.errorMirror)

	if len(command.Details.StandardInput) > 0 {
		executable.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}

func mirrorWriter(buffer *bytes.Buffer, mirror io.Writer) io.Writer {
	if mirror == nil {
		return buffer
	}
	return io.MultiWriter(buffer, mirror)
}
