package release

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/execshell"
)

const (
	buildProgressTemplateConstant  = "running %s"
	buildCompletedMessageConstant  = "build completed"
	buildCommandSeparatorConstant  = " "
	logFieldUploadArchivesConstant = "upload_archives"
	logFieldBuildDirectoryConstant = "build_directory"
)

// BuildStep invokes the build tool and, when requested, its upload arguments.
type BuildStep struct {
	environment    *stepEnvironment
	uploadArchives bool
}

// Name identifies the step.
func (step BuildStep) Name() StepName {
	return StepBuild
}

// Run executes the build tool. A non-zero exit is reported as BuildFailedError.
func (step BuildStep) Run(executionContext context.Context, state *State, _ Approval) (Outcome, error) {
	sourceRoot, sourceError := step.environment.sourceRoot(executionContext, state)
	if sourceError != nil {
		return Outcome{}, sourceError
	}

	buildConfiguration := step.environment.configuration.Build
	arguments := append([]string{}, buildConfiguration.Arguments...)
	if step.uploadArchives {
		arguments = append(arguments, buildConfiguration.UploadArguments...)
	}

	buildDirectory := sourceRoot
	if len(buildConfiguration.WorkingDirectory) > 0 {
		buildDirectory = step.environment.homeExpander.ResolveAgainst(sourceRoot, buildConfiguration.WorkingDirectory)
	}

	step.environment.reporter.Progress(buildProgressTemplateConstant, strings.Join(append([]string{buildConfiguration.Executable}, arguments...), buildCommandSeparatorConstant))

	_, buildError := step.environment.executor.ExecuteTool(executionContext, buildConfiguration.Executable, execshell.CommandDetails{
		Arguments:        arguments,
		WorkingDirectory: buildDirectory,
	})
	if buildError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(buildError, &commandFailure) {
			return Outcome{}, BuildFailedError{ExitCode: commandFailure.Result.ExitCode, Cause: buildError}
		}
		return Outcome{}, BuildFailedError{Cause: buildError}
	}

	state.UploadArchives = step.uploadArchives
	step.environment.logger.Info(
		buildCompletedMessageConstant,
		zap.String(logFieldBuildDirectoryConstant, buildDirectory),
		zap.Bool(logFieldUploadArchivesConstant, step.uploadArchives),
	)
	return Completed(), nil
}
