package sdk

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/temirov/pubrelease/internal/release"
	"github.com/temirov/pubrelease/internal/repos/dependencies"
	"github.com/temirov/pubrelease/internal/repos/shared"
	"github.com/temirov/pubrelease/internal/ui"
	"github.com/temirov/pubrelease/internal/utils"
)

const (
	standardOutputMirrorPrefixConstant = "out: "
	standardErrorMirrorPrefixConstant  = "err: "
)

// CommandBuilder assembles the release task commands.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConsoleLoggerProvider LoggerProvider
	ConfigurationProvider func() release.Configuration
	Executor              shared.CommandExecutor
	Prompter              shared.ConfirmationPrompter
	Clock                 shared.Clock
	ColorDisabledProvider func() bool
	ContextAccessor       utils.CommandContextAccessor
}

// Build constructs every task command.
func (builder *CommandBuilder) Build() ([]*cobra.Command, error) {
	constructors := []func() (*cobra.Command, error){
		builder.BuildSetupCommand,
		builder.BuildResetCommand,
		builder.BuildBuildCommand,
		builder.BuildReleaseCommand,
	}

	commands := make([]*cobra.Command, 0, len(constructors))
	for _, construct := range constructors {
		command, buildError := construct()
		if buildError != nil {
			return nil, buildError
		}
		commands = append(commands, command)
	}
	return commands, nil
}

// serviceSession holds a release service together with the writers that must be flushed once it finishes.
type serviceSession struct {
	service *release.Service
	status  *ui.StatusPrinter
	mirrors []io.Writer
}

func (session serviceSession) close() {
	for _, mirror := range session.mirrors {
		flushMirror(mirror)
	}
}

func (builder *CommandBuilder) resolveConfiguration() release.Configuration {
	if builder.ConfigurationProvider == nil {
		return release.DefaultConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) openSession(command *cobra.Command, configuration release.Configuration) (serviceSession, error) {
	logger := resolveLogger(builder.LoggerProvider)
	consoleLogger := resolveLogger(builder.ConsoleLoggerProvider)
	visibility := ui.NewStreamVisibility(configuration.HiddenStreams, configuration.Verbose)

	var outputMirror io.Writer
	if visibility.ShowStandardOutput {
		outputMirror = utils.NewLinePrefixWriter(command.OutOrStdout(), standardOutputMirrorPrefixConstant)
	}
	var errorMirror io.Writer
	if visibility.ShowStandardError {
		errorMirror = utils.NewLinePrefixWriter(command.ErrOrStderr(), standardErrorMirrorPrefixConstant)
	}

	executor, executorError := dependencies.ResolveCommandExecutor(
		builder.Executor,
		logger,
		ui.NewConsoleCommandEventLogger(consoleLogger, visibility),
		outputMirror,
		errorMirror,
	)
	if executorError != nil {
		return serviceSession{}, executorError
	}

	status := ui.NewStatusPrinter(command.OutOrStdout())
	if builder.ColorDisabledProvider != nil && builder.ColorDisabledProvider() {
		status = status.WithoutColor()
	}

	service, serviceError := release.NewService(configuration, release.ServiceDependencies{
		Executor: executor,
		Prompter: dependencies.ResolveConfirmationPrompter(builder.Prompter, command.InOrStdin(), command.OutOrStdout()),
		Clock:    builder.Clock,
		Reporter: status,
		Logger:   logger,
	})
	if serviceError != nil {
		return serviceSession{}, serviceError
	}

	return serviceSession{service: service, status: status, mirrors: []io.Writer{outputMirror, errorMirror}}, nil
}
