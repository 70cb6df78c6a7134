package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/pubrelease/cmd/cli/sdk"
	"github.com/temirov/pubrelease/internal/release"
	"github.com/temirov/pubrelease/internal/utils"
	flagutils "github.com/temirov/pubrelease/internal/utils/flags"
)

const (
	applicationNameConstant                  = "pubrelease"
	applicationShortDescriptionConstant      = "Release an SDK build into its public distribution repository"
	applicationLongDescriptionConstant       = "pubrelease builds an SDK from a release/<version> branch, copies the artifact together with the SDK files and sample app into a separate public repository, commits the result and tags both repositories."
	configFileFlagNameConstant               = "config"
	configFileFlagUsageConstant              = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                 = "log-level"
	logLevelFlagUsageConstant                = "Override the configured log level."
	logFormatFlagNameConstant                = "log-format"
	logFormatFlagUsageConstant               = "Override the configured log format (structured or console)."
	verboseFlagNameConstant                  = "verbose"
	verboseFlagUsageConstant                 = "Show every external command together with its output."
	assumeYesFlagNameConstant                = "yes"
	assumeYesFlagShorthandConstant           = "y"
	assumeYesFlagUsageConstant               = "Answer yes to every confirmation prompt."
	noColorFlagNameConstant                  = "no-color"
	noColorFlagUsageConstant                 = "Disable colored status output."
	commonConfigurationKeyConstant           = "common"
	commonLogLevelConfigKeyConstant          = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant         = commonConfigurationKeyConstant + ".log_format"
	releaseConfigurationKeyConstant          = "release"
	environmentPrefixConstant                = "PUBRELEASE"
	configurationNameConstant                = "config"
	configurationTypeConstant                = "yaml"
	configurationInitializedMessageConstant  = "configuration initialized"
	configurationLogLevelFieldConstant       = "log_level"
	configurationLogFormatFieldConstant      = "log_format"
	configurationFileFieldConstant           = "config_file"
	configurationLoadErrorTemplateConstant   = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant      = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant          = "unable to flush logger: %w"
	commandConstructionErrorTemplateConstant = "unable to build commands: %w"
	rootCommandInfoMessageConstant           = "pubrelease CLI executed"
	rootCommandDebugMessageConstant          = "pubrelease CLI diagnostics"
	logFieldCommandNameConstant              = "command_name"
	logFieldArgumentCountConstant            = "argument_count"
	logFieldArgumentsConstant                = "arguments"
	loggerNotInitializedMessageConstant      = "logger not initialized"
	defaultConfigurationSearchPathConstant   = "."
	userConfigurationSearchPathConstant      = "~/.pubrelease"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common  ApplicationCommonConfiguration `mapstructure:"common"`
	Release release.Configuration          `mapstructure:"release"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	consoleLogger          *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	verboseFlagValue       bool
	assumeYesFlagValue     bool
	noColorFlagValue       bool
	commandContextAccessor utils.CommandContextAccessor
	constructionError      error
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant, userConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlags := cobraCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	flagutils.AddToggleFlag(persistentFlags, &application.verboseFlagValue, verboseFlagNameConstant, "", false, verboseFlagUsageConstant)
	flagutils.AddToggleFlag(persistentFlags, &application.assumeYesFlagValue, assumeYesFlagNameConstant, assumeYesFlagShorthandConstant, false, assumeYesFlagUsageConstant)
	flagutils.AddToggleFlag(persistentFlags, &application.noColorFlagValue, noColorFlagNameConstant, "", false, noColorFlagUsageConstant)

	sdkBuilder := sdk.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConsoleLoggerProvider: func() *zap.Logger {
			return application.consoleLogger
		},
		ConfigurationProvider: func() release.Configuration {
			return application.configuration.Release
		},
		ColorDisabledProvider: func() bool {
			return application.noColorFlagValue
		},
		ContextAccessor: application.commandContextAccessor,
	}
	application.registerCommands(cobraCommand, sdkBuilder.Build)

	application.rootCommand = cobraCommand

	return application
}

func (application *Application) registerCommands(rootCommand *cobra.Command, build func() ([]*cobra.Command, error)) {
	commands, buildError := build()
	if buildError != nil {
		application.constructionError = errors.Join(application.constructionError, fmt.Errorf(commandConstructionErrorTemplateConstant, buildError))
		return
	}
	rootCommand.AddCommand(commands...)
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
// A command that failed to build is reported instead of running a partial hierarchy.
func (application *Application) Execute() error {
	if application.constructionError != nil {
		return application.constructionError
	}
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy with the process arguments.
func Execute() error {
	application := NewApplication()
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))
	return application.Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	startedAt := time.Now()

	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range release.DefaultConfigurationValues(releaseConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, verboseFlagNameConstant) {
		application.configuration.Release.Verbose = application.verboseFlagValue
	}

	if application.persistentFlagChanged(command, assumeYesFlagNameConstant) {
		application.configuration.Release.AssumeYes = application.assumeYesFlagValue
	}

	if application.noColorFlagValue {
		color.NoColor = true
	}

	loggerOutputs, loggerCreationError := application.loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithInvocation(
			command.Context(),
			utils.InvocationMetadata{
				ConfigurationFilePath: application.configurationMetadata.ConfigFileUsed,
				StartedAt:             startedAt,
			},
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	for _, logger := range []*zap.Logger{application.logger, application.consoleLogger} {
		if syncError := application.syncLoggerInstance(logger); syncError != nil {
			return syncError
		}
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
