package release

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/repos/dependencies"
	"github.com/temirov/pubrelease/internal/repos/shared"
	pathutils "github.com/temirov/pubrelease/internal/utils/path"
)

const (
	taskStartedMessageConstant   = "release task started"
	taskCompletedMessageConstant = "release task completed"
	logFieldTaskConstant         = "task"
	logFieldElapsedConstant      = "elapsed"
	taskSetupConstant            = "setup"
	taskResetConstant            = "reset"
	taskBuildConstant            = "build"
	taskReleaseConstant          = "release"
)

// ServiceDependencies enumerates collaborators required by the release service.
type ServiceDependencies struct {
	Executor          shared.CommandExecutor
	RepositoryManager shared.GitRepositoryManager
	FileSystem        shared.FileSystem
	Prompter          shared.ConfirmationPrompter
	Clock             shared.Clock
	Reporter          Reporter
	Logger            *zap.Logger
	HomeExpander      *pathutils.HomeExpander
}

// ResetOptions configure the reset task.
type ResetOptions struct {
	Warn bool
}

// BuildOptions configure the build task.
type BuildOptions struct {
	UploadArchives bool
}

// ReleaseOptions configure the full release.
type ReleaseOptions struct {
	UploadArchives  bool
	WarnBeforeReset bool
}

// Service composes release steps into the setup, reset, build and release tasks.
type Service struct {
	environment *stepEnvironment
	prompter    shared.ConfirmationPrompter
	clock       shared.Clock
}

// NewService validates the configuration and constructs a Service.
func NewService(configuration Configuration, serviceDependencies ServiceDependencies) (*Service, error) {
	sanitizedConfiguration := configuration.Sanitize()
	if validationError := sanitizedConfiguration.Validate(); validationError != nil {
		return nil, validationError
	}
	if serviceDependencies.Executor == nil {
		return nil, ErrCommandExecutorNotConfigured
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(serviceDependencies.RepositoryManager, serviceDependencies.Executor)
	if managerError != nil {
		return nil, managerError
	}

	logger := serviceDependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	homeExpander := serviceDependencies.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	return &Service{
		environment: &stepEnvironment{
			configuration: sanitizedConfiguration,
			executor:      serviceDependencies.Executor,
			repositories:  repositoryManager,
			fileSystem:    dependencies.ResolveFileSystem(serviceDependencies.FileSystem),
			reporter:      resolveReporter(serviceDependencies.Reporter),
			logger:        logger,
			homeExpander:  homeExpander,
		},
		prompter: serviceDependencies.Prompter,
		clock:    dependencies.ResolveClock(serviceDependencies.Clock),
	}, nil
}

// Configuration returns the sanitized configuration the service runs with.
func (service *Service) Configuration() Configuration {
	return service.environment.configuration
}

// ResolveVersion determines the release version from the source repository's current branch and records it in state.
func (service *Service) ResolveVersion(executionContext context.Context, state *State) (Version, error) {
	return service.environment.version(executionContext, state)
}

// Setup ensures the public repository clone exists.
func (service *Service) Setup(executionContext context.Context) (Result, error) {
	return service.runTask(executionContext, taskSetupConstant, &State{}, SetupStep{environment: service.environment})
}

// Reset ensures the public clone exists and resets it to the remote branch.
func (service *Service) Reset(executionContext context.Context, options ResetOptions) (Result, error) {
	return service.runTask(
		executionContext,
		taskResetConstant,
		&State{},
		SetupStep{environment: service.environment},
		ResetStep{environment: service.environment, warn: options.Warn},
	)
}

// Build runs the build tool only.
func (service *Service) Build(executionContext context.Context, options BuildOptions) (Result, error) {
	return service.runTask(executionContext, taskBuildConstant, &State{}, BuildStep{environment: service.environment, uploadArchives: options.UploadArchives})
}

// Release runs the complete pipeline: checklist, setup, reset, tag check, build, publish and both tags.
// The version is resolved before any step runs, so an unsuitable branch fails without side effects.
func (service *Service) Release(executionContext context.Context, options ReleaseOptions) (Result, error) {
	state := &State{}
	if _, versionError := service.ResolveVersion(executionContext, state); versionError != nil {
		return Result{}, versionError
	}

	return service.runTask(
		executionContext,
		taskReleaseConstant,
		state,
		ChecklistStep{environment: service.environment},
		SetupStep{environment: service.environment},
		ResetStep{environment: service.environment, warn: options.WarnBeforeReset},
		TagCheckStep{environment: service.environment},
		BuildStep{environment: service.environment, uploadArchives: options.UploadArchives},
		PublishStep{environment: service.environment},
		TagStep{environment: service.environment, target: TagTargetSource},
		TagStep{environment: service.environment, target: TagTargetPublic},
	)
}

func (service *Service) runTask(executionContext context.Context, taskName string, state *State, steps ...Step) (Result, error) {
	pipeline, pipelineError := NewPipeline(PipelineDependencies{
		Prompter: service.prompter,
		Policy:   shared.ConfirmationPolicyFromBool(service.environment.configuration.AssumeYes),
		Reporter: service.environment.reporter,
		Logger:   service.environment.logger,
		Clock:    service.clock,
	}, steps...)
	if pipelineError != nil {
		return Result{}, pipelineError
	}

	startedAt := service.clock.Now()
	service.environment.logger.Debug(taskStartedMessageConstant, zap.String(logFieldTaskConstant, taskName))

	timings, runError := pipeline.Run(executionContext, state)
	result := Result{
		SourceRepositoryPath: state.SourceRepositoryPath,
		PublicRepositoryPath: state.PublicRepositoryPath,
		Version:              state.Version,
		TagName:              state.TagName,
		PublicCloneCreated:   state.PublicCloneCreated,
		UploadedArchives:     state.UploadArchives,
		PublishedArtifact:    state.PublishedArtifact,
		Steps:                timings,
		Elapsed:              service.clock.Now().Sub(startedAt),
	}
	if runError != nil {
		return result, runError
	}

	service.environment.logger.Info(taskCompletedMessageConstant, zap.String(logFieldTaskConstant, taskName), zap.Duration(logFieldElapsedConstant, result.Elapsed))
	return result, nil
}
