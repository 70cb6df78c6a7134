package release

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/pubrelease/internal/gitrepo"
)

const (
	createPublicRepositoryMessageConstant = "Creating public SDK repo"
	publicRepositoryReadyMessageConstant  = "public repository ready"
	publicRepositoryClonedMessageConstant = "public repository cloned"
	publicParentPermissionsConstant       = 0o755
	gitCloneSubcommandConstant            = "clone"
	gitOriginFlagConstant                 = "--origin"
	publicStatErrorTemplateConstant       = "unable to inspect public repository %s: %w"
	publicParentErrorTemplateConstant     = "unable to create parent directory for %s: %w"
	publicCloneErrorTemplateConstant      = "unable to clone %s into %s: %w"
	publicNotDirectoryTemplateConstant    = "%w: %s"
	remoteUnavailableTemplateConstant     = "%w: remote %s of %s unavailable: %v"
	remoteMismatchTemplateConstant        = "%w: remote %s of %s points at %s, expected %s"
)

// SetupStep ensures a local clone of the public repository exists. Existing clones are left untouched
// apart from an optional remote URL check.
type SetupStep struct {
	environment *stepEnvironment
}

// Name identifies the step.
func (step SetupStep) Name() StepName {
	return StepSetup
}

// Run clones the public repository when its path is absent.
func (step SetupStep) Run(executionContext context.Context, state *State, _ Approval) (Outcome, error) {
	sourceRoot, sourceError := step.environment.sourceRoot(executionContext, state)
	if sourceError != nil {
		return Outcome{}, sourceError
	}
	publicRoot, publicError := step.environment.publicRoot(executionContext, state)
	if publicError != nil {
		return Outcome{}, publicError
	}

	publicInfo, statError := step.environment.fileSystem.Stat(publicRoot)
	switch {
	case statError == nil && !publicInfo.IsDir():
		return Outcome{}, fmt.Errorf(publicNotDirectoryTemplateConstant, ErrPublicRepositoryNotDirectory, publicRoot)
	case statError == nil:
		if verifyError := step.verifyRemote(executionContext, publicRoot); verifyError != nil {
			return Outcome{}, verifyError
		}
		step.environment.logger.Debug(publicRepositoryReadyMessageConstant, zap.String(logFieldPublicRepositoryConstant, publicRoot))
		return Completed(), nil
	case errors.Is(statError, fs.ErrNotExist):
		return step.clone(executionContext, state, sourceRoot, publicRoot)
	default:
		return Outcome{}, fmt.Errorf(publicStatErrorTemplateConstant, publicRoot, statError)
	}
}

func (step SetupStep) clone(executionContext context.Context, state *State, sourceRoot string, publicRoot string) (Outcome, error) {
	publicConfiguration := step.environment.configuration.PublicRepository
	step.environment.reporter.Progress(createPublicRepositoryMessageConstant)

	if mkdirError := step.environment.fileSystem.MkdirAll(filepath.Dir(publicRoot), publicParentPermissionsConstant); mkdirError != nil {
		return Outcome{}, fmt.Errorf(publicParentErrorTemplateConstant, publicRoot, mkdirError)
	}

	_, cloneError := step.environment.git(
		executionContext,
		sourceRoot,
		gitCloneSubcommandConstant,
		gitOriginFlagConstant,
		publicConfiguration.RemoteName,
		publicConfiguration.URL,
		publicRoot,
	)
	if cloneError != nil {
		return Outcome{}, fmt.Errorf(publicCloneErrorTemplateConstant, publicConfiguration.URL, publicRoot, cloneError)
	}

	state.PublicCloneCreated = true
	step.environment.logger.Info(publicRepositoryClonedMessageConstant, zap.String(logFieldPublicRepositoryConstant, publicRoot))
	return Completed(), nil
}

func (step SetupStep) verifyRemote(executionContext context.Context, publicRoot string) error {
	publicConfiguration := step.environment.configuration.PublicRepository
	if !publicConfiguration.VerifyRemote {
		return nil
	}

	actualURL, remoteError := step.environment.repositories.GetRemoteURL(executionContext, publicRoot, publicConfiguration.RemoteName)
	if remoteError != nil {
		return fmt.Errorf(remoteUnavailableTemplateConstant, ErrPublicRepositoryRemoteMismatch, publicConfiguration.RemoteName, publicRoot, remoteError)
	}
	if !gitrepo.EquivalentRemoteURLs(actualURL, publicConfiguration.URL) {
		return fmt.Errorf(remoteMismatchTemplateConstant, ErrPublicRepositoryRemoteMismatch, publicConfiguration.RemoteName, publicRoot, actualURL, publicConfiguration.URL)
	}
	return nil
}
